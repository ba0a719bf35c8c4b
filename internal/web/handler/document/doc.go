// Package document provides the HTTP handlers for document metadata and
// sharing. Reads, updates and deletes are checked against the owner and
// grant rules; grant management itself is owner-only.
package document
