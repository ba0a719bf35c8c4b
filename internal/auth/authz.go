package auth

import (
	"github.com/GoDocVault/GoDocVault/internal/db/models"
)

// Operation is a document action subject to access control.
type Operation string

const (
	// OpRead is a read of a document or its metadata.
	OpRead Operation = "read"
	// OpWrite is a modification of a document.
	OpWrite Operation = "write"
	// OpDelete is a deletion of a document.
	OpDelete Operation = "delete"
)

// permissionRank orders stored grant levels. A grant authorizes every
// operation of equal or lower rank: delete covers write covers read.
// The stored data carries no hierarchy; this table is the single place
// the ordering is defined.
var permissionRank = map[models.Permission]int{
	models.PermissionRead:   1,
	models.PermissionWrite:  2,
	models.PermissionDelete: 3,
}

// operationRank orders operations against permissionRank.
var operationRank = map[Operation]int{
	OpRead:   1,
	OpWrite:  2,
	OpDelete: 3,
}

// Authorize decides whether the account may perform the operation on the
// document. The owner is allowed unconditionally; any other identity needs
// a grant whose level covers the operation. Everything else, including an
// unknown operation, is ErrForbidden.
func Authorize(accountID uint64, doc *models.Document, op Operation) error {
	if doc == nil {
		return ErrForbidden
	}

	opRank, ok := operationRank[op]
	if !ok {
		return ErrForbidden
	}

	if doc.OwnerID == accountID {
		return nil
	}

	for i := range doc.Grants {
		if doc.Grants[i].GranteeID != accountID {
			continue
		}

		if permissionRank[doc.Grants[i].Permission] >= opRank {
			return nil
		}

		return ErrForbidden
	}

	return ErrForbidden
}
