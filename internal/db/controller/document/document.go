// Package document provides store operations for Document records and
// their grant lists.
package document

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoDocVault/GoDocVault/internal/db/models"
)

const whereDocID = "id = ?"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrDocumentNotFound is returned when no document matches the lookup.
	ErrDocumentNotFound = errors.New("document not found")
)

// FindByID retrieves a document with its grant list preloaded.
func FindByID(db *gorm.DB, id string) (*models.Document, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var doc models.Document

	result := db.Preload("Grants").Where(whereDocID, id).First(&doc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}

		return nil, result.Error
	}

	return &doc, nil
}

// Create inserts a new document record.
func Create(db *gorm.DB, doc *models.Document) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(doc).Error
}

// Save updates a document record.
func Save(db *gorm.DB, doc *models.Document) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Save(doc).Error
}

// Delete removes a document. Its grants go with it via the foreign-key
// cascade, with an explicit sweep for engines that skip constraints.
func Delete(db *gorm.DB, id string) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&models.Grant{}).Error; err != nil {
			return err
		}

		return tx.Where(whereDocID, id).Delete(&models.Document{}).Error
	})
}

// ListAccessible returns documents owned by the account, newest first.
func ListAccessible(db *gorm.DB, accountID uint64, limit, offset int) ([]models.Document, int64, error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}

	var (
		docs  []models.Document
		total int64
	)

	granted := db.Model(&models.Grant{}).
		Select("document_id").
		Where("grantee_id = ?", accountID)

	query := db.Model(&models.Document{}).
		Where("owner_id = ? OR id IN (?)", accountID, granted)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Grants").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// UpsertGrant inserts a grant or replaces the permission level of an
// existing one in a single statement. The ON CONFLICT clause keyed on
// (document_id, grantee_id) guarantees at most one grant per grantee and
// makes concurrent re-grants last-writer-wins instead of duplicating.
func UpsertGrant(db *gorm.DB, documentID string, granteeID uint64, perm models.Permission) error {
	if db == nil {
		return ErrDBNil
	}

	grant := models.Grant{
		DocumentID: documentID,
		GranteeID:  granteeID,
		Permission: perm,
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_id"}, {Name: "grantee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"permission", "updated_at"}),
	}).Create(&grant).Error
}

// RemoveGrant deletes the grant for a grantee. Removing an absent grant
// is not an error.
func RemoveGrant(db *gorm.DB, documentID string, granteeID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Where("document_id = ? AND grantee_id = ?", documentID, granteeID).
		Delete(&models.Grant{}).Error
}
