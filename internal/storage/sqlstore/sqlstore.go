// Package sqlstore persists the ledger and asset collections in SQL tables
// through gorm. Each save rewrites the whole table inside one transaction.
package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"homeledger/internal/models"
)

const insertBatchSize = 200

// transactionRow adds the collection position to a ledger record so loads
// return records in the order they were saved, not in id order.
type transactionRow struct {
	models.Transaction
	Position int `gorm:"not null;index"`
}

func (transactionRow) TableName() string { return "transactions" }

type assetRow struct {
	models.Asset
	Position int `gorm:"not null;index"`
}

func (assetRow) TableName() string { return "assets" }

// Store is a storage.Repository over a gorm connection.
type Store struct {
	db *gorm.DB
}

// New creates a Store on db. Call AutoMigrate first unless the schema is
// managed by SQL migrations.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates both tables from the record definitions.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&transactionRow{}, &assetRow{}); err != nil {
		return fmt.Errorf("failed to migrate ledger tables: %w", err)
	}
	return nil
}

func (s *Store) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	var rows []transactionRow
	if err := s.db.WithContext(ctx).Order("position").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	out := make([]models.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Transaction)
	}
	return out, nil
}

func (s *Store) SaveTransactions(ctx context.Context, records []models.Transaction) error {
	rows := make([]transactionRow, 0, len(records))
	for i, r := range records {
		rows = append(rows, transactionRow{Transaction: r, Position: i})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&transactionRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to write transactions: %w", err)
		}
		return nil
	})
}

func (s *Store) LoadAssets(ctx context.Context) ([]models.Asset, error) {
	var rows []assetRow
	if err := s.db.WithContext(ctx).Order("position").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	out := make([]models.Asset, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Asset)
	}
	return out, nil
}

func (s *Store) SaveAssets(ctx context.Context, records []models.Asset) error {
	rows := make([]assetRow, 0, len(records))
	for i, r := range records {
		rows = append(rows, assetRow{Asset: r, Position: i})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&assetRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear assets: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to write assets: %w", err)
		}
		return nil
	})
}
