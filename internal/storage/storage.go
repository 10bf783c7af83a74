// Package storage defines the persistence contract for the ledger and asset
// collections. Adapters load and save whole collections; there are no
// row-level operations.
package storage

import (
	"context"
	"sync"

	"homeledger/internal/models"
)

// TransactionRepository loads and saves the full transaction collection.
// SaveTransactions replaces whatever was stored before.
type TransactionRepository interface {
	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
	SaveTransactions(ctx context.Context, records []models.Transaction) error
}

// AssetRepository loads and saves the full asset collection.
type AssetRepository interface {
	LoadAssets(ctx context.Context) ([]models.Asset, error)
	SaveAssets(ctx context.Context, records []models.Asset) error
}

// Repository is an adapter serving both collections.
type Repository interface {
	TransactionRepository
	AssetRepository
}

// Memory is a Repository that keeps both collections in process memory.
// Saves store a copy, so later changes to the caller's slice are not seen.
type Memory struct {
	mu           sync.Mutex
	transactions []models.Transaction
	assets       []models.Asset

	// SaveErr, when set, is returned by every save.
	SaveErr error
	// Saves counts successful saves across both collections.
	Saves int
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadTransactions(_ context.Context) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Transaction(nil), m.transactions...), nil
}

func (m *Memory) SaveTransactions(_ context.Context, records []models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.transactions = append([]models.Transaction(nil), records...)
	m.Saves++
	return nil
}

func (m *Memory) LoadAssets(_ context.Context) ([]models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Asset(nil), m.assets...), nil
}

func (m *Memory) SaveAssets(_ context.Context, records []models.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.assets = append([]models.Asset(nil), records...)
	m.Saves++
	return nil
}
