package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"equipment-tracker-backend/internal/model"
)

// ErrNotFound is returned when an operation targets an id with no matching row.
var ErrNotFound = errors.New("equipment not found")

// Store defines the interface for all equipment database operations.
type Store interface {
	ListEquipment(ctx context.Context) ([]model.Equipment, error)
	GetEquipment(ctx context.Context, id int64) (model.Equipment, error)
	CreateEquipment(ctx context.Context, e *model.Equipment) error
	UpdateEquipment(ctx context.Context, e *model.Equipment) error
	DeleteEquipment(ctx context.Context, id int64) error
	ListCleaningOverdue(ctx context.Context, cutoff string) ([]model.Equipment, error)

	// DB exposes the underlying handle for the subscription handlers
	// and the notification worker pool.
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ListEquipment returns all equipment records ordered by ascending id.
func (s *gormStore) ListEquipment(ctx context.Context) ([]model.Equipment, error) {
	records := make([]model.Equipment, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return records, nil
}

// GetEquipment returns the record with the given id, or ErrNotFound.
func (s *gormStore) GetEquipment(ctx context.Context, id int64) (model.Equipment, error) {
	var e model.Equipment
	err := s.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Equipment{}, ErrNotFound
	}
	if err != nil {
		return model.Equipment{}, fmt.Errorf("failed to fetch equipment %d: %w", id, err)
	}
	return e, nil
}

// CreateEquipment inserts a new record. The store assigns the id.
func (s *gormStore) CreateEquipment(ctx context.Context, e *model.Equipment) error {
	e.ID = 0
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	return nil
}

// UpdateEquipment overwrites all mutable fields of the record with the
// given id in a single statement. The id itself is immutable.
func (s *gormStore) UpdateEquipment(ctx context.Context, e *model.Equipment) error {
	res := s.db.WithContext(ctx).
		Model(&model.Equipment{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"name":              e.Name,
			"type":              e.Type,
			"status":            e.Status,
			"last_cleaned_date": e.LastCleanedDate,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update equipment %d: %w", e.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEquipment removes the record with the given id. Deleting an id
// with no matching row returns ErrNotFound, never silent success.
func (s *gormStore) DeleteEquipment(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Equipment{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete equipment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCleaningOverdue returns records whose last cleaned date is strictly
// before the cutoff. Lexicographic comparison is valid because the dates
// are fixed-width ISO strings.
func (s *gormStore) ListCleaningOverdue(ctx context.Context, cutoff string) ([]model.Equipment, error) {
	var records []model.Equipment
	if err := s.db.WithContext(ctx).
		Where("last_cleaned_date < ?", cutoff).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list overdue equipment: %w", err)
	}
	return records, nil
}
