package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"stockflow-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository stores the theme, the one piece of state that
// outlives the process.
type PreferenceRepository interface {
	GetTheme(ctx context.Context) (model.Theme, error)
	SaveTheme(ctx context.Context, theme model.Theme, updatedBy string) error
}

type preferenceRepo struct {
	db *gorm.DB
}

func NewPreferenceRepo(db *gorm.DB) PreferenceRepository {
	return &preferenceRepo{db}
}

// GetTheme falls back to the default theme when nothing has been saved or the
// stored value cannot be decoded.
func (r *preferenceRepo) GetTheme(ctx context.Context) (model.Theme, error) {
	var record model.PreferenceRecord
	err := r.db.WithContext(ctx).Where("key = ?", model.PreferenceTheme).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DefaultTheme, nil
	}
	if err != nil {
		return model.DefaultTheme, err
	}

	var theme model.Theme
	if err := json.Unmarshal([]byte(record.Value), &theme); err != nil {
		return model.DefaultTheme, nil
	}
	return theme, nil
}

func (r *preferenceRepo) SaveTheme(ctx context.Context, theme model.Theme, updatedBy string) error {
	value, err := json.Marshal(theme)
	if err != nil {
		return err
	}
	record := model.PreferenceRecord{
		Key:       model.PreferenceTheme,
		Value:     string(value),
		UpdatedBy: updatedBy,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(&record).Error
}

// memoryPreferenceRepo is used when no database is configured.
type memoryPreferenceRepo struct {
	mu    sync.Mutex
	theme model.Theme
}

func NewMemoryPreferenceRepo() PreferenceRepository {
	return &memoryPreferenceRepo{theme: model.DefaultTheme}
}

func (r *memoryPreferenceRepo) GetTheme(ctx context.Context) (model.Theme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.theme, nil
}

func (r *memoryPreferenceRepo) SaveTheme(ctx context.Context, theme model.Theme, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = theme
	return nil
}
