package store

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/grama/internal/models"
)

// GormAdapter persists snapshots as rows in the snapshots table, one per
// key, upserted on save.
type GormAdapter struct {
	db *gorm.DB
}

// NewGormAdapter constructs a GormAdapter.
func NewGormAdapter(db *gorm.DB) *GormAdapter {
	return &GormAdapter{db: db}
}

// Save marshals value and overwrites the row for key.
func (a *GormAdapter) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	snapshot := models.Snapshot{Key: key, Data: data}
	return a.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snapshot).Error
}

// Load unmarshals the stored snapshot into dest. Absent keys and unreadable
// payloads report found=false so callers fall back to defaults.
func (a *GormAdapter) Load(key string, dest any) (bool, error) {
	var snapshot models.Snapshot
	if err := a.db.First(&snapshot, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(snapshot.Data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the snapshot for key. Missing keys are not an error.
func (a *GormAdapter) Delete(key string) error {
	return a.db.Where("key = ?", key).Delete(&models.Snapshot{}).Error
}
