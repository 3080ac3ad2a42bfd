package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/speedparts/storefront/internal/domain/cart"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSlotModel is the storage row for the serialized cart. The cart lives
// in a single named slot, written after every mutation and read once at
// startup.
type CartSlotModel struct {
	Key       string    `gorm:"primaryKey;type:varchar(100)"`
	Items     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartSlotModel) TableName() string {
	return "cart_slots"
}

// GormCartRepository implements durable cart storage using GORM
type GormCartRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB, log *zap.Logger) *GormCartRepository {
	return &GormCartRepository{db: db, log: log}
}

// Save serializes the cart entries into the slot, replacing any prior
// content. The write completes before the triggering operation returns, so
// observed state is always consistent with storage.
func (r *GormCartRepository) Save(ctx context.Context, key string, entries []cart.Entry) error {
	if entries == nil {
		entries = []cart.Entry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	slot := CartSlotModel{
		Key:       key,
		Items:     string(payload),
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
		}).
		Create(&slot).Error
}

// Load reads the cart entries from the slot. An absent or corrupt slot
// seeds an empty cart; storage problems never surface as startup errors.
func (r *GormCartRepository) Load(ctx context.Context, key string) []cart.Entry {
	var slot CartSlotModel
	err := r.db.WithContext(ctx).First(&slot, "key = ?", key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("Failed to read cart slot, seeding empty cart",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil
	}

	var entries []cart.Entry
	if err := json.Unmarshal([]byte(slot.Items), &entries); err != nil {
		r.log.Warn("Corrupt cart slot, seeding empty cart",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	return entries
}

// Delete removes the slot entirely
func (r *GormCartRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&CartSlotModel{}, "key = ?", key).Error
}
