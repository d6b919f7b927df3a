package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductionBatch identifies the manufacturing run an order line was cut in.
type ProductionBatch struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BatchCode string    `gorm:"column:batch_code;not null;uniqueIndex"`
	Status    string    `gorm:"column:status;not null;default:'planned'"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
