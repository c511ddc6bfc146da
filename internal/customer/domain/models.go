package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Customer is a buyer the shop extends credit to.
type Customer struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"type:text;not null;index" json:"name"`
	Phone     string            `gorm:"type:text" json:"phone,omitempty"`
	Address   string            `gorm:"type:text" json:"address,omitempty"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
