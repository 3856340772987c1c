package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// CorsClient is a partner storefront allowed to call the gateway from the
// browser. Each client may pin its own settlement contract address, used
// for the per-partner daily volume cap.
type CorsClient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Domain    string    `gorm:"uniqueIndex;type:varchar(255)" json:"domain" validate:"required,url,max=255"`
	SCAddress string    `gorm:"type:varchar(64)" json:"sc_address" validate:"max=64"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *CorsClient) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
