package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	VERIFICATION_UNKNOWN  = "unknown"
	VERIFICATION_PENDING  = "pending"
	VERIFICATION_APPROVED = "approved"
	VERIFICATION_REJECTED = "rejected"
)

// User is a gateway customer, correlated across payment sessions.
//
// Email is the unique upsert key at payment-initiation time. Rows created
// from a webhook (external id only) leave it NULL; MySQL permits any number
// of NULLs under a unique index, so the constraint only binds rows that
// actually carry an address.
type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              *string   `gorm:"type:varchar(200);uniqueIndex" json:"email" validate:"omitempty,email,max=200"`
	FullName           string    `gorm:"type:varchar(150)" json:"full_name" validate:"max=150"`
	GsmNumber          string    `gorm:"type:varchar(30);index" json:"gsm_number" validate:"max=30"`
	WalletAddress      string    `gorm:"type:varchar(64)" json:"wallet_address" validate:"max=64"`
	IsBlacklisted      bool      `gorm:"default:false" json:"is_blacklisted"`
	WertUserID         string    `gorm:"type:varchar(100);index" json:"wert_user_id"`
	LastClickID        string    `gorm:"type:varchar(64);index" json:"last_click_id"`
	VerificationStatus string    `gorm:"type:varchar(50)" json:"verification_status"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}
