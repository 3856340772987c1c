package models

import "time"

// Order lifecycle statuses. The status column mirrors the provider's event
// type verbatim, including types not listed here.
const (
	ORDER_PAYMENT_STARTED  = "payment_started"
	ORDER_TRANSFER_STARTED = "transfer_started"
	ORDER_COMPLETE         = "order_complete"
	ORDER_FAILED           = "order_failed"
	ORDER_CANCELED         = "order_canceled"
)

// Order is one fiat-to-crypto purchase attempt. Exactly one row exists per
// provider order id; repeated webhook deliveries update the same row.
// Orders are retained indefinitely as audit records.
type Order struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	WertOrderID       string     `gorm:"type:varchar(100);uniqueIndex" json:"wert_order_id"`
	ClickID           string     `gorm:"type:varchar(64);index" json:"click_id"`
	Status            string     `gorm:"type:varchar(50);index" json:"status"`
	Commodity         string     `gorm:"type:varchar(20)" json:"commodity"`
	CommodityAmount   float64    `json:"commodity_amount"`
	Currency          string     `gorm:"type:varchar(20)" json:"currency"`
	CurrencyAmount    float64    `json:"currency_amount"`
	TransactionID     string     `gorm:"type:varchar(100)" json:"transaction_id"`
	SCAddress         string     `gorm:"type:varchar(64);index" json:"sc_address"`
	SCInputData       string     `gorm:"type:text" json:"sc_input_data"`
	PaymentStartedAt  *time.Time `gorm:"type:timestamp;default:null" json:"payment_started_at"`
	TransferStartedAt *time.Time `gorm:"type:timestamp;default:null" json:"transfer_started_at"`
	CompletedAt       *time.Time `gorm:"type:timestamp;default:null" json:"completed_at"`
	FailedAt          *time.Time `gorm:"type:timestamp;default:null" json:"failed_at"`
	CanceledAt        *time.Time `gorm:"type:timestamp;default:null" json:"canceled_at"`
	UserID            uint       `gorm:"index" json:"user_id"`
	User              User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
