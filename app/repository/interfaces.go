package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/dltpay/paygate/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByGsmNumber(gsmNumber string) (*models.User, error)
	GetByLastClickID(clickID string) (*models.User, error)
	GetByWertUserID(wertUserID string) (*models.User, error)
	Update(user *models.User) error
	UpsertByEmail(user *models.User) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByWertOrderID(wertOrderID string) (*models.Order, error)
	// Upsert inserts the order or, when a row with the same wert_order_id
	// already exists, applies only the given column assignments to it.
	Upsert(order *models.Order, updates map[string]interface{}) error
	ListWithUser(offset, limit int) ([]models.Order, error)
	Count() (int64, error)
	SumCompletedCurrencyAmount(scAddress string, from, to time.Time) (float64, error)
}

// WebhookEventRepository defines the interface for the raw-event audit log
type WebhookEventRepository interface {
	Create(event *models.WebhookEvent) error
	List(offset, limit int) ([]models.WebhookEvent, error)
	Count() (int64, error)
}

// AdminRepository defines the interface for backoffice accounts
type AdminRepository interface {
	Create(admin *models.Admin) error
	GetByUsername(username string) (*models.Admin, error)
}

// CorsClientRepository defines the interface for partner origin records
type CorsClientRepository interface {
	GetActiveDomains() ([]string, error)
	GetByDomain(domain string) (*models.CorsClient, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Order        OrderRepository
	WebhookEvent WebhookEventRepository
	Admin        AdminRepository
	CorsClient   CorsClientRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Order:        NewOrderRepository(db),
		WebhookEvent: NewWebhookEventRepository(db),
		Admin:        NewAdminRepository(db),
		CorsClient:   NewCorsClientRepository(db),
	}
}
