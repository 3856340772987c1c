package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dltpay/paygate/app/models"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates a new order in the database
func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID retrieves an order by its ID
func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByWertOrderID retrieves an order by the payment provider's order id
func (r *orderRepository) GetByWertOrderID(wertOrderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("wert_order_id = ?", wertOrderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Upsert inserts the order, or applies only the given column assignments
// when a row with the same wert_order_id already exists. The conflict
// clause keeps duplicate webhook deliveries from creating duplicate rows.
func (r *orderRepository) Upsert(order *models.Order, updates map[string]interface{}) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wert_order_id"}},
		DoUpdates: clause.Assignments(updates),
	}).Create(order).Error
}

// ListWithUser retrieves a paginated list of orders with their owning user, newest first
func (r *orderRepository) ListWithUser(offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("User").Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, err
}

// Count returns the total number of orders
func (r *orderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Count(&count).Error
	return count, err
}

// SumCompletedCurrencyAmount sums the fiat volume of completed orders for a
// settlement contract within [from, to). Used for the daily volume cap.
func (r *orderRepository) SumCompletedCurrencyAmount(scAddress string, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&models.Order{}).
		Where("sc_address = ? AND status = ? AND completed_at >= ? AND completed_at < ?",
			scAddress, models.ORDER_COMPLETE, from, to).
		Select("COALESCE(SUM(currency_amount), 0)").
		Row().Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
