package repository

import (
	"gorm.io/gorm"

	"github.com/dltpay/paygate/app/models"
)

// adminRepository implements the AdminRepository interface
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository instance
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// Create creates a new admin account
func (r *adminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// GetByUsername retrieves an admin by username
func (r *adminRepository) GetByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.Where("username = ?", username).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
