package repository

import (
	"gorm.io/gorm"

	"github.com/dltpay/paygate/app/models"
)

// corsClientRepository implements the CorsClientRepository interface
type corsClientRepository struct {
	db *gorm.DB
}

// NewCorsClientRepository creates a new cors client repository instance
func NewCorsClientRepository(db *gorm.DB) CorsClientRepository {
	return &corsClientRepository{db: db}
}

// GetActiveDomains returns the domains of all active partner clients
func (r *corsClientRepository) GetActiveDomains() ([]string, error) {
	var domains []string
	err := r.db.Model(&models.CorsClient{}).
		Where("is_active = ?", true).
		Pluck("domain", &domains).Error
	return domains, err
}

// GetByDomain retrieves a partner client by its exact domain
func (r *corsClientRepository) GetByDomain(domain string) (*models.CorsClient, error) {
	var client models.CorsClient
	err := r.db.Where("domain = ?", domain).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}
