package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dltpay/paygate/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByGsmNumber retrieves the first user with the given phone number
func (r *userRepository) GetByGsmNumber(gsmNumber string) (*models.User, error) {
	var user models.User
	err := r.db.Where("gsm_number = ?", gsmNumber).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByLastClickID retrieves the user whose latest payment session minted the click id
func (r *userRepository) GetByLastClickID(clickID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("last_click_id = ?", clickID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByWertUserID retrieves a user by the payment provider's user id
func (r *userRepository) GetByWertUserID(wertUserID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("wert_user_id = ?", wertUserID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpsertByEmail creates the user or, when a row with the same email exists,
// merges name, phone, wallet address and click id into it. The conflict
// clause rides on the unique email index, so two concurrent initiations for
// the same address cannot create two rows.
func (r *userRepository) UpsertByEmail(user *models.User) error {
	if user.Email == nil {
		return errors.New("email is required for user upsert")
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"full_name":      user.FullName,
			"gsm_number":     user.GsmNumber,
			"wallet_address": user.WalletAddress,
			"last_click_id":  user.LastClickID,
		}),
	}).Create(user).Error
	if err != nil {
		return err
	}

	// reload so the caller sees the surviving row, id included
	var saved models.User
	if err := r.db.Where("email = ?", user.Email).First(&saved).Error; err != nil {
		return err
	}
	*user = saved
	return nil
}

// List retrieves a paginated list of users, newest first
func (r *userRepository) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// Count returns the total number of users
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
