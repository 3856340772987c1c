package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Admin is a backoffice account for the admin API.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;type:varchar(100)" json:"username" validate:"required,min=3,max=100"`
	Password  string    `gorm:"type:text" json:"-" validate:"required,min=6"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Admin) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

func CreateAdmin(username string, password string) (*Admin, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	a := &Admin{
		Username: username,
		Password: pw,
	}

	err = a.Validate()
	if err != nil {
		return nil, err
	}

	return a, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the admin's stored password
func (a *Admin) CheckPassword(password string) bool {
	return CheckPasswordHash(password, a.Password)
}

// SetPassword hashes and sets a new password for the admin
func (a *Admin) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	a.Password = hashedPassword
	return nil
}
