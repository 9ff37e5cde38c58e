package models

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents an application account that can authenticate with
// the backend.
type User struct {
	DefaultModel
	Name         string `gorm:"uniqueIndex:user_name;not null"`
	PasswordHash string `json:"-"`
	Role         string
	Archived     bool
}

var (
	ErrUserNameTaken     = errors.New("this user name is already in use")
	ErrUserPasswordEmpty = errors.New("the password must not be empty")
	ErrUserLoginFailed   = errors.New("user name or password is incorrect")
)

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Role = strings.TrimSpace(u.Role)

	return nil
}

// SetPassword hashes the cleartext password onto the user.
func (u *User) SetPassword(cleartext string) error {
	if cleartext == "" {
		return ErrUserPasswordEmpty
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cleartext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a cleartext password against the stored
// hash. It returns ErrUserLoginFailed on mismatch so that callers do
// not leak whether the user exists.
func (u User) CheckPassword(cleartext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(cleartext))
	if err != nil {
		return ErrUserLoginFailed
	}

	return nil
}

// Permissions returns all permissions granted to the user.
func (u User) Permissions(db *gorm.DB) ([]Permission, error) {
	var permissions []Permission

	err := db.Where(Permission{UserID: u.ID}).Find(&permissions).Error
	if err != nil {
		return nil, err
	}

	return permissions, nil
}
