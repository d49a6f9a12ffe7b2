package repository

import (
	"errors"

	"classroom-env-monitoring/internal/models"

	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindAccountByMail retrieves an account by its mail address
func (r *AccountRepository) FindAccountByMail(mail string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("mail = ?", mail).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetAccountsByAccessLevel retrieves all accounts with a given access level
func (r *AccountRepository) GetAccountsByAccessLevel(accessLevel string) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Where("access_level = ?", accessLevel).
		Order("lastname ASC, name ASC").
		Find(&accounts).Error
	return accounts, err
}

// CreateAccount creates a new account. A duplicate-key failure on the mail
// uniqueIndex is returned as-is for the caller to surface as a conflict.
func (r *AccountRepository) CreateAccount(account *models.Account) error {
	return r.db.Create(account).Error
}

// DeleteAccount removes an account permanently
func (r *AccountRepository) DeleteAccount(id uint) error {
	return r.db.Delete(&models.Account{}, id).Error
}

// CreateRefreshToken stores a hashed refresh token
func (r *AccountRepository) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindRefreshTokenByHash retrieves a non-revoked refresh token by its hash
func (r *AccountRepository) FindRefreshTokenByHash(tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.Where("token_hash = ? AND revoked = ?", tokenHash, false).
		Preload("Account").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, err
	}
	return &token, nil
}

// RevokeRefreshTokenByHash marks a refresh token as revoked
func (r *AccountRepository) RevokeRefreshTokenByHash(tokenHash string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}
