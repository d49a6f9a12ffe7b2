package service

import (
	"errors"
	"fmt"
	"time"

	"classroom-env-monitoring/internal/models"
	"classroom-env-monitoring/internal/repository"
	"classroom-env-monitoring/pkg/utils"
)

type AuthService struct {
	accountRepo *repository.AccountRepository
	auditRepo   *repository.AuditRepository
}

func NewAuthService(accountRepo *repository.AccountRepository, auditRepo *repository.AuditRepository) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Account      AccountResponse `json:"account"`
}

type AccountResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Lastname    string `json:"lastname"`
	Mail        string `json:"mail"`
	AccessLevel string `json:"access_level"`
}

// RegisterRequest carries the account creation form input
type RegisterRequest struct {
	Name        string `json:"name"`
	Lastname    string `json:"lastname"`
	Mail        string `json:"mail"`
	Password    string `json:"password"`
	AccessLevel string `json:"access_level"`
}

func accountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Name:        account.Name,
		Lastname:    account.Lastname,
		Mail:        account.Mail,
		AccessLevel: account.AccessLevel,
	}
}

// Login authenticates an account and returns tokens
func (s *AuthService) Login(mail, password string) (*LoginResponse, error) {
	account, err := s.accountRepo.FindAccountByMail(mail)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !utils.ComparePassword(account.PasswordHash, password) {
		return nil, errors.New("invalid credentials")
	}

	return s.issueTokens(account)
}

// Register creates a new account. A duplicate mail is surfaced as a
// user-facing conflict, never as an internal failure.
func (s *AuthService) Register(req *RegisterRequest) (*LoginResponse, error) {
	if req.Name == "" || req.Lastname == "" || req.Mail == "" || req.Password == "" {
		return nil, errors.New("name, lastname, mail and password are required")
	}

	accessLevel := req.AccessLevel
	if accessLevel == "" {
		accessLevel = models.AccessLevelStudent
	}
	if accessLevel != models.AccessLevelAdmin && accessLevel != models.AccessLevelStudent {
		return nil, errors.New("access_level must be ADMIN or STUDENT")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Name:         req.Name,
		Lastname:     req.Lastname,
		Mail:         req.Mail,
		PasswordHash: passwordHash,
		AccessLevel:  accessLevel,
	}

	if err := s.accountRepo.CreateAccount(account); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrMailAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	accountIDPtr := &account.ID
	_ = s.auditRepo.CreateAuditLog(accountIDPtr, "account_create", fmt.Sprintf("Account %s registered", account.Mail))

	return s.issueTokens(account)
}

func (s *AuthService) issueTokens(account *models.Account) (*LoginResponse, error) {
	accessToken, err := utils.GenerateAccessToken(account.ID, account.AccessLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		AccountID: account.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}

	if err := s.accountRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      accountResponse(account),
	}, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.accountRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", errors.New("invalid or revoked refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	accessToken, err := utils.GenerateAccessToken(token.Account.ID, token.Account.AccessLevel)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)

	if err := s.accountRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// GetStudents lists all student accounts for the admin dashboard
func (s *AuthService) GetStudents() ([]models.Account, error) {
	return s.accountRepo.GetAccountsByAccessLevel(models.AccessLevelStudent)
}

// DeleteStudent removes a student account (admin only)
func (s *AuthService) DeleteStudent(accountID uint, adminID uint) error {
	if err := s.accountRepo.DeleteAccount(accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	adminIDPtr := &adminID
	_ = s.auditRepo.CreateAuditLog(adminIDPtr, "account_delete", fmt.Sprintf("Deleted account ID %d", accountID))

	return nil
}
