package models

import "time"

// Access levels for dashboard accounts
const (
	AccessLevelAdmin   = "ADMIN"
	AccessLevelStudent = "STUDENT"
)

// Account represents a dashboard user (administrator or student)
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Lastname     string    `gorm:"size:100;not null" json:"lastname"`
	Mail         string    `gorm:"uniqueIndex;size:255;not null" json:"mail"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	AccessLevel  string    `gorm:"type:enum('ADMIN','STUDENT');default:'STUDENT'" json:"access_level"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for Account model
func (Account) TableName() string {
	return "accounts"
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;index" json:"account_id"`
	TokenHash string    `gorm:"not null;size:255;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	Account   Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// TableName specifies the table name for RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
