package models

import "time"

// AuditLog represents the audit_logs table
// Used for tracking admin actions (room/threshold/sensor changes)
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID *uint     `gorm:"index" json:"account_id"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Account   *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
