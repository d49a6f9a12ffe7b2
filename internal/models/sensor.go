package models

import "time"

// Sensor source tags reported by the supported device generations
const (
	SensorSourceESP32      = "ESP-32"
	SensorSourceESP32EnvV2 = "ESP32-ENV-V2"
)

// Sensor represents a physical environmental sensor. The hardware reference
// is the natural key used for auto-registration on first contact; the
// uniqueIndex backs the idempotency of that path under concurrent calls.
type Sensor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Reference string    `gorm:"uniqueIndex;size:100;not null" json:"reference"`
	RoomID    *uint     `gorm:"index" json:"room_id"`
	Source    string    `gorm:"type:enum('ESP-32','ESP32-ENV-V2');default:'ESP32-ENV-V2'" json:"source"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Sensor model
func (Sensor) TableName() string {
	return "sensors"
}

// IsReady reports whether the sensor currently has a room binding.
// Polling devices hold off sending metrics until this is true.
func (s *Sensor) IsReady() bool {
	return s.RoomID != nil
}
