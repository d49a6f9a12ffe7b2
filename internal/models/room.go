package models

import (
	"time"

	"classroom-env-monitoring/internal/comfort"
)

// RoomStatus holds the latest per-metric comfort classification for a room.
// Nil means the metric was never evaluated; each field is updated
// independently as readings arrive.
type RoomStatus struct {
	CO2         *comfort.Level `gorm:"column:status_co2;size:20" json:"co2"`
	Decibel     *comfort.Level `gorm:"column:status_decibel;size:20" json:"decibel"`
	Humidity    *comfort.Level `gorm:"column:status_humidity;size:20" json:"humidity"`
	Temperature *comfort.Level `gorm:"column:status_temperature;size:20" json:"temperature"`
}

// Room represents a monitored classroom
type Room struct {
	ID          uint                     `gorm:"primaryKey" json:"id"`
	Name        string                   `gorm:"size:100;not null" json:"name"`
	Floor       int                      `gorm:"not null" json:"floor"`
	Position    int                      `gorm:"not null" json:"position"`
	Description string                   `gorm:"type:text" json:"description"`
	Size        float64                  `gorm:"default:70" json:"size"`
	IsUsed      bool                     `gorm:"default:false" json:"is_used"`
	SensorID    *uint                    `gorm:"index" json:"sensor_id"`
	Acceptable  comfort.AcceptableValues `gorm:"embedded" json:"acceptable"`
	Status      RoomStatus               `gorm:"embedded" json:"status"`
	CreatedAt   time.Time                `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Room model
func (Room) TableName() string {
	return "rooms"
}

// GlobalStatus aggregates the four per-metric statuses into the room-level
// status ("worst metric wins"); nil when no metric was ever evaluated.
func (r *Room) GlobalStatus() *comfort.Level {
	return comfort.WorstOf(r.Status.CO2, r.Status.Decibel, r.Status.Humidity, r.Status.Temperature)
}
