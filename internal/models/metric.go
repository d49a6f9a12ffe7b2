package models

import "time"

// HumidityReading is a string-encoded relative humidity value plus unit,
// kept as sent by the device.
type HumidityReading struct {
	Number string `gorm:"column:humidity_number;size:20" json:"humidityNumber"`
	Unit   string `gorm:"column:humidity_unit;type:enum('%','g/m3','g/kg','ppmv');default:'%'" json:"unit"`
}

// TemperatureReading is a string-encoded temperature value plus unit.
type TemperatureReading struct {
	Reading string `gorm:"column:temperature_reading;size:20" json:"temperatureReading"`
	Unit    string `gorm:"column:temperature_unit;type:enum('C','F','K','R');default:'C'" json:"unit"`
}

// SoundReading is a numeric decibel level plus unit.
type SoundReading struct {
	Decibel *float64 `gorm:"column:sound_decibel" json:"decibel"`
	Unit    string   `gorm:"column:sound_unit;type:enum('dB','dBA','dBC','dBSPL');default:'dB'" json:"unit"`
}

// EnvironmentMetric is one raw sensor reading. Rows are append-only: the
// ingestion path creates each exactly once and no update or delete path
// exists. Readings carry the originating sensor reference; RoomID is only
// set by the newer id-keyed payload variant.
type EnvironmentMetric struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	SensorRef   string             `gorm:"index;size:100" json:"sensorRef"`
	RoomID      *uint              `gorm:"index" json:"roomId"`
	Humidity    HumidityReading    `gorm:"embedded" json:"humidity"`
	Temperature TemperatureReading `gorm:"embedded" json:"temperature"`
	Sound       SoundReading       `gorm:"embedded" json:"sound"`
	CO2         string             `gorm:"size:20" json:"co2"`
	Luminos     *float64           `json:"luminos"`
	RefreshAt   time.Time          `gorm:"index;default:CURRENT_TIMESTAMP" json:"refreshAt"`
}

// TableName specifies the table name for EnvironmentMetric model
func (EnvironmentMetric) TableName() string {
	return "environment_metrics"
}
