package repository

import (
	"errors"

	"classroom-env-monitoring/internal/models"

	"gorm.io/gorm"
)

type SensorRepository struct {
	db *gorm.DB
}

func NewSensorRepo(db *gorm.DB) *SensorRepository {
	return &SensorRepository{db: db}
}

// GetAllSensors retrieves all sensors ordered by reference
func (r *SensorRepository) GetAllSensors() ([]models.Sensor, error) {
	var sensors []models.Sensor
	err := r.db.Order("reference ASC").Find(&sensors).Error
	return sensors, err
}

// GetSensorByID retrieves a sensor by ID
func (r *SensorRepository) GetSensorByID(id uint) (*models.Sensor, error) {
	var sensor models.Sensor
	err := r.db.Where("id = ?", id).First(&sensor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSensorNotFound
		}
		return nil, err
	}
	return &sensor, nil
}

// GetSensorByReference retrieves a sensor by its hardware reference
func (r *SensorRepository) GetSensorByReference(reference string) (*models.Sensor, error) {
	var sensor models.Sensor
	err := r.db.Where("reference = ?", reference).First(&sensor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSensorNotFound
		}
		return nil, err
	}
	return &sensor, nil
}

// CreateSensor creates a new sensor. A duplicate-key failure on the
// reference uniqueIndex is returned as-is so the caller can resolve the
// auto-registration race with IsDuplicateKey.
func (r *SensorRepository) CreateSensor(sensor *models.Sensor) error {
	return r.db.Create(sensor).Error
}

// UpdateSensorFields applies a partial update and returns the updated sensor
func (r *SensorRepository) UpdateSensorFields(id uint, updates map[string]interface{}) (*models.Sensor, error) {
	result := r.db.Model(&models.Sensor{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	return r.GetSensorByID(id)
}

// UnbindAllForRoom clears the room binding on every sensor attached to a
// room about to be deleted. Must be committed before the room row goes so
// no sensor is left with a dangling binding.
func (r *SensorRepository) UnbindAllForRoom(roomID uint) error {
	return r.db.Model(&models.Sensor{}).
		Where("room_id = ?", roomID).
		Update("room_id", nil).Error
}

// CountSensors returns the total number of sensors
func (r *SensorRepository) CountSensors() (int64, error) {
	var count int64
	err := r.db.Model(&models.Sensor{}).Count(&count).Error
	return count, err
}

// GetReferencesForRoom returns the hardware references of all sensors
// currently bound to a room. Used to join readings back to a room since
// older readings are keyed by reference only.
func (r *SensorRepository) GetReferencesForRoom(roomID uint) ([]string, error) {
	var refs []string
	err := r.db.Model(&models.Sensor{}).
		Where("room_id = ?", roomID).
		Pluck("reference", &refs).Error
	return refs, err
}
