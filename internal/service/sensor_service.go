package service

import (
	"errors"
	"fmt"
	"log"

	"classroom-env-monitoring/internal/models"
	"classroom-env-monitoring/internal/repository"
)

// sensorStore is the persistence surface the registry needs; satisfied by
// repository.SensorRepository.
type sensorStore interface {
	GetAllSensors() ([]models.Sensor, error)
	GetSensorByID(id uint) (*models.Sensor, error)
	GetSensorByReference(reference string) (*models.Sensor, error)
	CreateSensor(sensor *models.Sensor) error
	UpdateSensorFields(id uint, updates map[string]interface{}) (*models.Sensor, error)
}

type SensorService struct {
	sensorRepo sensorStore
}

func NewSensorService(sensorRepo sensorStore) *SensorService {
	return &SensorService{
		sensorRepo: sensorRepo,
	}
}

// EnsureRegistered looks up a sensor by hardware reference and creates it
// unbound on first contact. Returns whether the sensor currently has a room
// binding; devices poll this until it flips true.
//
// Idempotent under concurrency: two first-contact calls may both observe
// "not found" and both attempt the create. The uniqueIndex on reference
// makes the loser fail with a duplicate key, which is resolved by
// re-fetching, never surfaced as an error.
func (s *SensorService) EnsureRegistered(reference string) (bool, error) {
	if reference == "" {
		return false, ErrMissingSensorRef
	}

	sensor, err := s.sensorRepo.GetSensorByReference(reference)
	if err == nil {
		return sensor.IsReady(), nil
	}
	if !errors.Is(err, repository.ErrSensorNotFound) {
		return false, fmt.Errorf("failed to look up sensor: %w", err)
	}

	newSensor := &models.Sensor{
		Name:      reference,
		Reference: reference,
		RoomID:    nil,
		Source:    models.SensorSourceESP32EnvV2,
	}

	if createErr := s.sensorRepo.CreateSensor(newSensor); createErr != nil {
		if !repository.IsDuplicateKey(createErr) {
			return false, fmt.Errorf("failed to register sensor: %w", createErr)
		}
		// Lost the first-contact race; the other request created it.
		log.Printf("Sensor %q already registered concurrently, re-fetching", reference)
		sensor, err = s.sensorRepo.GetSensorByReference(reference)
		if err != nil {
			return false, fmt.Errorf("failed to re-fetch sensor after duplicate create: %w", err)
		}
		return sensor.IsReady(), nil
	}

	return newSensor.IsReady(), nil
}

// BindSensor sets or clears the room binding of a sensor by ID.
// A nil roomID unbinds. Optionally renames the sensor in the same update.
func (s *SensorService) BindSensor(sensorID uint, roomID *uint, name string) (*models.Sensor, error) {
	updates := map[string]interface{}{
		"room_id": roomID,
	}
	if name != "" {
		updates["name"] = name
	}

	sensor, err := s.sensorRepo.UpdateSensorFields(sensorID, updates)
	if err != nil {
		if errors.Is(err, repository.ErrSensorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update sensor: %w", err)
	}
	return sensor, nil
}

// BindSensorByReference rebinds a sensor addressed by its hardware
// reference, the variant physical devices and the simulator use.
func (s *SensorService) BindSensorByReference(reference string, roomID *uint) (*models.Sensor, error) {
	if reference == "" {
		return nil, ErrMissingSensorRef
	}

	sensor, err := s.sensorRepo.GetSensorByReference(reference)
	if err != nil {
		return nil, err
	}

	return s.BindSensor(sensor.ID, roomID, "")
}

// GetAllSensors retrieves all sensors for the dashboard list
func (s *SensorService) GetAllSensors() ([]models.Sensor, error) {
	return s.sensorRepo.GetAllSensors()
}
