package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"classroom-env-monitoring/internal/comfort"
	"classroom-env-monitoring/internal/config"
	"classroom-env-monitoring/internal/models"
	"classroom-env-monitoring/internal/repository"
)

type metricStore interface {
	CreateMetric(metric *models.EnvironmentMetric) error
}

type sensorDirectory interface {
	GetSensorByID(id uint) (*models.Sensor, error)
	GetSensorByReference(reference string) (*models.Sensor, error)
}

type roomStatusStore interface {
	GetRoomByID(id uint) (*models.Room, error)
	MarkUsed(id uint) error
	UpdateStatusFields(id uint, updates map[string]interface{}) error
}

// HumidityPayload mirrors the humidity block sent by devices
type HumidityPayload struct {
	Number string `json:"humidityNumber"`
	Unit   string `json:"unit"`
}

// TemperaturePayload mirrors the temperature block sent by devices
type TemperaturePayload struct {
	Reading string `json:"temperatureReading"`
	Unit    string `json:"unit"`
}

// SoundPayload mirrors the sound block sent by devices
type SoundPayload struct {
	Decibel *float64 `json:"decibel"`
	Unit    string   `json:"unit"`
}

// ReadingPayload is the wire shape of one reading. Two variants are
// supported: the original reference-keyed form (sensorRef) and the later
// id-keyed form (sensorId/roomId). Both normalize to one canonical
// EnvironmentMetric before room resolution runs.
type ReadingPayload struct {
	SensorRef   string              `json:"sensorRef"`
	SensorID    *uint               `json:"sensorId"`
	RoomID      *uint               `json:"roomId"`
	Humidity    *HumidityPayload    `json:"humidity"`
	Temperature *TemperaturePayload `json:"temperature"`
	Sound       *SoundPayload       `json:"sound"`
	CO2         string              `json:"co2"`
	Luminos     *float64            `json:"luminos"`
}

type IngestService struct {
	metricRepo          metricStore
	sensorRepo          sensorDirectory
	roomRepo            roomStatusStore
	brightnessThreshold float64
	now                 func() time.Time
}

func NewIngestService(
	metricRepo metricStore,
	sensorRepo sensorDirectory,
	roomRepo roomStatusStore,
	cfg config.IngestionConfig,
) *IngestService {
	return &IngestService{
		metricRepo:          metricRepo,
		sensorRepo:          sensorRepo,
		roomRepo:            roomRepo,
		brightnessThreshold: cfg.BrightnessThreshold,
		now:                 time.Now,
	}
}

// AddReading runs the ingestion pipeline for one incoming reading:
//
//  1. validate the payload; nothing is persisted on a validation failure
//  2. persist the raw reading unconditionally (append-only)
//  3. resolve the reading's room through the sensor binding
//  4. bright ambient light marks the room occupied (never un-marks)
//  5. classify each metric present against the room's non-zero thresholds
//  6. apply the collected statuses in one targeted partial update
//
// The raw write in step 2 is the durability guarantee: failures in steps
// 3-6 are logged or reported but never void it. An unresolvable room,
// whether a sensor that was never bound or a lookup failure, returns the
// persisted metric together with ErrNoRoomAttached so the caller knows
// the stored statuses were not touched.
func (s *IngestService) AddReading(payload *ReadingPayload) (*models.EnvironmentMetric, error) {
	if payload == nil {
		return nil, ErrMissingPayload
	}
	if payload.SensorRef == "" && payload.SensorID == nil && payload.RoomID == nil {
		return nil, ErrMissingSensorRef
	}

	metric := s.normalize(payload)

	if err := s.metricRepo.CreateMetric(metric); err != nil {
		return nil, fmt.Errorf("failed to persist reading: %w", err)
	}

	room, err := s.resolveRoom(payload, metric)
	if err != nil {
		// Infrastructure failure after the raw write: the reading is
		// saved but no room was resolved, so no statuses were applied.
		// Reported like an unbound sensor so the caller can tell this
		// apart from a fully-applied ingestion.
		log.Printf("Error resolving room for sensor %q: %v", metric.SensorRef, err)
		return metric, ErrNoRoomAttached
	}
	if room == nil {
		return metric, ErrNoRoomAttached
	}

	if metric.Luminos != nil && *metric.Luminos > s.brightnessThreshold {
		if err := s.roomRepo.MarkUsed(room.ID); err != nil {
			log.Printf("Error marking room %d as used: %v", room.ID, err)
		}
	}

	updates := classifyMetrics(metric, room.Acceptable)
	if len(updates) > 0 {
		if err := s.roomRepo.UpdateStatusFields(room.ID, updates); err != nil {
			log.Printf("Error updating status for room %d: %v", room.ID, err)
		}
	}

	return metric, nil
}

// normalize converts either payload variant into the canonical stored
// reading, filling unit defaults and the server-side timestamp. Client
// timestamps are never trusted.
func (s *IngestService) normalize(payload *ReadingPayload) *models.EnvironmentMetric {
	metric := &models.EnvironmentMetric{
		SensorRef: payload.SensorRef,
		RoomID:    payload.RoomID,
		CO2:       payload.CO2,
		Luminos:   payload.Luminos,
		RefreshAt: s.now().UTC(),
	}

	metric.Humidity.Unit = "%"
	if payload.Humidity != nil {
		metric.Humidity.Number = payload.Humidity.Number
		if payload.Humidity.Unit != "" {
			metric.Humidity.Unit = payload.Humidity.Unit
		}
	}

	metric.Temperature.Unit = "C"
	if payload.Temperature != nil {
		metric.Temperature.Reading = payload.Temperature.Reading
		if payload.Temperature.Unit != "" {
			metric.Temperature.Unit = payload.Temperature.Unit
		}
	}

	metric.Sound.Unit = "dB"
	if payload.Sound != nil {
		metric.Sound.Decibel = payload.Sound.Decibel
		if payload.Sound.Unit != "" {
			metric.Sound.Unit = payload.Sound.Unit
		}
	}

	// Id-keyed variant: recover the reference so the stored reading stays
	// queryable alongside reference-keyed ones.
	if metric.SensorRef == "" && payload.SensorID != nil {
		if sensor, err := s.sensorRepo.GetSensorByID(*payload.SensorID); err == nil {
			metric.SensorRef = sensor.Reference
		}
	}

	return metric
}

// resolveRoom joins the reading to its room. Returns (nil, nil) when no
// room is attached: an unknown sensor, an unbound sensor, or a room
// deleted between binding and ingestion all land there.
func (s *IngestService) resolveRoom(payload *ReadingPayload, metric *models.EnvironmentMetric) (*models.Room, error) {
	roomID := payload.RoomID

	if roomID == nil {
		if metric.SensorRef == "" {
			return nil, nil
		}
		sensor, err := s.sensorRepo.GetSensorByReference(metric.SensorRef)
		if err != nil {
			if errors.Is(err, repository.ErrSensorNotFound) {
				return nil, nil
			}
			return nil, err
		}
		if sensor.RoomID == nil {
			return nil, nil
		}
		roomID = sensor.RoomID
	}

	room, err := s.roomRepo.GetRoomByID(*roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return room, nil
}

// classifyMetrics runs the classifier for every metric present in both the
// reading and the room's non-zero acceptable thresholds. Absent or
// unparseable readings and unset thresholds contribute nothing, so the
// previous stored status persists instead of being reset.
func classifyMetrics(metric *models.EnvironmentMetric, acceptable comfort.AcceptableValues) map[string]interface{} {
	updates := make(map[string]interface{})

	if value, ok := parseReading(metric.CO2); ok && acceptable.CO2 > 0 {
		updates["status_co2"] = comfort.Classify(value, acceptable.CO2)
	}
	if value, ok := parseReading(metric.Humidity.Number); ok && acceptable.Humidity > 0 {
		updates["status_humidity"] = comfort.Classify(value, acceptable.Humidity)
	}
	if value, ok := parseReading(metric.Temperature.Reading); ok && acceptable.Temperature > 0 {
		updates["status_temperature"] = comfort.Classify(value, acceptable.Temperature)
	}
	if metric.Sound.Decibel != nil && !math.IsNaN(*metric.Sound.Decibel) && acceptable.Decibel > 0 {
		updates["status_decibel"] = comfort.Classify(*metric.Sound.Decibel, acceptable.Decibel)
	}

	return updates
}

// parseReading parses a string-encoded metric value. Unparseable input
// means "metric absent", never zero.
func parseReading(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) {
		return 0, false
	}
	return value, true
}
