package service

import (
	"fmt"

	"classroom-env-monitoring/internal/models"
)

type metricReader interface {
	GetMetricsBySensorRef(sensorRef string, limit int) ([]models.EnvironmentMetric, error)
	GetMetricsForRoom(roomID uint, sensorRefs []string, limit int) ([]models.EnvironmentMetric, error)
	GetRecentMetrics(limit int) ([]models.EnvironmentMetric, error)
}

type sensorRefLister interface {
	GetReferencesForRoom(roomID uint) ([]string, error)
}

// MetricService serves the read side of the time series: newest-first
// queries for charting, capped at a caller-supplied limit.
type MetricService struct {
	metricRepo   metricReader
	sensorRepo   sensorRefLister
	defaultLimit int
}

func NewMetricService(metricRepo metricReader, sensorRepo sensorRefLister, defaultLimit int) *MetricService {
	return &MetricService{
		metricRepo:   metricRepo,
		sensorRepo:   sensorRepo,
		defaultLimit: defaultLimit,
	}
}

func (s *MetricService) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	return limit
}

// GetMetricsBySensorRef returns the latest readings for one sensor
func (s *MetricService) GetMetricsBySensorRef(sensorRef string, limit int) ([]models.EnvironmentMetric, error) {
	return s.metricRepo.GetMetricsBySensorRef(sensorRef, s.normalizeLimit(limit))
}

// GetMetricsForRoom returns the latest readings attributed to a room,
// matched both through the direct room reference of id-keyed readings and
// through the references of the sensors currently bound to the room.
func (s *MetricService) GetMetricsForRoom(roomID uint, limit int) ([]models.EnvironmentMetric, error) {
	refs, err := s.sensorRepo.GetReferencesForRoom(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve room sensors: %w", err)
	}
	return s.metricRepo.GetMetricsForRoom(roomID, refs, s.normalizeLimit(limit))
}

// GetRecentMetrics returns the latest readings across the whole fleet
func (s *MetricService) GetRecentMetrics(limit int) ([]models.EnvironmentMetric, error) {
	return s.metricRepo.GetRecentMetrics(s.normalizeLimit(limit))
}
