package repository

import (
	"classroom-env-monitoring/internal/models"

	"gorm.io/gorm"
)

type MetricRepository struct {
	db *gorm.DB
}

func NewMetricRepo(db *gorm.DB) *MetricRepository {
	return &MetricRepository{db: db}
}

// CreateMetric appends one raw reading. This is the only write path for
// readings; they are never updated or deleted afterwards.
func (r *MetricRepository) CreateMetric(metric *models.EnvironmentMetric) error {
	return r.db.Create(metric).Error
}

// GetMetricsBySensorRef retrieves the latest readings for one sensor,
// newest first, capped at limit
func (r *MetricRepository) GetMetricsBySensorRef(sensorRef string, limit int) ([]models.EnvironmentMetric, error) {
	var metrics []models.EnvironmentMetric
	err := r.db.Where("sensor_ref = ?", sensorRef).
		Order("refresh_at DESC").
		Limit(limit).
		Find(&metrics).Error
	return metrics, err
}

// GetMetricsForRoom retrieves the latest readings attributed to a room,
// either directly (id-keyed payloads) or through the references of the
// sensors currently bound to it.
func (r *MetricRepository) GetMetricsForRoom(roomID uint, sensorRefs []string, limit int) ([]models.EnvironmentMetric, error) {
	var metrics []models.EnvironmentMetric
	query := r.db.Where("room_id = ?", roomID)
	if len(sensorRefs) > 0 {
		query = r.db.Where("room_id = ? OR sensor_ref IN ?", roomID, sensorRefs)
	}
	err := query.Order("refresh_at DESC").
		Limit(limit).
		Find(&metrics).Error
	return metrics, err
}

// GetRecentMetrics retrieves the latest readings across all sensors
func (r *MetricRepository) GetRecentMetrics(limit int) ([]models.EnvironmentMetric, error) {
	var metrics []models.EnvironmentMetric
	err := r.db.Order("refresh_at DESC").
		Limit(limit).
		Find(&metrics).Error
	return metrics, err
}
