package service

import (
	"fmt"

	"classroom-env-monitoring/internal/comfort"
	"classroom-env-monitoring/internal/models"
)

type roomAnalyticsStore interface {
	CountRooms() (int64, error)
	CountRoomsByUsage(used bool) (int64, error)
	GetRoomStatuses() ([]models.Room, error)
}

type sensorCounter interface {
	CountSensors() (int64, error)
}

type AnalyticsService struct {
	roomRepo   roomAnalyticsStore
	sensorRepo sensorCounter
}

func NewAnalyticsService(roomRepo roomAnalyticsStore, sensorRepo sensorCounter) *AnalyticsService {
	return &AnalyticsService{
		roomRepo:   roomRepo,
		sensorRepo: sensorRepo,
	}
}

// FleetAnalytics is the admin dashboard summary
type FleetAnalytics struct {
	TotalRooms   int64                `json:"totalRooms"`
	TotalSensors int64                `json:"totalSensors"`
	StatusCounts comfort.Distribution `json:"statusCounts"`
}

// OccupancyStats is the student dashboard summary derived from the
// occupancy flag
type OccupancyStats struct {
	TotalRooms     int64 `json:"totalRooms"`
	AvailableRooms int64 `json:"availableRooms"`
	OccupiedRooms  int64 `json:"occupiedRooms"`
}

// GetFleetAnalytics aggregates the STORED per-room statuses into the
// fleet-level distribution. Raw readings are never re-scanned; the room
// documents are the source of truth for current status.
func (s *AnalyticsService) GetFleetAnalytics() (*FleetAnalytics, error) {
	totalRooms, err := s.roomRepo.CountRooms()
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}

	totalSensors, err := s.sensorRepo.CountSensors()
	if err != nil {
		return nil, fmt.Errorf("failed to count sensors: %w", err)
	}

	rooms, err := s.roomRepo.GetRoomStatuses()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room statuses: %w", err)
	}

	var counts comfort.Distribution
	for i := range rooms {
		counts.Add(rooms[i].GlobalStatus())
	}

	return &FleetAnalytics{
		TotalRooms:   totalRooms,
		TotalSensors: totalSensors,
		StatusCounts: counts,
	}, nil
}

// GetOccupancyStats counts rooms by the occupancy flag
func (s *AnalyticsService) GetOccupancyStats() (*OccupancyStats, error) {
	total, err := s.roomRepo.CountRooms()
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}

	available, err := s.roomRepo.CountRoomsByUsage(false)
	if err != nil {
		return nil, fmt.Errorf("failed to count available rooms: %w", err)
	}

	occupied, err := s.roomRepo.CountRoomsByUsage(true)
	if err != nil {
		return nil, fmt.Errorf("failed to count occupied rooms: %w", err)
	}

	return &OccupancyStats{
		TotalRooms:     total,
		AvailableRooms: available,
		OccupiedRooms:  occupied,
	}, nil
}
