package service

import (
	"testing"

	"classroom-env-monitoring/internal/comfort"
	"classroom-env-monitoring/internal/models"
)

type statsRoomFake struct {
	rooms []models.Room
}

func (f *statsRoomFake) CountRooms() (int64, error) {
	return int64(len(f.rooms)), nil
}

func (f *statsRoomFake) CountRoomsByUsage(used bool) (int64, error) {
	var n int64
	for _, r := range f.rooms {
		if r.IsUsed == used {
			n++
		}
	}
	return n, nil
}

func (f *statsRoomFake) GetRoomStatuses() ([]models.Room, error) {
	return f.rooms, nil
}

type statsSensorFake struct {
	count int64
}

func (f *statsSensorFake) CountSensors() (int64, error) {
	return f.count, nil
}

func levelPtr(l comfort.Level) *comfort.Level {
	return &l
}

func TestFleetAnalyticsCountsEveryRoomExactlyOnce(t *testing.T) {
	rooms := []models.Room{
		// worst metric wins: BAD beats GOOD
		{Status: models.RoomStatus{
			CO2:     levelPtr(comfort.LevelGood),
			Decibel: levelPtr(comfort.LevelBad),
		}},
		// all four set, all good
		{Status: models.RoomStatus{
			CO2:         levelPtr(comfort.LevelReallyGood),
			Decibel:     levelPtr(comfort.LevelReallyGood),
			Humidity:    levelPtr(comfort.LevelReallyGood),
			Temperature: levelPtr(comfort.LevelReallyGood),
		}},
		// never classified: counts in the unknown bucket
		{},
		{Status: models.RoomStatus{
			Humidity: levelPtr(comfort.LevelReallyBad),
		}},
	}

	svc := NewAnalyticsService(&statsRoomFake{rooms: rooms}, &statsSensorFake{count: 6})

	got, err := svc.GetFleetAnalytics()
	if err != nil {
		t.Fatalf("GetFleetAnalytics() error = %v", err)
	}

	if got.TotalRooms != 4 {
		t.Errorf("totalRooms = %d, want 4", got.TotalRooms)
	}
	if got.TotalSensors != 6 {
		t.Errorf("totalSensors = %d, want 6", got.TotalSensors)
	}
	if int64(got.StatusCounts.Total()) != got.TotalRooms {
		t.Errorf("distribution totals %d but fleet has %d rooms", got.StatusCounts.Total(), got.TotalRooms)
	}
	if got.StatusCounts.Bad != 1 || got.StatusCounts.ReallyGood != 1 || got.StatusCounts.Unknown != 1 || got.StatusCounts.ReallyBad != 1 {
		t.Errorf("distribution = %+v", got.StatusCounts)
	}
}

func TestFleetAnalyticsEmptyFleet(t *testing.T) {
	svc := NewAnalyticsService(&statsRoomFake{}, &statsSensorFake{})

	got, err := svc.GetFleetAnalytics()
	if err != nil {
		t.Fatalf("GetFleetAnalytics() error = %v", err)
	}
	if got.TotalRooms != 0 || got.TotalSensors != 0 || got.StatusCounts.Total() != 0 {
		t.Errorf("empty fleet summary = %+v", got)
	}
}

func TestOccupancyStats(t *testing.T) {
	rooms := []models.Room{
		{IsUsed: true},
		{IsUsed: false},
		{IsUsed: false},
	}
	svc := NewAnalyticsService(&statsRoomFake{rooms: rooms}, &statsSensorFake{})

	got, err := svc.GetOccupancyStats()
	if err != nil {
		t.Fatalf("GetOccupancyStats() error = %v", err)
	}
	if got.TotalRooms != 3 || got.AvailableRooms != 2 || got.OccupiedRooms != 1 {
		t.Errorf("occupancy = %+v", got)
	}
}
