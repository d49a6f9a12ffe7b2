package service

import (
	"errors"
	"testing"
	"time"

	"classroom-env-monitoring/internal/comfort"
	"classroom-env-monitoring/internal/config"
	"classroom-env-monitoring/internal/models"
	"classroom-env-monitoring/internal/repository"
)

type memMetricStore struct {
	metrics   []*models.EnvironmentMetric
	createErr error
}

func (m *memMetricStore) CreateMetric(metric *models.EnvironmentMetric) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.metrics = append(m.metrics, metric)
	return nil
}

type memSensorDirectory struct {
	byRef     map[string]*models.Sensor
	byID      map[uint]*models.Sensor
	lookupErr error
}

func (m *memSensorDirectory) GetSensorByID(id uint) (*models.Sensor, error) {
	if s, ok := m.byID[id]; ok {
		return s, nil
	}
	return nil, repository.ErrSensorNotFound
}

func (m *memSensorDirectory) GetSensorByReference(reference string) (*models.Sensor, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	if s, ok := m.byRef[reference]; ok {
		return s, nil
	}
	return nil, repository.ErrSensorNotFound
}

type memRoomStore struct {
	rooms         map[uint]*models.Room
	markedUsed    []uint
	statusUpdates []map[string]interface{}
}

func (m *memRoomStore) GetRoomByID(id uint) (*models.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, repository.ErrRoomNotFound
}

func (m *memRoomStore) MarkUsed(id uint) error {
	m.markedUsed = append(m.markedUsed, id)
	if r, ok := m.rooms[id]; ok {
		r.IsUsed = true
	}
	return nil
}

func (m *memRoomStore) UpdateStatusFields(id uint, updates map[string]interface{}) error {
	m.statusUpdates = append(m.statusUpdates, updates)
	return nil
}

func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }

func newTestIngest(metrics *memMetricStore, sensors *memSensorDirectory, rooms *memRoomStore) *IngestService {
	svc := NewIngestService(metrics, sensors, rooms, config.IngestionConfig{
		BrightnessThreshold: 50,
		DefaultMetricsLimit: 50,
	})
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC) }
	return svc
}

func boundRoom() *models.Room {
	return &models.Room{
		ID:   7,
		Name: "B204",
		Size: 70,
		Acceptable: comfort.AcceptableValues{
			CO2:         600,
			Decibel:     35,
			Humidity:    45,
			Temperature: 21,
		},
	}
}

func TestAddReadingRejectsMissingPayload(t *testing.T) {
	metrics := &memMetricStore{}
	svc := newTestIngest(metrics, &memSensorDirectory{}, &memRoomStore{})

	if _, err := svc.AddReading(nil); !errors.Is(err, ErrMissingPayload) {
		t.Fatalf("err = %v, want ErrMissingPayload", err)
	}
	if _, err := svc.AddReading(&ReadingPayload{CO2: "500"}); !errors.Is(err, ErrMissingSensorRef) {
		t.Fatalf("err = %v, want ErrMissingSensorRef", err)
	}
	if len(metrics.metrics) != 0 {
		t.Fatalf("validation failure persisted %d readings, want 0", len(metrics.metrics))
	}
}

func TestAddReadingUnboundSensorStillPersists(t *testing.T) {
	metrics := &memMetricStore{}
	sensors := &memSensorDirectory{
		byRef: map[string]*models.Sensor{
			"S1": {ID: 1, Reference: "S1", RoomID: nil},
		},
	}
	rooms := &memRoomStore{rooms: map[uint]*models.Room{}}
	svc := newTestIngest(metrics, sensors, rooms)

	metric, err := svc.AddReading(&ReadingPayload{SensorRef: "S1", CO2: "500"})
	if !errors.Is(err, ErrNoRoomAttached) {
		t.Fatalf("err = %v, want ErrNoRoomAttached", err)
	}
	if metric == nil {
		t.Fatal("metric not returned despite raw write")
	}
	if len(metrics.metrics) != 1 {
		t.Fatalf("persisted %d readings, want 1", len(metrics.metrics))
	}
	if len(rooms.statusUpdates) != 0 {
		t.Fatalf("status updated for unbound sensor: %v", rooms.statusUpdates)
	}
}

func TestAddReadingUnknownSensorStillPersists(t *testing.T) {
	metrics := &memMetricStore{}
	svc := newTestIngest(metrics, &memSensorDirectory{}, &memRoomStore{})

	_, err := svc.AddReading(&ReadingPayload{SensorRef: "GHOST", CO2: "500"})
	if !errors.Is(err, ErrNoRoomAttached) {
		t.Fatalf("err = %v, want ErrNoRoomAttached", err)
	}
	if len(metrics.metrics) != 1 {
		t.Fatalf("persisted %d readings, want 1", len(metrics.metrics))
	}
}

func TestAddReadingClassifiesAllMetricsInOneUpdate(t *testing.T) {
	metrics := &memMetricStore{}
	room := boundRoom()
	sensors := &memSensorDirectory{
		byRef: map[string]*models.Sensor{
			"S1": {ID: 1, Reference: "S1", RoomID: uintPtr(room.ID)},
		},
	}
	rooms := &memRoomStore{rooms: map[uint]*models.Room{room.ID: room}}
	svc := newTestIngest(metrics, sensors, rooms)

	_, err := svc.AddReading(&ReadingPayload{
		SensorRef:   "S1",
		CO2:         "300",
		Humidity:    &HumidityPayload{Number: "44"},
		Temperature: &TemperaturePayload{Reading: "21"},
		Sound:       &SoundPayload{Decibel: floatPtr(40)},
	})
	if err != nil {
		t.Fatalf("AddReading() error = %v", err)
	}

	if len(rooms.statusUpdates) != 1 {
		t.Fatalf("got %d status writes, want exactly 1", len(rooms.statusUpdates))
	}
	updates := rooms.statusUpdates[0]

	want := map[string]comfort.Level{
		"status_co2":         comfort.LevelBad,  // 300 in [300, 600)
		"status_humidity":    comfort.LevelBad,  // 44 < 45
		"status_temperature": comfort.LevelGood, // 21 == acceptable
		"status_decibel":     comfort.LevelGood, // 40 <= 35*1.2
	}
	if len(updates) != len(want) {
		t.Fatalf("updates = %v, want %d fields", updates, len(want))
	}
	for column, level := range want {
		if updates[column] != level {
			t.Errorf("%s = %v, want %v", column, updates[column], level)
		}
	}
}

func TestAddReadingSkipsZeroThresholdAndUnparseable(t *testing.T) {
	metrics := &memMetricStore{}
	room := boundRoom()
	room.Acceptable.CO2 = 0 // threshold unset: metric never classified
	sensors := &memSensorDirectory{
		byRef: map[string]*models.Sensor{
			"S1": {ID: 1, Reference: "S1", RoomID: uintPtr(room.ID)},
		},
	}
	rooms := &memRoomStore{rooms: map[uint]*models.Room{room.ID: room}}
	svc := newTestIngest(metrics, sensors, rooms)

	_, err := svc.AddReading(&ReadingPayload{
		SensorRef: "S1",
		CO2:       "9000",
		Humidity:  &HumidityPayload{Number: "not-a-number"},
	})
	if err != nil {
		t.Fatalf("AddReading() error = %v", err)
	}

	if len(rooms.statusUpdates) != 0 {
		t.Fatalf("expected no status write, got %v", rooms.statusUpdates)
	}
	if len(metrics.metrics) != 1 {
		t.Fatalf("raw reading not persisted")
	}
}

func TestAddReadingBrightLightMarksRoomUsed(t *testing.T) {
	room := boundRoom()
	sensors := &memSensorDirectory{
		byRef: map[string]*models.Sensor{
			"S1": {ID: 1, Reference: "S1", RoomID: uintPtr(room.ID)},
		},
	}
	rooms := &memRoomStore{rooms: map[uint]*models.Room{room.ID: room}}
	svc := newTestIngest(&memMetricStore{}, sensors, rooms)

	if _, err := svc.AddReading(&ReadingPayload{SensorRef: "S1", Luminos: floatPtr(80)}); err != nil {
		t.Fatalf("AddReading() error = %v", err)
	}
	if len(rooms.markedUsed) != 1 || rooms.markedUsed[0] != room.ID {
		t.Fatalf("markedUsed = %v, want [%d]", rooms.markedUsed, room.ID)
	}

	// Low light never clears the flag; ingestion is one-directional here.
	if _, err := svc.AddReading(&ReadingPayload{SensorRef: "S1", Luminos: floatPtr(10)}); err != nil {
		t.Fatalf("AddReading() error = %v", err)
	}
	if len(rooms.markedUsed) != 1 {
		t.Fatalf("low-light reading touched the occupancy flag")
	}
	if !room.IsUsed {
		t.Fatal("room no longer marked used")
	}
}

func TestAddReadingRoomIDVariantResolvesDirectly(t *testing.T) {
	room := boundRoom()
	rooms := &memRoomStore{rooms: map[uint]*models.Room{room.ID: room}}
	svc := newTestIngest(&memMetricStore{}, &memSensorDirectory{}, rooms)

	_, err := svc.AddReading(&ReadingPayload{RoomID: uintPtr(room.ID), CO2: "700"})
	if err != nil {
		t.Fatalf("AddReading() error = %v", err)
	}
	if len(rooms.statusUpdates) != 1 {
		t.Fatalf("got %d status writes, want 1", len(rooms.statusUpdates))
	}
	if rooms.statusUpdates[0]["status_co2"] != comfort.LevelGood {
		t.Fatalf("status_co2 = %v, want GOOD", rooms.statusUpdates[0]["status_co2"])
	}
}

func TestAddReadingSensorIDVariantRecoversReference(t *testing.T) {
	room := boundRoom()
	sensor := &models.Sensor{ID: 3, Reference: "S3", RoomID: uintPtr(room.ID)}
	sensors := &memSensorDirectory{
		byRef: map[string]*models.Sensor{"S3": sensor},
		byID:  map[uint]*models.Sensor{3: sensor},
	}
	metrics := &memMetricStore{}
	rooms := &memRoomStore{rooms: map[uint]*models.Room{room.ID: room}}
	svc := newTestIngest(metrics, sensors, rooms)

	_, err := svc.AddReading(&ReadingPayload{SensorID: uintPtr(3), CO2: "650"})
	if err != nil {
		t.Fatalf("AddReading() error = %v", err)
	}
	if metrics.metrics[0].SensorRef != "S3" {
		t.Fatalf("stored sensorRef = %q, want S3", metrics.metrics[0].SensorRef)
	}
	if len(rooms.statusUpdates) != 1 {
		t.Fatalf("got %d status writes, want 1", len(rooms.statusUpdates))
	}
}

func TestAddReadingRoomDeletedMidFlight(t *testing.T) {
	// The sensor still points at room 7 but the room is gone. The reading
	// must be kept and the request must not turn into a failure.
	metrics := &memMetricStore{}
	sensors := &memSensorDirectory{
		byRef: map[string]*models.Sensor{
			"S1": {ID: 1, Reference: "S1", RoomID: uintPtr(7)},
		},
	}
	rooms := &memRoomStore{rooms: map[uint]*models.Room{}}
	svc := newTestIngest(metrics, sensors, rooms)

	_, err := svc.AddReading(&ReadingPayload{SensorRef: "S1", CO2: "500"})
	if !errors.Is(err, ErrNoRoomAttached) {
		t.Fatalf("err = %v, want ErrNoRoomAttached", err)
	}
	if len(metrics.metrics) != 1 {
		t.Fatalf("reading lost when room vanished")
	}
	if len(rooms.statusUpdates) != 0 {
		t.Fatalf("status written against deleted room")
	}
}

func TestAddReadingLookupFailureKeepsReadingAndReportsIt(t *testing.T) {
	// A failing sensor lookup after the raw write must not void the
	// ingestion, and the caller must still be able to tell that no room
	// was resolved and no statuses were applied.
	metrics := &memMetricStore{}
	sensors := &memSensorDirectory{lookupErr: errors.New("connection refused")}
	rooms := &memRoomStore{rooms: map[uint]*models.Room{}}
	svc := newTestIngest(metrics, sensors, rooms)

	metric, err := svc.AddReading(&ReadingPayload{SensorRef: "S1", CO2: "500"})
	if !errors.Is(err, ErrNoRoomAttached) {
		t.Fatalf("err = %v, want ErrNoRoomAttached", err)
	}
	if metric == nil {
		t.Fatal("metric not returned despite raw write")
	}
	if len(metrics.metrics) != 1 {
		t.Fatalf("persisted %d readings, want 1", len(metrics.metrics))
	}
	if len(rooms.statusUpdates) != 0 || len(rooms.markedUsed) != 0 {
		t.Fatal("derived updates ran despite the failed lookup")
	}
}

func TestAddReadingAssignsServerTimestampAndUnitDefaults(t *testing.T) {
	metrics := &memMetricStore{}
	svc := newTestIngest(metrics, &memSensorDirectory{}, &memRoomStore{})

	_, _ = svc.AddReading(&ReadingPayload{
		SensorRef:   "S1",
		CO2:         "500",
		Humidity:    &HumidityPayload{Number: "44"},
		Temperature: &TemperaturePayload{Reading: "20.5"},
		Sound:       &SoundPayload{Decibel: floatPtr(33)},
	})

	stored := metrics.metrics[0]
	if !stored.RefreshAt.Equal(time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("RefreshAt = %v, want the server clock value", stored.RefreshAt)
	}
	if stored.Humidity.Unit != "%" || stored.Temperature.Unit != "C" || stored.Sound.Unit != "dB" {
		t.Fatalf("unit defaults not applied: %+v", stored)
	}
}

func TestParseReading(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"600", 600, true},
		{" 21.5 ", 21.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseReading(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseReading(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
