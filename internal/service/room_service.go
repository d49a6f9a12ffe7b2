package service

import (
	"fmt"

	"classroom-env-monitoring/internal/comfort"
	"classroom-env-monitoring/internal/models"
)

type roomStore interface {
	GetAllRooms() ([]models.Room, error)
	GetRoomByID(id uint) (*models.Room, error)
	CreateRoom(room *models.Room) error
	UpdateRoomFields(id uint, updates map[string]interface{}) error
	UpdateAcceptable(id uint, acceptable comfort.AcceptableValues) (*models.Room, error)
	DeleteRoom(id uint) error
}

type sensorUnbinder interface {
	UnbindAllForRoom(roomID uint) error
}

type auditLogger interface {
	CreateAuditLog(accountID *uint, action string, details string) error
}

// defaultRoomSize is assumed when room creation omits the size (m²)
const defaultRoomSize = 70

type RoomService struct {
	roomRepo   roomStore
	sensorRepo sensorUnbinder
	auditRepo  auditLogger
}

func NewRoomService(roomRepo roomStore, sensorRepo sensorUnbinder, auditRepo auditLogger) *RoomService {
	return &RoomService{
		roomRepo:   roomRepo,
		sensorRepo: sensorRepo,
		auditRepo:  auditRepo,
	}
}

// CreateRoomRequest carries the room-creation form input
type CreateRoomRequest struct {
	Name        string  `json:"name"`
	Floor       int     `json:"floor"`
	Position    int     `json:"position"`
	Description string  `json:"description"`
	Size        float64 `json:"size"`
	IsUsed      bool    `json:"is_used"`
	SensorID    *uint   `json:"sensor_id"`
}

// CreateRoom validates the form input, derives the acceptable thresholds
// from the room size and persists the room. Thresholds are computed here
// once; later size edits never recompute them, so administrator overrides
// made through UpdateAcceptable are preserved.
func (s *RoomService) CreateRoom(req *CreateRoomRequest, accountID uint) (*models.Room, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRoomData)
	}
	if req.Floor < 0 || req.Floor > 5 {
		return nil, fmt.Errorf("%w: floor must be between 0 and 5", ErrInvalidRoomData)
	}
	if req.Position < 1 || req.Position > 5 {
		return nil, fmt.Errorf("%w: position must be between 1 and 5", ErrInvalidRoomData)
	}
	if req.Size < 0 {
		return nil, fmt.Errorf("%w: size must be positive", ErrInvalidRoomData)
	}

	size := req.Size
	if size == 0 {
		size = defaultRoomSize
	}

	room := &models.Room{
		Name:        req.Name,
		Floor:       req.Floor,
		Position:    req.Position,
		Description: req.Description,
		Size:        size,
		IsUsed:      req.IsUsed,
		SensorID:    req.SensorID,
		Acceptable:  comfort.ComputeAcceptable(size),
	}

	if err := s.roomRepo.CreateRoom(room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	accountIDPtr := &accountID
	details := fmt.Sprintf("Created room: %s (floor: %d, position: %d, size: %.0fm2)", room.Name, room.Floor, room.Position, room.Size)
	_ = s.auditRepo.CreateAuditLog(accountIDPtr, "room_create", details)

	return room, nil
}

// GetAllRooms retrieves all rooms
func (s *RoomService) GetAllRooms() ([]models.Room, error) {
	return s.roomRepo.GetAllRooms()
}

// GetRoomByID retrieves a room by ID
func (s *RoomService) GetRoomByID(roomID uint) (*models.Room, error) {
	return s.roomRepo.GetRoomByID(roomID)
}

// UpdateRoom applies admin edits to a room's descriptive fields and the
// occupancy flag. The acceptable thresholds are deliberately not part of
// this path; see UpdateAcceptable.
func (s *RoomService) UpdateRoom(roomID uint, updates map[string]interface{}, accountID uint) (*models.Room, error) {
	if _, err := s.roomRepo.GetRoomByID(roomID); err != nil {
		return nil, err
	}

	if err := s.roomRepo.UpdateRoomFields(roomID, updates); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	accountIDPtr := &accountID
	_ = s.auditRepo.CreateAuditLog(accountIDPtr, "room_update", fmt.Sprintf("Updated room ID %d", roomID))

	return s.roomRepo.GetRoomByID(roomID)
}

// UpdateAcceptable replaces the four acceptable thresholds of a room.
// Takes effect on the next reading; stored per-metric statuses are kept as
// historical snapshots until then. A zero value disables classification
// for that metric.
func (s *RoomService) UpdateAcceptable(roomID uint, acceptable comfort.AcceptableValues, accountID uint) (*models.Room, error) {
	room, err := s.roomRepo.UpdateAcceptable(roomID, acceptable)
	if err != nil {
		return nil, err
	}

	accountIDPtr := &accountID
	details := fmt.Sprintf("Updated thresholds for room %s: co2=%.0f decibel=%.0f humidity=%.0f temperature=%.0f",
		room.Name, acceptable.CO2, acceptable.Decibel, acceptable.Humidity, acceptable.Temperature)
	_ = s.auditRepo.CreateAuditLog(accountIDPtr, "thresholds_update", details)

	return room, nil
}

// DeleteRoom removes a room. Every sensor bound to the room is unbound
// first and that update must complete before the row is deleted, so no
// sensor keeps a dangling binding. Readings already attributed to the room
// are kept.
func (s *RoomService) DeleteRoom(roomID uint, accountID uint) error {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		return err
	}

	if err := s.sensorRepo.UnbindAllForRoom(roomID); err != nil {
		return fmt.Errorf("failed to unbind sensors: %w", err)
	}

	if err := s.roomRepo.DeleteRoom(roomID); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	accountIDPtr := &accountID
	details := fmt.Sprintf("Deleted room: %s (ID: %d)", room.Name, roomID)
	_ = s.auditRepo.CreateAuditLog(accountIDPtr, "room_delete", details)

	return nil
}
