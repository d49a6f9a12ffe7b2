package repository

import (
	"errors"

	"classroom-env-monitoring/internal/comfort"
	"classroom-env-monitoring/internal/models"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetAllRooms retrieves all rooms ordered by floor and position
func (r *RoomRepository) GetAllRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Order("floor ASC, position ASC").Find(&rooms).Error
	return rooms, err
}

// GetRoomByID retrieves a room by ID
func (r *RoomRepository) GetRoomByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// CreateRoom creates a new room
func (r *RoomRepository) CreateRoom(room *models.Room) error {
	return r.db.Create(room).Error
}

// UpdateRoomFields applies a partial update to a room document
func (r *RoomRepository) UpdateRoomFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateAcceptable replaces the four acceptable threshold columns and
// returns the updated room. Takes effect on the next reading only; stored
// per-metric statuses are left as historical snapshots.
func (r *RoomRepository) UpdateAcceptable(id uint, acceptable comfort.AcceptableValues) (*models.Room, error) {
	updates := map[string]interface{}{
		"acceptable_co2":         acceptable.CO2,
		"acceptable_decibel":     acceptable.Decibel,
		"acceptable_humidity":    acceptable.Humidity,
		"acceptable_temperature": acceptable.Temperature,
	}

	result := r.db.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	return r.GetRoomByID(id)
}

// UpdateStatusFields applies the collected per-metric status updates in a
// single targeted write. Touching only the classified columns keeps
// concurrent ingestions for the same room from clobbering each other's
// fields. Zero affected rows means the room vanished mid-flight; that is
// not an error here.
func (r *RoomRepository) UpdateStatusFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error
}

// MarkUsed flips the occupancy flag on. Ingestion never clears it.
func (r *RoomRepository) MarkUsed(id uint) error {
	return r.db.Model(&models.Room{}).Where("id = ?", id).Update("is_used", true).Error
}

// DeleteRoom removes a room permanently. Callers must unbind the room's
// sensors first; readings attributed to the room are kept.
func (r *RoomRepository) DeleteRoom(id uint) error {
	return r.db.Delete(&models.Room{}, id).Error
}

// CountRooms returns the total number of rooms
func (r *RoomRepository) CountRooms() (int64, error) {
	var count int64
	err := r.db.Model(&models.Room{}).Count(&count).Error
	return count, err
}

// CountRoomsByUsage counts rooms filtered on the occupancy flag
func (r *RoomRepository) CountRoomsByUsage(used bool) (int64, error) {
	var count int64
	err := r.db.Model(&models.Room{}).Where("is_used = ?", used).Count(&count).Error
	return count, err
}

// GetRoomStatuses fetches only the stored status columns for fleet
// aggregation; raw readings are never re-scanned for this.
func (r *RoomRepository) GetRoomStatuses() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Select("id", "status_co2", "status_decibel", "status_humidity", "status_temperature").
		Find(&rooms).Error
	return rooms, err
}
