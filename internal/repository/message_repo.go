package repository

import (
	"classroom-env-monitoring/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// CreateMessage creates a new support message
func (r *MessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetAllMessages retrieves all support messages, newest first
func (r *MessageRepository) GetAllMessages() ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Room").
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

// GetMessagesByRoomID retrieves all messages filed for a room, newest first
func (r *MessageRepository) GetMessagesByRoomID(roomID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}
