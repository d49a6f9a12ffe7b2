package service

import (
	"errors"
	"fmt"

	"classroom-env-monitoring/internal/models"
	"classroom-env-monitoring/internal/repository"
)

type MessageService struct {
	messageRepo *repository.MessageRepository
	roomRepo    *repository.RoomRepository
}

func NewMessageService(messageRepo *repository.MessageRepository, roomRepo *repository.RoomRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		roomRepo:    roomRepo,
	}
}

// CreateMessageRequest carries the support form input
type CreateMessageRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RoomID      uint   `json:"room_id"`
	StudentMail string `json:"student_mail"`
}

// CreateMessage files a support ticket tied to a room
func (s *MessageService) CreateMessage(req *CreateMessageRequest) (*models.Message, error) {
	if req.Title == "" || req.Description == "" || req.StudentMail == "" {
		return nil, errors.New("title, description and student_mail are required")
	}
	if req.RoomID == 0 {
		return nil, errors.New("room_id is required")
	}

	// The ticket must point at an existing room
	if _, err := s.roomRepo.GetRoomByID(req.RoomID); err != nil {
		return nil, err
	}

	message := &models.Message{
		Title:       req.Title,
		Description: req.Description,
		StudentMail: req.StudentMail,
		RoomID:      req.RoomID,
	}

	if err := s.messageRepo.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return message, nil
}

// GetAllMessages lists all support messages for the admin dashboard
func (s *MessageService) GetAllMessages() ([]models.Message, error) {
	return s.messageRepo.GetAllMessages()
}

// GetMessagesByRoomID lists support messages filed for one room
func (s *MessageService) GetMessagesByRoomID(roomID uint) ([]models.Message, error) {
	return s.messageRepo.GetMessagesByRoomID(roomID)
}
