package handler

import (
	"errors"
	"net/http"
	"strconv"

	"classroom-env-monitoring/internal/repository"
	"classroom-env-monitoring/internal/service"
	"classroom-env-monitoring/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// CreateMessage files a support ticket for a room
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req service.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	message, err := h.messageService.CreateMessage(&req)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Room not found")
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, message)
}

// GetMessages lists support messages, optionally filtered by room
func (h *MessageHandler) GetMessages(c *gin.Context) {
	if rawRoomID := c.Query("roomId"); rawRoomID != "" {
		roomID, err := strconv.ParseUint(rawRoomID, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
			return
		}
		messages, err := h.messageService.GetMessagesByRoomID(uint(roomID))
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch messages")
			return
		}
		utils.SuccessResponse(c, gin.H{"messages": messages, "count": len(messages)})
		return
	}

	messages, err := h.messageService.GetAllMessages()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	utils.SuccessResponse(c, gin.H{"messages": messages, "count": len(messages)})
}
