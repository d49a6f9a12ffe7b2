package handler

import (
	"errors"
	"net/http"
	"strconv"

	"classroom-env-monitoring/internal/comfort"
	"classroom-env-monitoring/internal/repository"
	"classroom-env-monitoring/internal/service"
	"classroom-env-monitoring/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// GetAllRooms retrieves all rooms
func (h *RoomHandler) GetAllRooms(c *gin.Context) {
	rooms, err := h.roomService.GetAllRooms()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// GetRoom retrieves a specific room by ID
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	room, err := h.roomService.GetRoomByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Room not found")
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch room")
		}
		return
	}

	utils.SuccessResponse(c, room)
}

// CreateRoom creates a new room (admin only). The acceptable thresholds
// are computed from the room size at this point and never silently
// recomputed afterwards.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req service.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	accountID, _ := c.Get("accountID")

	room, err := h.roomService.CreateRoom(&req, accountID.(uint))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRoomData) {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create room")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Room created successfully",
		"room":    room,
	})
}

type updateRoomRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsUsed      *bool   `json:"is_used"`
}

// UpdateRoom updates a room's descriptive fields (admin only). Clearing
// the occupancy flag goes through here; ingestion only ever sets it.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsUsed != nil {
		updates["is_used"] = *req.IsUsed
	}
	if len(updates) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "No fields to update")
		return
	}

	accountID, _ := c.Get("accountID")

	room, err := h.roomService.UpdateRoom(uint(id), updates, accountID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Room not found")
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update room")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Room updated successfully",
		"room":    room,
	})
}

type updateAcceptableRequest struct {
	Acceptable map[string]interface{} `json:"acceptable" binding:"required"`
}

// UpdateAcceptable replaces a room's acceptable thresholds (admin only).
// All four values are required; non-numeric input is coerced to 0, which
// the classifier then skips for that metric.
func (h *RoomHandler) UpdateAcceptable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	var req updateAcceptableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	for _, key := range []string{"co2", "decibel", "humidity", "temperature"} {
		if _, ok := req.Acceptable[key]; !ok {
			utils.ErrorResponse(c, http.StatusBadRequest, "acceptable."+key+" is required")
			return
		}
	}

	acceptable := comfort.AcceptableValues{
		CO2:         coerceNumber(req.Acceptable["co2"]),
		Decibel:     coerceNumber(req.Acceptable["decibel"]),
		Humidity:    coerceNumber(req.Acceptable["humidity"]),
		Temperature: coerceNumber(req.Acceptable["temperature"]),
	}

	accountID, _ := c.Get("accountID")

	room, err := h.roomService.UpdateAcceptable(uint(id), acceptable, accountID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Room not found")
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update thresholds")
		}
		return
	}

	utils.SuccessResponse(c, room)
}

// DeleteRoom deletes a room (admin only), unbinding its sensors first
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	accountID, _ := c.Get("accountID")

	if err := h.roomService.DeleteRoom(uint(id), accountID.(uint)); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Room not found")
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete room")
		}
		return
	}

	utils.MessageResponse(c, "Room deleted successfully")
}

// coerceNumber reads a threshold value from loosely typed form input;
// anything non-numeric becomes 0 (metric disabled)
func coerceNumber(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
