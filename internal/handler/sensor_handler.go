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

type SensorHandler struct {
	sensorService *service.SensorService
}

func NewSensorHandler(sensorService *service.SensorService) *SensorHandler {
	return &SensorHandler{
		sensorService: sensorService,
	}
}

// GetAllSensors lists all sensors for the dashboard
func (h *SensorHandler) GetAllSensors(c *gin.Context) {
	sensors, err := h.sensorService.GetAllSensors()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch sensors")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"sensors": sensors,
		"count":   len(sensors),
	})
}

type bindSensorRequest struct {
	Name   string `json:"name"`
	RoomID *uint  `json:"room_id"`
}

// BindSensor sets or clears a sensor's room binding by ID (admin only).
// A null room_id unbinds the sensor.
func (h *SensorHandler) BindSensor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid sensor ID")
		return
	}

	var req bindSensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sensor, err := h.sensorService.BindSensor(uint(id), req.RoomID, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrSensorNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Sensor not found")
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update sensor")
		}
		return
	}

	utils.SuccessResponse(c, sensor)
}
