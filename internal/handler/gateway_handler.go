package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"classroom-env-monitoring/internal/repository"
	"classroom-env-monitoring/internal/service"
	"classroom-env-monitoring/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GatewayHandler serves the endpoints physical sensors talk to. Response
// shapes here are a device-facing wire contract ({isReady}, {saveData},
// {error}) and must not change with the dashboard envelope.
type GatewayHandler struct {
	sensorService *service.SensorService
	ingestService *service.IngestService
	metricService *service.MetricService
}

func NewGatewayHandler(
	sensorService *service.SensorService,
	ingestService *service.IngestService,
	metricService *service.MetricService,
) *GatewayHandler {
	return &GatewayHandler{
		sensorService: sensorService,
		ingestService: ingestService,
		metricService: metricService,
	}
}

type addSensorRequest struct {
	Payload struct {
		SensorRef string `json:"sensorRef"`
	} `json:"payload"`
}

// RegisterSensor handles first-contact polling from devices
// POST /api/add-sensor
func (h *GatewayHandler) RegisterSensor(c *gin.Context) {
	var req addSensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	isReady, err := h.sensorService.EnsureRegistered(req.Payload.SensorRef)
	if err != nil {
		if errors.Is(err, service.ErrMissingSensorRef) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sensorRef is required"})
			return
		}
		log.Printf("Error registering sensor %q: %v", req.Payload.SensorRef, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check sensor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isReady": isReady})
}

type addMetricsRequest struct {
	Payload *service.ReadingPayload `json:"payload"`
}

// AddMetrics handles one incoming reading
// POST /api/add-metrics
//
// A reading for a sensor without a room binding is still persisted; that
// outcome is reported as 202 with a warning instead of a failure status.
func (h *GatewayHandler) AddMetrics(c *gin.Context) {
	var req addMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	metric, err := h.ingestService.AddReading(req.Payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingPayload):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payload"})
		case errors.Is(err, service.ErrMissingSensorRef):
			c.JSON(http.StatusBadRequest, gin.H{"error": "sensorRef is required"})
		case errors.Is(err, service.ErrNoRoomAttached):
			c.JSON(http.StatusAccepted, gin.H{"saveData": metric, "warning": "no room attached"})
		default:
			log.Printf("Error ingesting reading: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"saveData": metric})
}

// GetMetrics returns readings newest-first, capped at limit (default 50)
// GET /api/metrics?sensorRef=|roomId=&limit=
func (h *GatewayHandler) GetMetrics(c *gin.Context) {
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	if rawRoomID := c.Query("roomId"); rawRoomID != "" {
		roomID, err := strconv.ParseUint(rawRoomID, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
			return
		}
		metrics, err := h.metricService.GetMetricsForRoom(uint(roomID), limit)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch metrics")
			return
		}
		utils.SuccessResponse(c, metrics)
		return
	}

	if sensorRef := c.Query("sensorRef"); sensorRef != "" {
		metrics, err := h.metricService.GetMetricsBySensorRef(sensorRef, limit)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch metrics")
			return
		}
		utils.SuccessResponse(c, metrics)
		return
	}

	metrics, err := h.metricService.GetRecentMetrics(limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch metrics")
		return
	}
	utils.SuccessResponse(c, metrics)
}

type rebindSensorRequest struct {
	SensorRef string `json:"sensorRef"`
	RoomID    *uint  `json:"roomId"`
}

// RebindSensor sets or clears a sensor's room binding by hardware
// reference; a null roomId unbinds
// PATCH /api/sensors
func (h *GatewayHandler) RebindSensor(c *gin.Context) {
	var req rebindSensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sensor, err := h.sensorService.BindSensorByReference(req.SensorRef, req.RoomID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingSensorRef):
			utils.ErrorResponse(c, http.StatusBadRequest, "sensorRef is required")
		case errors.Is(err, repository.ErrSensorNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, "Sensor not found")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update sensor")
		}
		return
	}

	utils.SuccessResponse(c, sensor)
}
