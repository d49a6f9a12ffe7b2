package handler

import (
	"errors"
	"net/http"
	"strconv"

	"classroom-env-monitoring/internal/service"
	"classroom-env-monitoring/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type loginRequest struct {
	Mail     string `json:"mail" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an account
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "mail and password are required")
		return
	}

	response, err := h.authService.Login(req.Mail, req.Password)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	utils.SuccessResponse(c, response)
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrMailAlreadyRegistered) {
			utils.ErrorResponse(c, http.StatusConflict, "An account with this mail already exists")
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, response)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh exchanges a refresh token for a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"access_token": accessToken})
}

// Logout revokes a refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	utils.MessageResponse(c, "Logged out successfully")
}

// GetStudents lists student accounts (admin only)
func (h *AuthHandler) GetStudents(c *gin.Context) {
	students, err := h.authService.GetStudents()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch students")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"students": students,
		"count":    len(students),
	})
}

// DeleteStudent removes a student account (admin only)
func (h *AuthHandler) DeleteStudent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid account ID")
		return
	}

	adminID, _ := c.Get("accountID")

	if err := h.authService.DeleteStudent(uint(id), adminID.(uint)); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	utils.MessageResponse(c, "Account deleted successfully")
}
