package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacksonn455/user-service/internal/apperrors"
	"github.com/jacksonn455/user-service/internal/middleware"
	"github.com/jacksonn455/user-service/internal/models"
	"github.com/jacksonn455/user-service/internal/service"
	"github.com/jacksonn455/user-service/internal/wallet"
)

// UserServicer defines the account operations used by UserHandler.
type UserServicer interface {
	Register(ctx context.Context, email, password, name string) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*models.UserView, error)
	GetAllUsers(ctx context.Context) ([]*models.UserView, error)
}

// FinancialDataFetcher defines the wallet read used by the financial profile
// endpoint.
type FinancialDataFetcher interface {
	FinancialData(ctx context.Context, userID string) *wallet.FinancialData
}

type UserHandler struct {
	service UserServicer
	wallet  FinancialDataFetcher
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewUserHandler(service UserServicer, wallet FinancialDataFetcher) *UserHandler {
	return &UserHandler{service: service, wallet: wallet}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) {
			middleware.RespondWithError(c, http.StatusConflict, "User already exists")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"data":    result,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, apperrors.ErrInactiveAccount):
			middleware.RespondWithError(c, http.StatusUnauthorized, "User is inactive")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    result,
	})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	view, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    view,
	})
}

// GetProfileWithFinancialData merges the profile with the wallet's balance
// and transactions. The wallet fetch runs concurrently with the profile read
// and is best-effort: a wallet outage yields nulls, not an error.
func (h *UserHandler) GetProfileWithFinancialData(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	ctx := c.Request.Context()

	financial := make(chan *wallet.FinancialData, 1)
	go func() {
		financial <- h.wallet.FinancialData(ctx, userID)
	}()

	view, err := h.service.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":   view,
			"wallet": <-financial,
		},
	})
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	views, err := h.service.GetAllUsers(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
		"count":   len(views),
	})
}
