// Package handler exposes the meshd HTTP surface.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mantle3d/mantle/internal/meshd/usecase"
)

const internalServerErrorText = "the server encountered an error and could not process your request"

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	validate    *validator.Validate
	meshUseCase *usecase.MeshUseCase
	logger      *zap.SugaredLogger
	maxLevel    int
}

func NewHandler(v *validator.Validate, uc *usecase.MeshUseCase, logger *zap.SugaredLogger, maxLevel int) *Handler {
	return &Handler{
		validate:    v,
		meshUseCase: uc,
		logger:      logger,
		maxLevel:    maxLevel,
	}
}

func (h *Handler) respondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, errorResponse{Error: message})
}

func (h *Handler) respondWithInternalServerError(c *gin.Context) {
	h.respondWithError(c, http.StatusInternalServerError, internalServerErrorText)
}
