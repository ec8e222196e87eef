package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MoviesCatalogAPI/internal/database"
)

// HealthHandler answers liveness probes with the database reachability.
type HealthHandler struct {
	DB *database.DB
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

func (h *HealthHandler) Health(ctx *gin.Context) {
	if err := h.DB.Ping(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "available"})
}
