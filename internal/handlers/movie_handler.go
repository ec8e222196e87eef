package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"MoviesCatalogAPI/internal/database"
	"MoviesCatalogAPI/internal/models"
	"MoviesCatalogAPI/internal/services"
)

// MovieHandler maps the five catalog operations onto HTTP. It owns status
// code selection; the service layer only reports error kinds.
type MovieHandler struct {
	Service *services.MovieService
}

func NewMovieHandler(service *services.MovieService) *MovieHandler {
	return &MovieHandler{Service: service}
}

// GetMovies handles GET /movies with an optional ?genre= filter.
func (h *MovieHandler) GetMovies(ctx *gin.Context) {
	movies, err := h.Service.List(ctx.Request.Context(), ctx.Query("genre"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, movies)
}

// GetMovieByID handles GET /movies/:id.
func (h *MovieHandler) GetMovieByID(ctx *gin.Context) {
	id, ok := movieID(ctx)
	if !ok {
		return
	}
	movie, err := h.Service.Get(ctx.Request.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, movie)
}

// CreateMovie handles POST /movies.
func (h *MovieHandler) CreateMovie(ctx *gin.Context) {
	var input models.CreateMovieInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	movie, err := h.Service.Create(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, movie)
}

// UpdateMovie handles PATCH /movies/:id with a partial payload.
func (h *MovieHandler) UpdateMovie(ctx *gin.Context) {
	id, ok := movieID(ctx)
	if !ok {
		return
	}

	var raw map[string]any
	if err := ctx.ShouldBindJSON(&raw); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields, err := models.ValidatePartialUpdate(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := h.Service.Update(ctx.Request.Context(), id, fields)
	if err != nil {
		if database.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, movie)
}

// DeleteMovie handles DELETE /movies/:id. Deletion is idempotent, so an
// unknown id still answers 204.
func (h *MovieHandler) DeleteMovie(ctx *gin.Context) {
	id, ok := movieID(ctx)
	if !ok {
		return
	}
	if err := h.Service.Delete(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// movieID validates the :id path parameter. A malformed identifier can never
// name a movie, so it answers 404 directly.
func movieID(ctx *gin.Context) (string, bool) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		return "", false
	}
	return id, true
}
