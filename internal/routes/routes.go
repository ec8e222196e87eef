package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"MoviesCatalogAPI/internal/handlers"
)

func SetupRouter(movieHandler *handlers.MovieHandler, healthHandler *handlers.HealthHandler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", healthHandler.Health)

	r.GET("/movies", movieHandler.GetMovies)
	r.GET("/movies/:id", movieHandler.GetMovieByID)
	r.POST("/movies", movieHandler.CreateMovie)
	r.PATCH("/movies/:id", movieHandler.UpdateMovie)
	r.DELETE("/movies/:id", movieHandler.DeleteMovie)

	return r
}
