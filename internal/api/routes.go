package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xaramillo/crossfit/internal/domain"
	"github.com/xaramillo/crossfit/internal/service"
	"github.com/xaramillo/crossfit/internal/storage"
)

// SetupRoutes wires handlers and middleware onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	recordService service.RecordService,
	prService service.PRService,
	userService service.UserService,
	archiveStore storage.ArchiveStore,
) {
	authHandler := NewAuthHandler(authService)
	recordHandler := NewRecordHandler(recordService)
	progressHandler := NewProgressHandler(prService)
	adminHandler := NewAdminHandler(userService, archiveStore)

	router.Use(RequestIDMiddleware(), RequestLogger())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", authHandler.Me)
		protected.PUT("/me/password", authHandler.ChangePassword)
		protected.GET("/catalog", recordHandler.Catalog)

		// Dashboard and progress charts
		protected.GET("/dashboard", progressHandler.Dashboard)
		protected.GET("/progress/weightlifts", progressHandler.WeightliftTrend)
		protected.GET("/progress/benchmarks", progressHandler.BenchmarkTrend)

		// Record logs
		weightliftGroup := protected.Group("/weightlifts")
		{
			weightliftGroup.GET("", recordHandler.ListWeightlifts)
			weightliftGroup.POST("", recordHandler.AddWeightlift)
			weightliftGroup.DELETE("/:id", recordHandler.DeleteWeightlift)
		}

		benchmarkGroup := protected.Group("/benchmarks")
		{
			benchmarkGroup.GET("", recordHandler.ListBenchmarks)
			benchmarkGroup.POST("", recordHandler.AddBenchmark)
			benchmarkGroup.DELETE("/:id", recordHandler.DeleteBenchmark)
		}

		// Admin-only user management and bulk import.
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.POST("/users", adminHandler.CreateUser)
			adminGroup.PUT("/users/:id/role", adminHandler.UpdateRole)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
			adminGroup.POST("/import", adminHandler.Import)
		}
	}
}
