package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xaramillo/crossfit/internal/domain"
	"github.com/xaramillo/crossfit/internal/service"
)

// RecordHandler serves the two record logs: add, browse/filter, delete.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// --- Request Structs ---

type AddWeightliftRequest struct {
	Movement string  `json:"movement" binding:"required"`
	Weight   float64 `json:"weight" binding:"required,gt=0"`
	Unit     string  `json:"unit" binding:"required,oneof=lbs kg"`
	Notes    string  `json:"notes"`
	// OwnerID lets an admin record on another user's behalf; everyone
	// else must leave it unset or equal to their own id.
	OwnerID int64 `json:"ownerId"`
}

type AddBenchmarkRequest struct {
	Workout     string `json:"workout" binding:"required"`
	TimeMinutes int    `json:"timeMinutes" binding:"min=0"`
	TimeSeconds int    `json:"timeSeconds" binding:"min=0,max=59"`
	Rounds      int    `json:"rounds" binding:"min=0"`
	Reps        int    `json:"reps" binding:"min=0"`
	Notes       string `json:"notes"`
	OwnerID     int64  `json:"ownerId"`
}

// --- Handler Methods ---

// Catalog returns the closed movement and benchmark name sets the add
// forms choose from.
func (h *RecordHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"movements":  domain.WeightliftMovements,
		"benchmarks": domain.BenchmarkWorkouts,
	})
}

// ListWeightlifts returns lifting history, newest first. Query params:
// user_id (coach/admin: someone else's history), all=true (coach/admin:
// every user, owner-annotated), movement (filter).
func (h *RecordHandler) ListWeightlifts(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	if c.Query("all") == "true" {
		records, err := h.recordService.ListAllWeightlifts(c.Request.Context(), actor)
		if err != nil {
			mapServiceError(c, err)
			return
		}
		movement := c.Query("movement")
		filtered := records[:0]
		for _, rec := range records {
			if movement == "" || rec.Movement == movement {
				filtered = append(filtered, rec)
			}
		}
		c.JSON(http.StatusOK, gin.H{"records": filtered})
		return
	}

	ownerID, ok := resolveOwnerID(c, actor)
	if !ok {
		return
	}

	records, err := h.recordService.ListWeightlifts(c.Request.Context(), actor, ownerID)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	movement := c.Query("movement")
	filtered := records[:0]
	for _, rec := range records {
		if movement == "" || rec.Movement == movement {
			filtered = append(filtered, rec)
		}
	}
	c.JSON(http.StatusOK, gin.H{"records": filtered})
}

// AddWeightlift appends a lifting attempt.
func (h *RecordHandler) AddWeightlift(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	var req AddWeightliftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ownerID := req.OwnerID
	if ownerID == 0 {
		ownerID = actor.UserID
	}

	record, err := h.recordService.AddWeightlift(c.Request.Context(), actor, ownerID, service.NewWeightlift{
		Movement: req.Movement,
		Weight:   req.Weight,
		Unit:     req.Unit,
		Notes:    req.Notes,
	})
	if err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// DeleteWeightlift deletes one lifting record. Succeeds even when nothing
// matched; that ambiguity is part of the contract.
func (h *RecordHandler) DeleteWeightlift(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	recordID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid record id")
		return
	}

	if err := h.recordService.DeleteWeightlift(c.Request.Context(), actor, recordID); err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ListBenchmarks returns benchmark history, newest first. Same query
// params as ListWeightlifts with workout instead of movement.
func (h *RecordHandler) ListBenchmarks(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	if c.Query("all") == "true" {
		records, err := h.recordService.ListAllBenchmarks(c.Request.Context(), actor)
		if err != nil {
			mapServiceError(c, err)
			return
		}
		workout := c.Query("workout")
		filtered := records[:0]
		for _, rec := range records {
			if workout == "" || rec.Workout == workout {
				filtered = append(filtered, rec)
			}
		}
		c.JSON(http.StatusOK, gin.H{"records": filtered})
		return
	}

	ownerID, ok := resolveOwnerID(c, actor)
	if !ok {
		return
	}

	records, err := h.recordService.ListBenchmarks(c.Request.Context(), actor, ownerID)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	workout := c.Query("workout")
	filtered := records[:0]
	for _, rec := range records {
		if workout == "" || rec.Workout == workout {
			filtered = append(filtered, rec)
		}
	}
	c.JSON(http.StatusOK, gin.H{"records": filtered})
}

// AddBenchmark appends a benchmark attempt.
func (h *RecordHandler) AddBenchmark(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	var req AddBenchmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ownerID := req.OwnerID
	if ownerID == 0 {
		ownerID = actor.UserID
	}

	record, err := h.recordService.AddBenchmark(c.Request.Context(), actor, ownerID, service.NewBenchmark{
		Workout:     req.Workout,
		TimeMinutes: req.TimeMinutes,
		TimeSeconds: req.TimeSeconds,
		Rounds:      req.Rounds,
		Reps:        req.Reps,
		Notes:       req.Notes,
	})
	if err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// DeleteBenchmark deletes one benchmark record.
func (h *RecordHandler) DeleteBenchmark(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	recordID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid record id")
		return
	}

	if err := h.recordService.DeleteBenchmark(c.Request.Context(), actor, recordID); err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// --- Helpers shared by handlers ---

// resolveOwnerID picks whose records the request targets: the user_id
// query param when present, otherwise the actor itself. Reports false
// after writing the response on a bad parameter.
func resolveOwnerID(c *gin.Context, actor domain.Actor) (int64, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return actor.UserID, true
	}
	ownerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user_id")
		return 0, false
	}
	return ownerID, true
}

// mapServiceError translates the service error taxonomy to HTTP statuses.
// Authorization failures stay generic on purpose.
func mapServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, "denied")
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrUnknownMovement),
		errors.Is(err, service.ErrUnknownWorkout),
		errors.Is(err, service.ErrInvalidRole):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateUsername):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
