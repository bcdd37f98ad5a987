package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xaramillo/crossfit/internal/service"
)

// ProgressHandler serves the dashboard (current PRs) and the trend lines
// behind the progress charts.
type ProgressHandler struct {
	prService service.PRService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(prService service.PRService) *ProgressHandler {
	return &ProgressHandler{prService: prService}
}

// Dashboard returns the current PRs for both categories. Coach/admin may
// pass ?user_id= to view someone else's dashboard.
func (h *ProgressHandler) Dashboard(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	ownerID, ok := resolveOwnerID(c, actor)
	if !ok {
		return
	}

	weightliftPRs, err := h.prService.CurrentWeightliftPRs(c.Request.Context(), actor, ownerID)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	benchmarkPRs, err := h.prService.CurrentBenchmarkPRs(c.Request.Context(), actor, ownerID)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":        ownerID,
		"weightliftPrs": weightliftPRs,
		"benchmarkPrs":  benchmarkPRs,
	})
}

// WeightliftTrend returns one weight-over-time line for ?movement=.
func (h *ProgressHandler) WeightliftTrend(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	movement := c.Query("movement")
	if movement == "" {
		abortWithError(c, http.StatusBadRequest, "movement query parameter is required")
		return
	}

	ownerID, ok := resolveOwnerID(c, actor)
	if !ok {
		return
	}

	points, err := h.prService.WeightliftTrend(c.Request.Context(), actor, ownerID, movement)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movement": movement, "points": points})
}

// BenchmarkTrend returns one elapsed-seconds-over-time line for ?workout=.
// Lower is better.
func (h *ProgressHandler) BenchmarkTrend(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	workout := c.Query("workout")
	if workout == "" {
		abortWithError(c, http.StatusBadRequest, "workout query parameter is required")
		return
	}

	ownerID, ok := resolveOwnerID(c, actor)
	if !ok {
		return
	}

	points, err := h.prService.BenchmarkTrend(c.Request.Context(), actor, ownerID, workout)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workout": workout, "points": points})
}
