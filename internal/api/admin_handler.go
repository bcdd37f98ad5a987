package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/xaramillo/crossfit/internal/domain"
	"github.com/xaramillo/crossfit/internal/service"
	"github.com/xaramillo/crossfit/internal/storage"
)

// AdminHandler serves user management and the legacy bulk import. The
// archive store is optional; without it the import only accepts inline
// collections.
type AdminHandler struct {
	userService  service.UserService
	archiveStore storage.ArchiveStore
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService service.UserService, archiveStore storage.ArchiveStore) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		archiveStore: archiveStore,
	}
}

// --- Request Structs ---

type CreateUserRequest struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required,min=4"`
	FullName string      `json:"fullName"`
	Role     domain.Role `json:"role" binding:"required,oneof=user coach admin"`
}

type UpdateRoleRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=user coach admin"`
}

// ImportRequest carries the legacy collections either inline or as object
// keys into the configured archive bucket.
type ImportRequest struct {
	OwnerID        int64                      `json:"ownerId" binding:"required"`
	Weightlifts    []service.WeightliftImport `json:"weightlifts"`
	Benchmarks     []service.BenchmarkImport  `json:"benchmarks"`
	WeightliftsKey string                     `json:"weightliftsKey"`
	BenchmarksKey  string                     `json:"benchmarksKey"`
}

// --- Handler Methods ---

// ListUsers returns every account, ordered by username.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), actor)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": responses})
}

// CreateUser creates an account with any role.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), actor, req.Username, req.Password, req.FullName, req.Role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// UpdateRole promotes or demotes an account.
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.userService.UpdateRole(c.Request.Context(), actor, userID, req.Role); err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

// DeleteUser removes an account and cascades to all its records.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actor, userID); err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// Import bulk-loads legacy weightlift and benchmark exports under one
// owner. A category whose source is missing, unreadable or undecodable
// imports zero entries without aborting the other category.
func (h *AdminHandler) Import(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if (req.WeightliftsKey != "" || req.BenchmarksKey != "") && h.archiveStore == nil {
		abortWithError(c, http.StatusBadRequest, "No archive storage configured; supply inline collections")
		return
	}

	weightlifts := req.Weightlifts
	if req.WeightliftsKey != "" {
		weightlifts = fetchArchive[service.WeightliftImport](c, h.archiveStore, req.WeightliftsKey)
	}
	benchmarks := req.Benchmarks
	if req.BenchmarksKey != "" {
		benchmarks = fetchArchive[service.BenchmarkImport](c, h.archiveStore, req.BenchmarksKey)
	}

	result, err := h.userService.Import(c.Request.Context(), actor, req.OwnerID, weightlifts, benchmarks)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"migrated": result})
}

// fetchArchive reads one legacy JSON export from object storage. Any
// failure yields nil so the category imports as zero.
func fetchArchive[T any](c *gin.Context, store storage.ArchiveStore, objectKey string) []T {
	body, err := store.Fetch(c.Request.Context(), objectKey)
	if err != nil {
		log.Warn().Err(err).Str("key", objectKey).Msg("archive fetch failed; importing zero entries for category")
		return nil
	}
	defer body.Close()

	var entries []T
	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		log.Warn().Err(err).Str("key", objectKey).Msg("archive decode failed; importing zero entries for category")
		return nil
	}
	return entries
}
