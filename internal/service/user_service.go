package service

import (
	"context"
	"errors"

	"github.com/xaramillo/crossfit/internal/domain"
	"github.com/xaramillo/crossfit/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)

// WeightliftImport is one flat entry from a legacy weightlift export.
type WeightliftImport struct {
	Movement string  `json:"movement"`
	Weight   float64 `json:"weight"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes"`
}

// BenchmarkImport is one flat entry from a legacy benchmark export.
type BenchmarkImport struct {
	Workout     string `json:"workout"`
	TimeMinutes int    `json:"time_minutes"`
	TimeSeconds int    `json:"time_seconds"`
	Rounds      int    `json:"rounds"`
	Reps        int    `json:"reps"`
	Notes       string `json:"notes"`
}

// ImportResult counts what the bulk import actually inserted per category.
type ImportResult struct {
	Weightlifts int `json:"weightlifts"`
	Benchmarks  int `json:"benchmarks"`
}

// --- Service Interface ---

// UserService covers admin account management and the one-time bulk import.
// All methods are gated on the manage-users capability.
type UserService interface {
	ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error)
	// CreateUser is the admin path and may assign any role, unlike
	// self-service registration.
	CreateUser(ctx context.Context, actor domain.Actor, username, password, fullName string, role domain.Role) (*domain.User, error)
	UpdateRole(ctx context.Context, actor domain.Actor, userID int64, role domain.Role) error
	// DeleteUser removes the account and cascades to every record the
	// user owns, in both categories.
	DeleteUser(ctx context.Context, actor domain.Actor, userID int64) error
	// Import appends two legacy record collections under ownerID and
	// reports how many of each were inserted. The collections arrive
	// in memory; fetching and decoding an external source is the API
	// layer's business.
	Import(ctx context.Context, actor domain.Actor, ownerID int64, weightlifts []WeightliftImport, benchmarks []BenchmarkImport) (ImportResult, error)
}

// --- Service Implementation ---

type userService struct {
	userRepo       repository.UserRepository
	weightliftRepo repository.WeightliftRepository
	benchmarkRepo  repository.BenchmarkRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, weightliftRepo repository.WeightliftRepository, benchmarkRepo repository.BenchmarkRepository) UserService {
	return &userService{
		userRepo:       userRepo,
		weightliftRepo: weightliftRepo,
		benchmarkRepo:  benchmarkRepo,
	}
}

// ListUsers returns every account ordered by username.
func (s *userService) ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !actor.Role.Can(domain.CapManageUsers) {
		return nil, ErrPermissionDenied
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// CreateUser creates an account with an arbitrary role.
func (s *userService) CreateUser(ctx context.Context, actor domain.Actor, username, password, fullName string, role domain.Role) (*domain.User, error) {
	if !actor.Role.Can(domain.CapManageUsers) {
		return nil, ErrPermissionDenied
	}
	if username == "" || password == "" {
		return nil, ErrValidationFailed
	}
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FullName:     fullName,
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateRole promotes or demotes an account.
func (s *userService) UpdateRole(ctx context.Context, actor domain.Actor, userID int64, role domain.Role) error {
	if !actor.Role.Can(domain.CapManageUsers) {
		return ErrPermissionDenied
	}
	if !domain.ValidRole(role) {
		return ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// DeleteUser removes the account and all records it owns.
func (s *userService) DeleteUser(ctx context.Context, actor domain.Actor, userID int64) error {
	if !actor.Role.Can(domain.CapManageUsers) {
		return ErrPermissionDenied
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Cascade. Each statement is atomic on its own; nothing here needs a
	// multi-statement transaction.
	if err := s.weightliftRepo.DeleteByOwner(ctx, userID); err != nil {
		return err
	}
	return s.benchmarkRepo.DeleteByOwner(ctx, userID)
}

// Import appends both legacy collections under ownerID. Entries are taken
// as-is (the legacy exports predate the catalogs being enforced); each
// category counts its own successes and a failing entry stops that
// category without touching the other.
func (s *userService) Import(ctx context.Context, actor domain.Actor, ownerID int64, weightlifts []WeightliftImport, benchmarks []BenchmarkImport) (ImportResult, error) {
	if !actor.Role.Can(domain.CapManageUsers) {
		return ImportResult{}, ErrPermissionDenied
	}
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ImportResult{}, ErrUserNotFound
		}
		return ImportResult{}, err
	}

	var result ImportResult
	for _, entry := range weightlifts {
		rec := &domain.WeightliftRecord{
			UserID:   ownerID,
			Movement: entry.Movement,
			Weight:   entry.Weight,
			Unit:     entry.Unit,
			Notes:    entry.Notes,
		}
		if _, err := s.weightliftRepo.Create(ctx, rec); err != nil {
			break
		}
		result.Weightlifts++
	}

	for _, entry := range benchmarks {
		rec := &domain.BenchmarkRecord{
			UserID:      ownerID,
			Workout:     entry.Workout,
			TimeMinutes: entry.TimeMinutes,
			TimeSeconds: entry.TimeSeconds,
			Rounds:      entry.Rounds,
			Reps:        entry.Reps,
			Notes:       entry.Notes,
		}
		if _, err := s.benchmarkRepo.Create(ctx, rec); err != nil {
			break
		}
		result.Benchmarks++
	}

	return result, nil
}
