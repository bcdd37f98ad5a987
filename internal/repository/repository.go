package repository

import (
	"context"

	"github.com/xaramillo/crossfit/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound          = RepositoryError("not found")
	ErrDuplicateUsername = RepositoryError("username already exists")
	ErrUpdateFailed      = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository is the credential store: a keyed lookup table for
// accounts. It performs no hashing and no policy checks; those are the
// callers' responsibility.
type UserRepository interface {
	// Create inserts a new user and returns its assigned id.
	// A taken username yields ErrDuplicateUsername.
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// List returns all users ordered by username.
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	// Delete removes the user row only. Cascading the user's records is
	// orchestrated by the service layer via the record repositories.
	Delete(ctx context.Context, id int64) error
}

// WeightliftRepository persists the weightlift attempt log.
type WeightliftRepository interface {
	Create(ctx context.Context, rec *domain.WeightliftRecord) (int64, error)
	// ListByOwner returns the owner's records newest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.WeightliftRecord, error)
	// ListByOwnerChronological returns the owner's records in insertion
	// order (ascending id). The PR aggregation depends on this ordering.
	ListByOwnerChronological(ctx context.Context, ownerID int64) ([]domain.WeightliftRecord, error)
	// ListAll returns every record joined with its owner's identity,
	// newest first.
	ListAll(ctx context.Context) ([]domain.OwnedWeightliftRecord, error)
	// Delete removes the record when the actor owns it or acts as admin.
	// Deleting a nonexistent or not-owned record is a no-op, not an error.
	Delete(ctx context.Context, recordID, actingUserID int64, actingIsAdmin bool) error
	DeleteByOwner(ctx context.Context, ownerID int64) error
}

// BenchmarkRepository persists the benchmark attempt log.
type BenchmarkRepository interface {
	Create(ctx context.Context, rec *domain.BenchmarkRecord) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.BenchmarkRecord, error)
	ListByOwnerChronological(ctx context.Context, ownerID int64) ([]domain.BenchmarkRecord, error)
	ListAll(ctx context.Context) ([]domain.OwnedBenchmarkRecord, error)
	Delete(ctx context.Context, recordID, actingUserID int64, actingIsAdmin bool) error
	DeleteByOwner(ctx context.Context, ownerID int64) error
}
