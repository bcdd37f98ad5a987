package service

import (
	"context"
	"sort"
	"time"

	"github.com/xaramillo/crossfit/internal/domain"
	"github.com/xaramillo/crossfit/internal/repository"
)

// In-memory repository fakes mirroring the persistence contracts:
// sequential ids, server-side timestamps, owner-scoped silent-no-op
// deletes.

type memUserRepo struct {
	nextID int64
	users  map[int64]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return 0, repository.ErrDuplicateUsername
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := u
	return &found, nil
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	r.users[id] = u
	return nil
}

func (r *memUserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	r.users[id] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memWeightliftRepo struct {
	nextID  int64
	records []domain.WeightliftRecord
	users   *memUserRepo
}

func newMemWeightliftRepo(users *memUserRepo) *memWeightliftRepo {
	return &memWeightliftRepo{users: users}
}

func (r *memWeightliftRepo) Create(_ context.Context, rec *domain.WeightliftRecord) (int64, error) {
	r.nextID++
	rec.ID = r.nextID
	rec.RecordedAt = time.Now().UTC()
	r.records = append(r.records, *rec)
	return rec.ID, nil
}

func (r *memWeightliftRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.WeightliftRecord, error) {
	out := []domain.WeightliftRecord{}
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == ownerID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *memWeightliftRepo) ListByOwnerChronological(_ context.Context, ownerID int64) ([]domain.WeightliftRecord, error) {
	out := []domain.WeightliftRecord{}
	for _, rec := range r.records {
		if rec.UserID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memWeightliftRepo) ListAll(ctx context.Context) ([]domain.OwnedWeightliftRecord, error) {
	out := []domain.OwnedWeightliftRecord{}
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		owned := domain.OwnedWeightliftRecord{WeightliftRecord: rec}
		if r.users != nil {
			if u, err := r.users.GetByID(ctx, rec.UserID); err == nil {
				owned.Username = u.Username
				owned.FullName = u.FullName
			}
		}
		out = append(out, owned)
	}
	return out, nil
}

func (r *memWeightliftRepo) Delete(_ context.Context, recordID, actingUserID int64, actingIsAdmin bool) error {
	for i, rec := range r.records {
		if rec.ID == recordID && (actingIsAdmin || rec.UserID == actingUserID) {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	// No match is a silent success by contract.
	return nil
}

func (r *memWeightliftRepo) DeleteByOwner(_ context.Context, ownerID int64) error {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.UserID != ownerID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return nil
}

type memBenchmarkRepo struct {
	nextID  int64
	records []domain.BenchmarkRecord
	users   *memUserRepo
}

func newMemBenchmarkRepo(users *memUserRepo) *memBenchmarkRepo {
	return &memBenchmarkRepo{users: users}
}

func (r *memBenchmarkRepo) Create(_ context.Context, rec *domain.BenchmarkRecord) (int64, error) {
	r.nextID++
	rec.ID = r.nextID
	rec.RecordedAt = time.Now().UTC()
	r.records = append(r.records, *rec)
	return rec.ID, nil
}

func (r *memBenchmarkRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.BenchmarkRecord, error) {
	out := []domain.BenchmarkRecord{}
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == ownerID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *memBenchmarkRepo) ListByOwnerChronological(_ context.Context, ownerID int64) ([]domain.BenchmarkRecord, error) {
	out := []domain.BenchmarkRecord{}
	for _, rec := range r.records {
		if rec.UserID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memBenchmarkRepo) ListAll(ctx context.Context) ([]domain.OwnedBenchmarkRecord, error) {
	out := []domain.OwnedBenchmarkRecord{}
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		owned := domain.OwnedBenchmarkRecord{BenchmarkRecord: rec}
		if r.users != nil {
			if u, err := r.users.GetByID(ctx, rec.UserID); err == nil {
				owned.Username = u.Username
				owned.FullName = u.FullName
			}
		}
		out = append(out, owned)
	}
	return out, nil
}

func (r *memBenchmarkRepo) Delete(_ context.Context, recordID, actingUserID int64, actingIsAdmin bool) error {
	for i, rec := range r.records {
		if rec.ID == recordID && (actingIsAdmin || rec.UserID == actingUserID) {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memBenchmarkRepo) DeleteByOwner(_ context.Context, ownerID int64) error {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.UserID != ownerID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return nil
}

// Interface conformance checks.
var (
	_ repository.UserRepository       = (*memUserRepo)(nil)
	_ repository.WeightliftRepository = (*memWeightliftRepo)(nil)
	_ repository.BenchmarkRepository  = (*memBenchmarkRepo)(nil)
)
