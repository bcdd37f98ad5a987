package service

import (
	"context"

	"github.com/xaramillo/crossfit/internal/domain"
	"github.com/xaramillo/crossfit/internal/repository"
)

// TrendPoint is one sample of a progress line: a record's timestamp and its
// score. For weightlifts the value is the raw weight; for benchmarks it is
// elapsed seconds, lower is better.
type TrendPoint struct {
	RecordID   int64   `json:"recordId"`
	RecordedAt string  `json:"recordedAt"`
	Value      float64 `json:"value"`
}

// --- Service Interface ---

// PRService derives "current personal record" views from the full history.
// Both aggregations are pure linear reductions recomputed on every call;
// nothing is cached. Adequate for a few hundred records per user.
type PRService interface {
	CurrentWeightliftPRs(ctx context.Context, actor domain.Actor, ownerID int64) (map[string]domain.WeightliftRecord, error)
	CurrentBenchmarkPRs(ctx context.Context, actor domain.Actor, ownerID int64) (map[string]domain.BenchmarkRecord, error)
	WeightliftTrend(ctx context.Context, actor domain.Actor, ownerID int64, movement string) ([]TrendPoint, error)
	BenchmarkTrend(ctx context.Context, actor domain.Actor, ownerID int64, workout string) ([]TrendPoint, error)
}

// --- Service Implementation ---

type prService struct {
	weightliftRepo repository.WeightliftRepository
	benchmarkRepo  repository.BenchmarkRepository
}

// NewPRService creates a new instance of prService.
func NewPRService(weightliftRepo repository.WeightliftRepository, benchmarkRepo repository.BenchmarkRepository) PRService {
	return &prService{
		weightliftRepo: weightliftRepo,
		benchmarkRepo:  benchmarkRepo,
	}
}

// CurrentWeightliftPRs returns, per movement, the owner's heaviest record.
// The scan runs in insertion order with a strictly-greater comparison, so
// when several records share the max weight the first-inserted one wins.
func (s *prService) CurrentWeightliftPRs(ctx context.Context, actor domain.Actor, ownerID int64) (map[string]domain.WeightliftRecord, error) {
	if !actor.CanViewRecordsOf(ownerID) {
		return nil, ErrPermissionDenied
	}

	records, err := s.weightliftRepo.ListByOwnerChronological(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return ReduceWeightliftPRs(records), nil
}

// CurrentBenchmarkPRs returns, per workout, the owner's best record.
func (s *prService) CurrentBenchmarkPRs(ctx context.Context, actor domain.Actor, ownerID int64) (map[string]domain.BenchmarkRecord, error) {
	if !actor.CanViewRecordsOf(ownerID) {
		return nil, ErrPermissionDenied
	}

	records, err := s.benchmarkRepo.ListByOwnerChronological(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return ReduceBenchmarkPRs(records), nil
}

// ReduceWeightliftPRs folds a chronological record sequence into the best
// record per movement (numerically greatest weight, first-seen on ties).
func ReduceWeightliftPRs(records []domain.WeightliftRecord) map[string]domain.WeightliftRecord {
	prs := make(map[string]domain.WeightliftRecord)
	for _, rec := range records {
		best, ok := prs[rec.Movement]
		if !ok || rec.Weight > best.Weight {
			prs[rec.Movement] = rec
		}
	}
	return prs
}

// ReduceBenchmarkPRs folds a chronological record sequence into the best
// record per workout: the minimum strictly-positive total time.
//
// The zero-time asymmetry is intentional. A zero-total record (a pure-AMRAP
// entry scored by rounds/reps) installs as the first best for its workout
// and is displaced by any later positive time, but a later zero-total
// record never displaces a positive-time best. Rounds/reps scores are not
// comparable to time scores, so between two zero-time entries the
// first-recorded one stands.
func ReduceBenchmarkPRs(records []domain.BenchmarkRecord) map[string]domain.BenchmarkRecord {
	prs := make(map[string]domain.BenchmarkRecord)
	for _, rec := range records {
		best, ok := prs[rec.Workout]
		if !ok {
			prs[rec.Workout] = rec
			continue
		}

		total := rec.TotalSeconds()
		if total <= 0 {
			continue
		}
		if bestTotal := best.TotalSeconds(); bestTotal == 0 || total < bestTotal {
			prs[rec.Workout] = rec
		}
	}
	return prs
}

// WeightliftTrend returns the owner's chronological weight series for one
// movement, ready for a weight-over-time line.
func (s *prService) WeightliftTrend(ctx context.Context, actor domain.Actor, ownerID int64, movement string) ([]TrendPoint, error) {
	if !actor.CanViewRecordsOf(ownerID) {
		return nil, ErrPermissionDenied
	}
	if !domain.ValidMovement(movement) {
		return nil, ErrUnknownMovement
	}

	records, err := s.weightliftRepo.ListByOwnerChronological(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	points := []TrendPoint{}
	for _, rec := range records {
		if rec.Movement != movement {
			continue
		}
		points = append(points, TrendPoint{
			RecordID:   rec.ID,
			RecordedAt: rec.RecordedAt.Format("2006-01-02 15:04:05"),
			Value:      rec.Weight,
		})
	}
	return points, nil
}

// BenchmarkTrend returns the owner's chronological elapsed-seconds series
// for one workout. Zero-total AMRAP entries are part of the series; the
// consumer decides how to render them.
func (s *prService) BenchmarkTrend(ctx context.Context, actor domain.Actor, ownerID int64, workout string) ([]TrendPoint, error) {
	if !actor.CanViewRecordsOf(ownerID) {
		return nil, ErrPermissionDenied
	}
	if !domain.ValidWorkout(workout) {
		return nil, ErrUnknownWorkout
	}

	records, err := s.benchmarkRepo.ListByOwnerChronological(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	points := []TrendPoint{}
	for _, rec := range records {
		if rec.Workout != workout {
			continue
		}
		points = append(points, TrendPoint{
			RecordID:   rec.ID,
			RecordedAt: rec.RecordedAt.Format("2006-01-02 15:04:05"),
			Value:      float64(rec.TotalSeconds()),
		})
	}
	return points, nil
}
