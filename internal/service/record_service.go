package service

import (
	"context"
	"errors"

	"github.com/xaramillo/crossfit/internal/domain"
	"github.com/xaramillo/crossfit/internal/repository"
)

// --- Error Definitions ---
var (
	ErrPermissionDenied = errors.New("denied")
	ErrValidationFailed = errors.New("validation failed")
	ErrUnknownMovement  = errors.New("unknown movement")
	ErrUnknownWorkout   = errors.New("unknown benchmark workout")
)

// NewWeightlift is a candidate weightlift record as collected from the
// actor; id and timestamp are assigned at append time.
type NewWeightlift struct {
	Movement string
	Weight   float64
	Unit     string
	Notes    string
}

// NewBenchmark is a candidate benchmark record.
type NewBenchmark struct {
	Workout     string
	TimeMinutes int
	TimeSeconds int
	Rounds      int
	Reps        int
	Notes       string
}

// --- Service Interface ---

// RecordService is the policy-checked front of the two record logs. Every
// method takes the acting identity explicitly.
type RecordService interface {
	AddWeightlift(ctx context.Context, actor domain.Actor, ownerID int64, in NewWeightlift) (*domain.WeightliftRecord, error)
	AddBenchmark(ctx context.Context, actor domain.Actor, ownerID int64, in NewBenchmark) (*domain.BenchmarkRecord, error)

	ListWeightlifts(ctx context.Context, actor domain.Actor, ownerID int64) ([]domain.WeightliftRecord, error)
	ListBenchmarks(ctx context.Context, actor domain.Actor, ownerID int64) ([]domain.BenchmarkRecord, error)
	ListAllWeightlifts(ctx context.Context, actor domain.Actor) ([]domain.OwnedWeightliftRecord, error)
	ListAllBenchmarks(ctx context.Context, actor domain.Actor) ([]domain.OwnedBenchmarkRecord, error)

	// DeleteWeightlift and DeleteBenchmark succeed whether or not a row
	// matched: the caller cannot distinguish "deleted" from "nothing
	// matched". That ambiguity is the contract, not an accident.
	DeleteWeightlift(ctx context.Context, actor domain.Actor, recordID int64) error
	DeleteBenchmark(ctx context.Context, actor domain.Actor, recordID int64) error
}

// --- Service Implementation ---

type recordService struct {
	weightliftRepo repository.WeightliftRepository
	benchmarkRepo  repository.BenchmarkRepository
}

// NewRecordService creates a new instance of recordService.
func NewRecordService(weightliftRepo repository.WeightliftRepository, benchmarkRepo repository.BenchmarkRepository) RecordService {
	return &recordService{
		weightliftRepo: weightliftRepo,
		benchmarkRepo:  benchmarkRepo,
	}
}

// AddWeightlift validates and appends a lifting attempt for ownerID.
func (s *recordService) AddWeightlift(ctx context.Context, actor domain.Actor, ownerID int64, in NewWeightlift) (*domain.WeightliftRecord, error) {
	if !actor.CanWriteRecordsOf(ownerID) {
		return nil, ErrPermissionDenied
	}
	if !domain.ValidMovement(in.Movement) {
		return nil, ErrUnknownMovement
	}
	if in.Weight <= 0 {
		return nil, ErrValidationFailed
	}
	if !domain.ValidUnit(in.Unit) {
		return nil, ErrValidationFailed
	}

	rec := &domain.WeightliftRecord{
		UserID:   ownerID,
		Movement: in.Movement,
		Weight:   in.Weight,
		Unit:     in.Unit,
		Notes:    in.Notes,
	}
	if _, err := s.weightliftRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// AddBenchmark validates and appends a benchmark attempt for ownerID.
// A result needs a time or a round count; all-zero entries are rejected.
func (s *recordService) AddBenchmark(ctx context.Context, actor domain.Actor, ownerID int64, in NewBenchmark) (*domain.BenchmarkRecord, error) {
	if !actor.CanWriteRecordsOf(ownerID) {
		return nil, ErrPermissionDenied
	}
	if !domain.ValidWorkout(in.Workout) {
		return nil, ErrUnknownWorkout
	}
	if in.TimeMinutes < 0 || in.TimeSeconds < 0 || in.Rounds < 0 || in.Reps < 0 {
		return nil, ErrValidationFailed
	}
	if in.TimeMinutes == 0 && in.TimeSeconds == 0 && in.Rounds == 0 {
		return nil, ErrValidationFailed
	}

	rec := &domain.BenchmarkRecord{
		UserID:      ownerID,
		Workout:     in.Workout,
		TimeMinutes: in.TimeMinutes,
		TimeSeconds: in.TimeSeconds,
		Rounds:      in.Rounds,
		Reps:        in.Reps,
		Notes:       in.Notes,
	}
	if _, err := s.benchmarkRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListWeightlifts returns ownerID's lifting history, newest first.
func (s *recordService) ListWeightlifts(ctx context.Context, actor domain.Actor, ownerID int64) ([]domain.WeightliftRecord, error) {
	if !actor.CanViewRecordsOf(ownerID) {
		return nil, ErrPermissionDenied
	}
	return s.weightliftRepo.ListByOwner(ctx, ownerID)
}

// ListBenchmarks returns ownerID's benchmark history, newest first.
func (s *recordService) ListBenchmarks(ctx context.Context, actor domain.Actor, ownerID int64) ([]domain.BenchmarkRecord, error) {
	if !actor.CanViewRecordsOf(ownerID) {
		return nil, ErrPermissionDenied
	}
	return s.benchmarkRepo.ListByOwner(ctx, ownerID)
}

// ListAllWeightlifts returns every user's lifting history annotated with
// owner identity. Coach and admin only.
func (s *recordService) ListAllWeightlifts(ctx context.Context, actor domain.Actor) ([]domain.OwnedWeightliftRecord, error) {
	if !actor.Role.Can(domain.CapViewAllRecords) {
		return nil, ErrPermissionDenied
	}
	return s.weightliftRepo.ListAll(ctx)
}

// ListAllBenchmarks returns every user's benchmark history annotated with
// owner identity. Coach and admin only.
func (s *recordService) ListAllBenchmarks(ctx context.Context, actor domain.Actor) ([]domain.OwnedBenchmarkRecord, error) {
	if !actor.Role.Can(domain.CapViewAllRecords) {
		return nil, ErrPermissionDenied
	}
	return s.benchmarkRepo.ListAll(ctx)
}

// DeleteWeightlift removes a lifting record within the actor's write scope.
func (s *recordService) DeleteWeightlift(ctx context.Context, actor domain.Actor, recordID int64) error {
	if !actor.Role.Can(domain.CapWriteOwnRecords) {
		return ErrPermissionDenied
	}
	return s.weightliftRepo.Delete(ctx, recordID, actor.UserID, actor.Role.Can(domain.CapWriteAnyRecords))
}

// DeleteBenchmark removes a benchmark record within the actor's write scope.
func (s *recordService) DeleteBenchmark(ctx context.Context, actor domain.Actor, recordID int64) error {
	if !actor.Role.Can(domain.CapWriteOwnRecords) {
		return ErrPermissionDenied
	}
	return s.benchmarkRepo.Delete(ctx, recordID, actor.UserID, actor.Role.Can(domain.CapWriteAnyRecords))
}
