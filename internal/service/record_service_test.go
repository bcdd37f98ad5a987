package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xaramillo/crossfit/internal/domain"
)

func newRecordFixture(t *testing.T) (RecordService, *memWeightliftRepo, *memBenchmarkRepo, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	lifts := newMemWeightliftRepo(users)
	benches := newMemBenchmarkRepo(users)
	return NewRecordService(lifts, benches), lifts, benches, users
}

var (
	userA = domain.Actor{UserID: 1, Role: domain.RoleUser}
	userB = domain.Actor{UserID: 2, Role: domain.RoleUser}
	coach = domain.Actor{UserID: 3, Role: domain.RoleCoach}
	admin = domain.Actor{UserID: 4, Role: domain.RoleAdmin}
)

func TestAddWeightliftValidation(t *testing.T) {
	svc, _, _, _ := newRecordFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   NewWeightlift
		want error
	}{
		{"unknown movement", NewWeightlift{Movement: "Bicep Curl", Weight: 50, Unit: "lbs"}, ErrUnknownMovement},
		{"zero weight", NewWeightlift{Movement: "Back Squat", Weight: 0, Unit: "lbs"}, ErrValidationFailed},
		{"negative weight", NewWeightlift{Movement: "Back Squat", Weight: -10, Unit: "lbs"}, ErrValidationFailed},
		{"bad unit", NewWeightlift{Movement: "Back Squat", Weight: 100, Unit: "stone"}, ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddWeightlift(ctx, userA, userA.UserID, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	rec, err := svc.AddWeightlift(ctx, userA, userA.UserID, NewWeightlift{Movement: "Back Squat", Weight: 185, Unit: "lbs"})
	if err != nil {
		t.Fatalf("valid AddWeightlift: %v", err)
	}
	if rec.ID == 0 || rec.RecordedAt.IsZero() {
		t.Error("record missing id or server-side timestamp")
	}
}

func TestAddBenchmarkRequiresTimeOrRounds(t *testing.T) {
	svc, _, _, _ := newRecordFixture(t)
	ctx := context.Background()

	if _, err := svc.AddBenchmark(ctx, userA, userA.UserID, NewBenchmark{Workout: "Fran"}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("all-zero benchmark: err = %v, want ErrValidationFailed", err)
	}
	if _, err := svc.AddBenchmark(ctx, userA, userA.UserID, NewBenchmark{Workout: "Nope", TimeMinutes: 5}); !errors.Is(err, ErrUnknownWorkout) {
		t.Errorf("unknown workout: err = %v, want ErrUnknownWorkout", err)
	}
	// Rounds alone is a valid AMRAP entry.
	if _, err := svc.AddBenchmark(ctx, userA, userA.UserID, NewBenchmark{Workout: "Cindy", Rounds: 20}); err != nil {
		t.Errorf("rounds-only benchmark: %v", err)
	}
}

func TestCoachIsViewOnly(t *testing.T) {
	svc, lifts, _, _ := newRecordFixture(t)
	ctx := context.Background()

	addLift(t, lifts, userA.UserID, "Deadlift", 315)

	// Coach sees everyone's history.
	if _, err := svc.ListWeightlifts(ctx, coach, userA.UserID); err != nil {
		t.Errorf("coach viewing user history: %v", err)
	}
	if _, err := svc.ListAllWeightlifts(ctx, coach); err != nil {
		t.Errorf("coach viewing all histories: %v", err)
	}

	// But cannot log records, not even their own.
	if _, err := svc.AddWeightlift(ctx, coach, coach.UserID, NewWeightlift{Movement: "Clean", Weight: 135, Unit: "lbs"}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("coach adding own record: err = %v, want ErrPermissionDenied", err)
	}
	if err := svc.DeleteWeightlift(ctx, coach, 1); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("coach deleting record: err = %v, want ErrPermissionDenied", err)
	}
}

func TestUserCannotTouchOthersRecords(t *testing.T) {
	svc, lifts, _, _ := newRecordFixture(t)
	ctx := context.Background()

	id := addLift(t, lifts, userA.UserID, "Deadlift", 315)

	if _, err := svc.ListWeightlifts(ctx, userB, userA.UserID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("user viewing another user's history: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.ListAllWeightlifts(ctx, userB); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("user viewing all histories: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.AddWeightlift(ctx, userB, userA.UserID, NewWeightlift{Movement: "Clean", Weight: 95, Unit: "lbs"}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("user adding record for another owner: err = %v, want ErrPermissionDenied", err)
	}

	// A non-owner delete attempt is a silent no-op that changes nothing.
	if err := svc.DeleteWeightlift(ctx, userB, id); err != nil {
		t.Fatalf("non-owner delete: %v", err)
	}
	records, err := svc.ListWeightlifts(ctx, userA, userA.UserID)
	if err != nil {
		t.Fatalf("ListWeightlifts: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("record store changed by non-owner delete: %d records, want 1", len(records))
	}
}

func TestOwnerDeleteAndRepeatNoOp(t *testing.T) {
	svc, lifts, _, _ := newRecordFixture(t)
	ctx := context.Background()

	id := addLift(t, lifts, userA.UserID, "Thruster", 95)

	if err := svc.DeleteWeightlift(ctx, userA, id); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	records, err := svc.ListWeightlifts(ctx, userA, userA.UserID)
	if err != nil {
		t.Fatalf("ListWeightlifts: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("record still listed after delete")
	}

	// Deleting the same id again succeeds; callers cannot distinguish
	// "deleted" from "nothing matched".
	if err := svc.DeleteWeightlift(ctx, userA, id); err != nil {
		t.Errorf("repeat delete: err = %v, want nil", err)
	}
}

func TestAdminWritesForOthers(t *testing.T) {
	svc, _, _, _ := newRecordFixture(t)
	ctx := context.Background()

	rec, err := svc.AddWeightlift(ctx, admin, userA.UserID, NewWeightlift{Movement: "Snatch", Weight: 155, Unit: "lbs"})
	if err != nil {
		t.Fatalf("admin adding for another owner: %v", err)
	}
	if rec.UserID != userA.UserID {
		t.Errorf("record owner = %d, want %d", rec.UserID, userA.UserID)
	}

	if err := svc.DeleteWeightlift(ctx, admin, rec.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	records, err := svc.ListWeightlifts(ctx, userA, userA.UserID)
	if err != nil {
		t.Fatalf("ListWeightlifts: %v", err)
	}
	if len(records) != 0 {
		t.Error("admin delete left the record behind")
	}
}

func TestListAllAnnotatesOwner(t *testing.T) {
	svc, lifts, _, users := newRecordFixture(t)
	ctx := context.Background()

	if _, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "x", Role: domain.RoleUser}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	addLift(t, lifts, 1, "Back Squat", 185)
	addLift(t, lifts, 1, "Back Squat", 205)
	addLift(t, lifts, 1, "Back Squat", 195)

	rows, err := svc.ListAllWeightlifts(ctx, admin)
	if err != nil {
		t.Fatalf("ListAllWeightlifts: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for _, row := range rows {
		if row.Username != "alice" {
			t.Errorf("row %d username = %q, want alice", row.ID, row.Username)
		}
	}
	// Newest first.
	if rows[0].ID < rows[1].ID || rows[1].ID < rows[2].ID {
		t.Error("rows not ordered newest first")
	}
}
