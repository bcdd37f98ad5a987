package domain

import "time"

// Weight units. Values are stored as entered and never converted; PR
// comparisons happen on raw numbers within a single movement.
const (
	UnitLbs = "lbs"
	UnitKg  = "kg"
)

// ValidUnit reports whether unit is one of the two accepted weight units.
func ValidUnit(unit string) bool {
	return unit == UnitLbs || unit == UnitKg
}

// WeightliftRecord is one logged attempt at a named lifting movement.
// Records are append-only: created, possibly deleted, never updated.
type WeightliftRecord struct {
	ID         int64     `bson:"_id" json:"id"`
	UserID     int64     `bson:"userId" json:"userId"`
	Movement   string    `bson:"movement" json:"movement"`
	Weight     float64   `bson:"weight" json:"weight"`
	Unit       string    `bson:"unit" json:"unit"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	RecordedAt time.Time `bson:"recordedAt" json:"recordedAt"`
}

// BenchmarkRecord is one logged attempt at a named benchmark workout.
// A zero elapsed time with nonzero Rounds/Reps is an AMRAP-style score.
type BenchmarkRecord struct {
	ID          int64     `bson:"_id" json:"id"`
	UserID      int64     `bson:"userId" json:"userId"`
	Workout     string    `bson:"workout" json:"workout"`
	TimeMinutes int       `bson:"timeMinutes" json:"timeMinutes"`
	TimeSeconds int       `bson:"timeSeconds" json:"timeSeconds"`
	Rounds      int       `bson:"rounds" json:"rounds"`
	Reps        int       `bson:"reps" json:"reps"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	RecordedAt  time.Time `bson:"recordedAt" json:"recordedAt"`
}

// TotalSeconds returns the elapsed time collapsed to seconds. Zero is the
// degenerate value typical of pure-AMRAP entries.
func (r *BenchmarkRecord) TotalSeconds() int {
	return r.TimeMinutes*60 + r.TimeSeconds
}

// OwnedWeightliftRecord is a weightlift row joined with its owner's
// identity, as returned by the all-users listing.
type OwnedWeightliftRecord struct {
	WeightliftRecord `bson:",inline"`
	Username         string `bson:"username" json:"username"`
	FullName         string `bson:"fullName,omitempty" json:"fullName,omitempty"`
}

// OwnedBenchmarkRecord is a benchmark row joined with its owner's identity.
type OwnedBenchmarkRecord struct {
	BenchmarkRecord `bson:",inline"`
	Username        string `bson:"username" json:"username"`
	FullName        string `bson:"fullName,omitempty" json:"fullName,omitempty"`
}
