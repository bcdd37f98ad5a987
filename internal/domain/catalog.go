package domain

// The movement and benchmark catalogs are closed sets known at build time.
// They are not persisted; records store the canonical name as a string.

// WeightliftMovements lists the canonical lifting movements.
var WeightliftMovements = []string{
	"Back Squat",
	"Front Squat",
	"Overhead Squat",
	"Deadlift",
	"Bench Press",
	"Shoulder Press",
	"Push Press",
	"Push Jerk",
	"Clean",
	"Clean & Jerk",
	"Snatch",
	"Power Clean",
	"Power Snatch",
	"Thruster",
	"Sumo Deadlift High Pull",
}

// BenchmarkWorkouts lists the canonical benchmark workouts.
var BenchmarkWorkouts = []string{
	"Fran",
	"Cindy",
	"Murph",
	"Helen",
	"Diane",
	"Grace",
	"Isabel",
	"Karen",
	"Annie",
	"Chelsea",
	"DT",
	"Jackie",
	"Mary",
	"Nancy",
	"Eva",
	"Filthy Fifty",
	"Fight Gone Bad",
	"The Seven",
	"Badger",
	"King Kong",
}

var (
	weightliftMovementSet = toSet(WeightliftMovements)
	benchmarkWorkoutSet   = toSet(BenchmarkWorkouts)
)

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// ValidMovement reports whether name is a canonical lifting movement.
func ValidMovement(name string) bool {
	_, ok := weightliftMovementSet[name]
	return ok
}

// ValidWorkout reports whether name is a canonical benchmark workout.
func ValidWorkout(name string) bool {
	_, ok := benchmarkWorkoutSet[name]
	return ok
}
