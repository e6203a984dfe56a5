package services

const exerciseWithoutHistory = "Relax and stretch."

// ExerciseGuide recommends a workout for phase. Unknown and Luteal share the
// low impact suggestion.
func ExerciseGuide(phase Phase) string {
	switch phase {
	case PhaseMenstrual:
		return "Light Yoga, Walking, Rest."
	case PhaseFollicular:
		return "Cardio, Running, HIIT."
	case PhaseOvulation:
		return "High Intensity, Strength Training."
	default:
		return "Low Impact, Pilates, Swimming."
	}
}
