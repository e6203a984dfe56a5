package services

import (
	"errors"
	"testing"
)

func TestDashboardWithoutHistory(t *testing.T) {
	t.Parallel()

	service := NewDashboardService(NewCycleService(newCycleRepositoryStub(t)), NewDailyLogService(newDailyLogRepositoryStub()))
	dashboard, err := service.Build(mustParseDay(t, "2025-04-01"))
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if dashboard.HasData {
		t.Fatal("expected has_data false without cycles")
	}
	if dashboard.Phase != PhaseUnknown || dashboard.Fertility != FertilityUnknown {
		t.Fatalf("expected Unknown/Unknown, got %s/%s", dashboard.Phase, dashboard.Fertility)
	}
	if dashboard.Exercise != "Relax and stretch." {
		t.Fatalf("unexpected exercise %q", dashboard.Exercise)
	}
	if dashboard.AverageCycleLength != 28 {
		t.Fatalf("expected default average 28, got %d", dashboard.AverageCycleLength)
	}
}

func TestDashboardWithHistory(t *testing.T) {
	t.Parallel()

	cycles := NewCycleService(newCycleRepositoryStub(t, "2023-01-01", "2023-01-29"))
	logs := NewDailyLogService(newDailyLogRepositoryStub())
	if _, err := logs.AddWaterGlass(mustParseDay(t, "2023-02-12")); err != nil {
		t.Fatalf("seed water: %v", err)
	}

	dashboard, err := NewDashboardService(cycles, logs).Build(mustParseDay(t, "2023-02-12"))
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if !dashboard.HasData {
		t.Fatal("expected has_data true")
	}
	if dashboard.LastPeriodDate != "2023-01-29" || dashboard.CycleDay != 15 {
		t.Fatalf("unexpected last period/cycle day %s/%d", dashboard.LastPeriodDate, dashboard.CycleDay)
	}
	if dashboard.Phase != PhaseOvulation || dashboard.Fertility != FertilityHigh {
		t.Fatalf("expected Ovulation/High, got %s/%s", dashboard.Phase, dashboard.Fertility)
	}
	if dashboard.NextPeriodDate != "2023-02-26" || dashboard.DaysUntilNextPeriod != 14 {
		t.Fatalf("unexpected next period %s in %d days", dashboard.NextPeriodDate, dashboard.DaysUntilNextPeriod)
	}
	if dashboard.Exercise != ExerciseGuide(PhaseOvulation) {
		t.Fatalf("unexpected exercise %q", dashboard.Exercise)
	}
	if dashboard.TodayLog.WaterIntake != 1 {
		t.Fatalf("expected today log water 1, got %d", dashboard.TodayLog.WaterIntake)
	}
}

func TestDashboardPropagatesStorageErrors(t *testing.T) {
	t.Parallel()

	repo := newCycleRepositoryStub(t)
	repo.listErr = errors.New("locked")
	service := NewDashboardService(NewCycleService(repo), NewDailyLogService(newDailyLogRepositoryStub()))
	if _, err := service.Build(mustParseDay(t, "2025-04-01")); !errors.Is(err, repo.listErr) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestExerciseGuide(t *testing.T) {
	t.Parallel()

	cases := map[Phase]string{
		PhaseMenstrual:  "Light Yoga, Walking, Rest.",
		PhaseFollicular: "Cardio, Running, HIIT.",
		PhaseOvulation:  "High Intensity, Strength Training.",
		PhaseLuteal:     "Low Impact, Pilates, Swimming.",
		PhaseUnknown:    "Low Impact, Pilates, Swimming.",
	}
	for phase, want := range cases {
		if got := ExerciseGuide(phase); got != want {
			t.Fatalf("ExerciseGuide(%s) = %q, want %q", phase, got, want)
		}
	}
}
