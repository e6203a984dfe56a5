package services

import (
	"bytes"
	"strings"
	"testing"
)

func TestCycleLengthTrendPoints(t *testing.T) {
	t.Parallel()

	service := NewTrendService(NewCycleService(newCycleRepositoryStub(t, "2023-03-15", "2023-01-01", "2023-02-28", "2023-01-20")), 0)
	trend, err := service.CycleLengthTrend()
	if err != nil {
		t.Fatalf("CycleLengthTrend returned error: %v", err)
	}

	want := []CycleLengthPoint{
		{StartDate: "2023-01-01", Length: 19},
		{StartDate: "2023-01-20", Length: 39},
		{StartDate: "2023-02-28", Length: 15},
	}
	if len(trend.Points) != len(want) {
		t.Fatalf("expected %d points, got %+v", len(want), trend.Points)
	}
	for index := range want {
		if trend.Points[index] != want[index] {
			t.Fatalf("point[%d] = %+v, want %+v", index, trend.Points[index], want[index])
		}
	}
	if !trend.IsPCOS || !trend.HasReliableTrend || trend.AverageCycleLength != 24 {
		t.Fatalf("unexpected trend summary %+v", trend)
	}
}

func TestCycleLengthTrendKeepsLatestPoints(t *testing.T) {
	t.Parallel()

	service := NewTrendService(NewCycleService(newCycleRepositoryStub(t, "2025-01-01", "2025-01-29", "2025-02-26", "2025-03-26")), 2)
	trend, err := service.CycleLengthTrend()
	if err != nil {
		t.Fatalf("CycleLengthTrend returned error: %v", err)
	}
	if len(trend.Points) != 2 || trend.Points[0].StartDate != "2025-01-29" {
		t.Fatalf("expected latest two points, got %+v", trend.Points)
	}
	if trend.HasReliableTrend {
		t.Fatal("expected two points to be unreliable")
	}
}

func TestCycleLengthChartRenders(t *testing.T) {
	t.Parallel()

	service := NewTrendService(NewCycleService(newCycleRepositoryStub(t, "2025-01-01", "2025-01-29")), 0)
	chart, err := service.Chart()
	if err != nil {
		t.Fatalf("Chart returned error: %v", err)
	}

	var buffer bytes.Buffer
	if err := chart.Render(&buffer); err != nil {
		t.Fatalf("render chart: %v", err)
	}
	html := buffer.String()
	if !strings.Contains(html, "Cycle length") || !strings.Contains(html, "2025-01-01") {
		t.Fatalf("expected chart html to contain title and labels")
	}
}

func TestCycleLengthTrendWithoutHistory(t *testing.T) {
	t.Parallel()

	trend, err := NewTrendService(NewCycleService(newCycleRepositoryStub(t)), 0).CycleLengthTrend()
	if err != nil {
		t.Fatalf("CycleLengthTrend returned error: %v", err)
	}
	if len(trend.Points) != 0 || trend.AverageCycleLength != 28 {
		t.Fatalf("unexpected empty trend %+v", trend)
	}
	if got := trendSubtitle(trend); !strings.Contains(got, "two periods") {
		t.Fatalf("unexpected subtitle %q", got)
	}
}
