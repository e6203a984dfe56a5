package services

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/mahwari/internal/models"
)

type cycleRepositoryStub struct {
	cycles    []models.Cycle
	nextID    uint
	listErr   error
	createErr error
}

func newCycleRepositoryStub(t *testing.T, rawDates ...string) *cycleRepositoryStub {
	t.Helper()
	stub := &cycleRepositoryStub{nextID: 1}
	for _, raw := range rawDates {
		if err := stub.Create(&models.Cycle{StartDate: mustParseDay(t, raw)}); err != nil {
			t.Fatalf("seed cycle %s: %v", raw, err)
		}
	}
	return stub
}

func (stub *cycleRepositoryStub) sorted() []models.Cycle {
	cycles := append([]models.Cycle(nil), stub.cycles...)
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].StartDate.Before(cycles[j].StartDate)
	})
	return cycles
}

func (stub *cycleRepositoryStub) List() ([]models.Cycle, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	return stub.sorted(), nil
}

func (stub *cycleRepositoryStub) ListStartDates() ([]time.Time, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	dates := make([]time.Time, 0, len(stub.cycles))
	for _, cycle := range stub.sorted() {
		dates = append(dates, cycle.StartDate)
	}
	return dates, nil
}

func (stub *cycleRepositoryStub) Latest() (models.Cycle, bool, error) {
	if stub.listErr != nil {
		return models.Cycle{}, false, stub.listErr
	}
	cycles := stub.sorted()
	if len(cycles) == 0 {
		return models.Cycle{}, false, nil
	}
	return cycles[len(cycles)-1], true, nil
}

func (stub *cycleRepositoryStub) ExistsInDayRange(dayStart time.Time, dayEnd time.Time) (bool, error) {
	for _, cycle := range stub.cycles {
		if !cycle.StartDate.Before(dayStart) && cycle.StartDate.Before(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (stub *cycleRepositoryStub) Create(cycle *models.Cycle) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	cycle.ID = stub.nextID
	stub.nextID++
	stub.cycles = append(stub.cycles, *cycle)
	return nil
}

func (stub *cycleRepositoryStub) DeleteByID(cycleID uint) (bool, error) {
	for index, cycle := range stub.cycles {
		if cycle.ID == cycleID {
			stub.cycles = append(stub.cycles[:index], stub.cycles[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestLogPeriodStartStoresCalendarDate(t *testing.T) {
	t.Parallel()

	repo := newCycleRepositoryStub(t)
	service := NewCycleService(repo)

	day := time.Date(2025, time.March, 3, 18, 45, 0, 0, time.UTC)
	cycle, err := service.LogPeriodStart(day, "  cramps in the evening  ", mustParseDay(t, "2025-03-10"))
	if err != nil {
		t.Fatalf("LogPeriodStart returned error: %v", err)
	}
	if got := FormatCalendarDate(cycle.StartDate); got != "2025-03-03" {
		t.Fatalf("expected start date 2025-03-03, got %s", got)
	}
	if cycle.StartDate.Hour() != 0 {
		t.Fatalf("expected midnight start date, got %s", cycle.StartDate)
	}
	if cycle.Notes != "cramps in the evening" {
		t.Fatalf("expected trimmed notes, got %q", cycle.Notes)
	}
	if cycle.ID == 0 {
		t.Fatal("expected created cycle to have an id")
	}
}

func TestLogPeriodStartRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	today := mustParseDay(t, "2025-03-10")
	cases := []struct {
		name    string
		day     string
		notes   string
		wantErr error
	}{
		{name: "future date", day: "2025-03-11", wantErr: ErrCycleDateInFuture},
		{name: "duplicate date", day: "2025-02-10", wantErr: ErrCycleAlreadyLogged},
		{name: "notes too long", day: "2025-03-01", notes: strings.Repeat("a", MaxCycleNotesLength+1), wantErr: ErrCycleNotesTooLong},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			service := NewCycleService(newCycleRepositoryStub(t, "2025-02-10"))
			_, err := service.LogPeriodStart(mustParseDay(t, testCase.day), testCase.notes, today)
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected %v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestLogPeriodStartAllowsToday(t *testing.T) {
	t.Parallel()

	service := NewCycleService(newCycleRepositoryStub(t))
	today := mustParseDay(t, "2025-03-10")
	if _, err := service.LogPeriodStart(today, "", today); err != nil {
		t.Fatalf("expected today to be accepted, got %v", err)
	}
}

func TestLogPeriodStartWrapsStorageErrors(t *testing.T) {
	t.Parallel()

	repo := newCycleRepositoryStub(t)
	repo.createErr = errors.New("disk full")
	service := NewCycleService(repo)

	_, err := service.LogPeriodStart(mustParseDay(t, "2025-03-01"), "", mustParseDay(t, "2025-03-10"))
	if !errors.Is(err, repo.createErr) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestDeleteCycle(t *testing.T) {
	t.Parallel()

	repo := newCycleRepositoryStub(t, "2025-01-01", "2025-01-29")
	service := NewCycleService(repo)

	if err := service.DeleteCycle(1); err != nil {
		t.Fatalf("DeleteCycle returned error: %v", err)
	}
	if err := service.DeleteCycle(1); !errors.Is(err, ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound on second delete, got %v", err)
	}

	cycles, err := service.ListCycles()
	if err != nil {
		t.Fatalf("ListCycles returned error: %v", err)
	}
	if len(cycles) != 1 || FormatCalendarDate(cycles[0].StartDate) != "2025-01-29" {
		t.Fatalf("unexpected remaining cycles %+v", cycles)
	}
}

func TestCycleServiceAnalyzerReflectsNewEntries(t *testing.T) {
	t.Parallel()

	repo := newCycleRepositoryStub(t, "2025-01-01")
	service := NewCycleService(repo)

	analyzer, err := service.Analyzer()
	if err != nil {
		t.Fatalf("Analyzer returned error: %v", err)
	}
	if analyzer.AverageCycleLength() != 28 {
		t.Fatalf("expected default average with one cycle, got %d", analyzer.AverageCycleLength())
	}

	if _, err := service.LogPeriodStart(mustParseDay(t, "2025-02-01"), "", mustParseDay(t, "2025-02-01")); err != nil {
		t.Fatalf("LogPeriodStart returned error: %v", err)
	}
	analyzer, err = service.Analyzer()
	if err != nil {
		t.Fatalf("Analyzer returned error: %v", err)
	}
	if analyzer.AverageCycleLength() != 31 {
		t.Fatalf("expected average 31 after new entry, got %d", analyzer.AverageCycleLength())
	}
}

func TestCycleServiceAnalyzerPropagatesErrors(t *testing.T) {
	t.Parallel()

	repo := newCycleRepositoryStub(t)
	repo.listErr = errors.New("locked")
	if _, err := NewCycleService(repo).Analyzer(); !errors.Is(err, repo.listErr) {
		t.Fatalf("expected wrapped list error, got %v", err)
	}
}
