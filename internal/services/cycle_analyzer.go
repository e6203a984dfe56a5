package services

import (
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/mahwari/internal/models"
)

type Phase string

const (
	PhaseMenstrual  Phase = "Menstrual"
	PhaseFollicular Phase = "Follicular"
	PhaseOvulation  Phase = "Ovulation"
	PhaseLuteal     Phase = "Luteal"
	PhaseUnknown    Phase = "Unknown"
)

type Fertility string

const (
	FertilityLow     Fertility = "Low"
	FertilityMedium  Fertility = "Medium"
	FertilityHigh    Fertility = "High"
	FertilityUnknown Fertility = "Unknown"
)

const (
	pcosStdDevThresholdDays = 7.0
	pcosAverageLengthDays   = 35
	menstrualPhaseLastDay   = 5
	follicularPhaseLastDay  = 13
	ovulationWindowDays     = 2
)

// CycleSummary is the screening view of a cycle history. IsPCOS is a
// heuristic irregularity flag and is not a diagnosis.
type CycleSummary struct {
	AverageCycleLength int  `json:"avg_length"`
	IsPCOS             bool `json:"is_pcos"`
}

// CycleAnalyzer derives cycle statistics from period start dates. It is
// immutable once built; rebuild it from fresh data to pick up new entries.
type CycleAnalyzer struct {
	dates              []time.Time
	lengths            []int
	averageCycleLength int
	isPCOS             bool
}

// NewCycleAnalyzer accepts start dates in any order. Identical calendar days
// are collapsed so every gap between starts is at least one day.
func NewCycleAnalyzer(startDates []time.Time) *CycleAnalyzer {
	analyzer := &CycleAnalyzer{
		dates:              normalizeStartDates(startDates),
		averageCycleLength: models.DefaultCycleLength,
	}
	if len(analyzer.dates) >= 2 {
		analyzer.analyzeHistory()
	}
	return analyzer
}

func (analyzer *CycleAnalyzer) analyzeHistory() {
	analyzer.lengths = cycleLengths(analyzer.dates)
	if len(analyzer.lengths) == 0 {
		return
	}

	total := 0
	for _, length := range analyzer.lengths {
		total += length
	}
	analyzer.averageCycleLength = total / len(analyzer.lengths)

	deviation := sampleStdDev(analyzer.lengths)
	analyzer.isPCOS = deviation > pcosStdDevThresholdDays || analyzer.averageCycleLength > pcosAverageLengthDays
}

func (analyzer *CycleAnalyzer) AverageCycleLength() int {
	return analyzer.averageCycleLength
}

func (analyzer *CycleAnalyzer) IsPCOS() bool {
	return analyzer.isPCOS
}

func (analyzer *CycleAnalyzer) Summary() CycleSummary {
	return CycleSummary{
		AverageCycleLength: analyzer.averageCycleLength,
		IsPCOS:             analyzer.isPCOS,
	}
}

// Dates returns the sorted, de-duplicated start dates.
func (analyzer *CycleAnalyzer) Dates() []time.Time {
	return append([]time.Time(nil), analyzer.dates...)
}

// CycleLengths returns the day gaps between consecutive start dates.
func (analyzer *CycleAnalyzer) CycleLengths() []int {
	return append([]int(nil), analyzer.lengths...)
}

func (analyzer *CycleAnalyzer) PredictNextPeriod(lastPeriodDate time.Time) time.Time {
	return CalendarDate(lastPeriodDate).AddDate(0, 0, analyzer.averageCycleLength)
}

// CycleDay is the 1-indexed day of the cycle that began on lastPeriodDate.
// Dates before lastPeriodDate yield values below 1.
func CycleDay(currentDate time.Time, lastPeriodDate time.Time) int {
	return DaysBetween(lastPeriodDate, currentDate) + 1
}

// Phase classifies currentDate within the cycle that began on lastPeriodDate.
// Ovulation is assumed 14 days before the predicted next period, so the
// follicular window can already report high fertility.
func (analyzer *CycleAnalyzer) Phase(currentDate time.Time, lastPeriodDate time.Time) (Phase, Fertility) {
	cycleDay := CycleDay(currentDate, lastPeriodDate)
	if cycleDay < 1 {
		return PhaseUnknown, FertilityUnknown
	}

	ovulationDay := analyzer.averageCycleLength - models.LutealPhaseDays
	nearOvulation := absInt(cycleDay-ovulationDay) <= ovulationWindowDays

	switch {
	case cycleDay <= menstrualPhaseLastDay:
		return PhaseMenstrual, FertilityLow
	case cycleDay <= follicularPhaseLastDay:
		if nearOvulation {
			return PhaseFollicular, FertilityHigh
		}
		return PhaseFollicular, FertilityMedium
	case nearOvulation:
		return PhaseOvulation, FertilityHigh
	case cycleDay > ovulationDay+ovulationWindowDays:
		return PhaseLuteal, FertilityLow
	default:
		return PhaseFollicular, FertilityMedium
	}
}

func normalizeStartDates(startDates []time.Time) []time.Time {
	sorted := make([]time.Time, 0, len(startDates))
	for _, date := range startDates {
		sorted = append(sorted, CalendarDate(date))
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	unique := sorted[:0]
	for _, date := range sorted {
		if len(unique) > 0 && unique[len(unique)-1].Equal(date) {
			continue
		}
		unique = append(unique, date)
	}
	return unique
}

func cycleLengths(starts []time.Time) []int {
	if len(starts) < 2 {
		return nil
	}

	lengths := make([]int, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		lengths = append(lengths, DaysBetween(starts[i-1], starts[i]))
	}
	return lengths
}

// sampleStdDev uses the n-1 denominator and is zero for fewer than two values.
func sampleStdDev(values []int) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, value := range values {
		mean += float64(value)
	}
	mean /= float64(len(values))

	sumSquares := 0.0
	for _, value := range values {
		delta := float64(value) - mean
		sumSquares += delta * delta
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}

func absInt(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
