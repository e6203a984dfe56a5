package services

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const DefaultTrendPoints = 12

type TrendAnalyzerSource interface {
	Analyzer() (*CycleAnalyzer, error)
}

// CycleLengthPoint is one completed cycle: the day it started and how long it ran.
type CycleLengthPoint struct {
	StartDate string `json:"start_date"`
	Length    int    `json:"length"`
}

type CycleLengthTrend struct {
	Points             []CycleLengthPoint `json:"points"`
	AverageCycleLength int                `json:"avg_length"`
	IsPCOS             bool               `json:"is_pcos"`
	HasReliableTrend   bool               `json:"has_reliable_trend"`
}

type TrendService struct {
	cycles    TrendAnalyzerSource
	maxPoints int
}

func NewTrendService(cycles TrendAnalyzerSource, maxPoints int) *TrendService {
	if maxPoints <= 0 {
		maxPoints = DefaultTrendPoints
	}
	return &TrendService{
		cycles:    cycles,
		maxPoints: maxPoints,
	}
}

func (service *TrendService) CycleLengthTrend() (CycleLengthTrend, error) {
	analyzer, err := service.cycles.Analyzer()
	if err != nil {
		return CycleLengthTrend{}, err
	}

	dates := analyzer.Dates()
	lengths := analyzer.CycleLengths()
	points := make([]CycleLengthPoint, 0, len(lengths))
	for index, length := range lengths {
		points = append(points, CycleLengthPoint{
			StartDate: FormatCalendarDate(dates[index]),
			Length:    length,
		})
	}
	points = trimTrailingPoints(points, service.maxPoints)

	return CycleLengthTrend{
		Points:             points,
		AverageCycleLength: analyzer.AverageCycleLength(),
		IsPCOS:             analyzer.IsPCOS(),
		HasReliableTrend:   len(points) >= 3,
	}, nil
}

func (service *TrendService) Chart() (*charts.Bar, error) {
	trend, err := service.CycleLengthTrend()
	if err != nil {
		return nil, err
	}
	return BuildCycleLengthChart(trend), nil
}

func BuildCycleLengthChart(trend CycleLengthTrend) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons", PageTitle: "Cycle length trend"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Cycle length",
			Subtitle: trendSubtitle(trend),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate: 45,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         "Days",
			NameLocation: "middle",
			NameGap:      40,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "shadow",
			},
		}),
	)

	labels := make([]string, 0, len(trend.Points))
	items := make([]opts.BarData, 0, len(trend.Points))
	for _, point := range trend.Points {
		labels = append(labels, point.StartDate)
		items = append(items, opts.BarData{Value: point.Length})
	}

	bar.SetXAxis(labels).AddSeries("Cycle length", items).
		SetSeriesOptions(
			charts.WithMarkLineNameTypeItemOpts(opts.MarkLineNameTypeItem{Name: "Average", Type: "average"}),
		)
	return bar
}

func trendSubtitle(trend CycleLengthTrend) string {
	if len(trend.Points) == 0 {
		return "Log at least two periods to see a trend"
	}
	if trend.IsPCOS {
		return "Irregular cycles detected, consider checking with a doctor"
	}
	return "Cycles look regular"
}

func trimTrailingPoints(points []CycleLengthPoint, maxPoints int) []CycleLengthPoint {
	if maxPoints <= 0 || len(points) <= maxPoints {
		return points
	}
	return points[len(points)-maxPoints:]
}
