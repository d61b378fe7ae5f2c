package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/terraincognita07/healthjournal/internal/models"
)

const (
	TrendGroupSymptoms = "symptoms"
	TrendGroupSleep    = "sleep"
)

var ErrUnknownTrendVariable = errors.New("unknown trend variable")

type TrendVariable struct {
	Name  string
	Label string
	Group string
	Value func(record models.DailyRecord) (float64, bool)
}

type TrendPoint struct {
	Date  civil.Date
	Value float64
}

type TrendStats struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
	From  civil.Date
	To    civil.Date
}

func TrendVariables() []TrendVariable {
	variables := make([]TrendVariable, 0, len(models.SeverityFields())+2)
	for _, field := range models.SeverityFields() {
		ref := field.Ref
		variables = append(variables, TrendVariable{
			Name:  field.Column,
			Label: field.Label,
			Group: TrendGroupSymptoms,
			Value: func(record models.DailyRecord) (float64, bool) {
				return float64(*ref(&record)), true
			},
		})
	}

	variables = append(variables,
		TrendVariable{
			Name:  "sleep_quality",
			Label: "Sleep quality",
			Group: TrendGroupSleep,
			Value: func(record models.DailyRecord) (float64, bool) {
				if record.SleepQuality == nil {
					return 0, false
				}
				return float64(*record.SleepQuality), true
			},
		},
		TrendVariable{
			Name:  "sleep_hours",
			Label: "Sleep hours",
			Group: TrendGroupSleep,
			Value: func(record models.DailyRecord) (float64, bool) {
				if record.SleepHours == nil {
					return 0, false
				}
				return *record.SleepHours, true
			},
		},
	)
	return variables
}

func TrendVariablesInGroup(group string) []TrendVariable {
	matching := make([]TrendVariable, 0)
	for _, variable := range TrendVariables() {
		if variable.Group == group {
			matching = append(matching, variable)
		}
	}
	return matching
}

func FindTrendVariable(name string) (TrendVariable, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, variable := range TrendVariables() {
		if variable.Name == normalized {
			return variable, true
		}
	}
	return TrendVariable{}, false
}

// TrendSeries pairs each record's date with the variable's value, ascending
// by date. Records without a known date or value are left out, not zeroed.
// Records sharing a date keep their stored order.
func TrendSeries(records []models.DailyRecord, name string) ([]TrendPoint, error) {
	variable, ok := FindTrendVariable(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTrendVariable, name)
	}

	points := make([]TrendPoint, 0, len(records))
	for _, record := range records {
		if record.Date == nil {
			continue
		}
		value, ok := variable.Value(record)
		if !ok {
			continue
		}
		points = append(points, TrendPoint{Date: *record.Date, Value: value})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

func SummarizeTrend(points []TrendPoint) TrendStats {
	if len(points) == 0 {
		return TrendStats{}
	}

	stats := TrendStats{
		Count: len(points),
		Min:   points[0].Value,
		Max:   points[0].Value,
		From:  points[0].Date,
		To:    points[len(points)-1].Date,
	}
	total := 0.0
	for _, point := range points {
		total += point.Value
		if point.Value < stats.Min {
			stats.Min = point.Value
		}
		if point.Value > stats.Max {
			stats.Max = point.Value
		}
	}
	stats.Mean = RoundHundredths(total / float64(len(points)))
	return stats
}
