package services

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/terraincognita07/healthjournal/internal/models"
)

const MaxDayNotesLength = 2000

var (
	ErrUnknownSeverityField = errors.New("unknown severity field")
	ErrInvalidSleepIncident = errors.New("invalid sleep incident")
	ErrInvalidEvent         = errors.New("invalid event")
	ErrInvalidMealSlot      = errors.New("invalid meal slot")
	ErrTooManyFoods         = errors.New("too many foods in meal slot")
)

// DailyRecordInput is what the input surface collects before it becomes a
// DailyRecord. Severities are keyed by column name.
type DailyRecordInput struct {
	Date             civil.Date
	Severities       map[string]int
	OtherSymptoms    string
	MedicationsTaken []string
	Bedtime          *civil.Time
	WakeTime         *civil.Time
	SleepQuality     *int
	SleepIncidents   []string
	Meals            map[models.MealSlot][]string
	Events           []string
	Notes            string
}

// NormalizeDailyRecordInput clamps every 0-10 value, checks tags against the
// fixed vocabularies and fills all five meal slots.
func NormalizeDailyRecordInput(input DailyRecordInput) (models.DailyRecord, error) {
	date := input.Date
	record := models.DailyRecord{
		Date:             &date,
		OtherSymptoms:    strings.TrimSpace(input.OtherSymptoms),
		MedicationsTaken: distinctTrimmed(input.MedicationsTaken),
		Bedtime:          input.Bedtime,
		WakeTime:         input.WakeTime,
		Notes:            TrimDayNotes(strings.TrimSpace(input.Notes)),
	}

	fields := make(map[string]models.SeverityField)
	for _, field := range models.SeverityFields() {
		fields[field.Column] = field
	}
	for column, value := range input.Severities {
		field, ok := fields[column]
		if !ok {
			return models.DailyRecord{}, fmt.Errorf("%w: %s", ErrUnknownSeverityField, column)
		}
		*field.Ref(&record) = ClampSeverity(value)
	}

	if input.SleepQuality != nil {
		quality := ClampSeverity(*input.SleepQuality)
		record.SleepQuality = &quality
	}

	incidents, err := canonicalTags(input.SleepIncidents, models.SleepIncidentTags(), ErrInvalidSleepIncident)
	if err != nil {
		return models.DailyRecord{}, err
	}
	record.SleepIncidents = incidents

	events, err := canonicalTags(input.Events, models.EventTags(), ErrInvalidEvent)
	if err != nil {
		return models.DailyRecord{}, err
	}
	record.Events = events

	meals, err := normalizeMeals(input.Meals)
	if err != nil {
		return models.DailyRecord{}, err
	}
	record.Meals = meals

	return record, nil
}

func ClampSeverity(value int) int {
	if value < models.MinSeverity {
		return models.MinSeverity
	}
	if value > models.MaxSeverity {
		return models.MaxSeverity
	}
	return value
}

func TrimDayNotes(value string) string {
	runes := []rune(value)
	if len(runes) <= MaxDayNotesLength {
		return value
	}
	return string(runes[:MaxDayNotesLength])
}

func normalizeMeals(entries map[models.MealSlot][]string) (models.MealLog, error) {
	filled := make(map[models.MealSlot][]string, len(models.MealSlots()))
	for _, slot := range models.MealSlots() {
		filled[slot] = nil
	}
	for slot, foods := range entries {
		canonical, ok := models.ParseMealSlot(string(slot))
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidMealSlot, slot)
		}
		filled[canonical] = append(filled[canonical], foods...)
	}

	meals := models.NewMealLog(filled)
	for slot, foods := range meals {
		if len(foods) > models.MaxFoodsPerSlot {
			return nil, fmt.Errorf("%w: %s has %d", ErrTooManyFoods, slot, len(foods))
		}
	}
	return meals, nil
}

func canonicalTags(values []string, vocabulary []string, invalid error) ([]string, error) {
	byKey := make(map[string]string, len(vocabulary))
	for _, tag := range vocabulary {
		byKey[strings.ToLower(tag)] = tag
	}

	tags := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		tag, ok := byKey[strings.ToLower(trimmed)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", invalid, trimmed)
		}
		if _, duplicate := seen[tag]; duplicate {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}

func distinctTrimmed(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
