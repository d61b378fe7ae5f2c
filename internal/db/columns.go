package db

import (
	"math"
	"strconv"
	"strings"

	"github.com/terraincognita07/healthjournal/internal/models"
)

const listSeparator = ", "

var MedicationColumns = []string{"name", "kind", "start", "end"}

var DailyRecordColumns = []string{
	"date",
	"fatigue",
	"mood",
	"migraines",
	"joint_pain",
	"intestinal_inflammation",
	"abdominal_pain",
	"diarrhea",
	"constipation",
	"gas",
	"minor_allergy_symptoms",
	"other_symptoms",
	"medications_taken",
	"bedtime",
	"wake_time",
	"sleep_hours",
	"sleep_quality",
	"sleep_incidents",
	"meals",
	"events",
	"notes",
}

func medicationToColumns(medication models.Medication) map[string]string {
	end := ""
	if medication.Kind == models.MedicationTemporary {
		end = models.FormatDate(medication.End)
	}
	return map[string]string{
		"name":  medication.Name,
		"kind":  string(medication.Kind),
		"start": models.FormatDate(medication.Start),
		"end":   end,
	}
}

// medicationFromColumns never rejects a row. Columns that fail to parse are
// left unknown and reported back by name.
func medicationFromColumns(values map[string]string) (models.Medication, []string) {
	invalid := make([]string, 0)
	medication := models.Medication{
		Name: values["name"],
		Kind: models.ParseMedicationKind(values["kind"]),
	}
	if !medication.Kind.IsValid() {
		invalid = append(invalid, "kind")
	}

	start, err := models.ParseDate(values["start"])
	if err != nil {
		invalid = append(invalid, "start")
	}
	medication.Start = start

	end, err := models.ParseDate(values["end"])
	if err != nil {
		invalid = append(invalid, "end")
	}
	if medication.Kind != models.MedicationPermanent {
		medication.End = end
	}

	return medication, invalid
}

func dailyRecordToColumns(record models.DailyRecord, codec models.MealLogCodec) map[string]string {
	values := map[string]string{
		"date":              models.FormatDate(record.Date),
		"other_symptoms":    record.OtherSymptoms,
		"medications_taken": joinList(record.MedicationsTaken),
		"bedtime":           models.FormatClock(record.Bedtime),
		"wake_time":         models.FormatClock(record.WakeTime),
		"sleep_hours":       formatHours(record.SleepHours),
		"sleep_quality":     formatOptionalInt(record.SleepQuality),
		"sleep_incidents":   joinList(record.SleepIncidents),
		"meals":             codec.Encode(record.Meals),
		"events":            joinList(record.Events),
		"notes":             record.Notes,
	}
	for _, field := range models.SeverityFields() {
		values[field.Column] = strconv.Itoa(*field.Ref(&record))
	}
	return values
}

// dailyRecordFromColumns keeps every row. Severity columns fall back to 0,
// every other unparseable column becomes nil.
func dailyRecordFromColumns(values map[string]string, codec models.MealLogCodec) (models.DailyRecord, []string) {
	invalid := make([]string, 0)
	record := models.DailyRecord{
		OtherSymptoms:    values["other_symptoms"],
		MedicationsTaken: splitList(values["medications_taken"]),
		SleepIncidents:   splitList(values["sleep_incidents"]),
		Meals:            codec.Decode(values["meals"]),
		Events:           splitList(values["events"]),
		Notes:            values["notes"],
	}

	date, err := models.ParseDate(values["date"])
	if err != nil {
		invalid = append(invalid, "date")
	}
	record.Date = date

	for _, field := range models.SeverityFields() {
		value, ok := parseWholeNumber(values[field.Column])
		if !ok {
			invalid = append(invalid, field.Column)
		}
		if value != nil {
			*field.Ref(&record) = *value
		}
	}

	bedtime, err := models.ParseClock(values["bedtime"])
	if err != nil {
		invalid = append(invalid, "bedtime")
	}
	record.Bedtime = bedtime

	wakeTime, err := models.ParseClock(values["wake_time"])
	if err != nil {
		invalid = append(invalid, "wake_time")
	}
	record.WakeTime = wakeTime

	hours, ok := parseDecimal(values["sleep_hours"])
	if !ok {
		invalid = append(invalid, "sleep_hours")
	}
	record.SleepHours = hours

	quality, ok := parseWholeNumber(values["sleep_quality"])
	if !ok {
		invalid = append(invalid, "sleep_quality")
	}
	record.SleepQuality = quality

	return record, invalid
}

func joinList(values []string) string {
	return strings.Join(values, listSeparator)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		values = append(values, trimmed)
	}
	return values
}

// parseWholeNumber accepts "7" and float-shaped "7.0". Empty input is
// (nil, true); garbage is (nil, false).
func parseWholeNumber(raw string) (*int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}
	if value, err := strconv.Atoi(trimmed); err == nil {
		return &value, true
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		if strings.EqualFold(trimmed, "nan") {
			return nil, true
		}
		return nil, false
	}
	value := int(math.Round(parsed))
	return &value, true
}

func parseDecimal(raw string) (*float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "nan") {
		return nil, true
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(parsed, 0) {
		return nil, false
	}
	return &parsed, true
}

func formatHours(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', 2, 64)
}

func formatOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
