package services

import (
	"cloud.google.com/go/civil"
	"github.com/terraincognita07/healthjournal/internal/models"
)

type ExportRecordReader interface {
	LoadAll() ([]models.DailyRecord, error)
}

type ExportService struct {
	records ExportRecordReader
}

type ExportSummary struct {
	TotalEntries int
	HasData      bool
	DateFrom     string
	DateTo       string
}

type ExportSeverities struct {
	Fatigue                int `json:"fatigue"`
	Mood                   int `json:"mood"`
	Migraines              int `json:"migraines"`
	JointPain              int `json:"joint_pain"`
	IntestinalInflammation int `json:"intestinal_inflammation"`
	AbdominalPain          int `json:"abdominal_pain"`
	Diarrhea               int `json:"diarrhea"`
	Constipation           int `json:"constipation"`
	Gas                    int `json:"gas"`
	MinorAllergySymptoms   int `json:"minor_allergy_symptoms"`
}

type ExportSleep struct {
	Bedtime   string   `json:"bedtime,omitempty"`
	WakeTime  string   `json:"wake_time,omitempty"`
	Hours     *float64 `json:"hours"`
	Quality   *int     `json:"quality"`
	Incidents []string `json:"incidents"`
}

type ExportJSONEntry struct {
	Date             string              `json:"date"`
	Symptoms         ExportSeverities    `json:"symptoms"`
	OtherSymptoms    string              `json:"other_symptoms"`
	MedicationsTaken []string            `json:"medications_taken"`
	Sleep            ExportSleep         `json:"sleep"`
	Meals            map[string][]string `json:"meals"`
	Events           []string            `json:"events"`
	Notes            string              `json:"notes"`
}

func NewExportService(records ExportRecordReader) *ExportService {
	return &ExportService{records: records}
}

// LoadForRange returns records inside [from, to]. With no bounds every
// record is returned; with any bound, records of unknown date are skipped.
func (service *ExportService) LoadForRange(from *civil.Date, to *civil.Date) ([]models.DailyRecord, error) {
	records, err := service.records.LoadAll()
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return records, nil
	}

	filtered := make([]models.DailyRecord, 0, len(records))
	for _, record := range records {
		if record.Date == nil {
			continue
		}
		if from != nil && record.Date.Before(*from) {
			continue
		}
		if to != nil && record.Date.After(*to) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered, nil
}

func (service *ExportService) BuildSummary(from *civil.Date, to *civil.Date) (ExportSummary, error) {
	records, err := service.LoadForRange(from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(records) == 0 {
		return ExportSummary{}, nil
	}

	summary := ExportSummary{TotalEntries: len(records), HasData: true}
	var first, last *civil.Date
	for _, record := range records {
		if record.Date == nil {
			continue
		}
		if first == nil || record.Date.Before(*first) {
			first = record.Date
		}
		if last == nil || record.Date.After(*last) {
			last = record.Date
		}
	}
	summary.DateFrom = models.FormatDate(first)
	summary.DateTo = models.FormatDate(last)
	return summary, nil
}

func (service *ExportService) BuildJSONEntries(from *civil.Date, to *civil.Date) ([]ExportJSONEntry, error) {
	records, err := service.LoadForRange(from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportJSONEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, buildExportJSONEntry(record))
	}
	return entries, nil
}

func buildExportJSONEntry(record models.DailyRecord) ExportJSONEntry {
	meals := make(map[string][]string, len(record.Meals))
	for slot, foods := range record.Meals {
		meals[string(slot)] = nonNilStrings(foods)
	}

	return ExportJSONEntry{
		Date: models.FormatDate(record.Date),
		Symptoms: ExportSeverities{
			Fatigue:                record.Fatigue,
			Mood:                   record.Mood,
			Migraines:              record.Migraines,
			JointPain:              record.JointPain,
			IntestinalInflammation: record.IntestinalInflammation,
			AbdominalPain:          record.AbdominalPain,
			Diarrhea:               record.Diarrhea,
			Constipation:           record.Constipation,
			Gas:                    record.Gas,
			MinorAllergySymptoms:   record.MinorAllergySymptoms,
		},
		OtherSymptoms:    record.OtherSymptoms,
		MedicationsTaken: nonNilStrings(record.MedicationsTaken),
		Sleep: ExportSleep{
			Bedtime:   models.FormatClock(record.Bedtime),
			WakeTime:  models.FormatClock(record.WakeTime),
			Hours:     record.SleepHours,
			Quality:   record.SleepQuality,
			Incidents: nonNilStrings(record.SleepIncidents),
		},
		Meals:  meals,
		Events: nonNilStrings(record.Events),
		Notes:  record.Notes,
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
