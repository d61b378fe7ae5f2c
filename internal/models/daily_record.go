package models

import "cloud.google.com/go/civil"

const (
	MinSeverity = 0
	MaxSeverity = 10
)

// DailyRecord is one journal entry. Pointer fields are nil when the value
// was never captured or could not be parsed back from storage.
type DailyRecord struct {
	Date *civil.Date

	Fatigue                int
	Mood                   int
	Migraines              int
	JointPain              int
	IntestinalInflammation int
	AbdominalPain          int
	Diarrhea               int
	Constipation           int
	Gas                    int
	MinorAllergySymptoms   int

	OtherSymptoms    string
	MedicationsTaken []string

	Bedtime        *civil.Time
	WakeTime       *civil.Time
	SleepHours     *float64
	SleepQuality   *int
	SleepIncidents []string

	Meals  MealLog
	Events []string
	Notes  string
}

// SeverityField binds a stored column name to one of the ten 0-10 fields.
type SeverityField struct {
	Column string
	Label  string
	Ref    func(record *DailyRecord) *int
}

func SeverityFields() []SeverityField {
	return []SeverityField{
		{Column: "fatigue", Label: "Fatigue", Ref: func(r *DailyRecord) *int { return &r.Fatigue }},
		{Column: "mood", Label: "Mood", Ref: func(r *DailyRecord) *int { return &r.Mood }},
		{Column: "migraines", Label: "Migraines", Ref: func(r *DailyRecord) *int { return &r.Migraines }},
		{Column: "joint_pain", Label: "Joint pain", Ref: func(r *DailyRecord) *int { return &r.JointPain }},
		{Column: "intestinal_inflammation", Label: "Intestinal inflammation", Ref: func(r *DailyRecord) *int { return &r.IntestinalInflammation }},
		{Column: "abdominal_pain", Label: "Abdominal pain", Ref: func(r *DailyRecord) *int { return &r.AbdominalPain }},
		{Column: "diarrhea", Label: "Diarrhea", Ref: func(r *DailyRecord) *int { return &r.Diarrhea }},
		{Column: "constipation", Label: "Constipation", Ref: func(r *DailyRecord) *int { return &r.Constipation }},
		{Column: "gas", Label: "Gas", Ref: func(r *DailyRecord) *int { return &r.Gas }},
		{Column: "minor_allergy_symptoms", Label: "Minor allergy symptoms", Ref: func(r *DailyRecord) *int { return &r.MinorAllergySymptoms }},
	}
}

const (
	IncidentHardToFallAsleep = "Trouble falling asleep"
	IncidentWokeOnce         = "Woke up once"
	IncidentWokeSeveral      = "Woke up several times"
	IncidentNightmares       = "Nightmares"
	IncidentDistress         = "Distress"
	IncidentAnxiety          = "Anxiety"
	IncidentWokeTooEarly     = "Woke up too early"
	IncidentOther            = "Other"
)

func SleepIncidentTags() []string {
	return []string{
		IncidentHardToFallAsleep,
		IncidentWokeOnce,
		IncidentWokeSeveral,
		IncidentNightmares,
		IncidentDistress,
		IncidentAnxiety,
		IncidentWokeTooEarly,
		IncidentOther,
	}
}

const (
	EventWorkStress    = "Work stress"
	EventStudies       = "Studies"
	EventTravel        = "Travel"
	EventCelebrations  = "Parties/Celebrations"
	EventWeatherChange = "Weather change"
	EventOther         = "Other"
)

func EventTags() []string {
	return []string{
		EventWorkStress,
		EventStudies,
		EventTravel,
		EventCelebrations,
		EventWeatherChange,
		EventOther,
	}
}
