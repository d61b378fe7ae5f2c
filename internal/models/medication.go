package models

import (
	"strings"

	"cloud.google.com/go/civil"
)

type MedicationKind string

const (
	MedicationPermanent MedicationKind = "Permanent"
	MedicationTemporary MedicationKind = "Temporary"
)

var medicationKindAliases = map[string]MedicationKind{
	"permanent":  MedicationPermanent,
	"permanente": MedicationPermanent,
	"temporary":  MedicationTemporary,
	"temporal":   MedicationTemporary,
}

// ParseMedicationKind maps stored or typed text onto a kind. Unrecognized
// text is kept verbatim so it survives a load/save cycle; IsValid reports it.
func ParseMedicationKind(raw string) MedicationKind {
	trimmed := strings.TrimSpace(raw)
	if kind, ok := medicationKindAliases[strings.ToLower(trimmed)]; ok {
		return kind
	}
	return MedicationKind(trimmed)
}

func (kind MedicationKind) IsValid() bool {
	return kind == MedicationPermanent || kind == MedicationTemporary
}

// Medication is one prescription window. Start and End are nil when unknown;
// End is always nil for permanent medications.
type Medication struct {
	Name  string
	Kind  MedicationKind
	Start *civil.Date
	End   *civil.Date
}

// ActiveOn reports whether day falls inside the medication window. Both
// boundaries are inclusive and unknown dates never match.
func (medication Medication) ActiveOn(day civil.Date) bool {
	if medication.Start == nil || !DateOnOrBefore(*medication.Start, day) {
		return false
	}
	switch medication.Kind {
	case MedicationPermanent:
		return true
	case MedicationTemporary:
		return medication.End != nil && DateOnOrBefore(day, *medication.End)
	default:
		return false
	}
}
