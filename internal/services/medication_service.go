package services

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/terraincognita07/healthjournal/internal/models"
)

var (
	ErrInvalidMedicationKind  = errors.New("invalid medication kind")
	ErrMedicationEndRequired  = errors.New("temporary medication requires an end date")
	ErrMedicationLoadFailed   = errors.New("load medications failed")
	ErrMedicationCreateFailed = errors.New("create medication failed")
)

type MedicationRepository interface {
	ListAll() ([]models.Medication, error)
	Append(medication models.Medication) error
}

type MedicationService struct {
	medications MedicationRepository
}

func NewMedicationService(medications MedicationRepository) *MedicationService {
	return &MedicationService{medications: medications}
}

// ValidateMedication enforces the kind/end invariant. A permanent medication
// never carries an end date, so one passed in is dropped.
func ValidateMedication(medication models.Medication) (models.Medication, error) {
	switch medication.Kind {
	case models.MedicationPermanent:
		medication.End = nil
	case models.MedicationTemporary:
		if medication.End == nil {
			return medication, ErrMedicationEndRequired
		}
	default:
		return medication, ErrInvalidMedicationKind
	}
	return medication, nil
}

func (service *MedicationService) Add(medication models.Medication) (models.Medication, error) {
	medication, err := ValidateMedication(medication)
	if err != nil {
		return models.Medication{}, err
	}
	if err := service.medications.Append(medication); err != nil {
		return models.Medication{}, fmt.Errorf("%w: %w", ErrMedicationCreateFailed, err)
	}
	return medication, nil
}

func (service *MedicationService) LoadAll() ([]models.Medication, error) {
	medications, err := service.medications.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMedicationLoadFailed, err)
	}
	return medications, nil
}

func (service *MedicationService) ActiveOn(day civil.Date) ([]models.Medication, error) {
	medications, err := service.LoadAll()
	if err != nil {
		return nil, err
	}
	return FilterActiveMedications(medications, day), nil
}

// ActiveNamesOn lists distinct names active on day, first occurrence first.
func (service *MedicationService) ActiveNamesOn(day civil.Date) ([]string, error) {
	active, err := service.ActiveOn(day)
	if err != nil {
		return nil, err
	}
	return DistinctMedicationNames(active), nil
}

func FilterActiveMedications(medications []models.Medication, day civil.Date) []models.Medication {
	active := make([]models.Medication, 0, len(medications))
	for _, medication := range medications {
		if medication.ActiveOn(day) {
			active = append(active, medication)
		}
	}
	return active
}

func DistinctMedicationNames(medications []models.Medication) []string {
	names := make([]string, 0, len(medications))
	seen := make(map[string]struct{}, len(medications))
	for _, medication := range medications {
		name := strings.TrimSpace(medication.Name)
		if _, ok := seen[name]; ok || name == "" {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// InactiveMedicationNames returns the taken names that are not active on
// day. The reference is soft: callers warn, they do not reject.
func InactiveMedicationNames(taken []string, active []models.Medication) []string {
	activeNames := make(map[string]struct{}, len(active))
	for _, medication := range active {
		activeNames[strings.TrimSpace(medication.Name)] = struct{}{}
	}
	inactive := make([]string, 0)
	for _, name := range taken {
		if _, ok := activeNames[strings.TrimSpace(name)]; !ok {
			inactive = append(inactive, name)
		}
	}
	return inactive
}
