package db

import (
	"github.com/rs/zerolog"
	"github.com/terraincognita07/healthjournal/internal/models"
)

// RowStore is an ordered, append-only table of string columns.
type RowStore interface {
	Rows() ([]map[string]string, error)
	Append(record map[string]string) error
	Flush() error
}

type MedicationRepository struct {
	rows   RowStore
	logger zerolog.Logger
}

func NewMedicationRepository(rows RowStore, logger zerolog.Logger) *MedicationRepository {
	return &MedicationRepository{rows: rows, logger: logger}
}

func (repo *MedicationRepository) ListAll() ([]models.Medication, error) {
	records, err := repo.rows.Rows()
	if err != nil {
		return nil, err
	}

	medications := make([]models.Medication, 0, len(records))
	for index, record := range records {
		medication, invalid := medicationFromColumns(record)
		if len(invalid) > 0 {
			repo.logger.Warn().
				Int("row", index+1).
				Strs("columns", invalid).
				Msg("medication row has unparseable columns; kept as unknown")
		}
		medications = append(medications, medication)
	}
	return medications, nil
}

func (repo *MedicationRepository) Append(medication models.Medication) error {
	return repo.rows.Append(medicationToColumns(medication))
}

func (repo *MedicationRepository) Flush() error {
	return repo.rows.Flush()
}
