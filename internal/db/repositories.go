package db

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/healthjournal/internal/models"
)

const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

type Options struct {
	Driver           string
	MedicationsPath  string
	DailyRecordsPath string
	SQLitePath       string
}

type Repositories struct {
	Medications  *MedicationRepository
	DailyRecords *DailyRecordRepository
	close        func() error
}

// Open wires both repositories to the selected backend.
func Open(options Options, codec models.MealLogCodec, logger zerolog.Logger) (*Repositories, error) {
	switch options.Driver {
	case DriverCSV, "":
		medications, err := OpenCSVTable(options.MedicationsPath, MedicationColumns)
		if err != nil {
			return nil, err
		}
		dailyRecords, err := OpenCSVTable(options.DailyRecordsPath, DailyRecordColumns)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Medications:  NewMedicationRepository(medications, logger.With().Str("table", options.MedicationsPath).Logger()),
			DailyRecords: NewDailyRecordRepository(dailyRecords, codec, logger.With().Str("table", options.DailyRecordsPath).Logger()),
			close:        func() error { return nil },
		}, nil
	case DriverSQLite:
		database, err := OpenSQLite(options.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Medications:  NewMedicationRepository(NewSQLiteTable(database, "medications", MedicationColumns), logger.With().Str("table", "medications").Logger()),
			DailyRecords: NewDailyRecordRepository(NewSQLiteTable(database, "daily_records", DailyRecordColumns), codec, logger.With().Str("table", "daily_records").Logger()),
			close:        func() error { return closeSQLite(database) },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", options.Driver)
	}
}

func (repos *Repositories) Close() error {
	if repos == nil || repos.close == nil {
		return nil
	}
	return repos.close()
}
