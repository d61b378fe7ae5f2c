package db

import (
	"github.com/rs/zerolog"
	"github.com/terraincognita07/healthjournal/internal/models"
)

type DailyRecordRepository struct {
	rows   RowStore
	codec  models.MealLogCodec
	logger zerolog.Logger
}

func NewDailyRecordRepository(rows RowStore, codec models.MealLogCodec, logger zerolog.Logger) *DailyRecordRepository {
	return &DailyRecordRepository{rows: rows, codec: codec, logger: logger}
}

// ListAll returns records in insertion order, duplicates included.
func (repo *DailyRecordRepository) ListAll() ([]models.DailyRecord, error) {
	rows, err := repo.rows.Rows()
	if err != nil {
		return nil, err
	}

	records := make([]models.DailyRecord, 0, len(rows))
	for index, row := range rows {
		record, invalid := dailyRecordFromColumns(row, repo.codec)
		if len(invalid) > 0 {
			repo.logger.Warn().
				Int("row", index+1).
				Strs("columns", invalid).
				Msg("daily record row has unparseable columns; severities default to 0, others kept as unknown")
		}
		records = append(records, record)
	}
	return records, nil
}

func (repo *DailyRecordRepository) Append(record models.DailyRecord) error {
	return repo.rows.Append(dailyRecordToColumns(record, repo.codec))
}

func (repo *DailyRecordRepository) Flush() error {
	return repo.rows.Flush()
}
