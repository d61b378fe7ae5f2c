package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/healthjournal/internal/models"
)

var (
	ErrDailyRecordDateRequired = errors.New("daily record date is required")
	ErrDailyRecordLoadFailed   = errors.New("load daily records failed")
	ErrDailyRecordCreateFailed = errors.New("create daily record failed")
)

type DailyRecordRepository interface {
	ListAll() ([]models.DailyRecord, error)
	Append(record models.DailyRecord) error
}

type DailyRecordService struct {
	records DailyRecordRepository
}

func NewDailyRecordService(records DailyRecordRepository) *DailyRecordService {
	return &DailyRecordService{records: records}
}

// Add derives sleep hours when both clock values are present and the caller
// has not set them, then persists the record. Same-date records are kept
// side by side.
func (service *DailyRecordService) Add(record models.DailyRecord) (models.DailyRecord, error) {
	if record.Date == nil {
		return models.DailyRecord{}, ErrDailyRecordDateRequired
	}
	if record.SleepHours == nil && record.Bedtime != nil && record.WakeTime != nil {
		hours := SleepHours(*record.Bedtime, *record.WakeTime)
		record.SleepHours = &hours
	}
	if record.Meals == nil {
		record.Meals = models.MealLog{}
	}

	if err := service.records.Append(record); err != nil {
		return models.DailyRecord{}, fmt.Errorf("%w: %w", ErrDailyRecordCreateFailed, err)
	}
	return record, nil
}

func (service *DailyRecordService) LoadAll() ([]models.DailyRecord, error) {
	records, err := service.records.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDailyRecordLoadFailed, err)
	}
	return records, nil
}

func (service *DailyRecordService) QueryByVariable(variable string) ([]TrendPoint, error) {
	records, err := service.LoadAll()
	if err != nil {
		return nil, err
	}
	return TrendSeries(records, variable)
}
