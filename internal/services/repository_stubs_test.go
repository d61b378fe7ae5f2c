package services

import (
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/terraincognita07/healthjournal/internal/models"
)

type medicationRepositoryStub struct {
	medications []models.Medication
	appendCalls int
	listErr     error
	appendErr   error
}

func (stub *medicationRepositoryStub) ListAll() ([]models.Medication, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.Medication, len(stub.medications))
	copy(result, stub.medications)
	return result, nil
}

func (stub *medicationRepositoryStub) Append(medication models.Medication) error {
	stub.appendCalls++
	if stub.appendErr != nil {
		return stub.appendErr
	}
	stub.medications = append(stub.medications, medication)
	return nil
}

type dailyRecordRepositoryStub struct {
	records     []models.DailyRecord
	appendCalls int
	listErr     error
	appendErr   error
}

func (stub *dailyRecordRepositoryStub) ListAll() ([]models.DailyRecord, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.DailyRecord, len(stub.records))
	copy(result, stub.records)
	return result, nil
}

func (stub *dailyRecordRepositoryStub) Append(record models.DailyRecord) error {
	stub.appendCalls++
	if stub.appendErr != nil {
		return stub.appendErr
	}
	stub.records = append(stub.records, record)
	return nil
}

// translatorStub renders keys verbatim so assertions do not depend on locale text.
type translatorStub struct{}

func (translatorStub) Translate(language string, key string) string {
	return language + ":" + key
}

func (translatorStub) Translatef(language string, key string, args ...any) string {
	rendered := language + ":" + key
	for _, arg := range args {
		switch typed := arg.(type) {
		case float64:
			rendered += "|" + strconv.FormatFloat(typed, 'f', 2, 64)
		case string:
			rendered += "|" + typed
		}
	}
	return rendered
}

func date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func datePtr(year int, month time.Month, day int) *civil.Date {
	value := date(year, month, day)
	return &value
}

func clockPtr(hour int, minute int) *civil.Time {
	return &civil.Time{Hour: hour, Minute: minute}
}

func intPtr(value int) *int {
	return &value
}
