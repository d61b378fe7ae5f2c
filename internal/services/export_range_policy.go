package services

import (
	"errors"

	"cloud.google.com/go/civil"
	"github.com/terraincognita07/healthjournal/internal/models"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ParseExportRange reads optional inclusive bounds. A blank side is open.
func ParseExportRange(rawFrom string, rawTo string) (*civil.Date, *civil.Date, error) {
	from, err := models.ParseDate(rawFrom)
	if err != nil {
		return nil, nil, ErrExportFromDateInvalid
	}
	to, err := models.ParseDate(rawTo)
	if err != nil {
		return nil, nil, ErrExportToDateInvalid
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrExportRangeInvalid
	}
	return from, to, nil
}
