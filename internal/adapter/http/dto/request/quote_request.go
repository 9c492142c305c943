package request

import (
	"errors"
	"strings"
	"time"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDate = errors.New("dates must be YYYY-MM-DD or RFC 3339")
)

const dateLayout = "2006-01-02"

type LocationRequest struct {
	Country string `json:"country" binding:"required"`
	City    string `json:"city"`
}

// CreateQuoteRequest is the intake payload. Money fields accept JSON numbers
// or decimal strings.
type CreateQuoteRequest struct {
	CargoType          string          `json:"cargo_type" binding:"required"`
	ShipmentValue      decimal.Decimal `json:"shipment_value"`
	Origin             LocationRequest `json:"origin" binding:"required"`
	Destination        LocationRequest `json:"destination" binding:"required"`
	TransportationMode string          `json:"transportation_mode" binding:"required"`
	StartDate          string          `json:"start_date" binding:"required"`
	EndDate            string          `json:"end_date" binding:"required"`
	CoverageTier       string          `json:"coverage_tier"`
	Premium            decimal.Decimal `json:"premium"`
	Deductible         decimal.Decimal `json:"deductible"`
}

func (r CreateQuoteRequest) ToCommand() (usecase.CreateQuoteCommand, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return usecase.CreateQuoteCommand{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return usecase.CreateQuoteCommand{}, err
	}

	return usecase.CreateQuoteCommand{
		CargoType:          strings.TrimSpace(r.CargoType),
		ShipmentValue:      r.ShipmentValue,
		Origin:             entities.Location{Country: r.Origin.Country, City: r.Origin.City},
		Destination:        entities.Location{Country: r.Destination.Country, City: r.Destination.City},
		TransportationMode: entities.TransportationMode(strings.ToLower(strings.TrimSpace(r.TransportationMode))),
		StartDate:          start,
		EndDate:            end,
		CoverageTier:       entities.CoverageTier(strings.ToLower(strings.TrimSpace(r.CoverageTier))),
		Premium:            r.Premium,
		Deductible:         r.Deductible,
	}, nil
}

// parseDate accepts a calendar date (midnight UTC) or a full timestamp.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}
