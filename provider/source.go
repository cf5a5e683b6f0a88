package provider

import (
	"context"
	"errors"
	"time"
)

// DateLayout is the archive date format, DD.MM.YYYY
const DateLayout = "02.01.2006"

var ErrDecode = errors.New("decoding of the archive failed")

// Source is an interface for getting daily archives from an external service. Source takes care of
// building the request for a date and decoding the response
//
//go:generate mockgen -source source.go -destination mock_source.go -package provider
type Source interface {
	// FetchArchive returns the exchange rates archive published for the date
	FetchArchive(ctx context.Context, date DateKey) (Archive, error)
}

// DateKey is a calendar date formatted as DD.MM.YYYY, the unit of query granularity
type DateKey string

func NewDateKey(t time.Time) DateKey {
	return DateKey(t.Format(DateLayout))
}

func (d DateKey) String() string {
	return string(d)
}

// Archive is the archive response for a single date
type Archive struct {
	Date         Value   `json:"date"`
	ExchangeRate []Quote `json:"exchangeRate"`
}

// Find returns the first quote with the currency code
func (a Archive) Find(code string) (Quote, bool) {
	for _, q := range a.ExchangeRate {
		if q.Currency == code {
			return q, true
		}
	}

	return Quote{}, false
}

// Quote represents the NBU rates of a particular currency against UAH
type Quote struct {
	Currency       string `json:"currency"`
	PurchaseRateNB Value  `json:"purchaseRateNB"`
	SaleRateNB     Value  `json:"saleRateNB"`
}
