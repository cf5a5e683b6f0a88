package pbrates

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/robotomize/pbrates/provider"
)

type ResultStatus byte

const (
	ResultStatusFailed ResultStatus = iota
	ResultStatusOK
)

// Result is the outcome of one archive query. Exactly one of Archive (OK) and Reason (Failed) is meaningful
type Result struct {
	Date    provider.DateKey
	Status  ResultStatus
	Archive provider.Archive
	Reason  string

	err error
}

func Success(date provider.DateKey, archive provider.Archive) Result {
	return Result{Date: date, Status: ResultStatusOK, Archive: archive}
}

func Failure(date provider.DateKey, err error) Result {
	return Result{
		Date:   date,
		Status: ResultStatusFailed,
		Reason: fmt.Sprintf("Failed to fetch data for %s", date),
		err:    err,
	}
}

func (r Result) OK() bool {
	return r.Status == ResultStatusOK
}

// Err returns the cause of a failed query
func (r Result) Err() error {
	return r.err
}

// Batch holds results index-aligned with the requested dates
type Batch struct {
	ID      string
	Results []Result

	errs *multierror.Error
}

// Err joins the causes of every failed query, nil when all succeeded
func (b Batch) Err() error {
	return b.errs.ErrorOrNil()
}

func (b Batch) Failed() int {
	var n int
	for _, r := range b.Results {
		if !r.OK() {
			n++
		}
	}

	return n
}
