package pbrates

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/robotomize/pbrates/internal/logging"
	"github.com/robotomize/pbrates/provider"
	"github.com/robotomize/pbrates/provider/privatbank"
	"github.com/sirupsen/logrus"
)

type Historian interface {
	FetchDays(ctx context.Context, n DayCount) Batch
	Fetch(ctx context.Context, dates []provider.DateKey) Batch
}

type Option func(*historian)

type Options struct {
	ArchiveURL url.URL
	Clock      func() time.Time
}

// WithArchiveURL set the archive endpoint, the PrivatBank API by default
func WithArchiveURL(u url.URL) Option {
	return func(h *historian) {
		h.opts.ArchiveURL = u
	}
}

// WithClock set the function that tells the current date
func WithClock(now func() time.Time) Option {
	return func(h *historian) {
		h.opts.Clock = now
	}
}

// New return historian. The client is shared by all queries of a batch
func New(client *http.Client, opts ...Option) *historian {
	if client == nil {
		client = http.DefaultClient
	}

	h := &historian{
		client: client,
		opts: Options{
			ArchiveURL: privatbank.DefaultArchiveURL,
			Clock:      time.Now,
		},
	}

	for _, opt := range opts {
		opt(h)
	}

	h.source = privatbank.NewSource(client, privatbank.WithArchiveURL(h.opts.ArchiveURL))

	return h
}

var _ Historian = (*historian)(nil)

type historian struct {
	opts   Options
	client *http.Client
	source provider.Source
}

// FetchDays fetches the archives for today and the n-1 days before it
func (h *historian) FetchDays(ctx context.Context, n DayCount) Batch {
	return h.Fetch(ctx, DateKeys(h.opts.Clock(), n))
}

// Fetch queries every date at once and returns when all of them finished. A failed date is recorded
// in its Result and never cancels the others
func (h *historian) Fetch(ctx context.Context, dates []provider.DateKey) Batch {
	defer h.client.CloseIdleConnections()

	batch := Batch{
		ID:      uuid.NewString(),
		Results: make([]Result, len(dates)),
	}

	logger := logging.FromContext(ctx).WithField("batch", batch.ID)
	logger.WithField("dates", len(dates)).Debug("batch started")

	var group multierror.Group
	for idx, date := range dates {
		idx, date := idx, date
		group.Go(func() error {
			start := time.Now()
			archive, err := h.source.FetchArchive(ctx, date)
			entry := logger.WithFields(logrus.Fields{
				"date":    date,
				"elapsed": time.Since(start),
			})

			if err != nil {
				batch.Results[idx] = Failure(date, err)
				entry.WithError(err).Debug("archive fetch failed")

				return fmt.Errorf("%s: %w", date, err)
			}

			batch.Results[idx] = Success(date, archive)
			entry.Debug("archive fetched")

			return nil
		})
	}

	batch.errs = group.Wait()

	logger.WithField("failed", batch.Failed()).Debug("batch finished")

	return batch
}
