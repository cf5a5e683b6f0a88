package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/robotomize/pbrates"
	"github.com/robotomize/pbrates/internal/console"
	"github.com/robotomize/pbrates/internal/logging"
	"github.com/robotomize/pbrates/provider/httputil"
)

type app struct {
	in  io.Reader
	out io.Writer
	now func() time.Time
}

func (a app) run(ctx context.Context, cfg Config) error {
	logger := logging.FromContext(ctx)

	days, err := a.dayCount(cfg.Days)
	if err != nil {
		return err
	}

	client := httputil.NewClient(cfg.Timeout, pbrates.MaxDays)
	historian := pbrates.New(
		client,
		pbrates.WithArchiveURL(cfg.ArchiveURL()),
		pbrates.WithClock(a.now),
	)

	batch := historian.FetchDays(ctx, days)
	if err := batch.Err(); err != nil {
		logger.WithField("batch", batch.ID).WithError(err).Debugf("%d of %d dates failed", batch.Failed(), len(batch.Results))
	}

	if err := console.Render(a.out, batch.Results); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}

// dayCount prompts when the count was not configured. A configured count is not re-prompted
func (a app) dayCount(configured int) (pbrates.DayCount, error) {
	if configured == 0 {
		days, err := console.ReadDayCount(a.in, a.out)
		if err != nil {
			return 0, fmt.Errorf("read day count: %w", err)
		}

		return days, nil
	}

	days, err := pbrates.NewDayCount(configured)
	if err != nil {
		return 0, fmt.Errorf("days: %w", err)
	}

	return days, nil
}
