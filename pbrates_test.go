package pbrates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/robotomize/pbrates/provider"
	"github.com/robotomize/pbrates/provider/httputil"
)

var errTestUnavailable = errors.New("service unavailable")

func testArchive(date string) provider.Archive {
	return provider.Archive{
		Date: provider.NewValue(date),
		ExchangeRate: []provider.Quote{
			{Currency: "USD", PurchaseRateNB: provider.NewValue("27.5"), SaleRateNB: provider.NewValue("28.0")},
		},
	}
}

func TestHistorian_Fetch(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		dates      []provider.DateKey
		failed     map[provider.DateKey]bool
		wantStatus []ResultStatus
	}{
		{
			name:       "test_fetch_all_ok",
			dates:      []provider.DateKey{"03.01.2024", "02.01.2024", "01.01.2024"},
			wantStatus: []ResultStatus{ResultStatusOK, ResultStatusOK, ResultStatusOK},
		},
		{
			name:       "test_fetch_first_failed",
			dates:      []provider.DateKey{"02.01.2024", "01.01.2024"},
			failed:     map[provider.DateKey]bool{"02.01.2024": true},
			wantStatus: []ResultStatus{ResultStatusFailed, ResultStatusOK},
		},
		{
			name:       "test_fetch_all_failed",
			dates:      []provider.DateKey{"02.01.2024", "01.01.2024"},
			failed:     map[provider.DateKey]bool{"02.01.2024": true, "01.01.2024": true},
			wantStatus: []ResultStatus{ResultStatusFailed, ResultStatusFailed},
		},
		{
			name:       "test_fetch_empty",
			dates:      []provider.DateKey{},
			wantStatus: []ResultStatus{},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			source := provider.NewMockSource(ctrl)
			source.EXPECT().FetchArchive(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, date provider.DateKey) (provider.Archive, error) {
					if tc.failed[date] {
						return provider.Archive{}, errTestUnavailable
					}

					return testArchive(date.String()), nil
				},
			).Times(len(tc.dates))

			h := New(http.DefaultClient)
			h.source = source

			batch := h.Fetch(context.Background(), tc.dates)

			if diff := cmp.Diff(len(tc.dates), len(batch.Results)); diff != "" {
				t.Fatalf("bad results len (-want, +got): %s", diff)
			}

			gotStatus := make([]ResultStatus, len(batch.Results))
			for i, r := range batch.Results {
				gotStatus[i] = r.Status
				if diff := cmp.Diff(tc.dates[i], r.Date); diff != "" {
					t.Errorf("result %d is not aligned with its date (-want, +got): %s", i, diff)
				}

				if r.OK() {
					if diff := cmp.Diff(tc.dates[i].String(), r.Archive.Date.String()); diff != "" {
						t.Errorf("mismatch (-want, +got):\n%s", diff)
					}
					continue
				}

				if diff := cmp.Diff("Failed to fetch data for "+tc.dates[i].String(), r.Reason); diff != "" {
					t.Errorf("mismatch (-want, +got):\n%s", diff)
				}

				if !errors.Is(r.Err(), errTestUnavailable) {
					t.Errorf("result error %v does not wrap %v", r.Err(), errTestUnavailable)
				}
			}

			if diff := cmp.Diff(tc.wantStatus, gotStatus); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}

			if diff := cmp.Diff(len(tc.failed), batch.Failed()); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}

			if len(tc.failed) == 0 && batch.Err() != nil {
				t.Errorf("unexpected batch error: %v", batch.Err())
			}

			if len(tc.failed) > 0 && !errors.Is(batch.Err(), errTestUnavailable) {
				t.Errorf("batch error %v does not wrap %v", batch.Err(), errTestUnavailable)
			}
		})
	}
}

func TestHistorian_Fetch_Concurrent(t *testing.T) {
	t.Parallel()

	dates := DateKeys(time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC), MaxDays)

	var arrived sync.WaitGroup
	arrived.Add(len(dates))
	release := make(chan struct{})
	go func() {
		arrived.Wait()
		close(release)
	}()

	ctrl := gomock.NewController(t)
	source := provider.NewMockSource(ctrl)
	source.EXPECT().FetchArchive(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, date provider.DateKey) (provider.Archive, error) {
			arrived.Done()
			select {
			case <-release:
				return testArchive(date.String()), nil
			case <-time.After(5 * time.Second):
				return provider.Archive{}, errors.New("queries were not in flight together")
			}
		},
	).Times(len(dates))

	h := New(http.DefaultClient)
	h.source = source

	batch := h.Fetch(context.Background(), dates)
	if err := batch.Err(); err != nil {
		t.Errorf("fetch: %v", err)
	}
}

func TestHistorian_Fetch_SlowFailureDoesNotDelaySuccess(t *testing.T) {
	t.Parallel()

	failing, succeeding := provider.DateKey("01.01.2024"), provider.DateKey("02.01.2024")
	succeeded := make(chan struct{})

	ctrl := gomock.NewController(t)
	source := provider.NewMockSource(ctrl)
	source.EXPECT().FetchArchive(gomock.Any(), failing).DoAndReturn(
		func(ctx context.Context, date provider.DateKey) (provider.Archive, error) {
			select {
			case <-succeeded:
			case <-time.After(5 * time.Second):
				t.Errorf("successful query was blocked by the failing one")
			}

			return provider.Archive{}, errTestUnavailable
		},
	)
	source.EXPECT().FetchArchive(gomock.Any(), succeeding).DoAndReturn(
		func(ctx context.Context, date provider.DateKey) (provider.Archive, error) {
			defer close(succeeded)
			return testArchive(date.String()), nil
		},
	)

	h := New(http.DefaultClient)
	h.source = source

	batch := h.Fetch(context.Background(), []provider.DateKey{failing, succeeding})

	if batch.Results[0].OK() {
		t.Errorf("expected failure for %s", failing)
	}

	if !batch.Results[1].OK() {
		t.Errorf("expected success for %s", succeeding)
	}
}

func TestHistorian_FetchDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)
	want := []provider.DateKey{"01.03.2024", "29.02.2024", "28.02.2024"}

	var mtx sync.Mutex
	requested := make(map[string]int)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")

		mtx.Lock()
		requested[date]++
		mtx.Unlock()

		if date == "29.02.2024" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"date":"` + date + `","exchangeRate":[{"currency":"USD","purchaseRateNB":27.5,"saleRateNB":28.0}]}`))
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("unable to parse url: %v", err)
	}

	h := New(srv.Client(), WithArchiveURL(*u), WithClock(func() time.Time { return now }))
	batch := h.FetchDays(context.Background(), 3)

	got := make([]provider.DateKey, len(batch.Results))
	for i, r := range batch.Results {
		got[i] = r.Date
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}

	for _, d := range want {
		if diff := cmp.Diff(1, requested[d.String()]); diff != "" {
			t.Errorf("date %s requested (-want, +got):\n%s", d, diff)
		}
	}

	if batch.Results[1].OK() || !errors.Is(batch.Results[1].Err(), httputil.ErrStatusCode) {
		t.Errorf("expected status code failure, got %v", batch.Results[1].Err())
	}

	if !batch.Results[0].OK() || !batch.Results[2].OK() {
		t.Errorf("failure of 29.02.2024 leaked into sibling dates")
	}
}
