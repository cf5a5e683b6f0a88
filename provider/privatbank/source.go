package privatbank

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/robotomize/pbrates/provider"
	"github.com/robotomize/pbrates/provider/httputil"
)

const hostname = "api.privatbank.ua"

const archiveRawPath = "/p24api/exchange_rates"

// DefaultArchiveURL is the PrivatBank exchange rates archive endpoint
var DefaultArchiveURL = url.URL{Scheme: "https", Host: hostname, Path: archiveRawPath}

var _ provider.Source = (*source)(nil)

type Option func(*source)

// WithArchiveURL points the source at another archive endpoint, a mirror or a test server
func WithArchiveURL(u url.URL) Option {
	return func(s *source) {
		s.archiveURL = u
	}
}

func NewSource(client *http.Client, opts ...Option) *source {
	s := &source{
		archiveURL:       DefaultArchiveURL,
		SourceHTTPClient: httputil.NewHTTPClient(client),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type source struct {
	archiveURL url.URL
	httputil.SourceHTTPClient
}

func (s *source) FetchArchive(ctx context.Context, date provider.DateKey) (provider.Archive, error) {
	b, err := s.Get(ctx, s.archiveURLFor(date))
	if err != nil {
		return provider.Archive{}, fmt.Errorf("fetching: %w", err)
	}

	archive, err := decodeJSON(b)
	if err != nil {
		return provider.Archive{}, fmt.Errorf("decode: %w", err)
	}

	return archive, nil
}

// archiveURLFor builds ?json&date=DD.MM.YYYY. The json flag has no value, so url.Values can not encode it
func (s *source) archiveURLFor(date provider.DateKey) url.URL {
	u := s.archiveURL
	u.RawQuery = "json&date=" + url.QueryEscape(date.String())

	return u
}
