package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, logrus.DebugLevel)
	ctx := WithLogger(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Errorf("logger from context is not the stored logger")
	}

	FromContext(ctx).WithField("date", "01.01.2024").Debug("archive fetched")
	if !strings.Contains(buf.String(), "date=01.01.2024") {
		t.Errorf("missing field in %q", buf.String())
	}
}

func TestFromContext_Default(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff(true, FromContext(context.Background()) == DefaultLogger()); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestNewLogger_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, logrus.InfoLevel)
	logger.Debug("hidden")

	if diff := cmp.Diff("", buf.String()); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}
