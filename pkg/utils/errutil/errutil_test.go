package errutil_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/briareus/pkg/utils/errutil"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
)

func TestHandleNil(t *testing.T) {
	gt.NoError(t, errutil.Handle(context.Background(), nil, "should not log"))
}

func TestHandleLogsAndReturnsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := logging.With(context.Background(), logger)

	cause := errors.New("broken pipe")
	wrapped := goerr.Wrap(cause, "write failed", goerr.V("path", "/tmp/out.json"))

	err := errutil.Handle(ctx, wrapped, "command failed")
	gt.Error(t, err).Is(cause)

	var entry map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry)).Required()
	gt.Value(t, entry["msg"]).Equal("command failed")
	gt.Value(t, entry["error"]).Equal("write failed: broken pipe")
}

func TestHandlePlainError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := logging.With(context.Background(), logger)

	cause := errors.New("no such file")
	err := errutil.Handle(ctx, cause, "load failed")
	gt.Error(t, err).Is(cause)

	var entry map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry)).Required()
	gt.Value(t, entry["error"]).Equal("no such file")
}
