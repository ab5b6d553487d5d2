package safe_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/briareus/pkg/utils/safe"
)

type failCloser struct{ closed bool }

func (c *failCloser) Close() error {
	c.closed = true
	return errors.New("close failed")
}

func TestClose(t *testing.T) {
	ctx := context.Background()

	safe.Close(ctx, nil)

	c := &failCloser{}
	safe.Close(ctx, c)
	gt.Bool(t, c.closed).True()
}

func TestWrite(t *testing.T) {
	ctx := context.Background()

	safe.Write(ctx, nil, []byte("dropped"))

	var buf bytes.Buffer
	safe.Write(ctx, &buf, []byte("hello"))
	gt.Value(t, buf.String()).Equal("hello")
}
