//go:build unit

package job

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExpirer struct {
	n     int64
	err   error
	calls int
}

func (s *stubExpirer) ExpireOverdue(ctx context.Context) (int64, error) {
	s.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("sweep without deadline")
	}
	return s.n, s.err
}

func newTestScheduler(e DealExpirer) (*Scheduler, prometheus.Counter) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "expired_total"})
	return NewScheduler(e, counter, slog.New(slog.NewTextHandler(io.Discard, nil))), counter
}

func TestScheduler_SweepExpired(t *testing.T) {
	t.Run("counts expired deals", func(t *testing.T) {
		e := &stubExpirer{n: 3}
		s, counter := newTestScheduler(e)

		n, err := s.SweepExpired(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.Equal(t, 3.0, testutil.ToFloat64(counter))
	})

	t.Run("nothing overdue leaves the counter alone", func(t *testing.T) {
		s, counter := newTestScheduler(&stubExpirer{})

		n, err := s.SweepExpired(context.Background())

		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Zero(t, testutil.ToFloat64(counter))
	})

	t.Run("failure is returned", func(t *testing.T) {
		boom := errors.New("db down")
		s, counter := newTestScheduler(&stubExpirer{err: boom})

		_, err := s.SweepExpired(context.Background())

		assert.ErrorIs(t, err, boom)
		assert.Zero(t, testutil.ToFloat64(counter))
	})
}

func TestScheduler_Register(t *testing.T) {
	s, _ := newTestScheduler(&stubExpirer{})

	require.NoError(t, s.Register("@every 5m"))
	assert.Error(t, s.Register("not a spec"))
}
