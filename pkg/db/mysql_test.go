package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMySQLRejectsBadDSN(t *testing.T) {
	_, err := NewMySQL("not a dsn", DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse mysql dsn")
}

func TestNewMySQLIsLazy(t *testing.T) {
	db, err := NewMySQL("chat:secret@tcp(127.0.0.1:1)/chat", DefaultOptions())
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 20, db.Stats().MaxOpenConnections)
}

type countingPinger struct {
	failures int
	calls    int
}

func (p *countingPinger) PingContext(ctx context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitReadyRetries(t *testing.T) {
	log, hook := test.NewNullLogger()
	p := &countingPinger{failures: 2}

	err := WaitReady(context.Background(), p, 5, time.Millisecond, log)

	require.NoError(t, err)
	assert.Equal(t, 3, p.calls)
	assert.Len(t, hook.Entries, 2)
}

func TestWaitReadyGivesUp(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := &countingPinger{failures: 10}

	err := WaitReady(context.Background(), p, 3, time.Millisecond, log)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, p.calls)
}

func TestWaitReadyStopsOnCancel(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitReady(ctx, &countingPinger{failures: 10}, 3, time.Hour, log)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
