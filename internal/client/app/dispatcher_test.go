package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventLogin, "username", "alice", "password", "secret1", "dangling")

	assert.Equal(t, EventLogin, e.Type)
	assert.Equal(t, "alice", e.Get("username"))
	assert.Equal(t, "secret1", e.Get("password"))
	assert.Empty(t, e.Get("dangling"))
	assert.Len(t, e.Data, 2)
}

func TestDispatcher_Dispatch(t *testing.T) {
	d := NewDispatcher(testLogger())

	var got []string
	d.Register(EventNavigate, func(_ context.Context, e Event) error {
		got = append(got, e.Get("page"))
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), NewEvent(EventNavigate, "page", "users")))
	require.NoError(t, d.Dispatch(context.Background(), NewEvent(EventNavigate, "page", "recipes")))
	assert.Equal(t, []string{"users", "recipes"}, got)
}

func TestDispatcher_UnknownEvent(t *testing.T) {
	d := NewDispatcher(testLogger())
	assert.NoError(t, d.Dispatch(context.Background(), NewEvent("fly")))
}

func TestDispatcher_ReplaceAndErrors(t *testing.T) {
	d := NewDispatcher(testLogger())
	wantErr := errors.New("boom")

	d.Register(EventLogout, func(context.Context, Event) error { return nil })
	d.Register(EventLogout, func(context.Context, Event) error { return wantErr })

	assert.ErrorIs(t, d.Dispatch(context.Background(), NewEvent(EventLogout)), wantErr)
}

func TestDispatcher_RecoversPanic(t *testing.T) {
	d := NewDispatcher(testLogger())
	d.Register(EventExport, func(context.Context, Event) error {
		panic("bad handler")
	})

	err := d.Dispatch(context.Background(), NewEvent(EventExport))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad handler")
}
