package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWatchEventsCoalescesBursts(t *testing.T) {
	logger = zap.NewNop()

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchEvents(ctx, events, errs, "groundwork.json", 20*time.Millisecond, func() {
			runs.Add(1)
		})
	}()

	// A burst of saves and an unrelated file settle into one re-synthesis.
	events <- fsnotify.Event{Name: "groundwork.json", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "groundwork.json", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "./groundwork.json", Op: fsnotify.Create}
	events <- fsnotify.Event{Name: "other.txt", Op: fsnotify.Write}
	time.Sleep(150 * time.Millisecond)
	assert.EqualValues(t, 1, runs.Load())

	// A later save triggers another run.
	events <- fsnotify.Event{Name: "groundwork.json", Op: fsnotify.Write}
	time.Sleep(150 * time.Millisecond)
	assert.EqualValues(t, 2, runs.Load())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch loop did not stop on context cancel")
	}
}

func TestWatchEventsIgnoresChmod(t *testing.T) {
	logger = zap.NewNop()

	events := make(chan fsnotify.Event)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchEvents(ctx, events, nil, "groundwork.json", 20*time.Millisecond, func() {
			runs.Add(1)
		})
	}()

	events <- fsnotify.Event{Name: "groundwork.json", Op: fsnotify.Chmod}
	time.Sleep(100 * time.Millisecond)
	assert.EqualValues(t, 0, runs.Load())

	cancel()
	<-done
}

func TestWatchEventsStopsOnClosedChannel(t *testing.T) {
	logger = zap.NewNop()

	events := make(chan fsnotify.Event)
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchEvents(context.Background(), events, nil, "groundwork.json", time.Millisecond, func() {})
	}()

	close(events)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch loop did not stop on closed event channel")
	}
}
