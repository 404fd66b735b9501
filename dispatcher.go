package main

import (
	"context"

	"github.com/wailsapp/wails/v3/pkg/application"
)

// Dispatcher runs fn on the UI's serialized executor. Every effect the
// telemetry loop derives goes through here; the loop never touches UI
// state itself.
type Dispatcher interface {
	Dispatch(fn func())
}

// wailsDispatcher queues onto the desktop main thread.
type wailsDispatcher struct{}

func (wailsDispatcher) Dispatch(fn func()) {
	application.InvokeAsync(fn)
}

// queueDispatcher is the headless executor: a single goroutine draining a
// channel of functions in submission order.
type queueDispatcher struct {
	ch   chan func()
	done chan struct{}
}

func newQueueDispatcher(size int) *queueDispatcher {
	return &queueDispatcher{
		ch:   make(chan func(), size),
		done: make(chan struct{}),
	}
}

// Dispatch blocks while the queue is full. Once Run has returned, fn is
// discarded.
func (q *queueDispatcher) Dispatch(fn func()) {
	select {
	case q.ch <- fn:
	case <-q.done:
	}
}

func (q *queueDispatcher) Run(ctx context.Context) error {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-q.ch:
			fn()
		}
	}
}
