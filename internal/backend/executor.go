package backend

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tengjizhang/trs/internal/model"
)

const (
	commandBuffer = 64
	eventBuffer   = 16
)

// Service is the ingestion surface the executor drives.
type Service interface {
	AddChannel(ctx context.Context, link string) (model.StoredChannel, error)
	RemoveChannel(ctx context.Context, id int64) (int64, error)
	MarkArticle(ctx context.Context, id int64, unread bool) error
	ListChannels(ctx context.Context, limit int) ([]model.StoredChannel, error)
}

// Executor owns the service for its whole lifetime and runs one command at a
// time, so nothing else touches the store or the HTTP client concurrently.
type Executor struct {
	svc    Service
	logger *slog.Logger

	commands  chan Command
	events    chan Event
	closeOnce sync.Once
}

func NewExecutor(svc Service, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{
		svc:      svc,
		logger:   logger,
		commands: make(chan Command, commandBuffer),
		events:   make(chan Event, eventBuffer),
	}
}

func (e *Executor) Commands() chan<- Command {
	return e.commands
}

func (e *Executor) Events() <-chan Event {
	return e.events
}

// Close ends the command stream; Run drains what is queued and returns.
func (e *Executor) Close() {
	e.closeOnce.Do(func() {
		close(e.commands)
	})
}

// Run executes commands until the command channel is closed or ctx is done.
// The event channel is closed on return.
func (e *Executor) Run(ctx context.Context) error {
	defer close(e.events)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-e.commands:
			if !ok {
				return nil
			}
			e.execute(ctx, cmd)
		}
	}
}

func (e *Executor) execute(ctx context.Context, cmd Command) {
	e.logger.Debug("executing command", "command", cmd.String())

	limit := 0
	var err error
	switch c := cmd.(type) {
	case AddChannel:
		_, err = e.svc.AddChannel(ctx, c.Link)
	case RemoveChannel:
		_, err = e.svc.RemoveChannel(ctx, c.ID)
	case MarkArticleRead:
		err = e.svc.MarkArticle(ctx, c.ID, c.Unread)
	case ListChannels:
		limit = c.Limit
	}
	if err != nil {
		e.fail(ctx, cmd, err)
		return
	}

	channels, err := e.svc.ListChannels(ctx, limit)
	if err != nil {
		e.fail(ctx, cmd, err)
		return
	}
	e.publish(ctx, ReloadState{Channels: channels})
}

func (e *Executor) fail(ctx context.Context, cmd Command, err error) {
	e.logger.Error("command failed", "command", cmd.String(), "err", err)
	e.publish(ctx, CommandFailed{Command: cmd, Err: err})
}

func (e *Executor) publish(ctx context.Context, ev Event) {
	select {
	case e.events <- ev:
	case <-ctx.Done():
	}
}
