package commandkit

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Future is a channel-backed handle to a result that may still be in
// flight, the idiomatic Go stand-in for spec.md §4.7's "Future<Result>"
// (an unbuffered done channel that is closed on completion, rather than a
// callback registry).
type Future[T any] struct {
	done   chan struct{}
	result T
	err    error
}

func newFuture[T any]() *Future[T] { return &Future[T]{done: make(chan struct{})} }

func (f *Future[T]) complete(result T, err error) {
	f.result, f.err = result, err
	close(f.done)
}

// Wait blocks until the future completes or ctx is cancelled, whichever
// comes first (spec.md §5's "cancellation observed at suspension points").
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, ErrCancelled
	}
}

// Done reports whether the future has already completed, for a caller that
// wants to poll rather than block.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Preprocessor runs before tree parsing begins and may short-circuit
// execution by returning a non-nil error (spec.md §4.7 "pre-processors may
// reject before parsing").
type Preprocessor func(ctx context.Context, sender any, raw string) error

// Postprocessor runs after a command's handler completes successfully,
// observing (but not altering) the outcome (spec.md §4.7 "post-processors
// observe the result").
type Postprocessor func(ctx context.Context, cctx *CommandContext)

// ExecutionCoordinator runs one invocation end to end: preprocessors, tree
// parse, handler, postprocessors, with failures routed through the
// manager's ExceptionController (spec.md §4.7). The zero value is not
// usable; build one with NewSyncCoordinator or NewAsyncCoordinator.
type ExecutionCoordinator struct {
	manager        *CommandManager
	async          bool
	preprocessors  []Preprocessor
	postprocessors []Postprocessor
}

// NewSyncCoordinator builds a coordinator that runs Coordinate's work
// synchronously on the calling goroutine; the returned Future is already
// complete by the time Coordinate returns.
func NewSyncCoordinator(m *CommandManager) *ExecutionCoordinator {
	return &ExecutionCoordinator{manager: m}
}

// NewAsyncCoordinator builds a coordinator that runs Coordinate's work on a
// new goroutine per invocation, returning immediately with a pending Future.
func NewAsyncCoordinator(m *CommandManager) *ExecutionCoordinator {
	return &ExecutionCoordinator{manager: m, async: true}
}

// Coordinate runs sender's raw input through the full pipeline, per
// spec.md §4.7's suspension points: before preprocessors, before the parse
// walk, before the handler, and before postprocessors.
func (c *ExecutionCoordinator) Coordinate(ctx context.Context, sender any, raw string) *Future[struct{}] {
	future := newFuture[struct{}]()
	run := func() {
		future.complete(struct{}{}, c.run(ctx, sender, raw))
	}
	if c.async {
		go run()
	} else {
		run()
	}
	return future
}

func (c *ExecutionCoordinator) run(ctx context.Context, sender any, raw string) error {
	ctx, span := c.manager.tracer.Start(ctx, "commandkit.execute",
		trace.WithAttributes(attribute.String("commandkit.input", raw)))
	defer span.End()

	var cctx *CommandContext
	var err error
	defer func() {
		if err != nil {
			recordSpanErr(span, err)
			c.manager.exceptions.Handle(ctx, cctx, err)
		}
	}()

	if ctx.Err() != nil {
		err = ErrCancelled
		return err
	}
	for _, p := range c.preprocessors {
		if err = p(ctx, sender, raw); err != nil {
			return err
		}
	}

	if ctx.Err() != nil {
		err = ErrCancelled
		return err
	}
	in := NewCommandInput(raw)
	parse := c.manager.tree.Parse(ctx, sender, in, c.manager.injector)
	cctx = parse.Context

	if cctx.command == nil {
		if e := parse.firstErr(); e != nil {
			err = e
		} else {
			err = newNoSuchCommandError(parse.Input)
		}
		return err
	}
	if parse.Input.CanRead() && c.manager.failOnExtraneousInput {
		err = newInvalidSyntaxError(parse.Input, "end of command")
		return err
	}

	if ctx.Err() != nil {
		err = ErrCancelled
		return err
	}
	targets := []*CommandContext{cctx}
	if cctx.modifier != nil {
		targets, err = cctx.modifier(cctx)
		if err != nil {
			return err
		}
	}
	for _, t := range targets {
		if t.command == nil {
			continue
		}
		if handlerErr := t.command(ctx, t); handlerErr != nil {
			err = &CommandExecutionError{Cause: handlerErr}
			if !cctx.forks {
				return err
			}
			c.manager.exceptions.Handle(ctx, t, err)
			err = nil
		}
	}

	if ctx.Err() != nil {
		err = ErrCancelled
		return err
	}
	for _, post := range c.postprocessors {
		post(ctx, cctx)
	}
	return nil
}
