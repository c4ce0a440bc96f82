package commandkit

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// ExceptionHandler handles one kind of failure surfaced during Execute,
// given the CommandContext it occurred in (nil if the failure happened
// before a context existed) and the error itself.
type ExceptionHandler func(ctx context.Context, cctx *CommandContext, err error)

// ExceptionController resolves a failure to the most specific registered
// handler by error code, generalizing holomush's type-switch over sender
// message kinds into a registry so a host can add kinds without touching
// this package (spec.md §4.9).
type ExceptionController struct {
	handlers map[string]ExceptionHandler
	fallback ExceptionHandler
	logger   *slog.Logger
}

// NewExceptionController builds an ExceptionController with a default
// fallback that logs the error at Error level.
func NewExceptionController() *ExceptionController {
	ec := &ExceptionController{handlers: map[string]ExceptionHandler{}, logger: slog.Default()}
	ec.fallback = func(_ context.Context, _ *CommandContext, err error) {
		ec.logger.Error("unhandled command exception", "error", err)
	}
	return ec
}

// Register installs handler for the given error code (e.g. CodeNoPermission),
// overwriting any handler previously registered for that code.
func (ec *ExceptionController) Register(code string, handler ExceptionHandler) {
	ec.handlers[code] = handler
}

// RegisterFallback overrides the handler invoked when no registered code
// matches.
func (ec *ExceptionController) RegisterFallback(handler ExceptionHandler) {
	ec.fallback = handler
}

// Handle resolves err to the most specific handler and invokes it exactly
// once (spec.md §4.9 "resolution is most-specific-kind, each exception is
// delivered to exactly one handler"). A handler that itself panics is not
// caught here, and the coordinator does not recover panics either.
func (ec *ExceptionController) Handle(ctx context.Context, cctx *CommandContext, err error) {
	if code, ok := errCode(err); ok {
		if h, ok := ec.handlers[code]; ok {
			h(ctx, cctx, err)
			return
		}
	}
	ec.fallback(ctx, cctx, err)
}

// errCode extracts the oops error code from anywhere in err's Unwrap chain
// (covers a bare oops error and the *ParseFailure/*CommandExecutionError
// families, whose Unwrap eventually reaches one).
func errCode(err error) (string, bool) {
	oErr, ok := oops.AsOops(err)
	if !ok || oErr.Code() == "" {
		return "", false
	}
	return oErr.Code(), true
}
