package commandkit

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// recordSpanErr marks span failed and attaches err, the shared tail of
// every traced operation's error path (commandkit.execute, commandkit.suggest).
func recordSpanErr(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
