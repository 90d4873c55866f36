package utils

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mdobak/go-xerrors"
)

type ctxKey string

const slogFields ctxKey = "slog_fields"

type contextHandler struct {
	slog.Handler
}

// Handle appends context-carried attributes before delegating to the
// wrapped handler.
func (h contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, attr := range attrs {
			record.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, record)
}

type stackFrame struct {
	Func   string `json:"func"`
	Source string `json:"source"`
	Line   int    `json:"line"`
}

func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Value.Kind() {
	case slog.KindAny:
		switch v := attr.Value.Any().(type) {
		case error:
			attr.Value = formatError(v)
		}
	}
	return attr
}

// formatError renders an error together with its stack trace when the
// error carries one (xerrors values do).
func formatError(err error) slog.Value {
	groupValues := []slog.Attr{
		slog.String("msg", err.Error()),
	}
	if frames := marshalStack(err); frames != nil {
		groupValues = append(groupValues, slog.Any("trace", frames))
	}
	return slog.GroupValue(groupValues...)
}

func marshalStack(err error) []stackFrame {
	trace := xerrors.StackTrace(err)
	if len(trace) == 0 {
		return nil
	}

	frames := trace.Frames()
	stack := make([]stackFrame, len(frames))
	for i, frame := range frames {
		stack[i] = stackFrame{
			Source: filepath.Join(
				filepath.Base(filepath.Dir(frame.File)),
				filepath.Base(frame.File),
			),
			Func: filepath.Base(frame.Function),
			Line: frame.Line,
		}
	}
	return stack
}

var (
	loggerOnce sync.Once
	logger     *slog.Logger
)

// GetLogger returns the shared JSON logger. Errors logged with
// slog.Any("error", err) are expanded into message plus stack trace.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			ReplaceAttr: replaceAttr,
		})
		logger = slog.New(contextHandler{handler})
	})
	return logger
}
