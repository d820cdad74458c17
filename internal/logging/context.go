package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldPatch is the standardized structured logging key for patch program names.
	FieldPatch = "patch"
	// FieldPath is the standardized structured logging key for file paths.
	FieldPath = "path"
	// FieldScanID is the standardized structured logging key for library scan identifiers.
	FieldScanID = "scan_id"
	// FieldBank is the standardized structured logging key for patch bank letters.
	FieldBank = "bank"
	// FieldLocation is the standardized structured logging key for patch slot locations.
	FieldLocation = "location"
	// FieldErrorKind is the standardized structured logging key for classified decode failures.
	FieldErrorKind = "error_kind"
	// FieldCount is the standardized structured logging key for item totals.
	FieldCount = "count"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)

type contextKey string

const scanIDKey contextKey = "scan_id"

// WithScanID stores a scan identifier on the context for downstream log enrichment.
func WithScanID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, scanIDKey, id)
}

// ScanIDFromContext returns the scan identifier carried by the context, if any.
func ScanIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(scanIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 1)
	if id, ok := ScanIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldScanID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
