package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Attribute keys shared by logs and metrics.
const (
	CorrelationIDKey = "correlation_id"
	OperationKey     = "operation"
	DurationKey      = "duration_ms"
	ErrorKey         = "error"
)

// Scope identifies the command run a log record belongs to.
type Scope struct {
	CorrelationID string
	// Operation is the cobra command path or console action.
	Operation string
}

type scopeKey struct{}

// ScopeFrom returns the scope stored in ctx; the zero Scope when there is none.
func ScopeFrom(ctx context.Context) Scope {
	if ctx == nil {
		return Scope{}
	}
	s, _ := ctx.Value(scopeKey{}).(Scope)
	return s
}

// WithCorrelationID sets the correlation id, generating a UUID when id is empty.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	s := ScopeFrom(ctx)
	s.CorrelationID = id
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithOperation sets the operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	s := ScopeFrom(ctx)
	s.Operation = operation
	return context.WithValue(ctx, scopeKey{}, s)
}

func (s Scope) attrs() []slog.Attr {
	var attrs []slog.Attr
	if s.CorrelationID != "" {
		attrs = append(attrs, slog.String(CorrelationIDKey, s.CorrelationID))
	}
	if s.Operation != "" {
		attrs = append(attrs, slog.String(OperationKey, s.Operation))
	}
	return attrs
}
