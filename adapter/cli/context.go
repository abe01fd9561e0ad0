package cli

import (
	"context"
	"time"
)

type commandStartKey struct{}

func contextWithStart(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, commandStartKey{}, t)
}

func startFromContext(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(commandStartKey{}).(time.Time)
	return t, ok
}
