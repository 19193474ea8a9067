package environment

import (
	"context"
	"log/slog"
)

// LogAttr reports the environment carried by ctx as an "env" attribute.
// It has the shape of a logger context extractor.
func LogAttr(ctx context.Context) (slog.Attr, bool) {
	env, ok := ctx.Value(contextKey{}).(Environment)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("env", string(env)), true
}
