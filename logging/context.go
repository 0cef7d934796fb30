package logging

import (
	"context"

	"github.com/google/uuid"
)

type debugTagKey struct{}

// WithDebug returns a context under which CDebugw entries are written whatever the logger
// level, each carrying tag in the "debug" field. An empty tag is replaced by a random one so
// concurrent traced runs stay distinguishable.
func WithDebug(ctx context.Context, tag string) context.Context {
	if tag == "" {
		tag = uuid.NewString()
	}
	return context.WithValue(ctx, debugTagKey{}, tag)
}

// DebugTag returns the tag set by WithDebug and whether ctx carries one.
func DebugTag(ctx context.Context) (string, bool) {
	tag, ok := ctx.Value(debugTagKey{}).(string)
	return tag, ok
}
