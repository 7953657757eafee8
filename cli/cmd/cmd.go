package cmd

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/runic/source"
)

type (
	contextKey    struct{}
	directivesKey struct{}
	stdinKey      struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithDirectives returns a new context.Context containing the ordered
// source and configuration directives scanned from the raw argument vector.
func WithDirectives(ctx context.Context, dirs []Directive) context.Context {
	return context.WithValue(ctx, directivesKey{}, dirs)
}

func directivesFrom(ctx context.Context) []Directive {
	dirs, _ := ctx.Value(directivesKey{}).([]Directive)

	return dirs
}

// WithStdin returns a new context.Context containing the standard-input
// claim ticket shared by source acquisition and configuration merging.
func WithStdin(ctx context.Context, c *source.Capture) context.Context {
	return context.WithValue(ctx, stdinKey{}, c)
}

func stdinFrom(ctx context.Context) *source.Capture {
	c, _ := ctx.Value(stdinKey{}).(*source.Capture)

	return c
}
