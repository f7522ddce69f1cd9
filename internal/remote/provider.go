// Package remote is the optional text-completion fallback. The engine
// only consumes a CompletionProvider; failures of any shape collapse into
// an error the caller recovers from locally.
package remote

import "context"

// CompletionProvider is the capability interface for remote text
// generation. Implementations must treat empty or whitespace-only output
// as a failure.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// EmbeddingProvider is the optional capability for the semantic-retrieval
// path. Not every provider supports it.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
