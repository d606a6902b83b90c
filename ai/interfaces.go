package ai

import "context"

// Embedding role prefixes. The embedding model family in use (e5-style) was
// trained with asymmetric role markers: query text must carry QueryPrefix
// and catalog text must have carried PassagePrefix at index-build time.
// Mismatched prefixes silently degrade match quality and nothing downstream
// can detect it, so this is a hard contract for every Embedder
// implementation, not a tuning knob.
const (
	QueryPrefix   = "query: "
	PassagePrefix = "passage: "
)

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedQuery generates an embedding for a search query. Implementations
	// prepend QueryPrefix before calling the model.
	// Returns an error if the embedding generation fails.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedPassages generates embeddings for catalog passage texts in a
	// batch. Implementations prepend PassagePrefix to each text. The
	// returned slice contains embeddings in the same order as the inputs.
	// Returns an error if any embedding generation fails.
	EmbedPassages(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider manages an Embedder instance and its lifecycle, ensuring it
// shares configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
