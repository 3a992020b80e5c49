package texts

import "context"

// Provider hands out race paragraphs for new rounds.
type Provider interface {
	// Random returns one paragraph chosen uniformly from the corpus. It never
	// fails hard: on lookup problems it falls back to a built-in pangram so a
	// round can always start.
	Random(ctx context.Context) (Text, error)
}

// Text is one race paragraph. ID references the texts table row; the fallback
// text carries ID 0 and is never referenced from persisted matches.
type Text struct {
	ID      int64
	Content string
}
