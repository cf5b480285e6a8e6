package ports

import "context"

// TextGenerator produces free-form text from a prompt via a remote
// text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
