package providers

import (
	"context"
	"errors"
)

var ErrEmptyResponse = errors.New("generative api returned no candidates")

// TextGenerator sends one prompt to a generative-language model and returns
// the text of its first candidate.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
