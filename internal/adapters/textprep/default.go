package textprep

import (
	core "github.com/textintel/go_content_authenticity/internal/core/textprep"
	"github.com/textintel/go_content_authenticity/internal/ports"
)

// DefaultPreparer implements the default text-preparation strategy.
type DefaultPreparer struct{}

// NewDefaultPreparer creates a new default preparer.
func NewDefaultPreparer() ports.TextPreparer {
	return &DefaultPreparer{}
}

// NormalizeForShingling reduces the text to its compact shingling form.
func (p *DefaultPreparer) NormalizeForShingling(text string, maxChars int) string {
	return core.NormalizeForShingling(text, maxChars)
}

// Tokenize extracts the lower-cased token stream.
func (p *DefaultPreparer) Tokenize(text string, maxChars int) []string {
	return core.Tokenize(text, maxChars)
}

// SplitSentences segments the text into sentences.
func (p *DefaultPreparer) SplitSentences(text string, maxChars int) []string {
	return core.SplitSentences(text, maxChars)
}
