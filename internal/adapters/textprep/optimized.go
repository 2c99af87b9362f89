package textprep

import (
	core "github.com/textintel/go_content_authenticity/internal/core/textprep"
	"github.com/textintel/go_content_authenticity/internal/pool"
	"github.com/textintel/go_content_authenticity/internal/ports"
)

// OptimizedPreparer implements the preparation strategy with an ASCII
// decision table and buffer pooling for the shingling normalizer, which is
// the hottest path when scanning large reference corpora.
type OptimizedPreparer struct {
	// Decision table for ASCII characters:
	// 0 = drop, 1 = keep as is, 2 = convert to lowercase then keep
	asciiTable [128]byte

	bytePool *pool.BufferPool
}

// NewOptimizedPreparer creates a new optimized preparer.
func NewOptimizedPreparer() ports.TextPreparer {
	p := &OptimizedPreparer{
		bytePool: pool.NewBufferPool(8192),
	}
	for i := 0; i < 128; i++ {
		switch {
		case (i >= '0' && i <= '9') || (i >= 'a' && i <= 'z'):
			p.asciiTable[i] = 1
		case i >= 'A' && i <= 'Z':
			p.asciiTable[i] = 2
		default:
			p.asciiTable[i] = 0
		}
	}
	return p
}

// NormalizeForShingling reduces the text to its compact shingling form using
// the pooled-buffer fast path for ASCII-only input.
func (p *OptimizedPreparer) NormalizeForShingling(text string, maxChars int) string {
	if len(text) == 0 {
		return ""
	}
	if maxChars <= 0 {
		maxChars = core.DefaultShingleMaxChars
	}
	text = core.Truncate(text, maxChars)

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}
	if !asciiOnly {
		// Mixed-script input takes the rune-by-rune path.
		return core.NormalizeForShingling(text, maxChars)
	}

	buffer := p.bytePool.Get()
	defer p.bytePool.Put(buffer)

	dest := *buffer
	if cap(dest) < len(text) {
		dest = make([]byte, 0, len(text))
	}
	dest = dest[:0]
	for i := 0; i < len(text); i++ {
		b := text[i]
		switch p.asciiTable[b] {
		case 1:
			dest = append(dest, b)
		case 2:
			dest = append(dest, b+'a'-'A')
		}
	}
	s := string(dest)
	*buffer = dest[:0]
	return s
}

// Tokenize extracts the lower-cased token stream.
func (p *OptimizedPreparer) Tokenize(text string, maxChars int) []string {
	return core.Tokenize(text, maxChars)
}

// SplitSentences segments the text into sentences.
func (p *OptimizedPreparer) SplitSentences(text string, maxChars int) []string {
	return core.SplitSentences(text, maxChars)
}
