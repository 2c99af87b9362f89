package ports

// TextPreparer defines the shared text-preparation layer both analyzers sit
// on. Implementations must be pure and deterministic: the same input and cap
// always yield the same output.
type TextPreparer interface {
	// NormalizeForShingling lower-cases the text and strips every character
	// that is not ASCII alphanumeric or a CJK ideograph, after truncating to
	// maxChars code points. maxChars <= 0 selects the default cap.
	NormalizeForShingling(text string, maxChars int) string

	// Tokenize lower-cases the text and extracts maximal [a-z0-9] runs plus
	// single CJK ideographs as individual tokens, after truncating to
	// maxChars code points. maxChars <= 0 selects the default cap.
	Tokenize(text string, maxChars int) []string

	// SplitSentences splits on runs of terminal punctuation (。！？!?；;) or
	// two-or-more consecutive newlines, dropping empty segments after
	// trimming. maxChars <= 0 selects the default cap.
	SplitSentences(text string, maxChars int) []string
}
