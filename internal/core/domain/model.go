package domain

// SimilarityMetrics holds the per-estimator measurements behind a pair
// comparison. All ratios are in [0,1]; character counts are >= 0.
type SimilarityMetrics struct {
	SourceChars        int     `json:"source_chars"`
	ReferenceChars     int     `json:"reference_chars"`
	JaccardResemblance float64 `json:"jaccard_resemblance"`
	Containment        float64 `json:"containment"`
	WinnowingOverlap   float64 `json:"winnowing_overlap"`
	SimhashSimilarity  float64 `json:"simhash_similarity"`
	SequenceRatio      float64 `json:"sequence_ratio"`
	LongestMatchChars  int     `json:"longest_match_chars"`
	LongestMatchRatio  float64 `json:"longest_match_ratio"`
	SharedNgrams       int     `json:"shared_ngrams"`
}

// EvidenceBlock is one human-auditable matching span. Offsets index into the
// original source/reference texts (code points, not bytes).
type EvidenceBlock struct {
	SourceStart    int    `json:"source_start"`
	ReferenceStart int    `json:"reference_start"`
	MatchChars     int    `json:"match_chars"`
	Snippet        string `json:"snippet"`
}

// SimilarityResult is the outcome of comparing one source against one
// reference. It is a value object created fresh per comparison.
type SimilarityResult struct {
	Score     float64           `json:"score"`
	Threshold float64           `json:"threshold"`
	Suspected bool              `json:"suspected"`
	Metrics   SimilarityMetrics `json:"metrics"`
	Evidence  []EvidenceBlock   `json:"evidence"`
}

// ReferenceRecord is a strictly typed reference document. Loose inputs are
// mapped into this shape at the boundary (see corpus.NormalizeRecords).
type ReferenceRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ReferenceRow is one ranked entry of a corpus scan.
type ReferenceRow struct {
	ReferenceID    string            `json:"reference_id"`
	ReferenceTitle string            `json:"reference_title"`
	Score          float64           `json:"score"`
	Threshold      float64           `json:"threshold"`
	Suspected      bool              `json:"suspected"`
	Metrics        SimilarityMetrics `json:"metrics"`
	Evidence       []EvidenceBlock   `json:"evidence"`
}

// CorpusConfig echoes the comparison knobs a scan ran with.
type CorpusConfig struct {
	NgramSize       int `json:"ngram_size"`
	WinnowingK      int `json:"winnowing_k"`
	WinnowingWindow int `json:"winnowing_window"`
	MinMatchChars   int `json:"min_match_chars"`
}

// ReferenceCorpusResult aggregates a scan of one source against a list of
// reference documents. Results are sorted by score descending and truncated
// to the requested top-k before the aggregates are computed.
type ReferenceCorpusResult struct {
	SourceChars     int            `json:"source_chars"`
	Threshold       float64        `json:"threshold"`
	TotalReferences int            `json:"total_references"`
	FlaggedCount    int            `json:"flagged_count"`
	MaxScore        float64        `json:"max_score"`
	Suspected       bool           `json:"suspected"`
	Results         []ReferenceRow `json:"results"`
	Config          CorpusConfig   `json:"config"`
}

// SubScores maps each stylometric signal to its clamped [0,1] contribution.
type SubScores struct {
	BurstinessLow       float64 `json:"burstiness_low"`
	RepetitionHigh      float64 `json:"repetition_high"`
	ConnectorHigh       float64 `json:"connector_high"`
	PunctuationUniform  float64 `json:"punctuation_uniform"`
	EntropyLow          float64 `json:"entropy_low"`
	LexicalDiversityLow float64 `json:"lexical_diversity_low"`
	TemplateDensityHigh float64 `json:"template_density_high"`
}

// StylometricSignals holds the raw surface measurements of one passage.
type StylometricSignals struct {
	TokenCount                 int       `json:"token_count"`
	CharCount                  int       `json:"char_count"`
	SentenceCount              int       `json:"sentence_count"`
	SentenceBurstinessCV       float64   `json:"sentence_burstiness_cv"`
	LexicalDiversity           float64   `json:"lexical_diversity"`
	Repeated3gramRatio         float64   `json:"repeated_3gram_ratio"`
	ConnectorDensityPer1kChars float64   `json:"connector_density_per_1k_chars"`
	DominantPunctuationRatio   float64   `json:"dominant_punctuation_ratio"`
	TokenEntropyNorm           float64   `json:"token_entropy_norm"`
	TemplateHeadingDensity     float64   `json:"template_heading_density"`
	SubScores                  SubScores `json:"sub_scores"`
}

// Risk levels reported by the AI-likelihood estimator.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// AiRateResult is the outcome of a single AI-likelihood estimation.
type AiRateResult struct {
	AiRate        float64            `json:"ai_rate"`
	AiRatePercent int                `json:"ai_rate_percent"`
	Threshold     float64            `json:"threshold"`
	SuspectedAI   bool               `json:"suspected_ai"`
	RiskLevel     string             `json:"risk_level"`
	Confidence    float64            `json:"confidence"`
	Signals       StylometricSignals `json:"signals"`
	Evidence      []string           `json:"evidence"`
	Note          string             `json:"note"`
}
