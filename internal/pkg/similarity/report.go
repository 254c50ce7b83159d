package similarity

// BertScore keeps the token level precision/recall/f1 triple
type BertScore struct {
	Precision float64
	Recall    float64
	F1        float64
}

// Report is the evaluation pipeline output before aggregation.
// Either all four metrics are set or the report is the canonical empty one.
type Report struct {
	OriginalText   string
	TranslatedText string

	E5         float64
	LaBSE      float64
	BertScore  BertScore
	CometScore float64

	Description   string
	ExecutionTime float64
}

// EmptyReport returns the canonical all-zero report for a failed run
func EmptyReport(original, translated string) *Report {
	return &Report{OriginalText: original, TranslatedText: translated}
}
