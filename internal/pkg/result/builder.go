package result

import (
	"math"

	"github.com/pkg/errors"

	"github.com/skaura/transeval/internal/pkg/similarity"
)

// URLResolver resolves storage keys to public facing references.
// An empty key resolves to an empty reference
type URLResolver interface {
	PublicURL(key string) string
}

// Builder folds a report into the terminal record
type Builder struct {
	urls URLResolver
}

// NewBuilder creates Builder
func NewBuilder(urls URLResolver) (*Builder, error) {
	if urls == nil {
		return nil, errors.New("No url resolver provided")
	}
	return &Builder{urls: urls}, nil
}

// Build constructs the record from the report.
// The overall score is round(100 * mean(e5, labse, bertscore f1, comet)),
// a missing metric counts as 0, so a degraded report always scores 0
func (b *Builder) Build(report *similarity.Report, req *similarity.Request, taskName string, failed bool) *Record {
	overall := (report.E5 + report.LaBSE + report.BertScore.F1 + report.CometScore) / 4
	status := StatusSuccess
	if failed {
		status = StatusFailure
	}
	return &Record{
		ProjectID:          req.ProjectID,
		Score:              int(math.Round(overall * 100)),
		InputText:          req.InputText,
		TranslationText:    report.TranslatedText,
		InputTextKey:       b.urls.PublicURL(req.InputTextKey),
		TranslationTextKey: b.urls.PublicURL(req.OutputTextKey),
		TranslationAPIType: string(req.Backend),
		InferenceTime:      report.ExecutionTime,
		Status:             status,
		InputLanguage:      string(req.InputLanguage),
		OutputLanguage:     string(req.OutputLanguage),
		TaskName:           taskName,
		Description:        report.Description,
		E5:                 report.E5,
		LaBSE:              report.LaBSE,
		BertScore:          report.BertScore.F1,
		CometScore:         report.CometScore,
	}
}
