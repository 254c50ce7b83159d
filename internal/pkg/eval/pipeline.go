package eval

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/progress"
	"github.com/skaura/transeval/internal/pkg/similarity"
)

// Good score thresholds
const (
	ThresholdE5    = 0.8
	ThresholdLaBSE = 0.7
	ThresholdBert  = 0.8
	ThresholdComet = 0.5
)

const stageCount = 4

// ScalarScorer returns one similarity score for the pair
type ScalarScorer interface {
	Score(ctx context.Context, original, translated string) (float64, error)
}

// TripleScorer returns the precision/recall/f1 triple for the pair
type TripleScorer interface {
	Score(ctx context.Context, original, translated string) (similarity.BertScore, error)
}

// Pipeline runs the four scoring stages in fixed order
type Pipeline struct {
	e5        ScalarScorer
	labse     ScalarScorer
	bertScore TripleScorer
	comet     ScalarScorer
	notifier  progress.Notifier
}

// NewPipeline creates the evaluation pipeline
func NewPipeline(e5, labse ScalarScorer, bertScore TripleScorer, comet ScalarScorer,
	notifier progress.Notifier) (*Pipeline, error) {
	if e5 == nil || labse == nil || bertScore == nil || comet == nil {
		return nil, errors.New("No scorer provided")
	}
	if notifier == nil {
		return nil, errors.New("No notifier provided")
	}
	return &Pipeline{e5: e5, labse: labse, bertScore: bertScore, comet: comet, notifier: notifier}, nil
}

// Evaluate runs e5, labse, bertscore and comet in order, publishing a
// checkpoint after each stage. Any stage failure abandons the whole
// evaluation, no partial report is produced
func (p *Pipeline) Evaluate(ctx context.Context, taskName, original, translated string) (*similarity.Report, error) {
	start := time.Now()
	cmdapp.Log.Infof("Evaluating task %s", taskName)

	simE5, err := p.e5.Score(ctx, original, translated)
	if err != nil {
		return nil, errors.Wrap(err, "e5 stage failed")
	}
	p.notifyStage(taskName, 1)

	simLaBSE, err := p.labse.Score(ctx, original, translated)
	if err != nil {
		return nil, errors.Wrap(err, "labse stage failed")
	}
	p.notifyStage(taskName, 2)

	bs, err := p.bertScore.Score(ctx, original, translated)
	if err != nil {
		return nil, errors.Wrap(err, "bertscore stage failed")
	}
	p.notifyStage(taskName, 3)

	cometScore, err := p.comet.Score(ctx, original, translated)
	if err != nil {
		return nil, errors.Wrap(err, "comet stage failed")
	}
	p.notifyStage(taskName, 4)

	res := &similarity.Report{
		OriginalText:   original,
		TranslatedText: translated,
		E5:             round4(simE5),
		LaBSE:          round4(simLaBSE),
		BertScore: similarity.BertScore{Precision: round4(bs.Precision),
			Recall: round4(bs.Recall), F1: round4(bs.F1)},
		CometScore:    round4(cometScore),
		Description:   describe(simE5, simLaBSE, bs.F1, cometScore),
		ExecutionTime: round2(time.Since(start).Seconds()),
	}
	cmdapp.Log.Infof("Completed evaluation for task %s in %.2fs", taskName, res.ExecutionTime)
	return res, nil
}

func (p *Pipeline) notifyStage(taskName string, stage int) {
	percent := int(math.Round(float64(stage) / stageCount * 100))
	p.notifier.NotifyProgress(taskName, percent)
	cmdapp.Log.Debugf("Stage %d completed, progress=%d%%", stage, percent)
}

func describe(simE5, simLaBSE, f1, cometScore float64) string {
	var lines []string

	if simE5 >= ThresholdE5 && simLaBSE >= ThresholdLaBSE {
		lines = append(lines, fmt.Sprintf(
			"Likely compatible with a literal translation (E5: %.2f >= %.2f, LaBSE: %.2f >= %.2f)",
			simE5, ThresholdE5, simLaBSE, ThresholdLaBSE))
	} else if simE5 >= ThresholdE5 {
		// logged only, never part of the report
		cmdapp.Log.Debugf(
			"Free translation likely (E5: %.2f >= %.2f, LaBSE: %.2f < %.2f)",
			simE5, ThresholdE5, simLaBSE, ThresholdLaBSE)
	} else if simLaBSE >= ThresholdLaBSE {
		lines = append(lines, fmt.Sprintf(
			"Only literal similarity is high (E5: %.2f < %.2f, LaBSE: %.2f >= %.2f)",
			simE5, ThresholdE5, simLaBSE, ThresholdLaBSE))
	} else {
		lines = append(lines, fmt.Sprintf(
			"Large semantic gap (E5: %.2f, LaBSE: %.2f); inspect the COMET score",
			simE5, simLaBSE))
	}

	if f1 >= ThresholdBert {
		lines = append(lines, fmt.Sprintf("Good word level similarity (BERTScore F1: %.2f >= %.2f)", f1, ThresholdBert))
	} else {
		lines = append(lines, fmt.Sprintf("Poor word level similarity (BERTScore F1: %.2f < %.2f)", f1, ThresholdBert))
	}

	if cometScore >= ThresholdComet {
		lines = append(lines, fmt.Sprintf("Good translation quality (COMET: %.2f >= %.2f)", cometScore, ThresholdComet))
	} else {
		lines = append(lines, fmt.Sprintf("Poor translation quality (COMET: %.2f < %.2f)", cometScore, ThresholdComet))
	}

	return strings.Join(lines, "\n") + "\n"
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
