package eval

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/skaura/transeval/internal/pkg/similarity"
)

type scalarStub struct {
	v     float64
	err   error
	calls int
}

func (s *scalarStub) Score(ctx context.Context, original, translated string) (float64, error) {
	s.calls++
	return s.v, s.err
}

type tripleStub struct {
	v     similarity.BertScore
	err   error
	calls int
}

func (s *tripleStub) Score(ctx context.Context, original, translated string) (similarity.BertScore, error) {
	s.calls++
	return s.v, s.err
}

type notifierStub struct {
	percents []int
	errs     []string
}

func (n *notifierStub) NotifyProgress(taskName string, percent int) {
	n.percents = append(n.percents, percent)
}

func (n *notifierStub) NotifyError(taskName string, errMsg string) {
	n.errs = append(n.errs, errMsg)
}

type testdata struct {
	e5, labse, comet *scalarStub
	bert             *tripleStub
	notifier         *notifierStub
	p                *Pipeline
}

func initTestData(t *testing.T) *testdata {
	td := testdata{
		e5:       &scalarStub{v: 0.85},
		labse:    &scalarStub{v: 0.75},
		bert:     &tripleStub{v: similarity.BertScore{Precision: 0.91, Recall: 0.89, F1: 0.9}},
		comet:    &scalarStub{v: 0.6},
		notifier: &notifierStub{},
	}
	var err error
	td.p, err = NewPipeline(td.e5, td.labse, td.bert, td.comet, td.notifier)
	assert.Nil(t, err)
	return &td
}

func TestNewPipeline_Fails(t *testing.T) {
	td := initTestData(t)
	_, err := NewPipeline(nil, td.labse, td.bert, td.comet, td.notifier)
	assert.NotNil(t, err)
	_, err = NewPipeline(td.e5, td.labse, nil, td.comet, td.notifier)
	assert.NotNil(t, err)
	_, err = NewPipeline(td.e5, td.labse, td.bert, td.comet, nil)
	assert.NotNil(t, err)
}

func TestEvaluate(t *testing.T) {
	td := initTestData(t)
	r, err := td.p.Evaluate(context.Background(), "task1", "labas", "hello")
	assert.Nil(t, err)
	assert.Equal(t, 0.85, r.E5)
	assert.Equal(t, 0.75, r.LaBSE)
	assert.Equal(t, 0.9, r.BertScore.F1)
	assert.Equal(t, 0.6, r.CometScore)
	assert.Equal(t, "labas", r.OriginalText)
	assert.Equal(t, "hello", r.TranslatedText)
}

func TestEvaluate_ProgressSequence(t *testing.T) {
	td := initTestData(t)
	_, err := td.p.Evaluate(context.Background(), "task1", "labas", "hello")
	assert.Nil(t, err)
	assert.Equal(t, []int{25, 50, 75, 100}, td.notifier.percents)
}

func TestEvaluate_Rounds(t *testing.T) {
	td := initTestData(t)
	td.e5.v = 0.851234567
	td.comet.v = 0.612345678
	r, err := td.p.Evaluate(context.Background(), "task1", "labas", "hello")
	assert.Nil(t, err)
	assert.Equal(t, 0.8512, r.E5)
	assert.Equal(t, 0.6123, r.CometScore)
}

func TestEvaluate_FirstStageFails(t *testing.T) {
	td := initTestData(t)
	td.e5.err = errors.New("olia")
	r, err := td.p.Evaluate(context.Background(), "task1", "labas", "hello")
	assert.NotNil(t, err)
	assert.Nil(t, r)
	assert.Equal(t, 0, len(td.notifier.percents))
	assert.Equal(t, 0, td.labse.calls)
	assert.Equal(t, 0, td.bert.calls)
	assert.Equal(t, 0, td.comet.calls)
}

func TestEvaluate_MiddleStageFails(t *testing.T) {
	td := initTestData(t)
	td.bert.err = errors.New("olia")
	r, err := td.p.Evaluate(context.Background(), "task1", "labas", "hello")
	assert.NotNil(t, err)
	assert.Nil(t, r)
	assert.Equal(t, []int{25, 50}, td.notifier.percents)
	assert.Equal(t, 0, td.comet.calls)
}

func TestEvaluate_LastStageFails(t *testing.T) {
	td := initTestData(t)
	td.comet.err = errors.New("olia")
	r, err := td.p.Evaluate(context.Background(), "task1", "labas", "hello")
	assert.NotNil(t, err)
	assert.Nil(t, r)
	assert.Equal(t, []int{25, 50, 75}, td.notifier.percents)
}

func TestDescribe_AllGood(t *testing.T) {
	d := describe(0.85, 0.75, 0.9, 0.6)
	lines := strings.Split(strings.TrimSuffix(d, "\n"), "\n")
	assert.Equal(t, 3, len(lines))
	assert.Contains(t, lines[0], "Likely compatible with a literal translation")
	assert.Contains(t, lines[1], "Good word level similarity")
	assert.Contains(t, lines[2], "Good translation quality")
	assert.True(t, strings.HasSuffix(d, "\n"))
}

func TestDescribe_FreeTranslationLineOmitted(t *testing.T) {
	// high e5 with low labse produces no semantic line at all
	d := describe(0.85, 0.5, 0.9, 0.6)
	lines := strings.Split(strings.TrimSuffix(d, "\n"), "\n")
	assert.Equal(t, 2, len(lines))
	assert.Contains(t, lines[0], "Good word level similarity")
	assert.Contains(t, lines[1], "Good translation quality")
}

func TestDescribe_OnlyLiteral(t *testing.T) {
	d := describe(0.5, 0.75, 0.9, 0.6)
	assert.Contains(t, d, "Only literal similarity is high")
}

func TestDescribe_LargeGap(t *testing.T) {
	d := describe(0.5, 0.5, 0.7, 0.4)
	assert.Contains(t, d, "Large semantic gap")
	assert.Contains(t, d, "Poor word level similarity")
	assert.Contains(t, d, "Poor translation quality")
}

func TestDescribe_ThresholdsInclusive(t *testing.T) {
	d := describe(0.8, 0.7, 0.8, 0.5)
	assert.Contains(t, d, "Likely compatible with a literal translation")
	assert.Contains(t, d, "Good word level similarity")
	assert.Contains(t, d, "Good translation quality")
}
