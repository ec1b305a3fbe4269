package datetime

import (
	"time"

	"github.com/hrygo/chronoparse/internal/observability"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// ModelTypeDateTime is the type name of the datetime model.
const ModelTypeDateTime = "datetime"

// DateTimeModel recognizes temporal expressions of one culture. It holds
// no per-call state and is shared between goroutines.
type DateTimeModel struct {
	culture   string
	extractor *MergedExtractor
	parser    *MergedParser
	metrics   *observability.Metrics
}

// NewDateTimeModel pairs a merged extractor with a merged parser.
func NewDateTimeModel(culture string, e *MergedExtractor, p *MergedParser, metrics *observability.Metrics) *DateTimeModel {
	return &DateTimeModel{culture: culture, extractor: e, parser: p, metrics: metrics}
}

func (m *DateTimeModel) ModelTypeName() string { return ModelTypeDateTime }

// Culture returns the culture code of the model's grammar.
func (m *DateTimeModel) Culture() string { return m.culture }

// Parse returns the resolved entities of query in text order. A zero ref
// means now. Spans that cannot be resolved are left out.
func (m *DateTimeModel) Parse(query string, ref time.Time) []recognizer.ModelResult {
	if ref.IsZero() {
		ref = time.Now()
	}
	var results []recognizer.ModelResult
	for _, er := range m.extractor.Extract(query, ref) {
		r, ok := m.parser.Parse(er, ref)
		if !ok || len(r.Values) == 0 {
			continue
		}
		typ := TypeName(er.Type)
		if m.metrics != nil {
			m.metrics.RecordEntity(typ)
		}
		results = append(results, recognizer.ModelResult{
			Start:      er.Start,
			End:        er.End() - 1,
			Text:       er.Text,
			TypeName:   typ,
			Resolution: recognizer.NewOrderedMap().Set("values", r.Values),
		})
	}
	return results
}
