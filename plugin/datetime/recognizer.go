// Package datetime recognizes date, time, duration, period, holiday and
// recurrence expressions in free text and resolves them against a
// reference instant.
//
//	r, err := datetime.NewRecognizer(culture.English, datetime.None)
//	results, err := r.Recognize("see you next Friday at 5pm", "", time.Now(), true)
package datetime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hrygo/chronoparse/internal/observability"
	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

type settings struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	lazy    bool
}

// Option configures a Recognizer.
type Option func(*settings)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithMetrics sets the metrics collector. The default is the global one;
// nil gives the recognizer a private collector.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *settings) { s.metrics = metrics }
}

// WithLazyInitialization defers building models until their first use.
func WithLazyInitialization() Option {
	return func(s *settings) { s.lazy = true }
}

// Recognizer is the datetime recognizer: a model registry holding one
// datetime model per supported culture.
type Recognizer struct {
	*recognizer.Recognizer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewRecognizer validates options, registers the datetime model of every
// supported culture and, unless WithLazyInitialization is given, builds
// the model of targetCulture right away.
func NewRecognizer(targetCulture string, options Options, opts ...Option) (*Recognizer, error) {
	s := settings{logger: slog.Default(), metrics: observability.GlobalMetrics()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics(0)
	}

	base, err := recognizer.NewRecognizer(targetCulture, int(options), func(o int) bool { return Options(o).Valid() }, s.logger)
	if err != nil {
		return nil, err
	}
	if err := register(base.Factory(), s.logger, s.metrics); err != nil {
		return nil, err
	}
	r := &Recognizer{Recognizer: base, logger: s.logger, metrics: s.metrics}
	if !s.lazy {
		if err := r.InitializeModels(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func register(f *recognizer.ModelFactory, logger *slog.Logger, metrics *observability.Metrics) error {
	for _, code := range culture.Supported() {
		if err := f.RegisterModel(ModelTypeDateTime, code, creator(code, logger, metrics)); err != nil {
			return err
		}
	}
	return nil
}

func creator(code string, logger *slog.Logger, metrics *observability.Metrics) recognizer.ModelCreator {
	return func(options int) (recognizer.Model, error) {
		cfg, ok := culture.Lookup(code)
		if !ok {
			return nil, recognizer.ModelNotFound(code, ModelTypeDateTime)
		}
		o := Options(options)
		return NewDateTimeModel(code, NewMergedExtractor(cfg, o), NewMergedParser(cfg, logger, metrics), metrics), nil
	}
}

// Metrics returns the collector the recognizer reports to.
func (r *Recognizer) Metrics() *observability.Metrics {
	return r.metrics
}

// Model returns the datetime model of culture, or of the target culture
// when culture is empty.
func (r *Recognizer) Model(cultureCode string, fallback bool) (recognizer.Model, error) {
	return r.GetModel(ModelTypeDateTime, cultureCode, fallback)
}

// Recognize extracts and resolves the temporal expressions of query. A
// zero ref means now. With fallback an unsupported culture is served by
// the default culture; without it the call fails with MODEL_NOT_FOUND.
func (r *Recognizer) Recognize(query, cultureCode string, ref time.Time, fallback bool) ([]recognizer.ModelResult, error) {
	return r.RecognizeContext(context.Background(), query, cultureCode, ref, fallback)
}

// RecognizeContext is Recognize logging through the request context
// carried by ctx, if any.
func (r *Recognizer) RecognizeContext(ctx context.Context, query, cultureCode string, ref time.Time, fallback bool) ([]recognizer.ModelResult, error) {
	if cultureCode == "" {
		cultureCode = r.TargetCulture()
	}
	return recognize(ctx, r.Factory(), r.logger, r.metrics, query, cultureCode, r.Options(), ref, fallback)
}

func recognize(ctx context.Context, f *recognizer.ModelFactory, logger *slog.Logger, metrics *observability.Metrics,
	query, cultureCode string, options int, ref time.Time, fallback bool,
) ([]recognizer.ModelResult, error) {
	rc, ok := observability.FromContext(ctx)
	if !ok {
		rc = observability.NewRequestContext(logger, ModelTypeDateTime, cultureCode)
	}
	metrics.RecordRequest(cultureCode)

	model, err := f.GetModel(ModelTypeDateTime, cultureCode, fallback, options)
	if err != nil {
		metrics.RecordFailure(cultureCode)
		rc.Debug("model lookup failed",
			slog.String(observability.LogFieldErrorCode, string(recognizer.CodeOf(err, recognizer.ErrCodeModelNotFound))),
		)
		return nil, err
	}
	if ref.IsZero() {
		ref = time.Now()
	}
	results := model.Parse(query, ref)

	metrics.RecordDuration(cultureCode, rc.Duration())
	rc.Debug("recognize completed",
		slog.Int(observability.LogFieldQueryLen, len(query)),
		slog.Int(observability.LogFieldEntities, len(results)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()),
	)
	return results, nil
}

var sharedFactory = sync.OnceValues(func() (*recognizer.ModelFactory, error) {
	f := recognizer.NewModelFactory(slog.Default())
	if err := register(f, slog.Default(), observability.GlobalMetrics()); err != nil {
		return nil, err
	}
	return f, nil
})

// RecognizeDateTime recognizes query in culture with a process wide model
// registry. Models are built on first use per culture and option set.
func RecognizeDateTime(query, cultureCode string, options Options, ref time.Time, fallback bool) ([]recognizer.ModelResult, error) {
	if !options.Valid() {
		return nil, recognizer.InvalidOptions(int(options))
	}
	f, err := sharedFactory()
	if err != nil {
		return nil, err
	}
	if cultureCode == "" {
		cultureCode = recognizer.DefaultCulture
	}
	return recognize(context.Background(), f, slog.Default(), observability.GlobalMetrics(), query, cultureCode, int(options), ref, fallback)
}
