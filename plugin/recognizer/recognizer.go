package recognizer

import (
	"log/slog"
	"strings"
)

// Recognizer binds a ModelFactory to a target culture and an option
// bitmask. Options are validated once at construction.
type Recognizer struct {
	factory       *ModelFactory
	targetCulture string
	options       int
}

// NewRecognizer validates options with valid and returns a recognizer with
// an empty factory. An empty targetCulture selects DefaultCulture.
func NewRecognizer(targetCulture string, options int, valid func(int) bool, logger *slog.Logger) (*Recognizer, error) {
	if valid != nil && !valid(options) {
		return nil, InvalidOptions(options)
	}
	targetCulture = strings.ToLower(strings.TrimSpace(targetCulture))
	if targetCulture == "" {
		targetCulture = DefaultCulture
	}
	return &Recognizer{
		factory:       NewModelFactory(logger),
		targetCulture: targetCulture,
		options:       options,
	}, nil
}

// TargetCulture returns the culture used when a call names none.
func (r *Recognizer) TargetCulture() string {
	return r.targetCulture
}

// Options returns the validated option bitmask.
func (r *Recognizer) Options() int {
	return r.options
}

// Factory exposes the underlying registry.
func (r *Recognizer) Factory() *ModelFactory {
	return r.factory
}

// RegisterModel registers creator for modelType in culture.
func (r *Recognizer) RegisterModel(modelType, culture string, creator ModelCreator) error {
	return r.factory.RegisterModel(modelType, culture, creator)
}

// GetModel resolves modelType for culture, defaulting to the target culture.
func (r *Recognizer) GetModel(modelType, culture string, fallback bool) (Model, error) {
	if strings.TrimSpace(culture) == "" {
		culture = r.targetCulture
	}
	return r.factory.GetModel(modelType, culture, fallback, r.options)
}

// InitializeModels eagerly builds the models of the target culture.
func (r *Recognizer) InitializeModels() error {
	return r.factory.InitializeModels(r.targetCulture, r.options)
}
