package recognizer

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ModelCreator builds a model for the given option bitmask.
type ModelCreator func(options int) (Model, error)

type modelKey struct {
	modelType string
	culture   string
}

type cacheKey struct {
	modelType string
	culture   string
	options   int
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%s|%s|%d", k.culture, k.modelType, k.options)
}

// ModelFactory registers model creators per (model type, culture) and
// memoizes the models it builds per (model type, culture, options).
// It is safe for concurrent use; a given key is constructed at most once.
type ModelFactory struct {
	mu       sync.RWMutex
	creators map[modelKey]ModelCreator
	cultures []string
	cache    map[cacheKey]Model
	group    singleflight.Group
	logger   *slog.Logger
}

// NewModelFactory creates an empty factory.
func NewModelFactory(logger *slog.Logger) *ModelFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelFactory{
		creators: make(map[modelKey]ModelCreator),
		cache:    make(map[cacheKey]Model),
		logger:   logger,
	}
}

// RegisterModel registers creator for modelType in culture.
func (f *ModelFactory) RegisterModel(modelType, culture string, creator ModelCreator) error {
	culture = strings.ToLower(culture)
	if modelType == "" || culture == "" || creator == nil {
		return InvalidArgument("model type, culture and creator are required")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	key := modelKey{modelType: modelType, culture: culture}
	if _, ok := f.creators[key]; ok {
		return DuplicateModel(culture, modelType)
	}
	f.creators[key] = creator
	if !slices.Contains(f.cultures, culture) {
		f.cultures = append(f.cultures, culture)
	}
	return nil
}

// Cultures returns the registered cultures in registration order.
func (f *ModelFactory) Cultures() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.cultures...)
}

// GetModel returns the model for modelType in culture. When no model is
// registered for the culture and fallback is set, the default culture is
// tried before giving up.
func (f *ModelFactory) GetModel(modelType, culture string, fallback bool, options int) (Model, error) {
	model, ok, err := f.tryGetModel(modelType, culture, options)
	if err != nil || ok {
		return model, err
	}
	if fallback {
		model, ok, err = f.tryGetModel(modelType, DefaultCulture, options)
		if err != nil || ok {
			return model, err
		}
	}
	return nil, ModelNotFound(culture, modelType)
}

// InitializeModels builds every model registered for culture, or for all
// cultures when culture is empty.
func (f *ModelFactory) InitializeModels(culture string, options int) error {
	culture = MapToNearestLanguage(culture, f.Cultures())

	f.mu.RLock()
	keys := make([]modelKey, 0, len(f.creators))
	for key := range f.creators {
		if culture == "" || key.culture == culture {
			keys = append(keys, key)
		}
	}
	f.mu.RUnlock()

	for _, key := range keys {
		if _, _, err := f.tryGetModel(key.modelType, key.culture, options); err != nil {
			return err
		}
	}
	return nil
}

func (f *ModelFactory) tryGetModel(modelType, culture string, options int) (Model, bool, error) {
	culture = MapToNearestLanguage(culture, f.Cultures())
	key := cacheKey{modelType: modelType, culture: culture, options: options}

	f.mu.RLock()
	model, cached := f.cache[key]
	creator, registered := f.creators[modelKey{modelType: modelType, culture: culture}]
	f.mu.RUnlock()

	if cached {
		return model, true, nil
	}
	if !registered {
		return nil, false, nil
	}

	v, err, _ := f.group.Do(key.String(), func() (any, error) {
		f.mu.RLock()
		existing, ok := f.cache[key]
		f.mu.RUnlock()
		if ok {
			return existing, nil
		}

		built, err := creator(options)
		if err != nil {
			return nil, Wrap(err, ErrCodeModelConstruction, fmt.Sprintf("failed to build %s model for %s", modelType, culture))
		}

		f.mu.Lock()
		f.cache[key] = built
		f.mu.Unlock()

		f.logger.Debug("model constructed",
			slog.String("model_type", modelType),
			slog.String("culture", culture),
			slog.Int("options", options),
		)
		return built, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(Model), true, nil
}
