package recognizer

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	culture string
	options int
}

func (m *stubModel) ModelTypeName() string { return "stub" }

func (m *stubModel) Parse(string, time.Time) []ModelResult { return nil }

func countingCreator(culture string, calls *atomic.Int32) ModelCreator {
	return func(options int) (Model, error) {
		calls.Add(1)
		time.Sleep(5 * time.Millisecond)
		return &stubModel{culture: culture, options: options}, nil
	}
}

func TestFactoryRegisterDuplicate(t *testing.T) {
	f := NewModelFactory(nil)
	var calls atomic.Int32

	require.NoError(t, f.RegisterModel("stub", "en-us", countingCreator("en-us", &calls)))
	err := f.RegisterModel("stub", "EN-US", countingCreator("en-us", &calls))
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeDuplicateModel))

	assert.True(t, IsCode(f.RegisterModel("", "en-us", nil), ErrCodeInvalidArgument))
}

func TestFactoryGetModelFallback(t *testing.T) {
	f := NewModelFactory(nil)
	var calls atomic.Int32
	require.NoError(t, f.RegisterModel("stub", "en-us", countingCreator("en-us", &calls)))
	require.NoError(t, f.RegisterModel("stub", "zh-cn", countingCreator("zh-cn", &calls)))

	m, err := f.GetModel("stub", "zh-CN", false, 0)
	require.NoError(t, err)
	assert.Equal(t, "zh-cn", m.(*stubModel).culture)

	m, err = f.GetModel("stub", "fr-fr", true, 0)
	require.NoError(t, err)
	assert.Equal(t, "en-us", m.(*stubModel).culture)

	_, err = f.GetModel("stub", "fr-fr", false, 0)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeModelNotFound))
	assert.Contains(t, err.Error(), "fr-fr,stub")

	_, err = f.GetModel("missing", "en-us", true, 0)
	assert.True(t, IsCode(err, ErrCodeModelNotFound))
}

func TestFactoryMemoizesPerOptions(t *testing.T) {
	f := NewModelFactory(nil)
	var calls atomic.Int32
	require.NoError(t, f.RegisterModel("stub", "en-us", countingCreator("en-us", &calls)))

	a, err := f.GetModel("stub", "en-us", false, 0)
	require.NoError(t, err)
	b, err := f.GetModel("stub", "en-us", false, 0)
	require.NoError(t, err)
	c, err := f.GetModel("stub", "en-us", false, 1)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFactoryConcurrentGetOrCreate(t *testing.T) {
	f := NewModelFactory(nil)
	var calls atomic.Int32
	require.NoError(t, f.RegisterModel("stub", "en-us", countingCreator("en-us", &calls)))

	const workers = 32
	models := make([]Model, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := f.GetModel("stub", "en-us", true, 0)
			assert.NoError(t, err)
			models[i] = m
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, m := range models {
		assert.Same(t, models[0], m)
	}
}

func TestFactoryCreatorError(t *testing.T) {
	f := NewModelFactory(nil)
	boom := errors.New("boom")
	require.NoError(t, f.RegisterModel("stub", "en-us", func(int) (Model, error) { return nil, boom }))

	_, err := f.GetModel("stub", "en-us", false, 0)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeModelConstruction))
	assert.ErrorIs(t, err, boom)
}

func TestFactoryInitializeModels(t *testing.T) {
	f := NewModelFactory(nil)
	var en, zh atomic.Int32
	require.NoError(t, f.RegisterModel("stub", "en-us", countingCreator("en-us", &en)))
	require.NoError(t, f.RegisterModel("stub", "zh-cn", countingCreator("zh-cn", &zh)))

	require.NoError(t, f.InitializeModels("en-us", 0))
	assert.Equal(t, int32(1), en.Load())
	assert.Equal(t, int32(0), zh.Load())

	require.NoError(t, f.InitializeModels("", 0))
	assert.Equal(t, int32(1), en.Load())
	assert.Equal(t, int32(1), zh.Load())
}

func TestRecognizerValidatesOptions(t *testing.T) {
	valid := func(o int) bool { return o&^3 == 0 }

	_, err := NewRecognizer("en-us", 8, valid, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidOptions))

	r, err := NewRecognizer("", 3, valid, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultCulture, r.TargetCulture())
	assert.Equal(t, 3, r.Options())

	var calls atomic.Int32
	require.NoError(t, r.RegisterModel("stub", "en-us", countingCreator("en-us", &calls)))
	require.NoError(t, r.InitializeModels())
	assert.Equal(t, int32(1), calls.Load())

	m, err := r.GetModel("stub", "", false)
	require.NoError(t, err)
	assert.Equal(t, 3, m.(*stubModel).options)
}
