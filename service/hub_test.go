package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name     string
	deps     []string
	startErr error
	log      *[]string
	initArgs []any
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }
func (f *fakeService) Init(args ...any) error {
	f.initArgs = args
	*f.log = append(*f.log, "init:"+f.name)
	return nil
}
func (f *fakeService) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.log = append(*f.log, "start:"+f.name)
	return nil
}
func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

func TestHub_DependencyOrder(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "metronome", deps: []string{"audio", "config"}, log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "config", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "audio", log: &log}))

	require.NoError(t, h.InitAll(map[string][]any{"audio": {true}}))
	require.NoError(t, h.StartAll())
	require.NoError(t, h.StopAll())

	assert.Equal(t, []string{"audio", "config", "metronome"}, h.Order())
	assert.Equal(t, []string{
		"init:audio", "init:config", "init:metronome",
		"start:audio", "start:config", "start:metronome",
		"stop:metronome", "stop:config", "stop:audio",
	}, log)

	audio := MustGet[*fakeService](h, "audio")
	assert.Equal(t, []any{true}, audio.initArgs)
}

func TestHub_StartRollback(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "b", deps: []string{"a"}, startErr: errors.New("boom"), log: &log}))

	require.NoError(t, h.InitAll(nil))
	err := h.StartAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service b start failed")
	assert.Equal(t, []string{"init:a", "init:b", "start:a", "stop:a"}, log)
}

func TestHub_Errors(t *testing.T) {
	var log []string

	t.Run("duplicate", func(t *testing.T) {
		h := NewHub()
		require.NoError(t, h.Register(&fakeService{name: "a", log: &log}))
		assert.Error(t, h.Register(&fakeService{name: "a", log: &log}))
	})

	t.Run("missing dependency", func(t *testing.T) {
		h := NewHub()
		require.NoError(t, h.Register(&fakeService{name: "a", deps: []string{"ghost"}, log: &log}))
		assert.ErrorContains(t, h.InitAll(nil), "unregistered service: ghost")
	})

	t.Run("cycle", func(t *testing.T) {
		h := NewHub()
		require.NoError(t, h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log}))
		require.NoError(t, h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log}))
		assert.ErrorContains(t, h.InitAll(nil), "circular dependency")
	})

	t.Run("start before init", func(t *testing.T) {
		h := NewHub()
		assert.Error(t, h.StartAll())
	})

	t.Run("get unknown panics", func(t *testing.T) {
		h := NewHub()
		_, ok := h.Get("nope")
		assert.False(t, ok)
		assert.Panics(t, func() { MustGet[*fakeService](h, "nope") })
	})
}
