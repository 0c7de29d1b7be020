package assets

import (
	"context"
	"io/fs"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/berrynoid/internal/core"
)

func TestLoadBuiltin(t *testing.T) {
	table, err := LoadSync(context.Background(), Builtin(), DefaultSources())
	require.NoError(t, err)

	assert.Len(t, table, 4)
	assert.Equal(t, '▓', table.Lookup(-1).Glyph)
	assert.Equal(t, core.ColorBrightRed, table.Lookup(3).Color)
}

func TestLoadZeroSourcesCompletesImmediately(t *testing.T) {
	called := false
	Load(context.Background(), fstest.MapFS{}, nil, func(table Table, err error) {
		called = true
		assert.Empty(t, table)
		assert.NoError(t, err)
	})
	assert.True(t, called, "done must run before Load returns")
}

func TestLoadCallsDoneOnceAfterAllSources(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("glyph: A\ncolor: red\n")},
		"b.yaml": {Data: []byte("glyph: B\n")},
		"c.yaml": {Data: []byte("glyph: C\ncolor: blue\n")},
	}
	sources := []Source{{1, "a.yaml"}, {2, "b.yaml"}, {3, "c.yaml"}}

	var calls atomic.Int32
	got := make(chan Table, 1)
	Load(context.Background(), fsys, sources, func(table Table, err error) {
		calls.Add(1)
		assert.NoError(t, err)
		got <- table
	})

	select {
	case table := <-got:
		assert.Len(t, table, 3)
		assert.Equal(t, core.Sprite{Glyph: 'B', Color: core.ColorDefault}, table[2])
	case <-time.After(2 * time.Second):
		t.Fatal("done was never called")
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoadReportsFailuresAndKeepsTheRest(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.yaml":    {Data: []byte("glyph: O\n")},
		"multi.yaml": {Data: []byte("glyph: OO\n")},
		"color.yaml": {Data: []byte("glyph: X\ncolor: chartreuse\n")},
	}
	sources := []Source{{1, "ok.yaml"}, {2, "missing.yaml"}, {3, "multi.yaml"}, {-1, "color.yaml"}}

	table, err := LoadSync(context.Background(), fsys, sources)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.ErrorContains(t, err, "multi.yaml")
	assert.ErrorContains(t, err, "chartreuse")

	assert.Len(t, table, 1)
	assert.Equal(t, 'O', table.Lookup(1).Glyph)
	assert.Equal(t, Fallback, table.Lookup(2))
}

// stallFS blocks every Open until release is closed.
type stallFS struct {
	release chan struct{}
}

func (s stallFS) Open(name string) (fs.File, error) {
	<-s.release
	return nil, fs.ErrNotExist
}

func TestLoadStallsUntilCancelled(t *testing.T) {
	fsys := stallFS{release: make(chan struct{})}
	defer close(fsys.release)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	Load(ctx, fsys, []Source{{1, "stuck.yaml"}}, func(_ Table, err error) {
		done <- err
	})

	select {
	case <-done:
		t.Fatal("done ran while a source was still loading")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("done was not called after cancellation")
	}
}

func TestLatch(t *testing.T) {
	var runs int
	l := NewLatch(2, func() { runs++ })
	l.Done()
	assert.Equal(t, 0, runs)
	l.Done()
	assert.Equal(t, 1, runs)

	NewLatch(0, func() { runs++ })
	assert.Equal(t, 2, runs)
}
