// Package assets loads the block sprite table before the first frame.
// Each source is decoded on its own goroutine and a completion callback
// fires exactly once after every source has finished.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/berrynoid/internal/core"
)

//go:embed sprites/*.yaml
var builtin embed.FS

// Builtin returns the embedded sprite files.
func Builtin() fs.FS {
	return builtin
}

// Source names one sprite file and the block life value it is drawn for.
type Source struct {
	Key  int
	Path string
}

// DefaultSources lists the embedded block sprites: block_0 for
// indestructible blocks, block_1..3 by remaining lives.
func DefaultSources() []Source {
	return []Source{
		{Key: -1, Path: "sprites/block_0.yaml"},
		{Key: 1, Path: "sprites/block_1.yaml"},
		{Key: 2, Path: "sprites/block_2.yaml"},
		{Key: 3, Path: "sprites/block_3.yaml"},
	}
}

// Fallback is drawn for any life value that has no loaded sprite.
var Fallback = core.Sprite{Glyph: '#', Color: core.ColorWhite}

// Table maps a block life value to its sprite.
type Table map[int]core.Sprite

// Lookup returns the sprite for key, or Fallback when it is missing.
func (t Table) Lookup(key int) core.Sprite {
	if s, ok := t[key]; ok && !s.IsZero() {
		return s
	}
	return Fallback
}

// Latch runs a continuation once a fixed number of tasks reported done.
// A latch created for zero tasks runs the continuation immediately.
type Latch struct {
	remaining atomic.Int64
	once      sync.Once
	fn        func()
}

// NewLatch creates a latch for n tasks.
func NewLatch(n int, fn func()) *Latch {
	l := &Latch{fn: fn}
	l.remaining.Store(int64(n))
	if n <= 0 {
		l.once.Do(fn)
	}
	return l
}

// Done marks one task finished.
func (l *Latch) Done() {
	if l.remaining.Add(-1) == 0 {
		l.once.Do(l.fn)
	}
}

// spriteFile is the YAML layout of a sprite source.
type spriteFile struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// Decode parses a sprite file.
func Decode(data []byte) (core.Sprite, error) {
	var f spriteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return core.Sprite{}, err
	}
	glyph, size := utf8.DecodeRuneInString(f.Glyph)
	if glyph == utf8.RuneError || size != len(f.Glyph) {
		return core.Sprite{}, fmt.Errorf("glyph must be a single character, got %q", f.Glyph)
	}
	color := core.ColorDefault
	if f.Color != "" {
		c, ok := core.ParseColor(f.Color)
		if !ok {
			return core.Sprite{}, fmt.Errorf("unknown color %q", f.Color)
		}
		color = c
	}
	return core.Sprite{Glyph: glyph, Color: color}, nil
}

type result struct {
	sprite core.Sprite
	err    error
}

// Load decodes every source concurrently and calls done once all of them
// have finished. Load itself returns immediately. With no sources done runs
// before Load returns.
//
// Load has no timeout: a source that never finishes reading keeps done from
// running until ctx is cancelled. Failed sources are left out of the table
// and reported through a joined error.
func Load(ctx context.Context, fsys fs.FS, sources []Source, done func(Table, error)) {
	results := make([]result, len(sources))

	latch := NewLatch(len(sources), func() {
		table := make(Table, len(sources))
		var errs []error
		for i, r := range results {
			if r.err != nil {
				errs = append(errs, fmt.Errorf("assets: %s: %w", sources[i].Path, r.err))
				continue
			}
			table[sources[i].Key] = r.sprite
		}
		done(table, errors.Join(errs...))
	})

	for i, src := range sources {
		go func() {
			defer latch.Done()
			results[i] = loadOne(ctx, fsys, src.Path)
		}()
	}
}

// LoadSync is Load for callers that want to block until the table is ready.
func LoadSync(ctx context.Context, fsys fs.FS, sources []Source) (Table, error) {
	type loaded struct {
		table Table
		err   error
	}
	ch := make(chan loaded, 1)
	Load(ctx, fsys, sources, func(t Table, err error) {
		ch <- loaded{t, err}
	})
	l := <-ch
	return l.table, l.err
}

func loadOne(ctx context.Context, fsys fs.FS, path string) result {
	ch := make(chan result, 1)
	go func() {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			ch <- result{err: err}
			return
		}
		sprite, err := Decode(data)
		ch <- result{sprite: sprite, err: err}
	}()

	select {
	case r := <-ch:
		return r
	case <-ctx.Done():
		return result{err: ctx.Err()}
	}
}
