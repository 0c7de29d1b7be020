package berrynoid

import "github.com/vovakirdan/berrynoid/internal/core"

// Life values of a block.
const (
	Indestructible = -1
	Destroyed      = 0
)

// Block is one brick of the board. A destroyed block keeps its slot in the
// level's collection with a zero rectangle.
type Block struct {
	core.Rect
	Lives  int
	Sprite core.Sprite
}

// NewBlock creates a block at (x, y). A zero life value counts as one.
func NewBlock(x, y, w, h float64, lives int, sprites AssetTable) *Block {
	if lives == 0 {
		lives = 1
	}
	return &Block{
		Rect:   core.NewRect(x, y, w, h),
		Lives:  lives,
		Sprite: sprites.Lookup(lives),
	}
}

// Hit takes one life. Indestructible blocks ignore hits.
func (b *Block) Hit() {
	if b.Lives <= Destroyed {
		return
	}
	b.Lives--
	if b.Lives == Destroyed {
		b.Rect = core.Rect{}
	}
}

// Solid reports whether the ball can still bounce off the block.
func (b *Block) Solid() bool {
	return b.Lives != Destroyed
}

// Breakable reports whether the block still counts toward level completion.
func (b *Block) Breakable() bool {
	return b.Lives > 0
}

// Draw renders the block with the sprite chosen at creation.
func (b *Block) Draw(dst core.Surface) {
	if !b.Solid() {
		return
	}
	dst.DrawImage(b.Sprite, b.Rect)
}
