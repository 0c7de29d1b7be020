package berrynoid

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/berrynoid/internal/config"
)

// Layout is a board: a grid of block life values.
// 0 is empty, -1 indestructible, 1..3 the number of hits a block takes.
type Layout struct {
	Name string
	Rows [][]int
}

// Map glyphs used by ASCII layouts.
const (
	mapEmpty          = '.'
	mapIndestructible = 'X'
)

// ParseLayout creates a Layout from an ASCII map.
// Characters:
//
//	'.' = empty
//	'1'-'3' = block taking that many hits
//	'X' = indestructible block
func ParseLayout(name string, lines []string) (Layout, error) {
	l := Layout{Name: name, Rows: make([][]int, len(lines))}
	for r, line := range lines {
		row := make([]int, 0, len(line))
		for c, ch := range line {
			switch {
			case ch == mapEmpty:
				row = append(row, 0)
			case ch == mapIndestructible:
				row = append(row, Indestructible)
			case ch >= '1' && ch <= '3':
				row = append(row, int(ch-'0'))
			default:
				return Layout{}, fmt.Errorf("layout %q: row %d col %d: unexpected %q", name, r, c, ch)
			}
		}
		l.Rows[r] = row
	}
	return l, l.Check()
}

func mustParse(name string, lines ...string) Layout {
	l, err := ParseLayout(name, lines)
	if err != nil {
		panic(err)
	}
	return l
}

const blankRow = "............"

var builtinLayouts = []Layout{
	mustParse("Crown",
		blankRow,
		blankRow,
		blankRow,
		"...111111...",
		"...111111...",
		".1111111111.",
		".1111111111.",
		".1111111111.",
		"...111111...",
		blankRow,
		blankRow,
	),
	mustParse("Pillars",
		blankRow,
		blankRow,
		".11..11..11.",
		".11..11..11.",
		".11..11..11.",
		".1111111111.",
		".1111111111.",
		".1111111111.",
		"...11..11...",
		"...11..11...",
		blankRow,
	),
	mustParse("Wall",
		blankRow,
		blankRow,
		".1111111111.",
		".1111111111.",
		".1111111111.",
		".1111111111.",
		".1111111111.",
		".1111111111.",
		".1111111111.",
		".3333333333.",
		blankRow,
	),
	mustParse("Fortress",
		blankRow,
		blankRow,
		blankRow,
		".321.11.123.",
		".111.22.111.",
		".111.33.111.",
		".1123XX3211.",
		".123XXXX321.",
		".XXX1221XXX.",
		blankRow,
		blankRow,
	),
}

// BuiltinLayouts returns a copy of the four shipped boards.
func BuiltinLayouts() []Layout {
	out := make([]Layout, len(builtinLayouts))
	for i, l := range builtinLayouts {
		out[i] = l.Clone()
	}
	return out
}

// Clone creates a deep copy of the layout.
func (l Layout) Clone() Layout {
	clone := Layout{Name: l.Name, Rows: make([][]int, len(l.Rows))}
	for i, row := range l.Rows {
		clone.Rows[i] = append([]int(nil), row...)
	}
	return clone
}

// Breakable returns the number of blocks that must be destroyed.
func (l Layout) Breakable() int {
	n := 0
	for _, row := range l.Rows {
		for _, v := range row {
			if v > 0 {
				n++
			}
		}
	}
	return n
}

// Check validates the grid: rectangular, known values, at least one
// breakable block.
func (l Layout) Check() error {
	if len(l.Rows) == 0 {
		return fmt.Errorf("layout %q: no rows", l.Name)
	}
	width := len(l.Rows[0])
	for r, row := range l.Rows {
		if len(row) != width {
			return fmt.Errorf("layout %q: row %d has %d columns, want %d", l.Name, r, len(row), width)
		}
		for c, v := range row {
			if v < Indestructible || v > 3 {
				return fmt.Errorf("layout %q: row %d col %d: value %d out of range -1..3", l.Name, r, c, v)
			}
		}
	}
	if l.Breakable() == 0 {
		return fmt.Errorf("layout %q: no breakable blocks", l.Name)
	}
	return nil
}

// Fits reports whether every block of the layout lies between the walls
// and above the paddle.
func (l Layout) Fits(cfg config.Config) error {
	wall := cfg.Field.WallWidth
	maxX := cfg.Field.Width - wall
	maxY := cfg.Field.Height - cfg.Paddle.Height - cfg.Field.BottomMargin
	for r, row := range l.Rows {
		for c, v := range row {
			if v == 0 {
				continue
			}
			right := wall + cfg.Block.Width*float64(c+1)
			bottom := wall + cfg.Block.Height*float64(r+1)
			if right > maxX || bottom > maxY {
				return fmt.Errorf("layout %q: block at row %d col %d lies outside the field", l.Name, r, c)
			}
		}
	}
	return nil
}

// String renders the layout as an ASCII map.
func (l Layout) String() string {
	var sb strings.Builder
	for r, row := range l.Rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, v := range row {
			switch {
			case v == 0:
				sb.WriteRune(mapEmpty)
			case v == Indestructible:
				sb.WriteRune(mapIndestructible)
			default:
				sb.WriteByte(byte('0' + v))
			}
		}
	}
	return sb.String()
}

// BuildBlocks creates the blocks of a layout in scan order (rows, then
// columns), skipping empty cells.
func BuildBlocks(l Layout, cfg config.Config, sprites AssetTable) []*Block {
	wall := cfg.Field.WallWidth
	bw, bh := cfg.Block.Width, cfg.Block.Height

	blocks := make([]*Block, 0, l.Breakable())
	for r, row := range l.Rows {
		for c, v := range row {
			if v == 0 {
				continue
			}
			blocks = append(blocks, NewBlock(wall+bw*float64(c), wall+bh*float64(r), bw, bh, v, sprites))
		}
	}
	return blocks
}

// layoutFile is the YAML layout of a level pack. Each level gives either
// an ASCII map or a matrix of life values.
type layoutFile struct {
	Levels []struct {
		Name string   `yaml:"name"`
		Map  []string `yaml:"map"`
		Rows [][]int  `yaml:"rows"`
	} `yaml:"levels"`
}

// ParseLayouts decodes a YAML level pack.
func ParseLayouts(data []byte) ([]Layout, error) {
	var f layoutFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, errors.New("levels: pack has no levels")
	}

	layouts := make([]Layout, 0, len(f.Levels))
	var errs []error
	for i, lv := range f.Levels {
		name := lv.Name
		if name == "" {
			name = fmt.Sprintf("Level %d", i+1)
		}
		var (
			l   Layout
			err error
		)
		switch {
		case len(lv.Map) > 0 && len(lv.Rows) > 0:
			err = fmt.Errorf("layout %q: set either map or rows, not both", name)
		case len(lv.Map) > 0:
			l, err = ParseLayout(name, lv.Map)
		default:
			l = Layout{Name: name, Rows: lv.Rows}
			err = l.Check()
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		layouts = append(layouts, l)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("levels: %w", errors.Join(errs...))
	}
	return layouts, nil
}

// LoadLayouts reads a YAML level pack from disk.
func LoadLayouts(path string) ([]Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: failed to read %s: %w", path, err)
	}
	return ParseLayouts(data)
}
