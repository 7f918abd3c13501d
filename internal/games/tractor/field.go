package tractor

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tractor-plow/internal/config"
)

// ErrPlacementExhausted is returned when obstacles or power-ups cannot be placed
// within the configured retry budget. It means the field is too small or too
// crowded for the requested counts.
var ErrPlacementExhausted = errors.New("tractor: placement retry budget exhausted")

// Tile is the state of one field cell.
type Tile int

const (
	TileBorder Tile = iota
	TileUnplowed
	TileMud
	TileHard
	TilePlowed
	TileObstacle
	TileTractor
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TileBorder:
		return "border"
	case TileUnplowed:
		return "unplowed"
	case TileMud:
		return "mud"
	case TileHard:
		return "hard"
	case TilePlowed:
		return "plowed"
	case TileObstacle:
		return "obstacle"
	case TileTractor:
		return "tractor"
	default:
		return "unknown"
	}
}

// Pos is a (row, col) field coordinate.
type Pos struct {
	Row, Col int
}

// Step returns the neighbouring position in the given heading.
func (p Pos) Step(h Heading) Pos {
	dr, dc := h.Delta()
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// ObstacleKind distinguishes obstacle visuals. Both kinds collide the same way.
type ObstacleKind int

const (
	ObstacleStone ObstacleKind = iota
	ObstacleTree
)

// Obstacle is an immutable blocking cell.
type Obstacle struct {
	Pos  Pos
	Kind ObstacleKind
}

// Field owns the tile grid together with the obstacles and the power-ups
// that are still waiting to be collected.
// Tiles are stored in row-major order: index = row*cols + col.
type Field struct {
	rows      int
	cols      int
	tiles     []Tile
	obstacles []Obstacle
	powerUps  []PowerUp
}

// newBorderedField creates a field with a border perimeter and unplowed interior.
func newBorderedField(rows, cols int) *Field {
	f := &Field{
		rows:  rows,
		cols:  cols,
		tiles: make([]Tile, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if f.onPerimeter(Pos{Row: r, Col: c}) {
				f.tiles[f.index(Pos{Row: r, Col: c})] = TileBorder
			} else {
				f.tiles[f.index(Pos{Row: r, Col: c})] = TileUnplowed
			}
		}
	}
	return f
}

// GenerateField builds a random field: border perimeter, weighted interior
// tiles, then obstacles and power-ups placed by bounded rejection sampling
// outside the protected square whose top-left corner is spawn.
// The spawn cell is marked as occupied by the tractor.
func GenerateField(fc config.FieldConfig, spawn Pos, rng *rand.Rand) (*Field, error) {
	rows, cols := fc.Dimensions()
	if rows < 3 || cols < 3 || fc.Weights.Total() <= 0 {
		return nil, fmt.Errorf("%w: field %dx%d with tile weight total %d", config.ErrInvalidConfig, rows, cols, fc.Weights.Total())
	}
	f := newBorderedField(rows, cols)
	if !f.IsInterior(spawn) {
		return nil, fmt.Errorf("%w: spawn (%d,%d) outside %dx%d interior", config.ErrInvalidConfig, spawn.Row, spawn.Col, rows, cols)
	}

	total := float64(fc.Weights.Total())
	unplowedUpTo := float64(fc.Weights.Unplowed) / total
	mudUpTo := float64(fc.Weights.Unplowed+fc.Weights.Mud) / total
	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			roll := rng.Float64()
			var tile Tile
			switch {
			case roll < unplowedUpTo:
				tile = TileUnplowed
			case roll < mudUpTo:
				tile = TileMud
			default:
				tile = TileHard
			}
			f.tiles[f.index(Pos{Row: r, Col: c})] = tile
		}
	}

	inZone := func(p Pos) bool {
		return p.Row >= spawn.Row && p.Row < spawn.Row+fc.StartZone &&
			p.Col >= spawn.Col && p.Col < spawn.Col+fc.StartZone
	}

	for i := 0; i < fc.Obstacles; i++ {
		p, ok := f.sample(rng, fc.PlacementRetries, func(p Pos) bool {
			return !inZone(p) && f.tiles[f.index(p)] == TileUnplowed
		})
		if !ok {
			return nil, fmt.Errorf("%w: placed %d of %d obstacles on %dx%d field", ErrPlacementExhausted, i, fc.Obstacles, rows, cols)
		}
		kind := ObstacleStone
		if rng.Intn(2) == 1 {
			kind = ObstacleTree
		}
		f.tiles[f.index(p)] = TileObstacle
		f.obstacles = append(f.obstacles, Obstacle{Pos: p, Kind: kind})
	}

	for i := 0; i < fc.PowerUps; i++ {
		p, ok := f.sample(rng, fc.PlacementRetries, func(p Pos) bool {
			if inZone(p) || f.tiles[f.index(p)] == TileObstacle {
				return false
			}
			_, taken := f.PowerUpAt(p)
			return !taken
		})
		if !ok {
			return nil, fmt.Errorf("%w: placed %d of %d power-ups on %dx%d field", ErrPlacementExhausted, i, fc.PowerUps, rows, cols)
		}
		kind := PowerUpKind(rng.Intn(int(powerUpKindCount)))
		f.powerUps = append(f.powerUps, PowerUp{Pos: p, Kind: kind})
	}

	f.tiles[f.index(spawn)] = TileTractor
	return f, nil
}

// sample draws interior positions until accept passes or the budget runs out.
func (f *Field) sample(rng *rand.Rand, budget int, accept func(Pos) bool) (Pos, bool) {
	for i := 0; i < budget; i++ {
		p := Pos{
			Row: 1 + rng.Intn(f.rows-2),
			Col: 1 + rng.Intn(f.cols-2),
		}
		if accept(p) {
			return p, true
		}
	}
	return Pos{}, false
}

// NewFieldFromRows builds a field from a text layout, one string per row:
//
//	#  border     .  unplowed   ~  mud      ^  hard
//	=  plowed     O  stone      T  tree     @  tractor
//	S  speed boost, D double points, B time bonus (on unplowed ground)
//
// It panics on unknown characters or ragged rows.
func NewFieldFromRows(layout []string) *Field {
	if len(layout) == 0 {
		panic("tractor: empty field layout")
	}
	rows, cols := len(layout), len([]rune(layout[0]))
	f := &Field{
		rows:  rows,
		cols:  cols,
		tiles: make([]Tile, rows*cols),
	}
	for r, line := range layout {
		runes := []rune(line)
		if len(runes) != cols {
			panic(fmt.Sprintf("tractor: layout row %d has %d columns, expected %d", r, len(runes), cols))
		}
		for c, ch := range runes {
			p := Pos{Row: r, Col: c}
			tile := TileUnplowed
			switch ch {
			case '#':
				tile = TileBorder
			case '.':
			case '~':
				tile = TileMud
			case '^':
				tile = TileHard
			case '=':
				tile = TilePlowed
			case 'O':
				tile = TileObstacle
				f.obstacles = append(f.obstacles, Obstacle{Pos: p, Kind: ObstacleStone})
			case 'T':
				tile = TileObstacle
				f.obstacles = append(f.obstacles, Obstacle{Pos: p, Kind: ObstacleTree})
			case '@':
				tile = TileTractor
			case 'S':
				f.powerUps = append(f.powerUps, PowerUp{Pos: p, Kind: PowerUpSpeedBoost})
			case 'D':
				f.powerUps = append(f.powerUps, PowerUp{Pos: p, Kind: PowerUpDoublePoints})
			case 'B':
				f.powerUps = append(f.powerUps, PowerUp{Pos: p, Kind: PowerUpTimeBonus})
			default:
				panic(fmt.Sprintf("tractor: unknown layout character %q at (%d,%d)", ch, r, c))
			}
			f.tiles[f.index(p)] = tile
		}
	}
	return f
}

// index converts a position to a flat array index.
func (f *Field) index(p Pos) int {
	return p.Row*f.cols + p.Col
}

func (f *Field) onPerimeter(p Pos) bool {
	return p.Row == 0 || p.Col == 0 || p.Row == f.rows-1 || p.Col == f.cols-1
}

// Rows returns the field height in tiles.
func (f *Field) Rows() int {
	return f.rows
}

// Cols returns the field width in tiles.
func (f *Field) Cols() int {
	return f.cols
}

// InBounds returns true if the position is inside the grid, border included.
func (f *Field) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < f.rows && p.Col >= 0 && p.Col < f.cols
}

// IsInterior returns true if the position is inside the border.
func (f *Field) IsInterior(p Pos) bool {
	return p.Row >= 1 && p.Row < f.rows-1 && p.Col >= 1 && p.Col < f.cols-1
}

// TileAt returns the tile at p. Out-of-bounds access is a programming error.
func (f *Field) TileAt(p Pos) Tile {
	if !f.InBounds(p) {
		panic(fmt.Sprintf("tractor: TileAt(%d,%d) outside %dx%d field", p.Row, p.Col, f.rows, f.cols))
	}
	return f.tiles[f.index(p)]
}

// SetTile changes the tile at p. Border and obstacle cells are immutable,
// and neither kind can be written after generation.
func (f *Field) SetTile(p Pos, t Tile) {
	if !f.InBounds(p) {
		panic(fmt.Sprintf("tractor: SetTile(%d,%d) outside %dx%d field", p.Row, p.Col, f.rows, f.cols))
	}
	switch cur := f.tiles[f.index(p)]; {
	case cur == TileBorder || cur == TileObstacle:
		panic(fmt.Sprintf("tractor: SetTile(%d,%d) on immutable %s cell", p.Row, p.Col, cur))
	case t == TileBorder || t == TileObstacle:
		panic(fmt.Sprintf("tractor: SetTile(%d,%d) cannot place %s", p.Row, p.Col, t))
	}
	f.tiles[f.index(p)] = t
}

// Obstacles returns a copy of the placed obstacles.
func (f *Field) Obstacles() []Obstacle {
	return append([]Obstacle(nil), f.obstacles...)
}

// PowerUps returns a copy of the power-ups still on the field.
func (f *Field) PowerUps() []PowerUp {
	return append([]PowerUp(nil), f.powerUps...)
}

// PowerUpAt returns the power-up waiting at p, if any.
func (f *Field) PowerUpAt(p Pos) (PowerUp, bool) {
	for _, pu := range f.powerUps {
		if pu.Pos == p {
			return pu, true
		}
	}
	return PowerUp{}, false
}

// RemovePowerUp takes the power-up at p off the field.
func (f *Field) RemovePowerUp(p Pos) (PowerUp, bool) {
	for i, pu := range f.powerUps {
		if pu.Pos == p {
			f.powerUps = append(f.powerUps[:i], f.powerUps[i+1:]...)
			return pu, true
		}
	}
	return PowerUp{}, false
}

// Count returns how many cells currently hold the given tile.
func (f *Field) Count(t Tile) int {
	n := 0
	for _, tile := range f.tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// PlayableCount returns the number of interior cells that are not obstacles.
func (f *Field) PlayableCount() int {
	return (f.rows-2)*(f.cols-2) - len(f.obstacles)
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	return &Field{
		rows:      f.rows,
		cols:      f.cols,
		tiles:     append([]Tile(nil), f.tiles...),
		obstacles: append([]Obstacle(nil), f.obstacles...),
		powerUps:  append([]PowerUp(nil), f.powerUps...),
	}
}

// String renders the field using the NewFieldFromRows alphabet.
// Power-ups are not shown.
func (f *Field) String() string {
	glyphs := map[Tile]rune{
		TileBorder:   '#',
		TileUnplowed: '.',
		TileMud:      '~',
		TileHard:     '^',
		TilePlowed:   '=',
		TileObstacle: 'O',
		TileTractor:  '@',
	}
	var b strings.Builder
	for r := 0; r < f.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < f.cols; c++ {
			b.WriteRune(glyphs[f.tiles[f.index(Pos{Row: r, Col: c})]])
		}
	}
	return b.String()
}
