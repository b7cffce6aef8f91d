// Package scene loads tabletop layouts (tile walls, free-standing walls and
// tokens) from YAML and serves them to the sight engine as its host.
package scene

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/shadows"
	"chosenoffset.com/sightline/internal/core/visibility"
)

var (
	ErrDuplicateToken = errors.New("duplicate token id")
	ErrUnknownToken   = errors.New("unknown token")
	ErrEmptyScene     = errors.New("scene has no extent")
)

// Blocker is the tile character for a full-height wall.
const Blocker = '#'

// File is the on-disk scene layout.
type File struct {
	Name     string  `yaml:"name"`
	TileSize float64 `yaml:"tile_size"`
	// Tiles are rows of characters, top row first. '#' is a full-height wall;
	// characters listed in Legend are walls with that extent; anything else is open.
	Tiles  []string          `yaml:"tiles"`
	Legend map[string]Extent `yaml:"legend"`
	Walls  []WallData        `yaml:"walls"`
	Tokens []TokenData       `yaml:"tokens"`
}

// Extent is a vertical span. A missing bound is unbounded.
type Extent struct {
	Bottom *float64 `yaml:"bottom"`
	Top    *float64 `yaml:"top"`
}

func (e Extent) resolve() (bottom, top float64) {
	bottom, top = math.Inf(-1), math.Inf(1)
	if e.Bottom != nil {
		bottom = *e.Bottom
	}
	if e.Top != nil {
		top = *e.Top
	}
	return bottom, top
}

// WallData is a free-standing wall in scene units.
type WallData struct {
	ID     string     `yaml:"id"`
	From   [2]float64 `yaml:"from"`
	To     [2]float64 `yaml:"to"`
	Extent `yaml:",inline"`
}

// TokenData places a token. X and Y are the top-left corner in scene units.
type TokenData struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Width     float64 `yaml:"width"`  // defaults to one tile
	Length    float64 `yaml:"length"` // defaults to Width
	Elevation float64 `yaml:"elevation"`
	Height    float64 `yaml:"height"`
	// Eye is the eye height above Elevation; defaults to Height.
	Eye *float64 `yaml:"eye"`
	// Vision is the sight radius; zero means unlimited.
	Vision float64 `yaml:"vision"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return New(f)
}

// New builds a scene from an already decoded file.
func New(f File) (*Scene, error) {
	if err := validateFile(&f); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	grid := newTileGrid(f.Tiles, f.Legend)
	var walls []shadows.Segment
	if grid.Width() > 0 {
		walls = shadows.CreateWallSegmentsFromGrid(grid, f.TileSize)
	}
	for i, w := range f.Walls {
		seg := shadows.NewSegment(orb.Point(w.From), orb.Point(w.To))
		seg.Bottom, seg.Top = w.Extent.resolve()
		seg.ID = w.ID
		if seg.ID == "" {
			seg.ID = fmt.Sprintf("wall-%d", i)
		}
		walls = append(walls, seg)
	}

	s := &Scene{
		Name:     f.Name,
		TileSize: f.TileSize,
		byID:     make(map[string]*Token, len(f.Tokens)),
	}
	for _, td := range f.Tokens {
		t := newToken(td, f.TileSize)
		if _, dup := s.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateToken, t.ID)
		}
		s.byID[t.ID] = t
		s.tokens = append(s.tokens, t)
	}

	s.Bounds = extent(grid, f.TileSize, walls, s.tokens)
	if s.Bounds.IsEmpty() {
		return nil, ErrEmptyScene
	}
	s.setWalls(walls)
	return s, nil
}

func validateFile(f *File) error {
	if len(f.Tiles) > 0 && f.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %g", f.TileSize)
	}
	if f.TileSize <= 0 {
		f.TileSize = 1
	}
	for key, e := range f.Legend {
		if len(key) != 1 || key[0] == Blocker {
			return fmt.Errorf("invalid legend key %q", key)
		}
		bottom, top := e.resolve()
		if bottom > top {
			return fmt.Errorf("legend %q: bottom %g above top %g", key, bottom, top)
		}
	}
	for i, w := range f.Walls {
		if w.From == w.To {
			return fmt.Errorf("wall %d has zero length", i)
		}
		bottom, top := w.Extent.resolve()
		if bottom > top {
			return fmt.Errorf("wall %d: bottom %g above top %g", i, bottom, top)
		}
	}
	for i, t := range f.Tokens {
		if t.Width < 0 || t.Length < 0 || t.Height < 0 || t.Vision < 0 {
			return fmt.Errorf("token %d (%s) has a negative size", i, t.ID)
		}
	}
	return nil
}

func newToken(td TokenData, tileSize float64) *Token {
	w := td.Width
	if w == 0 {
		w = tileSize
	}
	l := td.Length
	if l == 0 {
		l = w
	}
	eye := td.Height
	if td.Eye != nil {
		eye = *td.Eye
	}
	vision := td.Vision
	if vision == 0 {
		vision = math.Inf(1)
	}
	id := td.ID
	if id == "" {
		id = uuid.NewString()
	}
	name := td.Name
	if name == "" {
		name = id
	}
	return &Token{
		Token: visibility.Token{
			ID:     id,
			Bound:  geometry.RectXYWH(td.X, td.Y, w, l),
			Bottom: td.Elevation,
			Top:    td.Elevation + td.Height,
		},
		Name:   name,
		Eye:    eye,
		Vision: vision,
	}
}

// extent returns the box enclosing the grid, every wall and every token.
func extent(grid *tileGrid, tileSize float64, walls []shadows.Segment, tokens []*Token) geometry.Rect {
	var b orb.Bound
	seeded := false
	add := func(o orb.Bound) {
		if !seeded {
			b, seeded = o, true
			return
		}
		b = b.Union(o)
	}
	if grid.Width() > 0 {
		add(orb.Bound{Max: orb.Point{float64(grid.Width()) * tileSize, float64(grid.Height()) * tileSize}})
	}
	for _, w := range walls {
		add(w.Bound())
	}
	for _, t := range tokens {
		add(t.Bound.Bound())
	}
	if !seeded {
		return geometry.Rect{}
	}
	return geometry.RectFromBound(b)
}
