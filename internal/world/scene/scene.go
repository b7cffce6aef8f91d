package scene

import (
	"fmt"

	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/shadows"
	"chosenoffset.com/sightline/internal/core/visibility"
)

// Token is a placed token with the host-side data the engine does not model.
type Token struct {
	visibility.Token
	Name string
	// Eye is the eye height above the token's bottom.
	Eye float64
	// Vision is the sight radius, +Inf when unlimited.
	Vision float64
}

// EyePoint returns the token's eye in scene coordinates.
func (t *Token) EyePoint() geometry.Point3d {
	return geometry.At(t.Center(), t.Bottom+t.Eye)
}

// Scene is a loaded layout. It is the sight engine's host: it indexes walls for
// QueryWalls and computes the 2D line of sight each vision source starts from.
// A Scene is not safe for concurrent mutation.
type Scene struct {
	Name     string
	TileSize float64
	// Bounds encloses every tile, wall and token.
	Bounds geometry.Rect

	index  *WallIndex
	full   []shadows.Segment
	tokens []*Token
	byID   map[string]*Token
	sweep  shadows.RaySweeper
}

func (s *Scene) setWalls(walls []shadows.Segment) {
	s.index = NewWallIndex(walls)
	s.full = s.full[:0]
	for _, w := range walls {
		if w.FullHeight() {
			s.full = append(s.full, w)
		}
	}
}

// Walls returns every wall in the scene.
func (s *Scene) Walls() []shadows.Segment { return s.index.All() }

// QueryWalls returns the walls whose extent intersects b.
func (s *Scene) QueryWalls(b orb.Bound) []shadows.Segment { return s.index.QueryWalls(b) }

// Tokens returns the tokens in file order.
func (s *Scene) Tokens() []*Token { return s.tokens }

// Token looks a token up by id.
func (s *Scene) Token(id string) (*Token, error) {
	t, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownToken, id)
	}
	return t, nil
}

// LineOfSight returns the region visible from origin past full-height walls,
// enclosed by the scene bounds. Finite-height walls are left to the engine.
func (s *Scene) LineOfSight(origin orb.Point) geometry.Polygon {
	return s.sweep.UnobstructedRegion(origin, s.full, s.Bounds)
}

// VisionSource builds the engine's view of what t sees.
func (s *Scene) VisionSource(t *Token) visibility.VisionSource {
	eye := t.EyePoint()
	return visibility.VisionSource{
		Position: eye,
		Radius:   t.Vision,
		LOS:      s.LineOfSight(eye.XY()),
	}
}

// Observer pairs t with its vision source.
func (s *Scene) Observer(t *Token) visibility.Observer {
	return visibility.Observer{Token: t.Token, Vision: s.VisionSource(t)}
}

// MoveToken shifts a token on the ground plane. The caller must invalidate any
// engine footprint cached for it.
func (s *Scene) MoveToken(id string, dx, dy float64) error {
	t, err := s.Token(id)
	if err != nil {
		return err
	}
	b := t.Bound
	t.Bound = geometry.NewRect(b.Left+dx, b.Top+dy, b.Right+dx, b.Bottom+dy)
	return nil
}

// Raise changes a token's elevation by dz, keeping its height.
func (s *Scene) Raise(id string, dz float64) error {
	t, err := s.Token(id)
	if err != nil {
		return err
	}
	t.Bottom += dz
	t.Top += dz
	return nil
}

// NewEngine returns a sight engine that uses s as its wall source.
func (s *Scene) NewEngine(cfg *config.Config, opts ...visibility.Option) (*visibility.Engine, error) {
	return visibility.New(cfg, s, s.sweep, opts...)
}
