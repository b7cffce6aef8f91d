package scene

import "math"

// tileGrid reads the tile rows of a scene file. It implements
// shadows.HeightGrid.
type tileGrid struct {
	rows   []string
	width  int
	legend map[byte]Extent
}

func newTileGrid(rows []string, legend map[string]Extent) *tileGrid {
	g := &tileGrid{rows: rows, legend: make(map[byte]Extent, len(legend))}
	for _, r := range rows {
		g.width = max(g.width, len(r))
	}
	for k, e := range legend {
		g.legend[k[0]] = e
	}
	return g
}

func (g *tileGrid) Width() int  { return g.width }
func (g *tileGrid) Height() int { return len(g.rows) }

func (g *tileGrid) at(x, y int) byte {
	if y < 0 || y >= len(g.rows) || x < 0 || x >= len(g.rows[y]) {
		return ' '
	}
	return g.rows[y][x]
}

func (g *tileGrid) BlocksSight(x, y int) bool {
	c := g.at(x, y)
	if c == Blocker {
		return true
	}
	_, ok := g.legend[c]
	return ok
}

func (g *tileGrid) WallExtent(x, y int) (bottom, top float64) {
	if e, ok := g.legend[g.at(x, y)]; ok {
		return e.resolve()
	}
	return math.Inf(-1), math.Inf(1)
}
