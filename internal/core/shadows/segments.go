package shadows

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Grid is a tile map that knows which tiles block sight.
type Grid interface {
	Width() int
	Height() int
	BlocksSight(x, y int) bool
}

// HeightGrid is a Grid whose blocking tiles may have a finite vertical extent.
type HeightGrid interface {
	Grid
	WallExtent(x, y int) (bottom, top float64)
}

// CreateWallSegmentsFromGrid extracts the perimeter of every contiguous region of
// sight-blocking tiles and merges colinear edges into longer walls.
// Edges of tiles with different vertical extents are never merged.
func CreateWallSegmentsFromGrid(grid Grid, tileSize float64) []Segment {
	regions := findContiguousRegions(grid)

	var all []Segment
	for _, region := range regions {
		all = append(all, extractPerimeterSegments(region, grid, tileSize)...)
	}

	merged := mergeColinearSegments(all)
	for i := range merged {
		merged[i].ID = fmt.Sprintf("grid-%s-%d", merged[i].EdgeType, i)
	}
	return merged
}

// findContiguousRegions identifies all connected regions of sight-blocking tiles
func findContiguousRegions(grid Grid) [][]Coord {
	visited := make(map[Coord]bool)
	var regions [][]Coord

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			coord := Coord{X: x, Y: y}
			if visited[coord] || !grid.BlocksSight(x, y) {
				continue
			}
			if region := floodFill(grid, coord, visited); len(region) > 0 {
				regions = append(regions, region)
			}
		}
	}

	return regions
}

// floodFill performs BFS to find all 4-connected sight-blocking tiles
func floodFill(grid Grid, start Coord, visited map[Coord]bool) []Coord {
	var region []Coord
	queue := []Coord{start}
	visited[start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		region = append(region, current)

		neighbors := [4]Coord{
			{X: current.X, Y: current.Y - 1},
			{X: current.X + 1, Y: current.Y},
			{X: current.X, Y: current.Y + 1},
			{X: current.X - 1, Y: current.Y},
		}
		for _, n := range neighbors {
			if n.X < 0 || n.X >= grid.Width() || n.Y < 0 || n.Y >= grid.Height() {
				continue
			}
			if visited[n] || !grid.BlocksSight(n.X, n.Y) {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}

	return region
}

func extentOf(grid Grid, c Coord) (bottom, top float64) {
	if hg, ok := grid.(HeightGrid); ok {
		return hg.WallExtent(c.X, c.Y)
	}
	return math.Inf(-1), math.Inf(1)
}

// extractPerimeterSegments finds all exposed edges of a region. An edge between
// two blocking tiles of different extent is exposed on the lower side.
func extractPerimeterSegments(region []Coord, grid Grid, tileSize float64) []Segment {
	regionSet := make(map[Coord]bool, len(region))
	for _, c := range region {
		regionSet[c] = true
	}

	var segments []Segment
	for _, c := range region {
		left := float64(c.X) * tileSize
		top := float64(c.Y) * tileSize
		right := left + tileSize
		bottom := top + tileSize
		lo, hi := extentOf(grid, c)

		exposed := func(n Coord) bool {
			if !regionSet[n] {
				return true
			}
			nlo, nhi := extentOf(grid, n)
			return nhi < hi || nlo > lo
		}

		edge := func(kind string, ax, ay, bx, by float64) Segment {
			return Segment{
				A:            orb.Point{ax, ay},
				B:            orb.Point{bx, by},
				Bottom:       lo,
				Top:          hi,
				TilesCovered: []Coord{c},
				EdgeType:     kind,
			}
		}

		if exposed(Coord{X: c.X, Y: c.Y - 1}) {
			segments = append(segments, edge("top", left, top, right, top))
		}
		if exposed(Coord{X: c.X + 1, Y: c.Y}) {
			segments = append(segments, edge("right", right, top, right, bottom))
		}
		if exposed(Coord{X: c.X, Y: c.Y + 1}) {
			segments = append(segments, edge("bottom", right, bottom, left, bottom))
		}
		if exposed(Coord{X: c.X - 1, Y: c.Y}) {
			segments = append(segments, edge("left", left, bottom, left, top))
		}
	}

	return segments
}

// mergeColinearSegments combines adjacent parallel segments into longer segments
func mergeColinearSegments(segments []Segment) []Segment {
	if len(segments) == 0 {
		return segments
	}

	merged := make([]bool, len(segments))
	var result []Segment

	for i := range segments {
		if merged[i] {
			continue
		}

		current := segments[i]
		merged[i] = true

		for extended := true; extended; {
			extended = false
			for j := range segments {
				if merged[j] || !canMergeSegments(current, segments[j]) {
					continue
				}
				current = mergeSegments(current, segments[j])
				merged[j] = true
				extended = true
				break
			}
		}

		result = append(result, current)
	}

	return result
}

// canMergeSegments checks if two segments are adjacent, colinear and equally tall
func canMergeSegments(seg1, seg2 Segment) bool {
	if seg1.EdgeType != seg2.EdgeType || seg1.Bottom != seg2.Bottom || seg1.Top != seg2.Top {
		return false
	}

	const epsilon = 0.001

	switch seg1.EdgeType {
	case "top", "bottom":
		if math.Abs(seg1.A[1]-seg2.A[1]) > epsilon {
			return false
		}
		return touches(seg1.A[0], seg1.B[0], seg2.A[0], seg2.B[0], epsilon)
	case "left", "right":
		if math.Abs(seg1.A[0]-seg2.A[0]) > epsilon {
			return false
		}
		return touches(seg1.A[1], seg1.B[1], seg2.A[1], seg2.B[1], epsilon)
	}

	return false
}

// touches reports whether intervals [a1,a2] and [b1,b2] share an endpoint.
func touches(a1, a2, b1, b2, epsilon float64) bool {
	return math.Abs(a2-b1) < epsilon || math.Abs(a1-b2) < epsilon
}

// mergeSegments combines two adjacent colinear segments into one, keeping the
// winding of the first.
func mergeSegments(seg1, seg2 Segment) Segment {
	result := seg1

	switch seg1.EdgeType {
	case "top", "bottom":
		lo := min(seg1.A[0], seg1.B[0], seg2.A[0], seg2.B[0])
		hi := max(seg1.A[0], seg1.B[0], seg2.A[0], seg2.B[0])
		if seg1.A[0] <= seg1.B[0] {
			result.A[0], result.B[0] = lo, hi
		} else {
			result.A[0], result.B[0] = hi, lo
		}
	case "left", "right":
		lo := min(seg1.A[1], seg1.B[1], seg2.A[1], seg2.B[1])
		hi := max(seg1.A[1], seg1.B[1], seg2.A[1], seg2.B[1])
		if seg1.A[1] <= seg1.B[1] {
			result.A[1], result.B[1] = lo, hi
		} else {
			result.A[1], result.B[1] = hi, lo
		}
	}

	covered := make([]Coord, 0, len(seg1.TilesCovered)+len(seg2.TilesCovered))
	covered = append(covered, seg1.TilesCovered...)
	result.TilesCovered = append(covered, seg2.TilesCovered...)

	return result
}
