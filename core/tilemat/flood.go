package tilemat

import (
	"github.com/mapeditor/tactile-core/core/geom"
	"github.com/mapeditor/tactile-core/core/ident"
)

// Flood performs a classic 4-neighbour BFS flood fill starting at origin,
// replacing every reachable tile whose value equals origin's original
// value with replacement. It appends each modified position to affected in
// visit order and returns the (possibly grown) slice. A no-op (origin out
// of bounds, or already equal to replacement) leaves affected untouched
// (spec.md §4.3 "Flood-fill").
func (m *Matrix) Flood(origin geom.Point, replacement ident.TileID, affected []geom.Point) []geom.Point {
	target, ok := m.TryAt(origin)
	if !ok || target == replacement {
		return affected
	}

	visited := make(map[geom.Point]bool)
	queue := []geom.Point{origin}
	visited[origin] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		m.Set(p, replacement)
		affected = append(affected, p)

		for _, n := range neighbours4(p) {
			if visited[n] {
				continue
			}
			if v, ok := m.TryAt(n); ok && v == target {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return affected
}

func neighbours4(p geom.Point) [4]geom.Point {
	return [4]geom.Point{
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y - 1},
		{X: p.X, Y: p.Y + 1},
	}
}
