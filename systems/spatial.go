package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tickphys/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // delta from query origin
	DistSq float32
}

// SpatialGrid buckets entity transforms for point and radius queries from
// the UI (selection, hover). The physics core never uses it: collision
// detection stays all-pairs.
type SpatialGrid struct {
	cellSize   float32
	cols, rows int
	minX, minY float32
	cells      [][]ecs.Entity
}

// NewSpatialGrid creates a grid covering [minX,maxX] x [minY,maxY].
func NewSpatialGrid(minX, minY, maxX, maxY, cellSize float32) *SpatialGrid {
	cols := int((maxX-minX)/cellSize) + 1
	rows := int((maxY-minY)/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		minX:     minX,
		minY:     minY,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity at the given position. Positions outside the grid
// are clamped into the border cells.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float32) {
	g.cells[g.cellIndex(x, y)] = append(g.cells[g.cellIndex(x, y)], e)
}

// MaxQueryResults caps the number of neighbors returned by spatial queries.
const MaxQueryResults = 128

// QueryRadiusInto finds entities within radius and appends to dst (up to MaxQueryResults).
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, trMap *ecs.Map[components.Transform]) []Neighbor {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(x, y)
	radiusSq := radius * radius

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, e := range g.cells[row*g.cols+col] {
				tr := trMap.Get(e)
				if tr == nil {
					continue
				}
				dx, dy := tr.X-x, tr.Y-y
				distSq := dx*dx + dy*dy
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
					if len(dst) >= MaxQueryResults {
						return dst
					}
				}
			}
		}
	}
	return dst
}

// Nearest returns the closest entity within radius.
func (g *SpatialGrid) Nearest(x, y, radius float32, trMap *ecs.Map[components.Transform]) (ecs.Entity, bool) {
	var best Neighbor
	found := false
	for _, n := range g.QueryRadiusInto(nil, x, y, radius, trMap) {
		if !found || n.DistSq < best.DistSq {
			best = n
			found = true
		}
	}
	return best.E, found
}

func (g *SpatialGrid) cellCoords(x, y float32) (col, row int) {
	col = clampCell((x-g.minX)/g.cellSize, g.cols)
	row = clampCell((y-g.minY)/g.cellSize, g.rows)
	return col, row
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
