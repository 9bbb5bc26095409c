package game

const (
	// TileSize is the pixel width/height of one tilemap cell.
	TileSize = 16
	// TileCols/TileRows define the fixed 16x15 arena grid (§3, §6).
	TileCols = 16
	TileRows = 15

	// ArenaWidth/ArenaHeight are the arena bounds in pixels.
	ArenaWidth  = TileCols * TileSize // 256
	ArenaHeight = TileRows * TileSize // 240

	maxOverlapPush = 8 // implementation-chosen cap for §4.J step 5
)

// Tilemap is the fixed 16x15 grid of tile types; any non-zero value is
// solid (§4.C). Out-of-bounds coordinates are always treated as solid.
type Tilemap [TileRows][TileCols]uint8

// IsSolid reports whether the tile at (col,row) is solid, treating any
// out-of-bounds cell as solid.
func (t *Tilemap) IsSolid(col, row int) bool {
	if col < 0 || col >= TileCols || row < 0 || row >= TileRows {
		return true
	}
	return t[row][col] != 0
}

// CollisionRect is an axis-aligned rectangle in pixel coordinates.
type CollisionRect struct {
	X, Y Fixed
	W, H uint8
}

// RectVsTiles reports whether any tile overlapping rect is solid.
func (t *Tilemap) RectVsTiles(rect CollisionRect) bool {
	x0 := rect.X.ToInt()
	y0 := rect.Y.ToInt()
	x1 := x0 + int16(rect.W) - 1
	y1 := y0 + int16(rect.H) - 1

	colMin := int(x0) / TileSize
	colMax := int(x1) / TileSize
	rowMin := int(y0) / TileSize
	rowMax := int(y1) / TileSize

	if x0 < 0 {
		colMin = -1
	}
	if y0 < 0 {
		rowMin = -1
	}

	for row := rowMin; row <= rowMax; row++ {
		for col := colMin; col <= colMax; col++ {
			if t.IsSolid(col, row) {
				return true
			}
		}
	}
	return false
}

// ContainsOverlap is semantically identical to RectVsTiles; callers use
// the distinct name to mark "is the entity's *current* position stuck"
// versus "would this *candidate* position collide" (§4.C).
func (t *Tilemap) ContainsOverlap(rect CollisionRect) bool {
	return t.RectVsTiles(rect)
}

// Side identifies one of the four probe directions used for collision
// flags and for directional wall-escape resolution.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// Probe returns a 1-pixel-thick rectangle immediately adjacent to rect
// on the given side, used to refresh collision flags (§4.C, §4.J step 9).
func Probe(rect CollisionRect, side Side) CollisionRect {
	switch side {
	case SideTop:
		return CollisionRect{X: rect.X, Y: rect.Y.Sub(One), W: rect.W, H: 1}
	case SideBottom:
		return CollisionRect{X: rect.X, Y: rect.Y.Add(FixedFromInt(int16(rect.H))), W: rect.W, H: 1}
	case SideLeft:
		return CollisionRect{X: rect.X.Sub(One), Y: rect.Y, W: 1, H: rect.H}
	default: // SideRight
		return CollisionRect{X: rect.X.Add(FixedFromInt(int16(rect.W))), Y: rect.Y, W: 1, H: rect.H}
	}
}

// SweepAxis tests candidate movement of delta along axis (0=x, 1=y) in
// 1-pixel increments and returns the farthest non-colliding distance
// plus whether a hit occurred (§4.C). delta may be negative.
func (t *Tilemap) SweepAxis(rect CollisionRect, delta Fixed, axis int) (allowed Fixed, hit bool) {
	if delta == 0 {
		return 0, false
	}

	step := One
	if delta < 0 {
		step = step.Neg()
	}
	remaining := delta.Abs()
	traveled := Fixed(0)

	for remaining > 0 {
		moveStep := step
		if remaining < One {
			// Sub-pixel remainder: test the full remaining delta directly
			// since our increments are whole pixels.
			moveStep = delta.Sub(traveled)
			if moveStep == 0 {
				break
			}
		}

		candidate := rect
		if axis == 0 {
			candidate.X = candidate.X.Add(traveled).Add(moveStep)
		} else {
			candidate.Y = candidate.Y.Add(traveled).Add(moveStep)
		}

		if t.RectVsTiles(candidate) {
			hit = true
			break
		}
		traveled = traveled.Add(moveStep)
		if remaining < One {
			remaining = 0
		} else {
			remaining = remaining.Sub(One)
		}
	}
	return traveled, hit
}

// ClampToArena clamps rect's position so the rectangle stays within
// [0,ArenaWidth) x [0,ArenaHeight).
func ClampToArena(x, y Fixed, w, h uint8) (Fixed, Fixed) {
	maxX := FixedFromInt(int16(ArenaWidth - int(w)))
	maxY := FixedFromInt(int16(ArenaHeight - int(h)))
	x = x.Max(0).Min(maxX)
	y = y.Max(0).Min(maxY)
	return x, y
}
