package main

import (
	"image/color"
	"net/http"
	"strconv"

	"github.com/fogleman/gg"

	"megaarena/internal/api"
	"megaarena/internal/config"
	"megaarena/internal/game"
)

// newDebugFrameHandler renders the current match state to a PNG: the
// tilemap as filled/empty cells plus character and spawn bounding
// boxes. This is strictly a collaborator-side debugging aid — the
// deterministic core never renders anything itself.
func newDebugFrameHandler(match *api.MatchEngine, world config.WorldConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := match.Snapshot()
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		width := world.TileCols * world.TileSize
		height := world.TileRows * world.TileSize
		dc := gg.NewContext(width, height)
		drawDebugBackground(dc, width, height)
		drawDebugTilemap(dc, snap.Tilemap, world.TileSize)
		drawDebugCharacters(dc, snap.Characters)
		drawDebugSpawns(dc, snap.SpawnInstances)
		drawDebugLabel(dc, snap)

		w.Header().Set("Content-Type", "image/png")
		if err := dc.EncodePNG(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func drawDebugBackground(dc *gg.Context, width, height int) {
	dc.SetColor(color.RGBA{18, 18, 28, 255})
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()
}

func drawDebugTilemap(dc *gg.Context, tilemap game.Tilemap, tileSize int) {
	dc.SetColor(color.RGBA{70, 70, 90, 255})
	for row := range tilemap {
		for col := range tilemap[row] {
			if tilemap[row][col] == 0 {
				continue
			}
			x := float64(col * tileSize)
			y := float64(row * tileSize)
			dc.DrawRectangle(x, y, float64(tileSize), float64(tileSize))
			dc.Fill()
		}
	}
}

func drawDebugCharacters(dc *gg.Context, characters []game.Character) {
	dc.SetLineWidth(2)
	for _, ch := range characters {
		col := color.RGBA{80, 200, 255, 255}
		if ch.Health == 0 {
			col = color.RGBA{120, 40, 40, 255}
		}
		drawDebugBox(dc, ch.PosX, ch.PosY, ch.SizeW, ch.SizeH, col)
	}
}

func drawDebugSpawns(dc *gg.Context, spawns []game.SpawnInstance) {
	dc.SetLineWidth(1)
	for _, sp := range spawns {
		if !sp.Alive {
			continue
		}
		drawDebugBox(dc, sp.PosX, sp.PosY, sp.SizeW, sp.SizeH, color.RGBA{255, 200, 60, 255})
	}
}

func drawDebugBox(dc *gg.Context, x, y game.Fixed, w, h uint8, col color.Color) {
	dc.SetColor(col)
	dc.DrawRectangle(float64(x.ToInt()), float64(y.ToInt()), float64(w), float64(h))
	dc.Stroke()
}

func drawDebugLabel(dc *gg.Context, snap game.GameSnapshot) {
	dc.SetColor(color.White)
	status := "playing"
	if snap.Status == game.StatusEnded {
		status = "ended"
	}
	dc.DrawString(
		"frame "+strconv.Itoa(int(snap.Frame))+" / "+status,
		4, 12,
	)
}
