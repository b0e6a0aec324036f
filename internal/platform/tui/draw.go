package tui

import (
	"fmt"
	"math"

	"github.com/marki32/scain-ai/internal/core"
	"github.com/marki32/scain-ai/internal/runner"
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

const groundChar = '▀'

type glyph struct {
	r rune
	c core.Color
}

var (
	playerGlyph = glyph{'█', core.ColorBrightBlue}

	variantGlyphs = map[string]glyph{
		"crate": {'#', core.ColorBrown},
		"bone":  {'%', core.ColorWhite},
		"stone": {'O', core.ColorGray},
		"coin":  {'$', core.ColorBrightYellow},
		"gem":   {'*', core.ColorCyan},
		"chest": {'=', core.ColorOrange},
	}

	kindGlyphs = map[runner.Kind]glyph{
		runner.KindObstacle:    {'X', core.ColorRed},
		runner.KindCollectible: {'o', core.ColorYellow},
	}
)

// Projection maps world pixels onto terminal cells below the HUD.
type Projection struct {
	world core.Vec
	cols  int
	rows  int // Playfield rows, HUD excluded
}

// NewProjection fits the world into a cols x rows terminal.
func NewProjection(world core.Vec, cols, rows int) Projection {
	return Projection{
		world: world,
		cols:  cols,
		rows:  max(rows-hudRows, 1),
	}
}

func (p Projection) col(x float64) float64 {
	if p.world.X <= 0 {
		return 0
	}
	return x * float64(p.cols) / p.world.X
}

func (p Projection) row(y float64) float64 {
	if p.world.Y <= 0 {
		return 0
	}
	return y * float64(p.rows) / p.world.Y
}

// Row returns the terminal row for world y.
func (p Projection) Row(y float64) int {
	return hudRows + int(math.Floor(p.row(y)))
}

// Rect returns the cells covered by b. Anything visible is at least one cell.
func (p Projection) Rect(b core.Box) core.Rect {
	x0 := int(math.Floor(p.col(b.Pos.X)))
	y0 := int(math.Floor(p.row(b.Pos.Y)))
	x1 := int(math.Ceil(p.col(b.Right())))
	y1 := int(math.Ceil(p.row(b.Bottom())))
	return core.NewRect(x0, hudRows+y0, max(x1-x0, 1), max(y1-y0, 1))
}

// DrawSnapshot renders one frame: ground, entities, HUD and phase overlay.
func DrawSnapshot(dst *core.Screen, s runner.Snapshot) {
	dst.Clear()
	proj := NewProjection(s.World, dst.Width(), dst.Height())

	// The player rests with its top edge on GroundY; the floor is under its feet.
	floor := s.GroundY
	player, hasPlayer := s.Player()
	if hasPlayer {
		floor += player.Size.Y
	}
	dst.DrawHLine(0, proj.Row(floor), dst.Width(), groundChar, core.ColorGreen)

	// Entities waiting past the right edge are skipped.
	field := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows)
	for _, kind := range []runner.Kind{runner.KindCollectible, runner.KindObstacle} {
		for _, ent := range s.Entities {
			if ent.Kind != kind {
				continue
			}
			if r := proj.Rect(ent.Box()); r.Intersects(field) {
				g := glyphFor(ent)
				dst.DrawRect(r, g.r, g.c)
			}
		}
	}
	if hasPlayer {
		dst.DrawRect(proj.Rect(player.Box()), playerGlyph.r, playerGlyph.c)
	}

	drawHUD(dst, s.State)

	switch s.Phase {
	case runner.PhaseIdle:
		drawCenteredMessage(dst, "ENDLESS RUNNER", "Press SPACE to start")
	case runner.PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case runner.PhaseOver:
		title := "GAME OVER"
		if s.State.Score > s.State.HighScore {
			title = "NEW HIGH SCORE"
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  Press R to restart", s.State.Score))
	}
}

func glyphFor(ent runner.Entity) glyph {
	if g, ok := variantGlyphs[ent.Variant]; ok {
		return g
	}
	return kindGlyphs[ent.Kind]
}

func drawHUD(dst *core.Screen, st runner.RunState) {
	left := fmt.Sprintf(" SCORE %d  COINS %d  DIST %dm ", st.Score, st.Coins, int(st.Distance/10))
	dst.DrawTextColored(1, 0, left, core.ColorBrightYellow)

	right := fmt.Sprintf(" HI %d  SPD %.1f ", max(st.HighScore, st.Score), st.Speed)
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorGray)
}

func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := core.Clamp((w-boxW)/2, 0, w)
	boxY := core.Clamp((h-boxH)/2, 0, h)

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
