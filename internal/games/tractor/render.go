package tractor

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tractor-plow/internal/core"
)

const (
	hudHeight = 2 // status line and separator
	cellWidth = 2 // terminal columns per tile
)

type glyph struct {
	text  string
	color core.Color
}

var tileGlyphs = map[Tile]glyph{
	TileBorder:   {"██", core.ColorGray},
	TileUnplowed: {"··", core.ColorGreen},
	TileMud:      {"~~", core.ColorBrown},
	TileHard:     {"▒▒", core.ColorOlive},
	TilePlowed:   {"==", core.ColorDarkBrown},
}

var obstacleGlyphs = map[ObstacleKind]glyph{
	ObstacleStone: {"()", core.ColorWhite},
	ObstacleTree:  {"TT", core.ColorBrightGreen},
}

var powerUpGlyphs = map[PowerUpKind]glyph{
	PowerUpSpeedBoost:   {"»»", core.ColorBrightCyan},
	PowerUpDoublePoints: {"$$", core.ColorBrightYellow},
	PowerUpTimeBonus:    {"++", core.ColorBrightGreen},
}

var tractorGlyphs = map[Heading]string{
	HeadingEast:  "▶ ",
	HeadingSouth: "▼ ",
	HeadingWest:  "◀ ",
	HeadingNorth: "▲ ",
}

// dimmed returns the night-time version of a color.
func dimmed(c core.Color) core.Color {
	switch c {
	case core.ColorGreen, core.ColorBrightGreen:
		return core.ColorOlive
	case core.ColorBrown, core.ColorOlive:
		return core.ColorDarkBrown
	case core.ColorWhite, core.ColorGray:
		return core.ColorDarkGray
	}
	return c
}

func (g *Game) requiredSize() (w, h int) {
	rows, cols := g.cfg.Field.Dimensions()
	return cols * cellWidth, rows + hudHeight
}

func (g *Game) tooSmall() bool {
	w, h := g.requiredSize()
	return g.screenW < w || g.screenH < h
}

// Render draws the last snapshot. It never touches the simulation.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.initErr != nil {
		g.renderOverlay(dst, core.ColorBrightRed, "Cannot start game", g.initErr.Error(), "Q to quit")
		return
	}
	if g.snap.Field == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall() {
		w, h := g.requiredSize()
		g.renderOverlay(dst, core.ColorYellow, "Window too small", fmt.Sprintf("Need %dx%d, resize to continue", w, h))
		return
	}

	g.renderField(dst)

	switch {
	case g.snap.Ended():
		g.renderOverlay(dst, core.ColorBrightWhite,
			"Game Over: "+g.snap.Reason.String(),
			fmt.Sprintf("Final score %d  (score %d + time bonus)", g.snap.FinalScore, g.snap.State.Score),
			fmt.Sprintf("Time %ds  Plowed %d%%", g.snap.ElapsedSeconds, g.snap.ProgressPercent),
			"R to restart, Q to quit")
	case g.paused:
		g.renderOverlay(dst, core.ColorBrightWhite, "Paused", "Press P to continue")
	}
}

// renderHUD draws the status line and separator.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.snap
	var b strings.Builder
	fmt.Fprintf(&b, " Score: %d  Time: %ds  Plowed: %d%%  %s / %s",
		s.State.Score, s.ElapsedSeconds, s.ProgressPercent, s.WeatherLabel, s.TimeOfDayLabel)
	dst.DrawTextColor(0, 0, b.String(), core.ColorBrightWhite)

	x := len([]rune(b.String())) + 2
	if s.SpeedBoost {
		label := fmt.Sprintf("[BOOST %.0fs]", s.SpeedBoostLeft.Seconds())
		dst.DrawTextColor(x, 0, label, core.ColorBrightCyan)
		x += len(label) + 1
	}
	if s.DoublePoints {
		dst.DrawTextColor(x, 0, fmt.Sprintf("[x2 %.0fs]", s.DoublePointsLeft.Seconds()), core.ColorBrightYellow)
	}

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderField draws tiles, trail, obstacles, power-ups and the tractor.
func (g *Game) renderField(dst *core.Screen) {
	s := g.snap
	f := s.Field
	offX := (dst.Width() - f.Cols()*cellWidth) / 2
	night := s.State.TimeOfDay == Night
	rainy := s.State.Weather == WeatherRainy

	draw := func(p Pos, gl glyph) {
		c := gl.color
		if night {
			c = dimmed(c)
		}
		dst.DrawTextColor(offX+p.Col*cellWidth, hudHeight+p.Row, gl.text, c)
	}

	for r := 0; r < f.Rows(); r++ {
		for c := 0; c < f.Cols(); c++ {
			p := Pos{Row: r, Col: c}
			gl, ok := tileGlyphs[f.TileAt(p)]
			if !ok {
				continue
			}
			if rainy && f.IsInterior(p) && (r*7+c*3+int(s.Tick/8))%11 == 0 {
				gl = glyph{"' ", core.ColorBlue}
			}
			draw(p, gl)
		}
	}
	for _, p := range s.Track {
		if f.TileAt(p) == TilePlowed {
			draw(p, glyph{"::", core.ColorOrange})
		}
	}
	for _, o := range s.Obstacles {
		draw(o.Pos, obstacleGlyphs[o.Kind])
	}
	for _, pu := range s.PowerUps {
		draw(pu.Pos, powerUpGlyphs[pu.Kind])
	}
	draw(s.Tractor.Pos, glyph{tractorGlyphs[s.Tractor.Heading], core.ColorBrightYellow})
}

// renderOverlay draws a centered box with one line of text per row.
func (g *Game) renderOverlay(dst *core.Screen, color core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := dst.Bounds().Centered(width+4, len(lines)+4)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+2+i, l, color)
	}
}
