package carpet

import (
	"fmt"
	"math"

	"github.com/vovakirdan/carpetrun/internal/core"
)

// Visual characters for rendering
const (
	RiderChar    = '▓'
	HeadChar     = '☻'
	CarpetChar   = '▀'
	FringeChar   = '~'
	BuildingChar = '▒'
	DomeChar     = '▲'
)

// spinFrames are indexed by obstacle rotation in 45 degree steps.
var spinFrames = [...]rune{'|', '/', '─', '\\'}

// hudRows is the number of rows reserved above the playfield.
const hudRows = 1

// skylineBlock is the width of one backdrop building in world pixels.
const skylineBlock = 60.0

// viewport maps world pixels to screen cells.
type viewport struct {
	top    int
	width  int
	height int
	sx, sy float64
}

func newViewport(dst *core.Screen, p Params) viewport {
	h := max(dst.Height()-hudRows, 1)
	w := max(dst.Width(), 1)
	return viewport{
		top:    hudRows,
		width:  w,
		height: h,
		sx:     float64(w) / p.GameWidth,
		sy:     float64(h) / p.GameHeight,
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return v.top + int(math.Floor(y*v.sy)) }

// span converts a world length into a cell count of at least one.
func (v viewport) span(length, scale float64) int {
	return max(int(math.Round(length*scale)), 1)
}

// Render draws the current session to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	vp := newViewport(dst, g.params)

	g.drawSkyline(dst, vp)
	for _, o := range g.session.Obstacles {
		drawObstacle(dst, vp, o)
	}
	drawCarpet(dst, vp, g.session.Player)
	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.session.GameOver {
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Final Score: %d  |  Press R to play again", g.session.Score))
	}
}

// drawSkyline draws the city backdrop, scrolled left by one world pixel per point.
func (g *Game) drawSkyline(dst *core.Screen, vp viewport) {
	maxHeight := max(vp.height/4, 1)
	bottom := vp.top + vp.height - 1

	for x := 0; x < vp.width; x++ {
		worldX := float64(x)/vp.sx + float64(g.session.Score)
		block := uint32(worldX / skylineBlock)
		h := int(hashBlock(block)%uint32(maxHeight)) + 1

		for dy := 0; dy < h; dy++ {
			dst.SetColored(x, bottom-dy, BuildingChar, core.ColorGray)
		}
		// Every fourth building gets a dome over its middle column.
		blockStart := float64(block) * skylineBlock
		if hashBlock(block)%4 == 0 && int((worldX-blockStart)*vp.sx) == int(skylineBlock*vp.sx/2) {
			dst.SetColored(x, bottom-h, DomeChar, core.ColorYellow)
		}
	}
}

// hashBlock is a small integer hash giving each skyline block a stable height.
func hashBlock(b uint32) uint32 {
	b ^= b >> 16
	b *= 0x7feb352d
	b ^= b >> 15
	b *= 0x846ca68b
	b ^= b >> 16
	return b
}

func drawObstacle(dst *core.Screen, vp viewport, o Obstacle) {
	frame := spinFrames[spinIndex(o.Rotation)]
	w := vp.span(o.Size, vp.sx)
	h := vp.span(o.Size, vp.sy)
	x0, y0 := vp.col(o.X), vp.row(o.Y)

	bounds := core.NewRect(0, 0, dst.Width(), dst.Height())
	if !core.NewRect(x0, y0, w, h).Intersects(bounds) {
		return
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			dst.SetColored(x0+dx, y0+dy, frame, core.ColorOrange)
		}
	}
}

// spinIndex maps a rotation in degrees onto spinFrames.
func spinIndex(rotation float64) int {
	i := int(math.Floor(rotation/45)) % len(spinFrames)
	if i < 0 {
		i += len(spinFrames)
	}
	return i
}

// drawCarpet draws the rider on the upper two thirds and the carpet below.
func drawCarpet(dst *core.Screen, vp viewport, p Player) {
	w := vp.span(p.Size, vp.sx)
	h := vp.span(p.Size, vp.sy)
	x0, y0 := vp.col(p.X), vp.row(p.Y)

	riderRows := max(h*2/3, 1)
	if h == 1 {
		riderRows = 0
	}
	for dy := 0; dy < riderRows; dy++ {
		for dx := 1; dx < w-1; dx++ {
			dst.SetColored(x0+dx, y0+dy, RiderChar, core.ColorCyan)
		}
	}
	if riderRows > 0 {
		dst.SetColored(x0+w/2, y0, HeadChar, core.ColorBrightYellow)
	}

	carpetY := y0 + riderRows
	for dy := 0; carpetY+dy < y0+h; dy++ {
		dst.DrawHLine(x0, carpetY+dy, w, CarpetChar, core.ColorBrightMagenta)
	}
	dst.SetColored(x0-1, carpetY, FringeChar, core.ColorMagenta)
	dst.SetColored(x0+w, carpetY, FringeChar, core.ColorMagenta)
}

func (g *Game) drawHUD(dst *core.Screen) {
	score := fmt.Sprintf(" Score: %d ", g.session.Score)
	dst.DrawTextColored(2, 0, score, core.ColorBrightYellow)

	speed := fmt.Sprintf(" Spd: %.2f ", g.session.Speed)
	dst.DrawTextColored(dst.Width()-len(speed)-2, 0, speed, core.ColorWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	x := core.Clamp((dst.Width()-boxW)/2, 0, max(dst.Width()-1, 0))
	y := core.Clamp((dst.Height()-boxH)/2, 0, max(dst.Height()-1, 0))
	box := core.NewRect(x, y, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightMagenta)

	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle)
}
