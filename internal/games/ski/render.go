package ski

import (
	"fmt"
	"math"

	"github.com/vovakirdan/ski-arcade/internal/core"
	"github.com/vovakirdan/ski-arcade/internal/games/ski/sim"
)

// Visual characters for rendering
const (
	TreeChar       = '♣'
	HutChar        = '⌂'
	FigureChar     = '☃'
	SpectatorChar  = '☺'
	PoleChar       = '┃'
	BannerChar     = '═'
	EdgeChar       = '│'
	ForestChar     = '░'
	SkierHead      = 'o'
	SkierCrashHead = 'x'
)

// view is the camera framing of one frame: world (x, z) maps to
// column = centerCol + (x - camX)*colsPerM and row = skierRow + (z - camZ)*rowsPerM.
type view struct {
	camX, camZ float64
	centerCol  int
	skierRow   int
	colsPerM   float64
	rowsPerM   float64
	w, h       int
}

func (g *Game) frame(dst *core.Screen, snap sim.Snapshot) view {
	w, h := dst.Width(), dst.Height()
	geo := g.session.Context().Geometry
	v := view{
		camZ:      snap.Position[2],
		centerCol: w / 2,
		w:         w,
		h:         h,
	}
	// Third person shows the whole piste from above the skier; first person
	// zooms in ahead of the skis and follows them sideways.
	if snap.Camera == sim.CameraFirstPerson {
		v.skierRow = 1
		v.camX = snap.Position[0]
		v.colsPerM = float64(w) / 60
		v.rowsPerM = float64(h-2) / 60
	} else {
		v.skierRow = max(3, h/5)
		v.colsPerM = float64(w) / (2 * (geo.PisteHalfWidth + 10))
		v.rowsPerM = float64(h-v.skierRow) / 140
	}
	return v
}

func (v view) project(x, z float64) (col, row int, ok bool) {
	col = v.centerCol + int(math.Round((x-v.camX)*v.colsPerM))
	row = v.skierRow + int(math.Round((z-v.camZ)*v.rowsPerM))
	ok = col >= 0 && col < v.w && row >= 1 && row < v.h-1
	return col, row, ok
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.session.Snapshot()
	v := g.frame(dst, snap)
	ctx := g.session.Context()

	g.drawPiste(dst, v, ctx.Geometry)
	g.drawGates(dst, v, ctx.Course)
	g.drawEntities(dst, v, ctx.Population)
	g.drawSkier(dst, v, snap)
	g.drawHUD(dst, snap)
	if g.debug {
		g.drawDebug(dst, snap)
	}

	switch {
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.Phase == sim.PhaseMenu:
		drawCenteredMessage(dst, "SKI ARCADE", fmt.Sprintf("Best: %d  |  Enter to ski  |  Esc for menu", snap.Best))
	case snap.Phase == sim.PhaseGameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Best: %d  |  Enter or R to restart", snap.Score, snap.Best))
	}
}

func (g *Game) drawPiste(dst *core.Screen, v view, geo sim.Geometry) {
	for row := 1; row < v.h-1; row++ {
		z := v.camZ + float64(row-v.skierRow)/v.rowsPerM
		left, _, _ := v.project(-geo.PisteHalfWidth, z)
		right, _, _ := v.project(geo.PisteHalfWidth, z)
		for col := 0; col < v.w; col++ {
			if col < left || col > right {
				dst.SetColored(col, row, ForestChar, core.ColorGreen)
			}
		}
		dst.SetColored(left, row, EdgeChar, core.ColorGray)
		dst.SetColored(right, row, EdgeChar, core.ColorGray)
	}
}

func (g *Game) drawGates(dst *core.Screen, v view, course *sim.Course) {
	for i := range course.Gates {
		gate := &course.Gates[i]
		col, row, ok := v.project(gate.Position.X, gate.Position.Z)
		if !ok {
			continue
		}
		color := core.ColorGray
		switch gate.Type {
		case sim.GateStart, sim.GateEnd:
			if !gate.Visited {
				color = core.ColorBrightCyan
			}
			label := "START"
			if gate.Type == sim.GateEnd {
				label = "FINISH"
			}
			half := int(12 * v.colsPerM)
			for c := col - half; c <= col+half; c++ {
				dst.SetColored(c, row, BannerChar, color)
			}
			dst.DrawTextColored(col-len(label)/2, row, label, color)
		case sim.GateLeft:
			if !gate.Visited {
				color = core.ColorBrightRed
			}
			// Pass on the left of a red pole.
			dst.SetColored(col, row, PoleChar, color)
			dst.SetColored(col-1, row, '◀', color)
		case sim.GateRight:
			if !gate.Visited {
				color = core.ColorBrightBlue
			}
			dst.SetColored(col, row, PoleChar, color)
			dst.SetColored(col+1, row, '▶', color)
		}
	}
}

func (g *Game) drawEntities(dst *core.Screen, v view, pop *sim.Population) {
	pop.Each(func(e *sim.Entity) {
		if e.Parked {
			return
		}
		col, row, ok := v.project(e.Position.X, e.Position.Z)
		if !ok {
			return
		}
		switch e.Category {
		case sim.CategoryTree:
			dst.SetColored(col, row, TreeChar, core.ColorBrightGreen)
		case sim.CategoryHut:
			dst.SetColored(col, row, HutChar, core.ColorBrown)
		case sim.CategoryDecorative:
			dst.SetColored(col, row, FigureChar, core.ColorBrightWhite)
		case sim.CategorySpectator:
			dst.SetColored(col, row, SpectatorChar, core.ColorYellow)
		}
	})
}

// drawSkier renders the skier with the equipped skin. Each avatar slot gets
// its own cell:
//
//	 o     head
//	/|\    poles, body
//	 Λ     legs
//	‖ ‖    skis
func (g *Game) drawSkier(dst *core.Screen, v view, snap sim.Snapshot) {
	col, row, _ := v.project(snap.Position[0], snap.Position[2])
	colors := g.painter.Paint(g.elapsed)
	head := colors["head"]
	body := colors["body"]
	legs := colors["legs"]

	if snap.Crashed {
		// Sprawled in the snow, tumbling with the crash roll.
		frames := []string{"\\o/", "-x-", "/o\\", "-x-"}
		f := frames[int(snap.CrashProgress*8)%len(frames)]
		dst.DrawTextColored(col-1, row, f, body)
		dst.SetColored(col, row, SkierCrashHead, head)
		dst.DrawTextColored(col-1, row+1, "= =", core.ColorWhite)
		return
	}

	lean := '|'
	switch {
	case snap.Roll > 0.15:
		lean = '\\'
	case snap.Roll < -0.15:
		lean = '/'
	}
	dst.SetColored(col, row-1, SkierHead, head)
	dst.SetColored(col-1, row, '/', core.ColorGray)
	dst.SetColored(col, row, lean, body)
	dst.SetColored(col+1, row, '\\', core.ColorGray)
	dst.SetColored(col, row+1, 'Λ', legs)
	dst.SetColored(col-1, row+2, '‖', core.ColorWhite)
	dst.SetColored(col+1, row+2, '‖', core.ColorWhite)
}

func (g *Game) drawHUD(dst *core.Screen, snap sim.Snapshot) {
	w := dst.Width()
	left := fmt.Sprintf(" Score: %d  Best: %d ", snap.Score, snap.Best)
	dst.DrawTextColored(1, 0, left, core.ColorBrightWhite)
	if snap.BonusPot > 0 {
		dst.DrawTextColored(len(left)+2, 0, fmt.Sprintf(" Bonus: %d ", snap.BonusPot), core.ColorGold)
	}
	right := fmt.Sprintf(" %.0f km/h ", snap.Speed*3.6)
	dst.DrawTextColored(w-len(right)-1, 0, right, core.ColorBrightCyan)

	if g.message != "" {
		dst.DrawTextColored((w-len(g.message))/2, dst.Height()-1, g.message, core.ColorGold)
	}
}

func (g *Game) drawDebug(dst *core.Screen, snap sim.Snapshot) {
	pop := g.session.Context().Population
	lines := []string{
		fmt.Sprintf("fps     %.0f (tick %d)", g.fps, g.runtime.TickRate),
		fmt.Sprintf("speed   %.2f / %.2f", snap.Speed, snap.MaxSpeed),
		fmt.Sprintf("z       %.1f", snap.Position[2]),
		fmt.Sprintf("x       %.2f", snap.Position[0]),
		fmt.Sprintf("steer   %.2f", snap.SteerVelocity),
		fmt.Sprintf("roll    %.2f", snap.Roll),
		fmt.Sprintf("yaw     %.2f", snap.Yaw),
		fmt.Sprintf("camera  %s", snap.Camera),
		fmt.Sprintf("parked  %d", pop.ParkedCount()),
		fmt.Sprintf("phase   %s", snap.Phase),
	}
	for i, line := range lines {
		dst.DrawTextColored(1, 2+i, line, core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
