package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/gazetris/control"
	"github.com/plus3/gazetris/tetris"
)

const (
	screenWidth  = 480
	screenHeight = 720
	cellSize     = 28
	boardX       = 24
	boardY       = 24
	sidebarX     = boardX + 10*cellSize + 16
	padY         = boardY + 20*cellSize + 20
	padHeight    = 80
)

var (
	background   = color.RGBA{18, 18, 24, 255}
	gridColor    = color.RGBA{40, 40, 52, 255}
	frameColor   = color.RGBA{120, 120, 140, 255}
	lineColor    = color.RGBA{229, 72, 77, 160}
	ghostColor   = color.RGBA{255, 255, 255, 60}
	clearColor   = color.RGBA{255, 255, 255, 255}
	buttonColor  = color.RGBA{50, 50, 66, 255}
	pressedColor = color.RGBA{90, 90, 120, 255}

	palette = map[tetris.Color]color.RGBA{
		tetris.ColorPrimary: {79, 140, 255, 255},
		tetris.ColorAccent:  {255, 179, 71, 255},
		tetris.ColorError:   {229, 72, 77, 255},
	}
)

func padArea() control.Rect {
	return control.Rect{X: boardX, Y: padY, W: screenWidth - 2*boardX, H: padHeight}
}

func blockColor(b tetris.Block) color.Color {
	if b.Clearing {
		return clearColor
	}
	if c, ok := palette[b.Color]; ok {
		return c
	}
	return frameColor
}

func drawCell(screen *ebiten.Image, x, y int, c color.Color) {
	sx := float32(boardX + x*cellSize)
	sy := float32(boardY + y*cellSize)
	vector.DrawFilledRect(screen, sx+1, sy+1, cellSize-2, cellSize-2, c, false)
}

func drawBoard(screen *ebiten.Image, snap tetris.Snapshot) {
	w := float32(snap.Width * cellSize)
	h := float32(snap.Height * cellSize)

	for y := range snap.Height {
		for x := range snap.Width {
			sx := float32(boardX + x*cellSize)
			sy := float32(boardY + y*cellSize)
			vector.StrokeRect(screen, sx, sy, cellSize, cellSize, 1, gridColor, false)
		}
	}
	vector.StrokeRect(screen, boardX-2, boardY-2, w+4, h+4, 2, frameColor, false)

	lineY := float32(boardY + snap.GameOverLine*cellSize)
	vector.StrokeLine(screen, boardX, lineY, boardX+w, lineY, 2, lineColor, false)

	for _, b := range snap.Ghost {
		drawCell(screen, b.X, b.Y, ghostColor)
	}
	for _, b := range snap.Board {
		drawCell(screen, b.X, b.Y, blockColor(b))
	}
	for _, b := range snap.Piece {
		drawCell(screen, b.X, b.Y, blockColor(b))
	}
}

func drawHUD(screen *ebiten.Image, snap tetris.Snapshot, clients int) {
	lines := []string{
		"SCORE", fmt.Sprintf("%d", snap.Score), "",
		"LEVEL", fmt.Sprintf("%d", snap.Level), "",
		"LINES", fmt.Sprintf("%d", snap.Lines), "",
		snap.Phase.String(),
	}
	if clients > 0 {
		lines = append(lines, "", fmt.Sprintf("remote: %d", clients))
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, sidebarX, boardY+i*16)
	}

	if snap.GameOver {
		cx := boardX + snap.Width*cellSize/2
		cy := boardY + snap.Height*cellSize/2
		vector.DrawFilledRect(screen, boardX, float32(cy-24), float32(snap.Width*cellSize), 56, color.RGBA{0, 0, 0, 200}, false)
		ebitenutil.DebugPrintAt(screen, "GAME OVER", cx-27, cy-12)
		ebitenutil.DebugPrintAt(screen, "Press R to restart", cx-54, cy+8)
	}
}

func drawPad(screen *ebiten.Image, pad *control.TouchPad) {
	for _, pb := range pad.Buttons() {
		c := buttonColor
		if pad.Held(pb.Button) {
			c = pressedColor
		}
		r := pb.Bounds
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, frameColor, false)
		ebitenutil.DebugPrintAt(screen, pb.Button.Label(), int(r.X+r.W/2)-3, int(r.Y+r.H/2)-8)
	}
}
