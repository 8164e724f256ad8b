package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gazetris/control"
	"github.com/plus3/gazetris/ecs"
	"github.com/plus3/gazetris/ecs/debugui"
	"github.com/plus3/gazetris/remote"
	"github.com/plus3/gazetris/session"
	"github.com/plus3/gazetris/tetris"
)

// gamePanel shows the session resources. It reads storage directly since
// it renders while the session is mid-frame.
func gamePanel(storage *ecs.Storage, bus *control.Bus, hub *remote.Hub) debugui.ImguiItem {
	game := ecs.NewSingleton[session.Game](storage)
	queue := ecs.NewSingleton[session.ActionQueue](storage)
	gravity := ecs.NewSingleton[session.GravityTimer](storage)
	clearTimer := ecs.NewSingleton[session.ClearTimer](storage)
	view := ecs.NewSingleton[session.View](storage)

	return debugui.ImguiItem{
		Name: "Game",
		Render: func(cmds *ecs.Commands) {
			if !imgui.BeginV("Game", nil, imgui.WindowFlagsNone) {
				imgui.End()
				return
			}

			g := game.Get()
			snap := view.Get().Snapshot
			imgui.Text(fmt.Sprintf("Phase: %s", g.State.Phase()))
			imgui.Text(fmt.Sprintf("Score: %d  Lines: %d  Level: %d", g.State.Score, g.State.Lines, snap.Level))
			imgui.Text(fmt.Sprintf("Generation: %d  Pieces: %d", g.Generation, g.Pieces))
			imgui.Text(fmt.Sprintf("Soft drop: %t", g.State.SoftDrop))
			if p := g.State.Piece; p != nil {
				imgui.Text(fmt.Sprintf("Piece: (%d,%d) rot %d", p.X, p.Y, p.Rotation))
			}
			if pending := g.State.Pending; pending != nil {
				imgui.Text(fmt.Sprintf("Clearing rows: %v", pending.Rows))
			}

			imgui.Separator()
			imgui.Text(fmt.Sprintf("Queued actions: %d", queue.Get().Len()))
			imgui.Text(fmt.Sprintf("Gravity: %s", gravity.Get().Elapsed))
			imgui.Text(fmt.Sprintf("Clear delay: %s", clearTimer.Get().Elapsed))
			imgui.Text(fmt.Sprintf("Bus: %d published, %d dropped", bus.Published(), bus.Dropped()))
			imgui.Text(fmt.Sprintf("Remote clients: %d", hub.Clients()))

			imgui.Separator()
			if imgui.Button("Reset") {
				cmds.AddSingleton(session.NewActionQueue(tetris.Do(tetris.ActionReset)))
			}
			imgui.SameLine()
			if imgui.Button("Game over") {
				queue.Get().Push(tetris.Do(tetris.ActionMarkGameOver))
			}

			imgui.End()
		},
	}
}
