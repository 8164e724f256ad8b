package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gazetris/ecs"
)

// DefaultHistoryFrames is how many frame times the performance panel plots.
const DefaultHistoryFrames = 120

// PerformanceStats is a ring of recent frame times in milliseconds.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

func NewPerformanceStats(historyFrames int) PerformanceStats {
	if historyFrames <= 0 {
		historyFrames = DefaultHistoryFrames
	}
	return PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds one frame time.
func (ps *PerformanceStats) Record(dt time.Duration) {
	ps.frameHistory[ps.frameIndex] = float32(dt.Seconds() * 1000)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.recorded = min(ps.recorded+1, ps.historyFrames)
}

// Average is the mean of the recorded frame times.
func (ps *PerformanceStats) Average() time.Duration {
	if ps.recorded == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	ms := total / float32(ps.recorded)
	return time.Duration(float64(ms) * float64(time.Millisecond))
}

// History returns frame times oldest first.
func (ps *PerformanceStats) History() []float32 {
	out := make([]float32, 0, ps.recorded)
	start := (ps.frameIndex - ps.recorded + ps.historyFrames) % ps.historyFrames
	for i := range ps.recorded {
		out = append(out, ps.frameHistory[(start+i)%ps.historyFrames])
	}
	return out
}

// PerformanceSystem records each frame's delta into PerformanceStats.
type PerformanceSystem struct {
	Stats ecs.Singleton[PerformanceStats]
}

func (p *PerformanceSystem) Execute(frame *ecs.UpdateFrame) {
	if stats := p.Stats.Get(); stats != nil {
		stats.Record(frame.DeltaTime)
	}
}

// SchedulerPanel shows frame times, per-system timings from stats and the
// resources held in storage.
func SchedulerPanel(storage *ecs.Storage, stats func() *ecs.SchedulerStats) ImguiItem {
	perf := ecs.NewSingleton[PerformanceStats](storage)
	return ImguiItem{
		Name: "Scheduler",
		Render: func(cmds *ecs.Commands) {
			renderScheduler(cmds, perf.Get(), storage.CollectStats(), stats())
		},
	}
}

func renderScheduler(cmds *ecs.Commands, perf *PerformanceStats, storageStats ecs.StorageStats, stats *ecs.SchedulerStats) {
	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Frames: %d", stats.FrameCount))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))
	imgui.Text(fmt.Sprintf("Resources: %d", storageStats.SingletonCount))

	if perf != nil {
		avg := perf.Average()
		fps := 0.0
		if avg > 0 {
			fps = float64(time.Second) / float64(avg)
		}
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", float64(avg)/float64(time.Millisecond), fps))

		imgui.Separator()
		imgui.Text("Frame Time Graph (ms)")
		if history := perf.History(); len(history) > 0 {
			imgui.PlotLinesFloatPtr("##frametime", &history[0], int32(len(history)))
		}
		if imgui.Button("Reset history") {
			cmds.AddSingleton(NewPerformanceStats(perf.historyFrames))
		}
	}

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Resources") {
		for _, name := range storageStats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}
