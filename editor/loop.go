package editor

import "fmt"

// FrameGate paces the update loop. With vsync on a frame is skipped
// entirely until 1000/Hz milliseconds have passed since the last one.
type FrameGate struct {
	Vsync bool
	Hz    int

	started bool
	last    float64
	frames  uint64

	// per-second counters for the title
	windowStart float64
	windowCount int
	fps         int
}

func NewFrameGate(vsync bool, hz int) *FrameGate {
	return &FrameGate{Vsync: vsync, Hz: max(hz, 1)}
}

// Tick reports whether a frame should run at time now (milliseconds) and
// the milliseconds elapsed since the previous frame that ran. The first
// tick always runs with a zero delta.
func (g *FrameGate) Tick(now float64) (dt float64, ok bool) {
	if !g.started {
		g.started = true
		g.last, g.windowStart = now, now
		g.count(now)
		return 0, true
	}
	dt = now - g.last
	if g.Vsync && dt < 1000/float64(g.Hz) {
		return dt, false
	}
	g.last = now
	g.count(now)
	return dt, true
}

func (g *FrameGate) count(now float64) {
	g.frames++
	g.windowCount++
	if now-g.windowStart >= 1000 {
		g.fps = g.windowCount
		g.windowCount = 0
		g.windowStart = now
	}
}

// Frames is the number of frames that have run.
func (g *FrameGate) Frames() uint64 { return g.frames }

// FPS is the frame count of the last full second.
func (g *FrameGate) FPS() int { return g.fps }

func (g *FrameGate) ToggleVsync() bool {
	g.Vsync = !g.Vsync
	return g.Vsync
}

func (g *FrameGate) String() string {
	vsync := "off"
	if g.Vsync {
		vsync = "on"
	}
	return fmt.Sprintf("%d fps, vsync %s", g.fps, vsync)
}
