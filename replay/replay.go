package replay

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"

	"github.com/stride-sim/stride/controller"
	"github.com/stride-sim/stride/game"
	"github.com/stride-sim/stride/internal"
)

// Edge is one recorded discrete input transition.
type Edge struct {
	Kind  controller.EdgeKind
	Phase controller.EdgePhase
}

// Frame is one tick's worth of recorded input: the axes latched when the tick
// ran, the look delta it consumed, and the edges delivered since the previous
// tick in arrival order.
type Frame struct {
	Dt    float32
	Move  mgl32.Vec2
	Look  mgl32.Vec2
	Edges []Edge
}

// Trace is a finished recording: the input frames plus a state checksum taken
// after every tick.
type Trace struct {
	Frames    []Frame
	Checksums []uint64
}

// Recorder drives a controller while capturing every input and tick, so the
// run can be replayed deterministically later. It mirrors the controller's
// input surface and must be used in its place for the whole run.
type Recorder struct {
	c *controller.Controller

	pendingEdges []Edge
	frames       []Frame
	checksums    []uint64
}

// NewRecorder wraps the given controller.
func NewRecorder(c *controller.Controller) *Recorder {
	return &Recorder{c: c}
}

// Controller returns the wrapped controller.
func (r *Recorder) Controller() *controller.Controller {
	return r.c
}

// SetMoveAxes forwards the axes to the controller.
func (r *Recorder) SetMoveAxes(axes mgl32.Vec2) {
	r.c.SetMoveAxes(axes)
}

// SetLookDelta forwards the look delta to the controller.
func (r *Recorder) SetLookDelta(delta mgl32.Vec2) {
	r.c.SetLookDelta(delta)
}

// HandleEdge records the edge and applies it immediately, preserving the
// last-edge-wins, immediate-effect semantics of the controller.
func (r *Recorder) HandleEdge(kind controller.EdgeKind, phase controller.EdgePhase) {
	r.pendingEdges = append(r.pendingEdges, Edge{Kind: kind, Phase: phase})
	r.c.HandleEdge(kind, phase)
}

// Tick snapshots the inputs feeding this tick, advances the controller and
// checksums the resulting state.
func (r *Recorder) Tick(dt float32) controller.TickResult {
	s := r.c.State()
	frame := Frame{
		Dt:    dt,
		Move:  s.MoveInput,
		Look:  s.LookInput,
		Edges: r.pendingEdges,
	}
	r.pendingEdges = nil

	res := r.c.Tick(dt)
	r.frames = append(r.frames, frame)
	r.checksums = append(r.checksums, Checksum(s))
	return res
}

// Trace returns the recording so far.
func (r *Recorder) Trace() Trace {
	return Trace{Frames: r.frames, Checksums: r.checksums}
}

// Checksum hashes a movement state snapshot. Two states with equal checksums
// are bit-identical in every field the controller mutates.
func Checksum(s *controller.MovementState) uint64 {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	writeF32(buf, s.VerticalVel)
	writeF32(buf, s.MoveInput.X())
	writeF32(buf, s.MoveInput.Y())
	writeF32(buf, s.LookInput.X())
	writeF32(buf, s.LookInput.Y())
	writeF32(buf, s.Yaw)
	writeF32(buf, s.Pitch)
	binary.Write(buf, binary.LittleEndian, int32(s.JumpCount))
	writeF32(buf, s.CoyoteTimer)
	writeBool(buf, s.SprintHeld)
	writeBool(buf, s.CrouchHeld)
	writeBool(buf, s.AutoRun)
	writeBool(buf, s.Crouching)
	writeF32(buf, s.Height)
	for i := 0; i < 3; i++ {
		writeF32(buf, s.CenterOffset[i])
	}
	for i := 0; i < 3; i++ {
		writeF32(buf, s.EyeOffset[i])
	}

	return xxh3.Hash(buf.Bytes())
}

func writeF32(buf *bytes.Buffer, v float32) {
	binary.Write(buf, binary.LittleEndian, v)
}

func writeBool(buf *bytes.Buffer, v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	buf.WriteByte(b)
}

// Verify replays the trace onto a freshly built controller and compares state
// checksums tick by tick. It returns the index of the first divergent tick,
// or -1 when the replay matches. A non-nil log receives a report describing
// the divergence.
func Verify(trace Trace, build func() *controller.Controller, log *logrus.Logger) int {
	c := build()
	for i, frame := range trace.Frames {
		// A frame without a checksum cannot be verified; treat the trace as
		// divergent from that tick on.
		if i >= len(trace.Checksums) {
			return i
		}

		c.SetMoveAxes(frame.Move)
		c.SetLookDelta(frame.Look)
		for _, edge := range frame.Edges {
			c.HandleEdge(edge.Kind, edge.Phase)
		}
		c.Tick(frame.Dt)

		if sum := Checksum(c.State()); sum != trace.Checksums[i] {
			if log != nil {
				s := c.State()
				data := orderedmap.NewOrderedMap[string, any]()
				data.Set("tick", i)
				data.Set("expected", trace.Checksums[i])
				data.Set("got", sum)
				data.Set("edges", frame.Edges)
				data.Set("verticalVel", game.Round32(s.VerticalVel, 4))
				data.Set("yaw", game.Round32(s.Yaw, 4))
				data.Set("pitch", game.Round32(s.Pitch, 4))
				data.Set("jumpCount", s.JumpCount)
				data.Set("coyoteTimer", game.Round32(s.CoyoteTimer, 4))
				data.Set("height", game.Round32(s.Height, 4))
				log.Warnf("replay diverged: %s", prettyParameters(data))
			}
			return i
		}
	}
	return -1
}

// prettyParameters converts ordered divergence metadata into a readable string.
func prettyParameters(data *orderedmap.OrderedMap[string, any]) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, key := 0, data.Front(); key != nil; i, key = i+1, key.Next() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key.Key)
		sb.WriteString("=")
		sb.WriteString(fmt.Sprintf("%v", key.Value))
	}
	sb.WriteByte(']')
	return sb.String()
}
