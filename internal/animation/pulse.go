// Package animation drives the per-frame uniform values.
package animation

import "github.com/go-gl/mathgl/mgl32"

const DefaultStep = 0.05

// Pulse bounces a value between 0 and 1 by a fixed step per frame.
// The direction only flips once the value has left the range, so it can
// overshoot either bound by at most one step.
type Pulse struct {
	Value  float32
	Paused bool

	step      float32
	increment float32
}

// NewPulse creates a pulse starting at start and rising by step
func NewPulse(start, step float32) *Pulse {
	if step < 0 {
		step = -step
	}
	return &Pulse{Value: start, step: step, increment: step}
}

// Increment returns the signed step applied on the next frame
func (p *Pulse) Increment() float32 {
	return p.increment
}

// Step advances the pulse by one frame
func (p *Pulse) Step() {
	if p.Paused {
		return
	}
	if p.Value > 1 {
		p.increment = -p.step
	} else if p.Value < 0 {
		p.increment = p.step
	}
	p.Value += p.increment
}

// TogglePause flips the paused state and returns the new one
func (p *Pulse) TogglePause() bool {
	p.Paused = !p.Paused
	return p.Paused
}

// ColorPulse animates a single channel of an RGBA color
type ColorPulse struct {
	Base    mgl32.Vec4
	Channel int
	Pulse   *Pulse
}

// NewColorPulse animates channel of base, starting that channel at start
func NewColorPulse(base mgl32.Vec4, channel int, start, step float32) *ColorPulse {
	if channel < 0 || channel > 3 {
		channel = 0
	}
	return &ColorPulse{Base: base, Channel: channel, Pulse: NewPulse(start, step)}
}

// Color returns the base color with the animated channel applied
func (c *ColorPulse) Color() mgl32.Vec4 {
	col := c.Base
	col[c.Channel] = c.Pulse.Value
	return col
}

// Step advances the animated channel by one frame
func (c *ColorPulse) Step() {
	c.Pulse.Step()
}
