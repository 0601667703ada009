// Package particle owns the fixed-capacity arena of animated glyphs and sprites
package particle

import (
	"github.com/lixenwraith/weathr/scene"
	"github.com/lixenwraith/weathr/terminal"
)

// Particle is one animated glyph or sprite
// Positions are sub-cell; rendering truncates to the grid
type Particle struct {
	Row, Col   float64
	VRow, VCol float64

	Glyph rune
	// Shape is set for multi-cell sprites; spaces are transparent
	Shape []string
	Color terminal.RGB

	// TTL is the remaining lifetime in ticks
	TTL float64
	// Phase drives sway and animation frames
	Phase float64
	// Rate scales the oscillation: sway amplitude for smoke, glow speed for fireflies
	Rate    float64
	Bounced bool

	Kind  scene.ParticleKind
	Layer int
}

// Width returns the sprite column span, 1 for single glyphs
func (p *Particle) Width() int {
	if len(p.Shape) == 0 {
		return 1
	}
	w := 0
	for _, line := range p.Shape {
		w = max(w, len([]rune(line)))
	}
	return w
}
