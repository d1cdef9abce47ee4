package mantle

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MorphAnimator drives the globe-to-flat blend parameter. 0 is the globe, 1
// the flat map; the value feeds terrain.TileTransformation.Interpolate.
type MorphAnimator struct {
	t     float32
	tween *gween.Tween
}

// NewMorphAnimator starts on the globe.
func NewMorphAnimator() *MorphAnimator {
	return &MorphAnimator{}
}

// T is the current blend parameter in [0,1].
func (m *MorphAnimator) T() float64 {
	return float64(m.t)
}

// Set jumps to a blend value immediately, cancelling any running animation.
func (m *MorphAnimator) Set(t float64) {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	m.t = float32(t)
	m.tween = nil
}

// MorphTo animates toward the target blend over the duration, in seconds.
func (m *MorphAnimator) MorphTo(target float64, duration float32, fn ease.TweenFunc) {
	if target < 0 {
		target = 0
	} else if target > 1 {
		target = 1
	}
	if fn == nil {
		fn = ease.InOutQuad
	}
	m.tween = gween.New(m.t, float32(target), duration, fn)
}

// Animating reports whether a morph is in progress.
func (m *MorphAnimator) Animating() bool {
	return m.tween != nil
}

// Update advances the animation by the frame delta.
func (m *MorphAnimator) Update(dt time.Duration) {
	if m.tween == nil {
		return
	}
	v, done := m.tween.Update(float32(dt.Seconds()))
	m.t = v
	if done {
		m.tween = nil
	}
}
