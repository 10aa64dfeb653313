package arbor

import (
	"math"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween moves an Element to a target position over time. Call Update(dt)
// each frame. Every step goes through SetPosition, so pointer focus follows
// the moving element. If the target element is destroyed, the tween stops
// immediately.
//
// There is no global animation manager; users call Update themselves.
type Tween struct {
	x, y   *gween.Tween
	target *Element
	Done   bool
}

// TweenPosition creates a Tween that moves e to (toX, toY) over duration
// using the easing function (linear when nil).
func TweenPosition(e *Element, toX, toY int, duration float32, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	fromX, fromY := e.Position()
	return &Tween{
		x:      gween.New(float32(fromX), float32(toX), duration, fn),
		y:      gween.New(float32(fromY), float32(toY), duration, fn),
		target: e,
	}
}

// Target returns the animated element.
func (t *Tween) Target() *Element {
	return t.target
}

// Update advances the tween by dt and moves the target. If the target has
// been destroyed, Done is set and nothing is moved.
func (t *Tween) Update(dt float32) {
	if t.Done {
		return
	}
	if t.target.IsDestroyed() {
		t.Done = true
		return
	}

	x, doneX := t.x.Update(dt)
	y, doneY := t.y.Update(dt)
	t.target.SetPosition(int(math.Round(float64(x))), int(math.Round(float64(y))))
	t.Done = doneX && doneY
}

// easings maps script names to easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"outbounce":    ease.OutBounce,
	"outelastic":   ease.OutElastic,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"inoutelastic": ease.InOutElastic,
}

// EaseByName returns the easing function for a name such as "outQuad" or
// "in-out-cubic". Case, dashes and underscores are ignored. The empty name
// selects linear.
func EaseByName(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return ease.Linear, true
	}
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(name))
	fn, ok := easings[key]
	return fn, ok
}
