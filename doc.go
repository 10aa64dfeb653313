// Package arbor is the event-routing and composition core of a retained-mode
// UI toolkit, as used underneath a window manager.
//
// Arbor provides the element model, the container composite, hit testing,
// pointer focus, left-button gesture capture, modal pointer grabs and
// keyboard-focus propagation across an arbitrarily nested tree. Concrete
// widgets are thin leaves built on [Element]; the presentation tree they draw
// into lives in the scene subpackage.
//
// # Quick start
//
// Create a [Root], add elements, and feed it input:
//
//	tree := scene.NewRoot()
//	root := arbor.NewRoot(tree, arbor.RootConfig{})
//
//	box := arbor.NewElement("box")
//	box.Extend(arbor.Handlers{
//		Bounds: func() arbor.Box { return arbor.Box{Right: 80, Bottom: 40} },
//	})
//	box.OnPointerEnter = func(arbor.PointerMotionEvent) { fmt.Println("enter") }
//	root.AddFront(box)
//
//	root.PointerMotion(10, 10, 0, 0) // prints "enter"
//
// # Elements
//
// Every operation of an [Element] goes through its [Handlers] table. A
// concrete kind embeds Element, calls [Element.Init] and replaces the
// operations it changes with [Element.Extend], which returns the previous
// table so an override can delegate to what it replaced:
//
//	type button struct {
//		arbor.Element
//		orig arbor.Handlers
//	}
//
//	b.Init("ok")
//	b.orig = b.Extend(arbor.Handlers{PointerButton: b.handleButton})
//
// # Containers
//
// A [Container] owns an ordered list of children, topmost first. It routes
// motion front to back to the first visible child whose pointer area contains
// the position and that accepts it; that child holds pointer focus until
// another one does. The previous holder receives a motion with non-finite
// coordinates ([LeaveEvent]), from which [Element.OnPointerLeave] is derived.
//
// A left-button DOWN accepted by the focus holder captures the gesture: UP
// goes to the same child wherever the pointer is, CLICK only while the
// pointer is back over it. [Container.PointerGrab] redirects all pointer
// input in the container and every ancestor to one child until released or
// cancelled. [Container.SetKeyboardFocus] records the focused child and
// makes each ancestor point at the path towards it.
//
// Event handlers may add, remove or destroy elements while being dispatched.
// When a motion handler changes the tree so that pointer focus is recomputed,
// that recomputation decides the holder; the interrupted scan does not
// continue.
//
// # Input
//
// [Root] accepts device-level input: [Root.PointerMotion],
// [Root.PointerButton] (press and release, turned into DOWN, UP, CLICK and
// DOUBLE_CLICK), [Root.PointerAxis] and [Root.KeyboardEvent]. Synthetic input
// can be queued with [Root.InjectClick], [Root.InjectDrag] and friends, or
// scripted with [LoadScript].
//
// # Animation
//
// [TweenPosition] moves an element over time using [gween] easing. Pointer
// focus follows the moving element.
//
// [gween]: https://github.com/tanema/gween
package arbor
