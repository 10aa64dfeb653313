package arbor

import (
	"github.com/phanxgames/arbor/scene"
)

// --- ID counter ---

// elementIDCounter is a plain counter; arbor runs on a single goroutine.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// --- Capability table ---

// Handlers is the capability table of an Element. Every operation of an
// element dispatches through it. Concrete kinds replace the operations they
// change with Extend and keep the rest.
type Handlers struct {
	// CreateSceneNode creates the element's backing node as a child of
	// parent. Returning nil means the element has no visual representation.
	CreateSceneNode func(parent *scene.Tree) *scene.Node

	// Bounds returns the element's extents, relative to its position.
	Bounds func() Box

	// PointerArea returns the area accepting pointer activity, relative to
	// the position. May differ from Bounds (eg. to ease grabbing an edge).
	PointerArea func() Box

	// PointerMotion reports a pointer position in element coordinates and
	// returns whether the element takes pointer focus there. Overrides should
	// call the implementation they replaced to keep LastPointerMotion current.
	PointerMotion func(ev PointerMotionEvent) bool

	// PointerButton returns whether the button event was consumed.
	PointerButton func(ev ButtonEvent) bool

	// PointerAxis returns whether the axis event was consumed.
	PointerAxis func(ev AxisEvent) bool

	// PointerGrabCancel cancels a held pointer grab. Required for any element
	// requesting a grab through Container.PointerGrab. Must be idempotent.
	PointerGrabCancel func()

	// KeyboardBlur removes keyboard focus from the element.
	KeyboardBlur func()

	// KeyboardEvent returns whether the key event was consumed.
	KeyboardEvent func(ev KeyEvent) bool

	// Destroy releases the element. Implementations must end in Fini.
	Destroy func()
}

// --- Element ---

// Element is the smallest unit of the UI tree. It has a position in its
// parent's coordinate space, a visibility flag, and a capability table. It
// holds no children; see Container.
type Element struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy. parent is non-owning; prev/next link the element into the
	// parent's z-order and belong to the parent.
	parent     *Container
	prev, next *Element
	container  *Container // set when this element is a Container's own

	x, y    int
	visible bool

	handlers Handlers

	// Presentation
	sceneNode     *scene.Node
	sceneListener scene.ListenerHandle

	lastMotion    PointerMotionEvent
	pointerInside bool

	// Metadata
	UserData any

	// Per-element notifications (nil by default).
	OnPointerEnter func(ev PointerMotionEvent)
	OnPointerLeave func()

	destroyed bool
}

// NewElement creates a visible element with the default capability table.
func NewElement(name string) *Element {
	e := &Element{}
	e.Init(name)
	return e
}

// Init initializes an element embedded in a concrete kind.
func (e *Element) Init(name string) {
	*e = Element{
		ID:         nextElementID(),
		Name:       name,
		visible:    true,
		lastMotion: LeaveEvent(0, 0),
	}
	e.handlers = e.defaultHandlers()
}

func (e *Element) defaultHandlers() Handlers {
	return Handlers{
		CreateSceneNode: func(*scene.Tree) *scene.Node { return nil },
		Bounds:          func() Box { return Box{} },
		PointerArea:     func() Box { return e.handlers.Bounds() },
		PointerMotion: func(ev PointerMotionEvent) bool {
			e.lastMotion = ev
			return e.handlers.PointerArea().Contains(ev.X, ev.Y)
		},
		PointerButton: func(ButtonEvent) bool { return false },
		PointerAxis:   func(AxisEvent) bool { return false },
		KeyboardBlur:  func() {},
		KeyboardEvent: func(KeyEvent) bool { return false },
		Destroy:       e.Fini,
	}
}

// Extend installs the non-nil operations of h and returns the table that was
// in place before, so overrides can delegate to what they replaced.
func (e *Element) Extend(h Handlers) Handlers {
	orig := e.handlers
	if h.CreateSceneNode != nil {
		e.handlers.CreateSceneNode = h.CreateSceneNode
	}
	if h.Bounds != nil {
		e.handlers.Bounds = h.Bounds
	}
	if h.PointerArea != nil {
		e.handlers.PointerArea = h.PointerArea
	}
	if h.PointerMotion != nil {
		e.handlers.PointerMotion = h.PointerMotion
	}
	if h.PointerButton != nil {
		e.handlers.PointerButton = h.PointerButton
	}
	if h.PointerAxis != nil {
		e.handlers.PointerAxis = h.PointerAxis
	}
	if h.PointerGrabCancel != nil {
		e.handlers.PointerGrabCancel = h.PointerGrabCancel
	}
	if h.KeyboardBlur != nil {
		e.handlers.KeyboardBlur = h.KeyboardBlur
	}
	if h.KeyboardEvent != nil {
		e.handlers.KeyboardEvent = h.KeyboardEvent
	}
	if h.Destroy != nil {
		e.handlers.Destroy = h.Destroy
	}
	return orig
}

// Fini releases the element's own resources. Panics if the element is still
// in a container.
func (e *Element) Fini() {
	if e.parent != nil {
		panic("arbor: element finalized while still in a container")
	}
	if e.sceneNode != nil {
		e.sceneNode.Destroy()
	}
	e.destroyed = true
	e.OnPointerEnter = nil
	e.OnPointerLeave = nil
	e.UserData = nil
}

// Destroy calls the element's Destroy capability.
func (e *Element) Destroy() {
	if e.destroyed {
		return
	}
	e.handlers.Destroy()
}

// IsDestroyed reports whether the element has been destroyed.
func (e *Element) IsDestroyed() bool {
	return e.destroyed
}

// --- Accessors ---

// Parent returns the owning container, or nil.
func (e *Element) Parent() *Container {
	return e.parent
}

// AsContainer returns the Container this element belongs to as its own
// element, or nil for leaves.
func (e *Element) AsContainer() *Container {
	return e.container
}

// Above returns the sibling directly in front of this element, or nil.
func (e *Element) Above() *Element {
	return e.prev
}

// Below returns the sibling directly behind this element, or nil.
func (e *Element) Below() *Element {
	return e.next
}

// SceneNode returns the backing presentation node, nil while unattached.
func (e *Element) SceneNode() *scene.Node {
	return e.sceneNode
}

// Visible reports the element's visibility flag.
func (e *Element) Visible() bool {
	return e.visible
}

// SetVisible shows or hides the element and re-evaluates the parent's layout,
// which may move pointer focus.
func (e *Element) SetVisible(visible bool) {
	if globalDebug {
		debugCheckDestroyed(e, "SetVisible")
	}
	if e.visible == visible {
		return
	}
	e.visible = visible
	if e.sceneNode != nil {
		e.sceneNode.SetEnabled(visible)
	}
	if e.parent != nil {
		e.parent.UpdateLayout()
	}
}

// Position returns the element's position in the parent's coordinate space.
func (e *Element) Position() (int, int) {
	return e.x, e.y
}

// SetPosition moves the element and re-evaluates the parent's layout.
func (e *Element) SetPosition(x, y int) {
	if globalDebug {
		debugCheckDestroyed(e, "SetPosition")
	}
	if e.x == x && e.y == y {
		return
	}
	e.x, e.y = x, y
	if e.sceneNode != nil {
		e.sceneNode.SetPosition(x, y)
	}
	if e.parent != nil {
		e.parent.UpdateLayout()
	}
}

// Bounds returns the element's extents relative to its position.
func (e *Element) Bounds() Box {
	return e.handlers.Bounds()
}

// PointerArea returns the area accepting pointer events, relative to the
// position.
func (e *Element) PointerArea() Box {
	return e.handlers.PointerArea()
}

// LastPointerMotion returns the most recent motion recorded by the default
// PointerMotion implementation.
func (e *Element) LastPointerMotion() PointerMotionEvent {
	return e.lastMotion
}

// PointerInside reports whether the element currently has pointer focus.
func (e *Element) PointerInside() bool {
	return e.pointerInside
}

// --- Event delivery ---

// PointerMotion passes a motion event (in element coordinates) to the
// element and fires OnPointerEnter/OnPointerLeave when its focus state
// flips. A sentinel event is never accepted.
func (e *Element) PointerMotion(ev PointerMotionEvent) bool {
	top := e.outermost()
	if top != nil {
		top.dispatch.depth++
	}

	parent := e.parent
	accepted := e.handlers.PointerMotion(ev) && ev.Finite()
	if parent != nil && e.parent != parent {
		// Removed by its own handler; nothing is under the pointer there now.
		accepted = false
	}
	if accepted != e.pointerInside {
		e.pointerInside = accepted
		if accepted {
			e.notifyEnter(top, ev)
		} else {
			e.notifyLeave(top)
		}
	}

	if top != nil {
		top.dispatch.depth--
		if top.dispatch.depth == 0 {
			top.flushEnters()
		}
	}
	return accepted
}

// PointerButton passes a button event to the element.
func (e *Element) PointerButton(ev ButtonEvent) bool {
	return e.handlers.PointerButton(ev)
}

// PointerAxis passes an axis event to the element.
func (e *Element) PointerAxis(ev AxisEvent) bool {
	return e.handlers.PointerAxis(ev)
}

// PointerGrabCancel calls the element's grab-cancel capability, if any.
func (e *Element) PointerGrabCancel() {
	if e.handlers.PointerGrabCancel != nil {
		e.handlers.PointerGrabCancel()
	}
}

// CanCancelPointerGrab reports whether the element has a grab-cancel
// capability.
func (e *Element) CanCancelPointerGrab() bool {
	return e.handlers.PointerGrabCancel != nil
}

// KeyboardBlur removes keyboard focus from the element.
func (e *Element) KeyboardBlur() {
	e.handlers.KeyboardBlur()
}

// KeyboardEvent passes a key event to the element.
func (e *Element) KeyboardEvent(ev KeyEvent) bool {
	return e.handlers.KeyboardEvent(ev)
}

// --- Notifications ---

// pendingEnter is an enter notification held back until the routing pass
// that raised it completes.
type pendingEnter struct {
	element *Element
	ev      PointerMotionEvent
}

// dispatchState tracks nested motion delivery on the outermost container.
type dispatchState struct {
	depth   int
	entered []pendingEnter
}

// outermost returns the topmost container above (or equal to) e, nil for a
// parentless leaf.
func (e *Element) outermost() *Container {
	top := e.container
	for p := e.parent; p != nil; p = p.parent {
		top = p
	}
	return top
}

func (e *Element) notifyEnter(top *Container, ev PointerMotionEvent) {
	if top == nil || top.dispatch.depth == 0 {
		e.fireEnter(top, ev)
		return
	}
	top.dispatch.entered = append(top.dispatch.entered, pendingEnter{element: e, ev: ev})
}

func (e *Element) notifyLeave(top *Container) {
	if top != nil {
		pending := top.dispatch.entered
		for i := range pending {
			if pending[i].element == e {
				// Entered and left within one pass: report neither.
				copy(pending[i:], pending[i+1:])
				pending[len(pending)-1] = pendingEnter{}
				top.dispatch.entered = pending[:len(pending)-1]
				return
			}
		}
	}
	if globalDebug {
		logger.Debug("pointer leave", "element", e.Name, "id", e.ID)
	}
	if e.OnPointerLeave != nil {
		e.OnPointerLeave()
	}
	if top != nil && top.observer != nil {
		top.observer(EventPointerLeave, e)
	}
}

func (e *Element) fireEnter(top *Container, ev PointerMotionEvent) {
	if globalDebug {
		logger.Debug("pointer enter", "element", e.Name, "id", e.ID, "x", ev.X, "y", ev.Y)
	}
	if e.OnPointerEnter != nil {
		e.OnPointerEnter(ev)
	}
	if top != nil && top.observer != nil {
		top.observer(EventPointerEnter, e)
	}
}

// flushEnters fires the enter notifications deferred during a routing pass.
// Callbacks may route further motion; those passes flush their own entries.
func (c *Container) flushEnters() {
	for len(c.dispatch.entered) > 0 {
		p := c.dispatch.entered[0]
		c.dispatch.entered[0] = pendingEnter{}
		c.dispatch.entered = c.dispatch.entered[1:]
		if p.element.pointerInside && !p.element.destroyed {
			p.element.fireEnter(c, p.ev)
		}
	}
	c.dispatch.entered = nil
}

// --- Presentation ---

// setParent records the owning container and aligns the backing node with
// the new parent's scene tree.
func (e *Element) setParent(c *Container) {
	e.parent = c
	e.attachToScene()
}

// attachToScene creates, re-parents or drops the backing node so that it
// matches the parent's scene tree. Idempotent.
func (e *Element) attachToScene() {
	if e.parent == nil || e.parent.sceneTree == nil {
		if e.sceneNode != nil {
			// The destroy listener clears e.sceneNode.
			e.sceneNode.Destroy()
		}
		return
	}
	if e.sceneNode != nil {
		e.sceneNode.Reparent(e.parent.sceneTree)
		return
	}
	if n := e.handlers.CreateSceneNode(e.parent.sceneTree); n != nil {
		e.adoptSceneNode(n)
	}
}

// adoptSceneNode binds n as the backing node and mirrors position and
// visibility onto it.
func (e *Element) adoptSceneNode(n *scene.Node) {
	e.sceneNode = n
	if n.Name == "" {
		n.Name = e.Name
	}
	n.SetPosition(e.x, e.y)
	n.SetEnabled(e.visible)
	e.sceneListener = n.OnDestroy(func() {
		e.sceneNode = nil
		e.sceneListener = scene.ListenerHandle{}
	})
}
