package arbor

import (
	"fmt"
	"math"

	"github.com/phanxgames/arbor/scene"
)

// ContainerHandlers is the container-specific part of the capability table.
type ContainerHandlers struct {
	// UpdateLayout re-evaluates the container after a child changed
	// position, visibility or stacking. The default bubbles to the parent and
	// recomputes pointer focus at the outermost container.
	UpdateLayout func()
}

// Container is an Element holding an ordered set of children. The first child
// is the topmost. A container exclusively owns its children: destroying it
// destroys them.
type Container struct {
	Element

	// orig is the element table the container's own handlers replaced.
	orig   Handlers
	layout ContainerHandlers

	head, tail *Element
	count      int

	// Holder slots. Each refers to a current child or is nil.
	pointerFocus  *Element
	leftButton    *Element
	pointerGrab   *Element
	keyboardFocus *Element

	// focusPass counts focus computations at this level, so a scan can tell
	// that a handler triggered a fresh one.
	focusPass uint32

	// Presentation
	sceneTree     *scene.Tree
	sceneListener scene.ListenerHandle

	// Set on the outermost container only.
	dispatch dispatchState
	observer func(EventType, *Element)
}

// NewContainer creates an empty, visible container.
func NewContainer(name string) *Container {
	c := &Container{}
	c.Init(name)
	return c
}

// Init initializes a container embedded in a concrete kind.
func (c *Container) Init(name string) {
	*c = Container{}
	c.Element.Init(name)
	c.Element.container = c
	c.orig = c.Element.Extend(Handlers{
		CreateSceneNode:   c.createSceneNode,
		Bounds:            c.bounds,
		PointerArea:       c.pointerArea,
		PointerMotion:     c.handlePointerMotion,
		PointerButton:     c.handlePointerButton,
		PointerAxis:       c.handlePointerAxis,
		PointerGrabCancel: c.cancelPointerGrab,
		KeyboardBlur:      c.handleKeyboardBlur,
		KeyboardEvent:     c.handleKeyboardEvent,
		Destroy:           c.Fini,
	})
	c.layout = ContainerHandlers{UpdateLayout: c.defaultUpdateLayout}
}

// ExtendContainer installs the non-nil container operations of h and returns
// the previous ones.
func (c *Container) ExtendContainer(h ContainerHandlers) ContainerHandlers {
	orig := c.layout
	if h.UpdateLayout != nil {
		c.layout.UpdateLayout = h.UpdateLayout
	}
	return orig
}

// Fini removes and destroys every child, then releases the container's own
// resources. Panics if the container still has a parent.
func (c *Container) Fini() {
	if c.parent != nil {
		panic("arbor: container finalized while still in a container")
	}
	for c.head != nil {
		e := c.head
		c.Remove(e)
		e.Destroy()
	}
	c.Element.Fini()
}

// --- Children ---

// Len returns the number of children.
func (c *Container) Len() int {
	return c.count
}

// Front returns the topmost child, or nil.
func (c *Container) Front() *Element {
	return c.head
}

// Back returns the bottommost child, or nil.
func (c *Container) Back() *Element {
	return c.tail
}

// Children returns the children front-to-back (topmost first) as a new slice.
func (c *Container) Children() []*Element {
	out := make([]*Element, 0, c.count)
	for e := c.head; e != nil; e = e.next {
		out = append(out, e)
	}
	return out
}

// Contains reports whether e is a direct child of c.
func (c *Container) Contains(e *Element) bool {
	return e != nil && e.parent == c
}

func (c *Container) pushFront(e *Element) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	} else {
		c.tail = e
	}
	c.head = e
	c.count++
}

func (c *Container) pushBack(e *Element) {
	e.next = nil
	e.prev = c.tail
	if c.tail != nil {
		c.tail.next = e
	} else {
		c.head = e
	}
	c.tail = e
	c.count++
}

// insertBefore links e directly in front of ref.
func (c *Container) insertBefore(ref, e *Element) {
	if ref.prev == nil {
		c.pushFront(e)
		return
	}
	e.prev = ref.prev
	e.next = ref
	ref.prev.next = e
	ref.prev = e
	c.count++
}

func (c *Container) unlink(e *Element) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
	c.count--
}

// --- Composition ---

// AddFront adds e as the topmost child. Panics if e is nil, already has a
// parent, or is an ancestor of c.
func (c *Container) AddFront(e *Element) {
	c.checkAdd(e, "AddFront")
	e.PointerGrabCancel()

	c.pushFront(e)
	e.setParent(c)
	if e.sceneNode != nil {
		e.sceneNode.RaiseToTop()
	}
	c.afterAdd(e)
}

// AddAbove adds e directly in front of ref. A nil ref adds e as the
// bottommost child. Panics if ref is not a child of c.
func (c *Container) AddAbove(ref, e *Element) {
	c.checkAdd(e, "AddAbove")
	if ref != nil && ref.parent != c {
		panic("arbor: AddAbove reference is not a child of this container")
	}
	e.PointerGrabCancel()

	if ref == nil {
		c.pushBack(e)
	} else {
		c.insertBefore(ref, e)
	}
	e.setParent(c)
	if n := e.sceneNode; n != nil {
		// Stack above the nearest sibling behind e that has a node.
		below := ref
		for below != nil && below.sceneNode == nil {
			below = below.next
		}
		if below != nil {
			n.PlaceAbove(below.sceneNode)
		} else {
			n.LowerToBottom()
		}
	}
	c.afterAdd(e)
}

func (c *Container) checkAdd(e *Element, op string) {
	if e == nil {
		panic(fmt.Sprintf("arbor: %s with nil element", op))
	}
	if globalDebug {
		debugCheckDestroyed(&c.Element, op)
		debugCheckDestroyed(e, op)
	}
	if e == &c.Element {
		panic("arbor: cannot add a container to itself")
	}
	if e.parent != nil {
		panic(fmt.Sprintf("arbor: element %q already has a parent", e.Name))
	}
	if e.sceneNode != nil {
		panic(fmt.Sprintf("arbor: element %q already has a scene node", e.Name))
	}
	if e.container != nil && isAncestor(e.container, c) {
		panic("arbor: cannot add an ancestor as a child")
	}
}

// isAncestor reports whether candidate is c or one of c's parents.
func isAncestor(candidate, c *Container) bool {
	for p := c; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (c *Container) afterAdd(e *Element) {
	if globalDebug {
		debugCheckTreeDepth(e)
		debugCheckChildCount(c)
	}
	c.UpdateLayout()
}

// Remove detaches e from c without destroying it. Any holder slot referring
// to e is cleared: a grab is cancelled and released upward, keyboard focus is
// blurred, and pointer focus is recomputed. Panics if e is not a child of c.
func (c *Container) Remove(e *Element) {
	if e == nil || e.parent != c {
		panic("arbor: element is not a child of this container")
	}

	e.setParent(nil)
	c.unlink(e)

	if c.pointerGrab == e {
		c.cancelPointerGrab()
		if c.parent != nil {
			c.parent.PointerGrabRelease(&c.Element)
		}
	}
	if c.leftButton == e {
		c.leftButton = nil
	}
	if c.keyboardFocus == e {
		c.SetKeyboardFocus(nil)
	}

	c.UpdateLayout()
	c.UpdatePointerFocus()

	// Recomputation only reaches c when it sits under the cached position.
	if c.pointerFocus == e {
		c.pointerFocus = nil
		e.PointerMotion(LeaveEvent(c.lastMotion.TimeMsec, c.lastMotion.PointerID))
	}
}

// RaiseToTop moves e in front of all its siblings.
func (c *Container) RaiseToTop(e *Element) {
	if e == nil || e.parent != c {
		panic("arbor: element is not a child of this container")
	}
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
	if e.sceneNode != nil {
		e.sceneNode.RaiseToTop()
	}
	c.UpdateLayout()
}

// --- Geometry ---

func (c *Container) bounds() Box {
	return c.aggregate((*Element).Bounds)
}

func (c *Container) pointerArea() Box {
	return c.aggregate((*Element).PointerArea)
}

// aggregate returns the union of area over visible children, translated by
// each child's position. A degenerate axis collapses to 0..0.
func (c *Container) aggregate(area func(*Element) Box) Box {
	left, top := math.MaxInt, math.MaxInt
	right, bottom := math.MinInt, math.MinInt
	for e := c.head; e != nil; e = e.next {
		if !e.visible {
			continue
		}
		b := area(e).Translate(e.x, e.y)
		left = min(left, b.Left)
		top = min(top, b.Top)
		right = max(right, b.Right)
		bottom = max(bottom, b.Bottom)
	}
	if left >= right {
		left, right = 0, 0
	}
	if top >= bottom {
		top, bottom = 0, 0
	}
	return Box{Left: left, Top: top, Right: right, Bottom: bottom}
}

// --- Layout ---

// UpdateLayout calls the container's layout hook.
func (c *Container) UpdateLayout() {
	c.layout.UpdateLayout()
}

func (c *Container) defaultUpdateLayout() {
	if c.parent != nil {
		c.parent.UpdateLayout()
		return
	}
	c.UpdatePointerFocus()
}

// Find returns the first element named name in c's subtree, searching
// depth-first from the front. c itself is not considered.
func (c *Container) Find(name string) *Element {
	for e := c.head; e != nil; e = e.next {
		if e.Name == name {
			return e
		}
		if e.container != nil {
			if found := e.container.Find(name); found != nil {
				return found
			}
		}
	}
	return nil
}
