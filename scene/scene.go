// Package scene is a small retained presentation tree. It plays the role of
// the renderer's scene graph for arbor: containers own a Tree, leaves own a
// Node, and the stacking order of siblings is what gets drawn.
//
// Children of a Tree are kept bottom-to-top: a freshly created node is always
// placed on top of its siblings.
package scene

import "image/color"

// Kind distinguishes tree nodes from drawable rectangles.
type Kind uint8

const (
	KindTree Kind = iota // groups children, draws nothing itself
	KindRect             // solid rectangle
)

// Node is a single entry of the presentation tree.
type Node struct {
	Name string

	kind    Kind
	parent  *Tree
	tree    *Tree // set when kind == KindTree
	x, y    int
	enabled bool

	// Rect fields (KindRect)
	Width, Height int
	Color         color.RGBA

	destroyed bool
	listeners []destroyListener
	nextID    uint32
}

type destroyListener struct {
	id uint32
	fn func()
}

// ListenerHandle removes a destroy listener registered with OnDestroy.
type ListenerHandle struct {
	node *Node
	id   uint32
}

// Remove unregisters the listener. No-op if already removed.
func (h ListenerHandle) Remove() {
	if h.node == nil {
		return
	}
	for i, l := range h.node.listeners {
		if l.id == h.id {
			copy(h.node.listeners[i:], h.node.listeners[i+1:])
			h.node.listeners[len(h.node.listeners)-1] = destroyListener{}
			h.node.listeners = h.node.listeners[:len(h.node.listeners)-1]
			return
		}
	}
}

// Tree is a node that holds an ordered set of children.
type Tree struct {
	node     Node
	children []*Node // bottom-to-top
}

// NewRoot creates a parentless tree, the top of a presentation hierarchy.
func NewRoot() *Tree {
	t := &Tree{}
	t.node = Node{Name: "root", kind: KindTree, tree: t, enabled: true}
	return t
}

// NewTree creates a tree as the topmost child of parent.
func NewTree(parent *Tree) *Tree {
	t := &Tree{}
	t.node = Node{kind: KindTree, tree: t, enabled: true}
	parent.push(&t.node)
	return t
}

// NewRect creates a rectangle node as the topmost child of parent.
func NewRect(parent *Tree, width, height int, c color.RGBA) *Node {
	n := &Node{kind: KindRect, enabled: true, Width: width, Height: height, Color: c}
	parent.push(n)
	return n
}

// Node returns the tree's own node.
func (t *Tree) Node() *Node {
	return &t.node
}

// Children returns the children bottom-to-top. The returned slice MUST NOT be
// mutated by the caller.
func (t *Tree) Children() []*Node {
	return t.children
}

// Top returns the topmost child, or nil.
func (t *Tree) Top() *Node {
	if len(t.children) == 0 {
		return nil
	}
	return t.children[len(t.children)-1]
}

// Index returns the stacking index of n (0 = bottom), or -1.
func (t *Tree) Index(n *Node) int {
	for i, c := range t.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (t *Tree) push(n *Node) {
	n.parent = t
	t.children = append(t.children, n)
}

func (t *Tree) unlink(n *Node) {
	i := t.Index(n)
	if i < 0 {
		return
	}
	copy(t.children[i:], t.children[i+1:])
	t.children[len(t.children)-1] = nil
	t.children = t.children[:len(t.children)-1]
	n.parent = nil
}

func (t *Tree) insertAt(n *Node, i int) {
	n.parent = t
	t.children = append(t.children, nil)
	copy(t.children[i+1:], t.children[i:])
	t.children[i] = n
}

// --- Node accessors ---

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Tree returns the tree for KindTree nodes, nil otherwise.
func (n *Node) Tree() *Tree { return n.tree }

// Parent returns the parent tree, nil for roots and destroyed nodes.
func (n *Node) Parent() *Tree { return n.parent }

// Position returns the node position relative to its parent.
func (n *Node) Position() (int, int) { return n.x, n.y }

// SetPosition moves the node relative to its parent.
func (n *Node) SetPosition(x, y int) {
	n.x, n.y = x, y
}

// Enabled reports whether the node (and its subtree) is drawn.
func (n *Node) Enabled() bool { return n.enabled }

// SetEnabled shows or hides the node and its subtree.
func (n *Node) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Destroyed reports whether Destroy was called.
func (n *Node) Destroyed() bool { return n.destroyed }

// --- Stacking ---

// RaiseToTop moves the node above all its siblings.
func (n *Node) RaiseToTop() {
	p := n.parent
	if p == nil || p.Top() == n {
		return
	}
	p.unlink(n)
	p.push(n)
}

// LowerToBottom moves the node below all its siblings.
func (n *Node) LowerToBottom() {
	p := n.parent
	if p == nil || p.Index(n) == 0 {
		return
	}
	p.unlink(n)
	p.insertAt(n, 0)
}

// PlaceAbove moves the node directly above sibling.
// Panics if the two nodes do not share a parent.
func (n *Node) PlaceAbove(sibling *Node) {
	if n == sibling {
		return
	}
	p := n.parent
	if p == nil || sibling.parent != p {
		panic("scene: PlaceAbove requires siblings")
	}
	p.unlink(n)
	p.insertAt(n, p.Index(sibling)+1)
}

// PlaceBelow moves the node directly below sibling.
// Panics if the two nodes do not share a parent.
func (n *Node) PlaceBelow(sibling *Node) {
	if n == sibling {
		return
	}
	p := n.parent
	if p == nil || sibling.parent != p {
		panic("scene: PlaceBelow requires siblings")
	}
	p.unlink(n)
	p.insertAt(n, p.Index(sibling))
}

// Reparent moves the node on top of a new parent tree.
func (n *Node) Reparent(parent *Tree) {
	if n.parent == parent {
		return
	}
	for p := parent; p != nil; p = p.node.parent {
		if p == n.tree {
			panic("scene: reparenting would create a cycle")
		}
	}
	if n.parent != nil {
		n.parent.unlink(n)
	}
	parent.push(n)
}

// --- Destruction ---

// OnDestroy registers fn to run when the node is destroyed. Listeners run
// before the node's children are destroyed, in registration order.
func (n *Node) OnDestroy(fn func()) ListenerHandle {
	n.nextID++
	n.listeners = append(n.listeners, destroyListener{id: n.nextID, fn: fn})
	return ListenerHandle{node: n, id: n.nextID}
}

// Destroy emits the destroy listeners, destroys all children and unlinks the
// node from its parent. Destroying twice is a no-op.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	n.destroyed = true

	// Listeners may remove themselves or mutate the subtree.
	for len(n.listeners) > 0 {
		l := n.listeners[0]
		n.listeners = n.listeners[1:]
		l.fn()
	}

	if n.tree != nil {
		for len(n.tree.children) > 0 {
			n.tree.children[len(n.tree.children)-1].Destroy()
		}
	}
	if n.parent != nil {
		n.parent.unlink(n)
	}
}

// Walk calls fn for every enabled node of t in paint order (bottom-to-top,
// depth first), with the accumulated absolute offset of each node.
func (t *Tree) Walk(fn func(n *Node, absX, absY int)) {
	t.walk(0, 0, fn)
}

func (t *Tree) walk(ox, oy int, fn func(n *Node, absX, absY int)) {
	if !t.node.enabled {
		return
	}
	ox += t.node.x
	oy += t.node.y
	for _, c := range t.children {
		if !c.enabled {
			continue
		}
		if c.tree != nil {
			c.tree.walk(ox, oy, fn)
			continue
		}
		fn(c, ox+c.x, oy+c.y)
	}
}
