package scene

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(parent *Tree, name string) *Node {
	n := NewRect(parent, 1, 1, color.RGBA{A: 0xff})
	n.Name = name
	return n
}

func order(t *Tree) []string {
	var out []string
	for _, n := range t.Children() {
		out = append(out, n.Name)
	}
	return out
}

func TestNewNodesStackOnTop(t *testing.T) {
	root := NewRoot()
	a := rect(root, "a")
	rect(root, "b")
	sub := NewTree(root)
	sub.Node().Name = "sub"

	assert.Equal(t, []string{"a", "b", "sub"}, order(root))
	assert.Equal(t, sub.Node(), root.Top())
	assert.Equal(t, 0, root.Index(a))
	assert.Equal(t, root, a.Parent())
	assert.Equal(t, KindRect, a.Kind())
	assert.Equal(t, KindTree, sub.Node().Kind())
	assert.Nil(t, a.Tree())
	assert.Equal(t, sub, sub.Node().Tree())
}

func TestStackingOperations(t *testing.T) {
	root := NewRoot()
	a := rect(root, "a")
	b := rect(root, "b")
	c := rect(root, "c")

	a.RaiseToTop()
	assert.Equal(t, []string{"b", "c", "a"}, order(root))

	a.LowerToBottom()
	assert.Equal(t, []string{"a", "b", "c"}, order(root))

	a.PlaceAbove(b)
	assert.Equal(t, []string{"b", "a", "c"}, order(root))

	c.PlaceBelow(b)
	assert.Equal(t, []string{"c", "b", "a"}, order(root))

	b.PlaceAbove(b)
	assert.Equal(t, []string{"c", "b", "a"}, order(root))

	other := rect(NewRoot(), "other")
	assert.Panics(t, func() { a.PlaceAbove(other) })
	assert.Panics(t, func() { a.PlaceBelow(other) })
}

func TestReparent(t *testing.T) {
	root := NewRoot()
	left := NewTree(root)
	right := NewTree(root)
	n := rect(left, "n")
	rect(right, "x")

	n.Reparent(right)
	assert.Empty(t, left.Children())
	assert.Equal(t, []string{"x", "n"}, order(right))
	assert.Equal(t, right, n.Parent())

	inner := NewTree(left)
	assert.Panics(t, func() { left.Node().Reparent(inner) }, "cycle")
}

func TestDestroyListenersAndChildren(t *testing.T) {
	root := NewRoot()
	sub := NewTree(root)
	child := rect(sub, "child")

	var got []string
	sub.Node().OnDestroy(func() { got = append(got, "sub") })
	child.OnDestroy(func() { got = append(got, "child") })
	removed := sub.Node().OnDestroy(func() { got = append(got, "removed") })
	removed.Remove()
	removed.Remove()

	sub.Node().Destroy()
	assert.Equal(t, []string{"sub", "child"}, got, "listeners run before children are destroyed")
	assert.True(t, child.Destroyed())
	assert.True(t, sub.Node().Destroyed())
	assert.Nil(t, sub.Node().Parent())
	assert.Empty(t, root.Children())

	sub.Node().Destroy()
	assert.Len(t, got, 2, "second destroy is a no-op")
}

func TestListenerHandleZeroValue(t *testing.T) {
	var h ListenerHandle
	h.Remove()
}

func TestWalkPaintOrderAndOffsets(t *testing.T) {
	root := NewRoot()
	bottom := rect(root, "bottom")
	bottom.SetPosition(1, 2)

	sub := NewTree(root)
	sub.Node().SetPosition(10, 20)
	inner := rect(sub, "inner")
	inner.SetPosition(3, 4)

	hidden := rect(root, "hidden")
	hidden.SetEnabled(false)

	type visit struct {
		name string
		x, y int
	}
	var visits []visit
	root.Walk(func(n *Node, x, y int) { visits = append(visits, visit{n.Name, x, y}) })

	require.Len(t, visits, 2)
	assert.Equal(t, visit{"bottom", 1, 2}, visits[0])
	assert.Equal(t, visit{"inner", 13, 24}, visits[1])

	sub.Node().SetEnabled(false)
	visits = nil
	root.Walk(func(n *Node, x, y int) { visits = append(visits, visit{n.Name, x, y}) })
	assert.Equal(t, []visit{{"bottom", 1, 2}}, visits)
}
