package arbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/arbor/scene"
)

func newAttachedFixture(t *testing.T) *Container {
	t.Helper()
	c := NewAttachedContainer("top", scene.NewRoot())
	require.NotNil(t, c.SceneTree())
	return c
}

func TestAttachedContainerCreatesTree(t *testing.T) {
	root := scene.NewRoot()
	c := NewAttachedContainer("top", root)

	require.NotNil(t, c.SceneNode())
	assert.Equal(t, c.SceneTree().Node(), c.SceneNode())
	assert.Equal(t, root, c.SceneNode().Parent())
	assert.Equal(t, "top", c.SceneNode().Name)
	assert.Panics(t, func() { NewAttachedContainer("bad", nil) })
}

func TestSceneStackingFollowsZOrder(t *testing.T) {
	c := newAttachedFixture(t)
	a := newFake("a", 0, 0, 1, 1, nil)
	b := newFake("b", 0, 0, 1, 1, nil)
	d := newFake("d", 0, 0, 1, 1, nil)
	e := newFake("e", 0, 0, 1, 1, nil)

	c.AddFront(&a.Element)
	c.AddFront(&b.Element)
	assert.Equal(t, names(c.Children()), sceneNames(c.SceneTree()))

	c.AddAbove(&a.Element, &d.Element)
	assert.Equal(t, []string{"b", "d", "a"}, sceneNames(c.SceneTree()))

	c.AddAbove(nil, &e.Element)
	assert.Equal(t, []string{"b", "d", "a", "e"}, sceneNames(c.SceneTree()))

	c.RaiseToTop(&a.Element)
	assert.Equal(t, names(c.Children()), sceneNames(c.SceneTree()))

	c.Remove(&d.Element)
	assert.Nil(t, d.SceneNode())
	assert.Equal(t, names(c.Children()), sceneNames(c.SceneTree()))
}

func TestAddAboveElementWithoutNode(t *testing.T) {
	c := newAttachedFixture(t)
	x := newFake("x", 0, 0, 1, 1, nil)
	plain := NewElement("plain")
	b := newFake("b", 0, 0, 1, 1, nil)
	d := newFake("d", 0, 0, 1, 1, nil)
	e := newFake("e", 0, 0, 1, 1, nil)

	c.AddFront(plain)
	c.AddFront(&b.Element)
	c.AddAbove(plain, &d.Element)
	assert.Equal(t, []string{"b", "d", "plain"}, names(c.Children()))
	assert.Equal(t, []string{"b", "d"}, sceneNames(c.SceneTree()), "nothing with a node behind d")

	c.AddAbove(nil, &x.Element)
	c.AddAbove(plain, &e.Element)
	assert.Equal(t, []string{"b", "d", "e", "plain", "x"}, names(c.Children()))
	assert.Equal(t, []string{"b", "d", "e", "x"}, sceneNames(c.SceneTree()), "e stacks above the first node behind it")
}

func TestElementWithoutNodeStaysInvisible(t *testing.T) {
	c := newAttachedFixture(t)
	plain := NewElement("plain")
	c.AddFront(plain)
	assert.Nil(t, plain.SceneNode())
	assert.Empty(t, c.SceneTree().Children())
}

func TestLazyAttachment(t *testing.T) {
	top := newAttachedFixture(t)

	inner := NewContainer("inner")
	a := newFake("a", 0, 0, 1, 1, nil)
	b := newFake("b", 0, 0, 1, 1, nil)
	inner.AddFront(&a.Element)
	inner.AddFront(&b.Element)
	assert.Nil(t, inner.SceneTree(), "unattached container has no tree")
	assert.Nil(t, a.SceneNode())

	inner.SetPosition(4, 5)
	top.AddFront(&inner.Element)
	require.NotNil(t, inner.SceneTree())
	assert.Equal(t, []string{"b", "a"}, sceneNames(inner.SceneTree()))
	assert.Equal(t, top.SceneTree(), inner.SceneNode().Parent())

	x, y := inner.SceneNode().Position()
	assert.Equal(t, 4, x)
	assert.Equal(t, 5, y)

	// Children added later attach at once.
	d := newFake("d", 0, 0, 1, 1, nil)
	inner.AddFront(&d.Element)
	assert.NotNil(t, d.SceneNode())
	assert.Equal(t, []string{"d", "b", "a"}, sceneNames(inner.SceneTree()))
}

func TestDetachOnRemoveAndReattach(t *testing.T) {
	top := newAttachedFixture(t)
	inner := NewContainer("inner")
	a := newFake("a", 0, 0, 1, 1, nil)
	inner.AddFront(&a.Element)
	top.AddFront(&inner.Element)
	require.NotNil(t, a.SceneNode())
	node := a.SceneNode()

	top.Remove(&inner.Element)
	assert.Nil(t, inner.SceneTree())
	assert.Nil(t, a.SceneNode())
	assert.True(t, node.Destroyed())
	assert.Empty(t, top.SceneTree().Children())

	top.AddFront(&inner.Element)
	require.NotNil(t, a.SceneNode())
	assert.NotSame(t, node, a.SceneNode())
}

func TestSceneTreeDestroyDetachesHierarchy(t *testing.T) {
	root := scene.NewRoot()
	top := NewAttachedContainer("top", root)
	inner := NewContainer("inner")
	a := newFake("a", 0, 0, 1, 1, nil)
	inner.AddFront(&a.Element)
	top.AddFront(&inner.Element)

	top.SceneNode().Destroy()
	assert.Nil(t, top.SceneTree())
	assert.Nil(t, top.SceneNode())
	assert.Nil(t, inner.SceneTree())
	assert.Nil(t, a.SceneNode())
	assert.Empty(t, root.Children())

	// The element tree itself is intact.
	assert.Equal(t, &inner.Element, top.Front())
	assert.Equal(t, &a.Element, inner.Front())
	assert.False(t, a.IsDestroyed())
}

func TestDestroyingAttachedContainerReleasesNodes(t *testing.T) {
	root := scene.NewRoot()
	top := NewAttachedContainer("top", root)
	a := newFake("a", 0, 0, 1, 1, nil)
	top.AddFront(&a.Element)

	top.Destroy()
	assert.Empty(t, root.Children())
	assert.True(t, a.IsDestroyed())
}

func TestHiddenElementNodeDisabled(t *testing.T) {
	top := newAttachedFixture(t)
	a := newFake("a", 0, 0, 1, 1, nil)
	a.SetVisible(false)
	top.AddFront(&a.Element)
	require.NotNil(t, a.SceneNode())
	assert.False(t, a.SceneNode().Enabled())
}
