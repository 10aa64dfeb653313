package arbor

import "github.com/phanxgames/arbor/scene"

// NewAttachedContainer creates a container whose scene tree is created at
// once as a child of root. Used for the outermost container of a hierarchy.
func NewAttachedContainer(name string, root *scene.Tree) *Container {
	c := &Container{}
	c.InitAttached(name, root)
	return c
}

// InitAttached initializes c and attaches it to the presentation root.
func (c *Container) InitAttached(name string, root *scene.Tree) {
	c.Init(name)
	if root == nil {
		panic("arbor: InitAttached with nil scene root")
	}
	c.adoptSceneNode(c.createSceneNode(root))
}

// SceneTree returns the container's presentation tree, nil while
// unattached.
func (c *Container) SceneTree() *scene.Tree {
	return c.sceneTree
}

// createSceneNode builds the container's tree under parent and attaches the
// existing children. They are replayed from the back so that each new node,
// created on top, ends up stacked in the container's order.
func (c *Container) createSceneNode(parent *scene.Tree) *scene.Node {
	if c.sceneTree != nil {
		panic("arbor: container already has a scene tree")
	}
	c.sceneTree = scene.NewTree(parent)
	for e := c.tail; e != nil; e = e.prev {
		e.attachToScene()
	}
	c.sceneListener = c.sceneTree.Node().OnDestroy(c.handleSceneTreeDestroy)
	return c.sceneTree.Node()
}

// handleSceneTreeDestroy drops every descendant's backing node. The elements
// themselves stay intact and get fresh nodes on re-attachment.
func (c *Container) handleSceneTreeDestroy() {
	c.sceneTree = nil
	c.sceneListener = scene.ListenerHandle{}
	for e := c.head; e != nil; e = e.next {
		e.attachToScene()
	}
}
