/*
Package fiber implements a reconciler for declarative view trees.

A UI is described by a tree of [View] values. The [Reconciler] mirrors the
tree with [Fiber] nodes and, every time the description changes, diffs the
new description against the fibers and sends a renderer the mutations needed
to bring its element tree in sync.

Views come in two sorts, as classified by [Renderer.IsPrimitive]:

  - Primitive views are turned into elements by the renderer. Their fibers
    are element-bearing.

  - Composite views only produce other views. Their fibers are pass-through
    and have no element of their own.

Each fiber identifies itself among its siblings either by an explicit key or
by its index. A fiber from the previous cycle is reused when both its identity
and its view type match; its state then carries over. A keyed child that
changes position is moved rather than recreated, which is what lets a
reordered list keep the state of its rows.

# Update cycles

An update cycle revisits the subtree of one fiber. The initial mount revisits
the whole tree from a synthetic root; a state change revisits the subtree of
the fiber owning the state, or the lowest common ancestor of all fibers with
pending changes. A cycle consists of:

  - The reconcile pass, which builds the work-in-progress counterpart of the
    subtree and accumulates [Mutation] values.

  - The layout pass, if [Renderer.DynamicLayout] is true. Elements are sized
    top-down, each against the size of its element parent, and placed when
    their subtree is finished. A final top-down sweep places every element
    again with the final sizes. Sizes are memoized per proposal; the
    reconcile pass marks the memo of a changed element stale and propagates
    the mark to its element ancestors.

  - The commit. The whole batch is handed to [Renderer.Commit] at once; a
    panic before that point leaves both the renderer and the current tree
    untouched.

# Implementation structure

  - fiber.go, walk.go: the [Fiber] node and the non-recursive [Walker].

  - view.go, state.go, preferences.go: the contract with views.

  - renderer.go, mutation.go, layout.go: the contract with renderers.

  - reconcile_pass.go, layout_pass.go, caches.go: the passes and the
    bookkeeping they share.

  - reconciler.go: the driver.
*/
package fiber
