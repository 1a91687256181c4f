package ptree

import (
	"sort"

	"github.com/HadrienG2/benchmon/pkg/model"
)

// Node is one process in the reconstructed hierarchy.
type Node struct {
	Status   model.ProcStatus
	Record   *model.ProcRecord // non-nil iff Status is StatusOK
	Children []model.Pid       // ascending

	// placeholder marks a node created from a child's parent pointer
	// before the pid's own result arrived. Settling the node clears it.
	placeholder bool
}

// Tree is the parent/child hierarchy of one enumeration batch.
//
// Roots are the processes with no known parent: top-of-tree processes,
// processes whose parent field was denied, and degraded nodes that kept
// no record at all. A placeholder that was never settled stays in the
// tree as a vanished root, since its pid was referenced but the process
// itself was gone (or never real) by the time enumeration ran.
type Tree struct {
	Roots []model.Pid // ascending
	Nodes map[model.Pid]*Node
}

// Build assembles the tree from one batch of per-process results, in
// whatever order enumeration produced them. A child observed before its
// parent creates a vanished placeholder for the parent, settled in
// place if the parent's own result shows up later in the batch; the
// final shape does not depend on input order.
//
// Results that cannot form a tree fail the whole batch: a pid reported
// twice or a looping parent chain wraps ErrDuplicate or ErrCycle.
func Build(results []model.ProcResult) (*Tree, error) {
	t := &Tree{Nodes: make(map[model.Pid]*Node, len(results))}

	for _, res := range results {
		// Hook this process up under its parent first, creating the
		// parent's node if the parent was not seen yet.
		if res.Status == model.StatusOK && res.Record.HasParent() {
			parent := t.ensure(res.Record.Parent)
			if !parent.addChild(res.Pid) {
				return nil, duplicatef("pid %d registered twice under parent %d", res.Pid, res.Record.Parent)
			}
		}

		// Then settle the pid's own node.
		node, ok := t.Nodes[res.Pid]
		if !ok {
			t.Nodes[res.Pid] = &Node{Status: res.Status, Record: res.Record}
			continue
		}
		if !node.placeholder {
			return nil, duplicatef("second result for pid %d", res.Pid)
		}
		node.Status = res.Status
		node.Record = res.Record
		node.placeholder = false
	}

	// A process with a live parent pointer hangs off that parent;
	// everything else, unsettled placeholders included, is a root.
	for pid, node := range t.Nodes {
		if node.Status == model.StatusOK && node.Record.HasParent() {
			continue
		}
		t.Roots = append(t.Roots, pid)
	}
	sort.Slice(t.Roots, func(i, j int) bool { return t.Roots[i] < t.Roots[j] })

	// Prove the tree walkable before anyone consumes it, so that a
	// corrupt batch fails here rather than halfway through a report.
	if err := t.Walk(func(model.Pid, *Node, int) {}); err != nil {
		return nil, err
	}
	return t, nil
}

// ensure returns the node for pid, creating a vanished placeholder when
// the pid has not been seen yet.
func (t *Tree) ensure(pid model.Pid) *Node {
	if node, ok := t.Nodes[pid]; ok {
		return node
	}
	node := &Node{Status: model.StatusVanished, placeholder: true}
	t.Nodes[pid] = node
	return node
}

// addChild inserts pid into the node's ascending child list, reporting
// false if it was already present.
func (n *Node) addChild(pid model.Pid) bool {
	i := sort.Search(len(n.Children), func(i int) bool { return n.Children[i] >= pid })
	if i < len(n.Children) && n.Children[i] == pid {
		return false
	}
	n.Children = append(n.Children, 0)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = pid
	return true
}

// Walk traverses the tree depth-first, visiting roots in ascending pid
// order and each node's children in ascending pid order before the next
// sibling. visit receives the node's depth below its root. The
// traversal is iterative, so pathologically deep trees cannot exhaust
// the call stack.
//
// Walk fails with ErrCycle when child lists lead back to a node already
// visited or when some nodes cannot be reached from any root. Trees
// returned by Build never trigger either case.
func (t *Tree) Walk(visit func(pid model.Pid, node *Node, depth int)) error {
	type frame struct {
		pid   model.Pid
		depth int
	}

	visited := make(map[model.Pid]bool, len(t.Nodes))
	var stack []frame
	for _, root := range t.Roots {
		stack = append(stack[:0], frame{pid: root})
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[f.pid] {
				return cyclef("pid %d reached twice", f.pid)
			}
			visited[f.pid] = true

			node := t.Nodes[f.pid]
			visit(f.pid, node, f.depth)

			// Push in reverse so the smallest child pops first.
			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{pid: node.Children[i], depth: f.depth + 1})
			}
		}
	}
	if len(visited) != len(t.Nodes) {
		return cyclef("%d of %d processes unreachable from any root", len(t.Nodes)-len(visited), len(t.Nodes))
	}
	return nil
}
