// SPDX-License-Identifier: Apache-2.0

package menu

// Op enumerates the minimal edits a presentation host applies.
type Op int

const (
	// OpInsert adds a node (with its subtree) under a parent at an index.
	OpInsert Op = iota
	// OpRemove deletes a node and its subtree.
	OpRemove
	// OpUpdateLabel changes a node's label in place.
	OpUpdateLabel
	// OpReorder rearranges the existing children of one parent.
	OpReorder
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpUpdateLabel:
		return "update-label"
	case OpReorder:
		return "reorder"
	default:
		return "unknown"
	}
}

// Patch is one edit turning the previously rendered tree into the new one.
// Fields are populated per Op: Insert uses ParentID/Index/Node, Remove and
// UpdateLabel use ID (and Label), Reorder uses ParentID/Order.
type Patch struct {
	Op       Op
	ParentID string
	Index    int
	Node     Node
	ID       string
	Label    string
	Order    []string
}

// Diff computes the patch sequence turning old into new. Per parent it emits
// removes, then inserts at their new indices, then label updates; a pure
// order change among surviving children yields exactly one Reorder for that
// parent. Hosts visibly flicker on full rebuilds, so patch minimality is a
// functional requirement here, not an optimization.
func Diff(old, new Node) []Patch {
	var patches []Patch
	diffChildren(&patches, old.ID, old.Children, new.Children)
	return patches
}

func diffChildren(patches *[]Patch, parentID string, old, new []Node) {
	oldByID := make(map[string]*Node, len(old))
	for i := range old {
		oldByID[old[i].ID] = &old[i]
	}
	newIDs := make(map[string]struct{}, len(new))
	for i := range new {
		newIDs[new[i].ID] = struct{}{}
	}

	for i := range old {
		if _, kept := newIDs[old[i].ID]; !kept {
			*patches = append(*patches, Patch{Op: OpRemove, ID: old[i].ID})
		}
	}

	for i := range new {
		if _, existed := oldByID[new[i].ID]; !existed {
			*patches = append(*patches, Patch{Op: OpInsert, ParentID: parentID, Index: i, Node: new[i]})
		}
	}

	for i := range new {
		prev, existed := oldByID[new[i].ID]
		if existed && prev.Label != new[i].Label {
			*patches = append(*patches, Patch{Op: OpUpdateLabel, ID: new[i].ID, Label: new[i].Label})
		}
	}

	if survivorsReordered(old, new, oldByID, newIDs) {
		order := make([]string, len(new))
		for i := range new {
			order[i] = new[i].ID
		}
		*patches = append(*patches, Patch{Op: OpReorder, ParentID: parentID, Order: order})
	}

	// Recurse into children that exist on both sides.
	for i := range new {
		if prev, existed := oldByID[new[i].ID]; existed {
			diffChildren(patches, new[i].ID, prev.Children, new[i].Children)
		}
	}
}

// survivorsReordered reports whether the ids present in both trees appear in
// a different relative order. Removes and index-addressed inserts already
// reproduce the new order when relative order is unchanged, so only this
// condition needs a Reorder.
func survivorsReordered(old, new []Node, oldByID map[string]*Node, newIDs map[string]struct{}) bool {
	var oldOrder, newOrder []string
	for i := range old {
		if _, kept := newIDs[old[i].ID]; kept {
			oldOrder = append(oldOrder, old[i].ID)
		}
	}
	for i := range new {
		if _, existed := oldByID[new[i].ID]; existed {
			newOrder = append(newOrder, new[i].ID)
		}
	}
	for i := range oldOrder {
		if oldOrder[i] != newOrder[i] {
			return true
		}
	}
	return false
}
