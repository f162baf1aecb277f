// SPDX-License-Identifier: Apache-2.0

package menu

// Apply returns the tree that results from applying a patch sequence to
// tree. Presentation hosts that keep a shadow copy of the rendered menu use
// this instead of reimplementing patch semantics. Unknown ids are ignored;
// patches describe a tree the host has already seen.
func Apply(tree Node, patches []Patch) Node {
	for _, p := range patches {
		switch p.Op {
		case OpRemove:
			removeNode(&tree, p.ID)
		case OpInsert:
			insertNode(&tree, p.ParentID, p.Index, p.Node)
		case OpUpdateLabel:
			if n := findNode(&tree, p.ID); n != nil {
				n.Label = p.Label
			}
		case OpReorder:
			if parent := findNode(&tree, p.ParentID); parent != nil {
				reorderChildren(parent, p.Order)
			}
		}
	}
	return tree
}

func findNode(n *Node, id string) *Node {
	if n.ID == id {
		return n
	}
	for i := range n.Children {
		if found := findNode(&n.Children[i], id); found != nil {
			return found
		}
	}
	return nil
}

func removeNode(n *Node, id string) bool {
	for i := range n.Children {
		if n.Children[i].ID == id {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
		if removeNode(&n.Children[i], id) {
			return true
		}
	}
	return false
}

func insertNode(tree *Node, parentID string, index int, node Node) {
	parent := findNode(tree, parentID)
	if parent == nil {
		return
	}
	if index < 0 || index > len(parent.Children) {
		index = len(parent.Children)
	}
	parent.Children = append(parent.Children, Node{})
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = node
}

func reorderChildren(parent *Node, order []string) {
	byID := make(map[string]Node, len(parent.Children))
	for _, c := range parent.Children {
		byID[c.ID] = c
	}
	reordered := make([]Node, 0, len(parent.Children))
	for _, id := range order {
		if c, ok := byID[id]; ok {
			reordered = append(reordered, c)
			delete(byID, id)
		}
	}
	// Children the order list does not mention keep their place at the end.
	for _, c := range parent.Children {
		if _, left := byID[c.ID]; left {
			reordered = append(reordered, c)
		}
	}
	parent.Children = reordered
}
