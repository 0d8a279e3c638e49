package menu

import "iter"

// Item is one node of the menu navigation tree. Each item owns its
// children; there is no pointer back to the parent (see [Item.Walk]).
type Item struct {
	Label      string
	LabelShort *string
	Icon       *string
	Shortcut   *string
	HelpText   *string
	Type       Type
	Operation  *Operation
	Conditions *Conditions
	Children   []*Item
}

// Visit is one step of a pre-order tree walk.
type Visit struct {
	Item   *Item
	Parent *Item // nil for the root
	Depth  int
	Index  int // pre-order position, root is 0
}

// Walk returns an iterator over the subtree rooted at item in pre-order.
// Index matches the number the generator assigns to each item.
func (item *Item) Walk() iter.Seq[Visit] {
	return func(yield func(Visit) bool) {
		index := 0

		var walk func(it, parent *Item, depth int) bool

		walk = func(it, parent *Item, depth int) bool {
			if !yield(Visit{Item: it, Parent: parent, Depth: depth, Index: index}) {
				return false
			}

			index++

			for _, child := range it.Children {
				if !walk(child, it, depth+1) {
					return false
				}
			}

			return true
		}

		if item != nil {
			walk(item, nil, 0)
		}
	}
}

// Count returns the number of items in the subtree rooted at item.
func (item *Item) Count() int {
	n := 0
	for range item.Walk() {
		n++
	}

	return n
}
