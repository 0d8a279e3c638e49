// Package gen emits C initializer source for a parsed menu tree.
//
// # Ordering
//
// [Generator.Generate] walks the tree depth-first. Each item is named
// menu_item_<N> when the walk first reaches it, so the root is menu_item_0,
// but its record is written only after the records of all its descendants.
// Every identifier a record refers to is therefore defined earlier in the
// output, which C static initializers require.
//
// # Output
//
// The output is one header, one record per item in emission order, and a
// footer binding menu_root to the root record:
//
//	#include "menu/common/menu_core.h"
//
//	static const menu_item_t menu_item_1 = { ... };
//	static const menu_item_t* const menu_item_0_children[] = { &menu_item_1 };
//	static const menu_item_t menu_item_0 = { ... };
//
//	const menu_item_t* const menu_root = &menu_item_0;
//
// Records are produced by a [Renderer]. The default renders an embedded
// text/template into C99 designated initializers matching menu_item_t.
package gen
