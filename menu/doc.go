// Package menu defines the menu description grammar: the typed tree built
// from a JSON document, the parser that builds it, and the display content
// derived from it.
//
// # Grammar
//
// A document holds one top-level key ("main_menu" by default) whose value is
// the root item:
//
//	{
//	  "main_menu": {
//	    "label": "Main", "type": "submenu",
//	    "children": [
//	      {
//	        "label": "RGB", "type": "action",
//	        "conditions.feature_enabled": "rgb_matrix",
//	        "operation": {
//	          "action": "rgb_toggle",
//	          "confirm": {"message": "Toggle RGB?"},
//	          "result": {"message": "Done", "mode": "timed", "timeout_sec": 2}
//	        }
//	      }
//	    ]
//	  }
//	}
//
// Items are "action", "submenu", or "display". An operation may carry any
// subset of precondition, input (a list), confirm, result, and
// postcondition. Conditions are either the shorthand key
// "conditions.feature_enabled" naming one feature, or a "conditions" object
// with "match" ("all" or "any") and a list of rules, each one of
// {"feature_enabled": name}, {"value_equals": {"variable", "value"}}, or a
// nested {"match", "rules"} group.
//
// # Lifecycle
//
// An operation runs through the phases returned by [Phases]. For each phase
// [Operation.DisplayContent] derives what the screen shows, and
// [Item.DisplayContent] derives a submenu's navigation screen.
package menu
