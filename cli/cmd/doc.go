// Package cmd provides the menugen subcommands: gen compiles a menu
// description to C, fmt prints the normalized description, preview renders
// the screens each item produces, eval reports which items are visible for
// a set of features and values, and init writes a configuration file.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the configuration file.
	ConfigIdentifier = "config"
)
