// Package cmd implements the akin subcommands: expand renders a template,
// vars prints its variable table, and repl opens an interactive playground.
package cmd

// CacheIdentifier is the kong variable identifier containing the path to
// the runtime cache directory.
var CacheIdentifier = "cache"
