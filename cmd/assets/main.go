// Command assets inspects an assets directory through the resource library.
//
// Usage:
//
//	assets [--root DIR] [--retain] [--log-level LEVEL] [--log-file FILE] <command>
//
// Commands:
//
//	exists NAME...   report whether each name resolves under the root
//	load NAME...     load each name twice and print the shared handle state
//	ls               list the assets under the root and the kind decoding them
//
// Flags may also be set in assets.toml in the working directory or through
// ASSETS_* environment variables (ASSETS_ROOT, ASSETS_LOG_LEVEL, ...).
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
