// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage (~/.errcorpus/config.toml)
//
// A configuration file looks like:
//
//	[corpus]
//	root = "/data/blackbox"
//
//	[collect]
//	jobs = 8
//	output_dir = "/data/errors"
//
//	[combine]
//	output = "/data/errors/errors.sqlite3"
//
//	[classify]
//	cache_size = 4096
//
//	[watch]
//	settle_ms = 5000
package file
