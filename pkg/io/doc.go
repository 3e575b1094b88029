// Package io provides utilities for input and output operations related to configuration management.
//
// Subpackages:
//   - configmanager: Layered configuration loading from defaults, files, environment and flags
//
// For low-level file I/O operations (writing, path manipulation),
// see the fsutil package.
package io
