// Package fsutil provides utilities for filesystem operations.
//
// Key functionality:
//   - File writing: WriteFileAtomic
//   - Path operations: ExpandHomePath
package fsutil
