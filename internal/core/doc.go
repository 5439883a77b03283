// Package core holds the small abstractions shared by every other package:
// a context-aware FileSystem, its OS-backed and in-memory implementations,
// and the permission bits used when creating files and directories.
package core
