// Package scan walks a directory tree and records one register row per
// visited directory: detect the manifest, extract name and version, append
// the row to the dated log. Errors are logged and replaced by fallback
// values; no error stops the walk.
package scan
