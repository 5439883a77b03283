// Package register appends project records to a dated CSV log.
//
// One file is kept per calendar day (<dir>/<YYYY-MM-DD>.csv). The header row
// is written once when the file is created, and a row is appended only when
// the file holds no row with the same type, name, version and environment.
// The read-then-append sequence takes no lock: concurrent invocations against
// the same log file can interleave and lose or duplicate rows, so a Logger
// must only be used sequentially by a single process.
package register
