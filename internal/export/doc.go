// Package export writes computed systems to disk as csv tables and json
// snapshots.
package export
