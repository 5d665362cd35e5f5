// Package index reads archive index pairs.
//
// An archive pack has two index files, "<name>.index" (format 1) and
// "<name>.index2" (format 2). Both start with a pack header followed by an
// index header that locates a table of fixed-width records. Format 1
// records are keyed by a composite directory/file hash; format 2 records by
// a full-path hash. Load merges both tables into a single hash map in
// which format 1 entries take precedence.
package index
