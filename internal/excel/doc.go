// Package excel decodes the columnar table assets stored in archives.
//
// A table is described by a header asset ("<name>.exh") holding the column
// layout, the page ranges and the languages, and by one data asset per
// page and language ("<name>_<startRow>[_<lang>].exd"). Each data page has
// a row directory followed by rows; a row is a fixed-width region of cells
// followed by a blob of zero-terminated strings that text cells address
// relative to the end of the fixed region.
package excel
