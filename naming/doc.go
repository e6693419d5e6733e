// Package naming splits filenames, validates model suggestions and resolves
// duplicate names against the live state of a directory.
//
// Duplicate resolution appends " (N)" before the extension, N counting up from
// 1, and re-queries the directory for every candidate because earlier renames
// in the same run change what is taken.
package naming
