// Package renamer runs one batch over a directory: it lists the regular
// files, keeps the eligible ones, asks the model for a new name for each of
// them in turn, resolves duplicates against the directory as it is at that
// moment and renames the file.
//
// Files are handled strictly one after the other. Per-file problems (an empty
// or failed suggestion, an invalid name, a failed rename) are logged and the
// batch moves on; only a context cancellation or an exhausted duplicate
// suffix range stops it.
package renamer
