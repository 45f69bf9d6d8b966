// Package redact strips an embedded username from compiled binaries.
//
// Binaries are treated as opaque byte blobs: every non-overlapping
// occurrence of the secret is replaced, left to right, with the fixed
// placeholder "user". No executable format is parsed, so a secret whose
// length differs from the placeholder changes the file size.
//
// Files are selected from a single directory with a [Filter], either by
// stem ("app" matches "app.exe" and "app.tar.gz") or by extension. Matched
// files are rewritten through a temp file and rename, so a reader never
// observes a partially written binary.
package redact
