// Package cache stores HTTP responses on disk so a later request for the
// same resource can be revalidated with If-None-Match instead of
// re-downloading it.
//
// Entries are JSON files named by the SHA-256 of their key. Writes go to a
// temporary file that is renamed into place, so a crashed run never leaves
// a half-written entry behind.
package cache
