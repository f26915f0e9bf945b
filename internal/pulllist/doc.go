// Package pulllist owns the persistent pull list: the set of comic releases
// the user is tracking, keyed by normalized title and release date. It reads
// snapshot exports, normalizes titles into search patterns, and reconciles
// the SQLite-backed store by wholesale replacement.
package pulllist
