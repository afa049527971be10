// Package storage persists rule bases, their compiled token streams and
// evaluation history in SQLite.
//
// Compiled tokens are stored next to the fingerprint of the membership
// layout they were compiled against. When a stored definition no longer
// matches that fingerprint the rules are recompiled on load.
package storage
