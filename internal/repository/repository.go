// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
// Filters are explicit value types validated before use; no untyped query
// maps cross this boundary.
package repository
