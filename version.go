// Package nest validates directory layouts against JSON Schema documents.
package nest

// Version is the current nest release.
const Version = "0.1.0"
