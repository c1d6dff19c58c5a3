// Package token provides source positions and the shared scanners for
// Daxa's string, number, and bytes literals.
package token
