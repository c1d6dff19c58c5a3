// Package parse parses Daxa documents.
//
// # Overview
//
// A Daxa document interleaves prose with statements. ParseDocument
// collects struct, enum, type alias, and const definitions into a
// schema.Schema, gathers data, dxd, and math blocks in document order,
// then validates the schema's integrity and every data block against
// its declared type. Lines that do not open with a statement keyword
// are prose and are skipped.
//
// ParseLiteral parses a single value literal.
//
// # Related Packages
//
//   - github.com/daxa-format/go-daxa/ir - value representation
//   - github.com/daxa-format/go-daxa/schema - types and validation
package parse
