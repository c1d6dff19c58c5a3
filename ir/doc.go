// Package ir provides the runtime value representation for Daxa
// documents.
//
// # Overview
//
// All Daxa data (whether parsed from documents, created
// programmatically, or materialized from schema defaults) is
// represented as ir.Value trees. A Value pairs a Kind tag with the
// payload field that kind uses, plus an optional source position.
//
// # Kinds
//
// Values carry instance kinds:
//
//   - Primitives: null, bool, int, float, string, bytes, datetime, uuid
//   - Composites: array (ordered list), struct-instance and map
//     (ordered key-value entries)
//   - Special: enum-instance, any, dxd-source, math-source
//
// The definition kinds (struct-def, enum-def, alias-def) tag schema
// type nodes only; a Value never carries them.
//
// # Related Packages
//
//   - github.com/daxa-format/go-daxa/schema - types and validation
//   - github.com/daxa-format/go-daxa/parse - parse text to values
//   - github.com/daxa-format/go-daxa/encode - encode values to text
package ir
