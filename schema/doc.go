// Package schema implements Daxa's type algebra, named-definition
// registry, and validator.
//
// # Overview
//
// A Schema holds struct, enum, and alias definitions plus named
// constants for one document or parse session. Types are written as
// strings ("[int]", "map[string,User]", "string? @minLength(1)") and
// parsed with Schema.ParseType; ResolveFully follows alias references,
// merging optionality and constraints, and rejects cycles.
//
// ValidateIntegrity checks the whole schema once (resolvable field
// types, valid defaults and constants) and freezes it; after that a
// Validator checks values against resolved types, reporting failures
// with dotted value paths.
//
// # Related Packages
//
//   - github.com/daxa-format/go-daxa/ir - value representation
//   - github.com/daxa-format/go-daxa/parse - document parsing
package schema
