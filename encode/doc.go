// Package encode renders Daxa values to text.
//
// # Usage
//
//	// Encode to Daxa literal syntax
//	v, _ := ir.FromNative(map[string]any{"name": "alice", "age": int64(30)}, nil)
//	err := encode.Encode(v, os.Stdout)
//
//	// Encode to JSON
//	err := encode.Encode(v, os.Stdout, encode.EncodeFormat(format.JSONFormat))
//
// # Related Packages
//
//   - github.com/daxa-format/go-daxa/ir - value representation
//   - github.com/daxa-format/go-daxa/parse - parse text to values
package encode
