// Package format names the output formats a Daxa value can encode to.
//
// # Related Packages
//
//   - github.com/daxa-format/go-daxa/encode - Encode values to text
package format
