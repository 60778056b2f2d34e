// Package output renders validation results for the terminal or for machines.
//
// # Formats
//
// JSON payloads are written to stdout so they can be piped:
//
//	{"valid": true}
//	{"valid": false, "errors": [{"location": "root", ...}]}
//	{"valid": false, "error": {"kind": "parse", "message": "...", "path": "..."}}
//
// Text output uses lipgloss styling consistent with the rest of the suite:
//
//   - Success: green bold
//   - Error: red bold
//   - Info: cyan
//   - Step: indented gray
//   - Verbose: gray (when enabled)
package output
