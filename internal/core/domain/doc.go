// Package domain defines the core entities for invoicename.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines the fundamental types:
//
//   - Settings: Explicit run configuration, built once at process start
//   - RenamePlan: Source and destination of one proposed rename
//   - FileResult: Outcome of processing one invoice file
//   - BatchReport: Aggregate outcome of one directory run
//   - Layout: Invoice layout family detected from extracted text
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
