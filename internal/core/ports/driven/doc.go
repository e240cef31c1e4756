// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - TextExtractor: Turns a document file into plain text
//   - DocumentSource: Enumerates invoice files in a directory
//   - DocumentWatcher: Reports invoice files as they appear
//   - FileSystem: Occupancy checks, renames and copies
//   - ConfigStore: Persistent application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
