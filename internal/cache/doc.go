// Package cache holds the raw component data read from disk.
//
// A Store maps component names to normalized JSON text: compact, object
// keys sorted, numbers kept exactly as written, and the last value kept
// for a repeated key. It is filled in bulk, and only when completely empty: once any entry exists,
// FillIfEmpty adds nothing, so a component whose data file appears after
// the first fill stays absent until Clear or Reload is called. Nothing in
// this package calls Clear or Reload on its own.
//
// Read and parse failures are isolated per component and returned as
// Failures; no entry is stored for a failed component.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Fills hold the write lock for
// the whole pass, so concurrent callers never observe a partial fill and
// only the first caller reads from disk.
package cache
