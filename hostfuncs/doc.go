// Package hostfuncs provides the host capabilities offered to module instances.
//
// Handlers are plain Go functions over JSON payloads and have no WASM runtime
// dependency; infrastructure/wazero exports them to guests. The registry is
// immutable once built, so lookups need no locking.
//
// The document bundle gives an instance read-only access to the page, the way the
// original instance located its own mount node by id.
package hostfuncs
