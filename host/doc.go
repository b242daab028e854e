// Package host runs the shared application module as a WebAssembly guest.
//
// It abstracts the underlying WASM engine (wazero), owns the module lifecycle
// and performs the low-level ABI work of passing a mount point's identifier and
// configuration into guest memory. It also registers the host functions that
// let the guest log and inspect the page.
package host
