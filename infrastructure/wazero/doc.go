// Package wazero exports host function registries to guests running on the wazero runtime.
//
// It owns the guest ABI: every value crossing the boundary is a byte slice passed
// as a packed i64 (pointer in the upper 32 bits, length in the lower 32), and the
// host places data in guest memory through the guest's "allocate" export.
//
//	registry, err := hostfuncs.NewRegistry(
//	    hostfuncs.WithBundle(hostfuncs.DocumentBundle(doc.Lookup)),
//	)
//	if err != nil {
//	    return err
//	}
//	err = wazero.RegisterWithRuntime(ctx, runtime, registry,
//	    wazero.WithModuleName("petri_host"),
//	)
//
// Handlers that do not follow the request/response pattern, such as log_message,
// are added with WithCustomHandler.
package wazero
