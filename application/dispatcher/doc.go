// Package dispatcher discovers mount points in a host document and initializes one
// independent application instance per mount point from a single shared module.
//
// A run loads the module once, scans the document once, and calls the module entry
// point for every mount point in document order. A fault raised by one call is
// captured in the run report and sent to the diagnostic sink; it never prevents the
// remaining calls. A module load failure abandons the run before any scan.
//
// # Basic Usage
//
//	d := dispatcher.New(loader, doc,
//	    dispatcher.WithMarker(entities.DefaultMarker()),
//	    dispatcher.WithLogger(logger),
//	)
//	report, err := d.Bootstrap(ctx)
//	if err != nil {
//	    // module load failed, nothing was initialized
//	}
//	for _, fault := range report.Faults() {
//	    // per-mount failures, already reported to the sink
//	}
//
// Start runs the same operation asynchronously and delivers a single Completion.
//
// # Sharing a module across runs
//
// Each Dispatcher loads through its own loader. When several dispatchers in one
// process must use the same module handle, wrap the loader once with Share and
// pass the result to every dispatcher; the first Load resolves it, later ones
// (including failures) reuse that result:
//
//	shared := dispatcher.Share(loader)
//	header := dispatcher.New(shared, headerDoc)
//	footer := dispatcher.New(shared, footerDoc)
package dispatcher
