// Package ports defines the dispatcher's collaborators: the host document,
// the shared module and its loader, and the diagnostic sink.
// Infrastructure adapters implement these interfaces.
package ports
