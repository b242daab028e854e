// Package entities provides the core domain types of the bootstrap dispatcher:
// mount points discovered in a host document, per-mount outcomes, and the run report.
package entities
