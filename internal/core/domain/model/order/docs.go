// Package order models the slice of a commerce order that the workflow engine reads.
//
// The order itself lives in an external store; this package only describes the
// snapshot fetched at the start of every operation (status fields, total, customer
// email, creation time). Snapshots are never cached across calls, so the engine
// always works against the latest status.
package order
