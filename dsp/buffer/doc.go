// Package buffer provides the resizable sample store behind the delay lines.
//
// Resize is the only operation that may allocate; it belongs to the
// configuration path, never to a per-sample tick.
package buffer
