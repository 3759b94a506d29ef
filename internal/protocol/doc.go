// Package protocol owns the wire contract for exchange messages.
//
// Ownership boundary:
// - value model (tagged Integer/String/List/Object union)
// - encode/decode primitives over complete in-memory buffers
// - shared wire limits
package protocol
