package protocol

// Wire constants.
const (
	Version    byte = 0x01
	HeaderSize      = 4
)

// Shared wire limits. Encode and decode both enforce these from one place
// so the two directions cannot drift.
const (
	MaxFields       = 255
	MaxMessageBytes = 65535
	MaxNameBytes    = 255
	MaxStringBytes  = 65535
	MaxListElements = 65535

	// maxDepth bounds List/Object nesting. The format itself only bounds
	// depth by buffer size, which still allows thousands of levels inside
	// one 64 KiB message.
	maxDepth = 64
)
