package snapshot

import "errors"

// Sentinel errors for snapshot decoding
var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrCorrupt            = errors.New("corrupt snapshot file")
)
