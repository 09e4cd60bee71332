package export

import "errors"

// ErrUnknownFormat is returned for an export format other than json, yaml or markdown
var ErrUnknownFormat = errors.New("unknown export format")
