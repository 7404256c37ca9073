package clipboard

import "errors"

// ErrUnsupported indicates that no clipboard utility is available on this system.
var ErrUnsupported = errors.New("clipboard is not supported on this system (install xclip, xsel or wl-clipboard)")
