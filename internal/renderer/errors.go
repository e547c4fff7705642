package renderer

import "errors"

// ErrUnknownColor is returned for a color name tcell does not know.
var ErrUnknownColor = errors.New("unknown color")
