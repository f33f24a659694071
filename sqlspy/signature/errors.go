package signature

import (
	"errors"
)

// ErrNotInterface is returned when a referenced type is not an interface.
var ErrNotInterface = errors.New("signature: type is not an interface")

// ErrUnsupportedEmbed is returned for embedded elements that are not named interfaces, e.g. type sets.
var ErrUnsupportedEmbed = errors.New("signature: unsupported embedded type")

// ErrTypeNotFound is returned when a referenced type does not exist in its package.
var ErrTypeNotFound = errors.New("signature: type not found")

// ErrInvalidReference is returned for references that are not of the form "import/path.Name".
var ErrInvalidReference = errors.New("signature: invalid type reference")

// ErrPackageLoadFailed is returned when a package could not be loaded or type-checked.
var ErrPackageLoadFailed = errors.New("signature: package could not be loaded")
