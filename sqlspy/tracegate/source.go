package tracegate

import (
	"errors"
	"io/fs"
	"os"

	"github.com/magiconair/properties"
)

// Source provides the raw content of the trace configuration.
// A Source reports a missing configuration with an error that matches fs.ErrNotExist.
type Source interface {
	Read() ([]byte, error)
}

// FileSource reads the configuration from a properties file.
type FileSource string

// Read returns the file content.
func (f FileSource) Read() ([]byte, error) {
	return os.ReadFile(string(f))
}

// readMatchText returns the matchText value of the source.
// found is false when the source or the key is absent.
func readMatchText(source Source) (text string, found bool, err error) {
	raw, readErr := source.Read()
	if errors.Is(readErr, fs.ErrNotExist) {
		return "", false, nil
	}

	if readErr != nil {
		return "", false, readErr
	}

	loader := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}

	props, parseErr := loader.LoadBytes(raw)
	if parseErr != nil {
		return "", false, parseErr
	}

	text, found = props.Get(MatchTextKey)

	return text, found, nil
}
