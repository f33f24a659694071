package tracegate

import (
	"sync"
)

var defaultGate = sync.OnceValue(func() *Gate {
	g, err := NewGate()
	if err != nil {
		panic(err) // NewGate without options cannot fail
	}

	return g
})

// Default returns the process-wide gate reading DefaultConfigFile from the working directory.
func Default() *Gate {
	return defaultGate()
}

// Matches asks the process-wide gate.
func Matches(text string) bool {
	return Default().Matches(text)
}
