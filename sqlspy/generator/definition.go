package generator

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy/signature"
)

// Definition is the generation-time description of one decorator.
// File-wide settings such as the formatter and the tag keys stay in Config.
type Definition struct {
	Interface *signature.Interface
	TypeName  string
	Trap      bool
	Facets    []Facet
}

// Facet is an optional interface implemented by a decorator.
type Facet struct {
	Interface *signature.Interface
	Fallbacks map[string]string
}

// Definitions builds the definitions of cfg from models.
// A decorator whose interface or facets are not in models is reported in the failure map.
func Definitions(cfg Config, models signature.Models) ([]Definition, map[string]error) {
	definitions := make([]Definition, 0, len(cfg.Decorators))
	failures := make(map[string]error)

	lookup := func(ref string) (*signature.Interface, error) {
		if err, failed := models.Failures[ref]; failed {
			return nil, err
		}

		model, ok := models.Interfaces[ref]
		if !ok {
			return nil, errors.Join(ErrInterfaceNotLoaded, fmt.Errorf("%s", ref))
		}

		return model, nil
	}

	for _, dc := range cfg.Decorators {
		model, err := lookup(dc.Interface)
		if err != nil {
			failures[dc.Name] = err
			continue
		}

		def := Definition{
			Interface: model,
			TypeName:  dc.Name,
			Trap:      dc.trap(cfg.Trap),
		}

		for _, fc := range dc.Facets {
			facetModel, facetErr := lookup(fc.Interface)
			if facetErr != nil {
				err = facetErr
				break
			}

			def.Facets = append(def.Facets, Facet{Interface: facetModel, Fallbacks: fc.Fallbacks})
		}

		if err != nil {
			failures[dc.Name] = err
			continue
		}

		definitions = append(definitions, def)
	}

	return definitions, failures
}
