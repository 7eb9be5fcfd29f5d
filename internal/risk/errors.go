package risk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCyclicStructure means a zone was reached twice while walking a site:
// either the zone graph has a cycle or a zone is shared between parents.
var ErrCyclicStructure = errors.New("zone tree is not a tree")

// StructureError identifies the zone at which the walk found a repeat.
type StructureError struct {
	NodeID   string
	NodeName string
	Path     []string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%v: zone %q (id=%s) reached again at %s",
		ErrCyclicStructure, e.NodeName, e.NodeID, strings.Join(e.Path, PathSeparator))
}

func (e *StructureError) Unwrap() error {
	return ErrCyclicStructure
}

// guard remembers every zone already entered during one walk.
type guard map[*Zone]struct{}

func (g guard) enter(z *Zone, path []string) error {
	if _, ok := g[z]; ok {
		return &StructureError{
			NodeID:   z.ID,
			NodeName: z.Name,
			Path:     append(append([]string(nil), path...), z.Name),
		}
	}
	g[z] = struct{}{}
	return nil
}
