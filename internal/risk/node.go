package risk

type NodeKind string

const (
	KindZone  NodeKind = "ZONE"
	KindAsset NodeKind = "ASSET"
)

// Node is a selected element of the tree: exactly one of Zone or Asset is set,
// according to Kind.
type Node struct {
	Kind  NodeKind
	Zone  *Zone
	Asset *Asset
}

func ZoneNode(z *Zone) Node   { return Node{Kind: KindZone, Zone: z} }
func AssetNode(a *Asset) Node { return Node{Kind: KindAsset, Asset: a} }

func (n Node) ID() string {
	switch n.Kind {
	case KindZone:
		return n.Zone.ID
	case KindAsset:
		return n.Asset.ID
	}
	return ""
}

func (n Node) Name() string {
	switch n.Kind {
	case KindZone:
		return n.Zone.Name
	case KindAsset:
		return n.Asset.Name
	}
	return ""
}

// Find looks up a zone or asset by id. It stops descending at a zone already
// visited, so a malformed tree cannot make it loop.
func (s *Site) Find(id string) (Node, bool) {
	g := guard{}
	for i := range s.RootZones {
		if n, ok := findInZone(&s.RootZones[i], id, g); ok {
			return n, true
		}
	}
	return Node{}, false
}

func findInZone(z *Zone, id string, g guard) (Node, bool) {
	if g.enter(z, nil) != nil {
		return Node{}, false
	}
	if z.ID == id {
		return ZoneNode(z), true
	}
	for i := range z.Assets {
		if z.Assets[i].ID == id {
			return AssetNode(&z.Assets[i]), true
		}
	}
	for _, sub := range z.SubZones {
		if sub == nil {
			continue
		}
		if n, ok := findInZone(sub, id, g); ok {
			return n, true
		}
	}
	return Node{}, false
}
