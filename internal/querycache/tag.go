package querycache

// Tag labels cached queries for invalidation. An empty ID is the coarse,
// list-level tag of a type; a non-empty ID addresses a single record.
type Tag struct {
	Type string
	ID   string
}

// T builds a coarse tag.
func T(typ string) Tag {
	return Tag{Type: typ}
}

// ID builds a record tag.
func ID(typ, id string) Tag {
	return Tag{Type: typ, ID: id}
}

func (t Tag) String() string {
	if t.ID == "" {
		return t.Type
	}
	return t.Type + ":" + t.ID
}

// invalidates reports whether invalidating t marks a query providing p as stale.
// A coarse invalidation covers every tag of its type; a record invalidation
// covers only the same record.
func (t Tag) invalidates(p Tag) bool {
	if t.Type != p.Type {
		return false
	}
	return t.ID == "" || t.ID == p.ID
}

func anyInvalidated(invalidated, provided []Tag) bool {
	for _, inv := range invalidated {
		for _, p := range provided {
			if inv.invalidates(p) {
				return true
			}
		}
	}
	return false
}
