package domain

// SelectionKind tells whether a Selection holds one profile or a set.
type SelectionKind int

const (
	SelectionSingle SelectionKind = iota
	SelectionMany
)

// Selection is what the output layer records: either one profile or an
// ordered set of them. Callers pick the variant once, where the shape is known.
type Selection struct {
	kind   SelectionKind
	single *Profile
	many   *ProfileSet
}

func Single(profile *Profile) Selection {
	return Selection{kind: SelectionSingle, single: profile}
}

func Many(set *ProfileSet) Selection {
	if set == nil {
		set = NewProfileSet()
	}
	return Selection{kind: SelectionMany, many: set}
}

func (s Selection) Kind() SelectionKind {
	return s.kind
}

// Profile returns the wrapped profile of a Single selection.
func (s Selection) Profile() *Profile {
	return s.single
}

// Set returns the wrapped set of a Many selection.
func (s Selection) Set() *ProfileSet {
	return s.many
}

// Profiles flattens either variant into an ordered slice.
func (s Selection) Profiles() []*Profile {
	if s.kind == SelectionSingle {
		if s.single == nil {
			return nil
		}
		return []*Profile{s.single}
	}
	return s.many.Profiles()
}
