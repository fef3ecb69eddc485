package linker

// Origin classifies where the source of a location can be browsed
type Origin int

const (
	// Unavailable means no browsable source exists
	Unavailable Origin = iota
	// StandardLibrary means the file belongs to the toolchain sources
	StandardLibrary
	// LocalVersionControlled means the file lies in a local git checkout
	LocalVersionControlled
)

func (o Origin) String() string {
	switch o {
	case StandardLibrary:
		return "stdlib"
	case LocalVersionControlled:
		return "checkout"
	default:
		return "unavailable"
	}
}

// Link represents a resolved source link; an Unavailable link has an empty URL
type Link struct {
	URL    string
	Origin Origin
}

// IsEmpty reports whether no link could be resolved
func (l Link) IsEmpty() bool {
	return l.URL == ""
}

var unavailable = Link{Origin: Unavailable}
