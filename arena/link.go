package arena

// Link is an optional reference: either Some(ref) or None.
//
// Absence is represented explicitly rather than by a sentinel Ref, and clients
// are expected to branch on Get.
type Link struct {
	ref     Ref
	present bool
}

// None returns the absent link.
func None() Link {
	return Link{}
}

// Some returns a link to r.
func Some(r Ref) Link {
	return Link{ref: r, present: true}
}

// Get returns the referenced Ref, if present.
func (l Link) Get() (Ref, bool) {
	return l.ref, l.present
}

// IsNone reports whether l is absent.
func (l Link) IsNone() bool {
	return !l.present
}

// Is reports whether l is present and refers to r.
func (l Link) Is(r Ref) bool {
	return l.present && l.ref == r
}

func (l Link) String() string {
	if !l.present {
		return "none"
	}
	return l.ref.String()
}
