package wire

// Location is the (group, object) coordinate that addresses and orders
// every object on a track. Ordering is lexicographic on (Group, Object);
// equality is componentwise. A Location is immutable once constructed.
type Location struct {
	Group  uint64
	Object uint64
}

// Compare returns -1, 0, or 1 as l is less than, equal to, or greater than
// other, ordering lexicographically on (Group, Object).
func (l Location) Compare(other Location) int {
	switch {
	case l.Group != other.Group:
		if l.Group < other.Group {
			return -1
		}
		return 1
	case l.Object != other.Object:
		if l.Object < other.Object {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Less reports whether l sorts strictly before other.
func (l Location) Less(other Location) bool { return l.Compare(other) < 0 }

// Equal reports whether l and other address the same object.
func (l Location) Equal(other Location) bool { return l == other }
