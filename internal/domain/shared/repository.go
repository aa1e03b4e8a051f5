package shared

// Sort direction values accepted by list queries.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sort describes an optional ordering for a list query. An empty Key means
// no ordering was requested; repositories check Key against a per-entity
// allow-list and silently ignore keys outside it.
type Sort struct {
	Key       string
	Direction string
}

// NewSort normalizes a raw key/direction pair into a Sort. Direction
// defaults to ascending unless "desc" is given (case-insensitive prefix
// form "-key" is also accepted, mirroring common query conventions).
func NewSort(key, direction string) Sort {
	s := Sort{Key: key, Direction: SortAsc}
	if len(key) > 0 && key[0] == '-' {
		s.Key = key[1:]
		s.Direction = SortDesc
	}
	if direction == SortDesc || direction == "DESC" {
		s.Direction = SortDesc
	}
	return s
}

// IsZero reports whether no ordering was requested.
func (s Sort) IsZero() bool {
	return s.Key == ""
}
