package scene

import (
	"fmt"
	"strconv"
)

// DefaultTeeth is the alternating tooth count used when no list is given.
const DefaultTeeth = 8

// Binding pairs an element with the tooth count it is animated with.
type Binding struct {
	Element *Element
	Teeth   int
}

// AlternatingTeeth returns the default tooth count for the 1-based index i:
// +8 for even indices and -8 for odd ones.
func AlternatingTeeth(i int) int {
	if i%2 == 0 {
		return DefaultTeeth
	}
	return -DefaultTeeth
}

// Discover walks prefix1, prefix2, ... and stops at the first missing id.
func (s *Scene) Discover(prefix string) []Binding {
	bindings := make([]Binding, 0)
	for i := 1; ; i++ {
		e, ok := s.Lookup(prefix + strconv.Itoa(i))
		if !ok {
			return bindings
		}
		bindings = append(bindings, Binding{Element: e, Teeth: AlternatingTeeth(i)})
	}
}

// Resolve binds teeth[i] to prefix(i+1). A nil list falls back to Discover.
// A missing element ends resolution: the bindings found so far are returned
// together with an error naming the id.
func (s *Scene) Resolve(prefix string, teeth []int) ([]Binding, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if teeth == nil {
		return s.Discover(prefix), nil
	}

	bindings := make([]Binding, 0, len(teeth))
	for i, n := range teeth {
		id := prefix + strconv.Itoa(i+1)
		e, ok := s.Lookup(id)
		if !ok {
			return bindings, fmt.Errorf("%w: %s", ErrElementNotFound, id)
		}
		bindings = append(bindings, Binding{Element: e, Teeth: n})
	}
	return bindings, nil
}
