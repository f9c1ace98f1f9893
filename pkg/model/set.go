package model

// orderedSet keeps the first occurrence of each value in insertion order.
type orderedSet[T comparable] struct {
	items []T
	index map[T]struct{}
}

func newOrderedSet[T comparable]() *orderedSet[T] {
	return &orderedSet[T]{index: make(map[T]struct{})}
}

// add inserts v and reports whether it was new.
func (s *orderedSet[T]) add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet[T]) contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *orderedSet[T]) values() []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *orderedSet[T]) len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}
