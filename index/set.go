/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package index

import (
	"slices"

	"github.com/suparena/keyregistry/keys"
)

// entitySet is an insertion ordered set of entities compared by identity.
type entitySet struct {
	order []keys.Keyable
	pos   map[keys.Keyable]int
}

func newEntitySet() *entitySet {
	return &entitySet{pos: make(map[keys.Keyable]int)}
}

func (s *entitySet) add(e keys.Keyable) bool {
	if _, exists := s.pos[e]; exists {
		return false
	}
	s.pos[e] = len(s.order)
	s.order = append(s.order, e)
	return true
}

func (s *entitySet) remove(e keys.Keyable) bool {
	i, exists := s.pos[e]
	if !exists {
		return false
	}
	delete(s.pos, e)
	s.order = slices.Delete(s.order, i, i+1)
	for j := i; j < len(s.order); j++ {
		s.pos[s.order[j]] = j
	}
	return true
}

func (s *entitySet) contains(e keys.Keyable) bool {
	_, exists := s.pos[e]
	return exists
}

func (s *entitySet) len() int {
	return len(s.order)
}

func (s *entitySet) list() []keys.Keyable {
	return slices.Clone(s.order)
}
