package cards

import (
	"fmt"
	"strings"
)

// Set represents an unordered multiset of cards.
// Set[Card] is the number of that Card in the set.
//
// Set is a value type: it can be copied with = and compared with ==,
// which makes it usable as a map key.
type Set [NumTypes]uint8

func NewSet() Set {
	return Set{}
}

// NewSetFromCards creates a new Set from the given slice of Cards.
func NewSetFromCards(cards []Card) Set {
	result := Set{}
	for _, card := range cards {
		result.Add(card)
	}

	return result
}

// IsEmpty returns whether this Set contains any Cards.
func (s Set) IsEmpty() bool {
	return s == Set{}
}

// CountOf gets the number of the given type of Card in the Set.
func (s Set) CountOf(card Card) uint8 {
	return s[card]
}

// Contains returns whether the Set contains at least one of the given type of Card.
func (s Set) Contains(card Card) bool {
	return s.CountOf(card) > 0
}

// Iter calls cb for each distinct Card in the Set, in Card order.
func (s Set) Iter(cb func(card Card, count uint8)) {
	for card, count := range s {
		if count > 0 {
			cb(Card(card), count)
		}
	}
}

// Len gets the total number of Cards in the Set.
func (s Set) Len() int {
	n := 0
	for _, count := range s {
		n += int(count)
	}
	return n
}

// Distinct gets a slice of the distinct Cards in the Set.
func (s Set) Distinct() []Card {
	var result []Card
	s.Iter(func(card Card, count uint8) {
		result = append(result, card)
	})
	return result
}

// AsSlice returns a slice of Cards with the given number of each
// Card as found in this Set.
func (s Set) AsSlice() []Card {
	var result []Card
	s.Iter(func(card Card, count uint8) {
		for i := uint8(0); i < count; i++ {
			result = append(result, card)
		}
	})

	return result
}

// Add includes one of the given Card in the Set.
func (s *Set) Add(card Card) {
	s.AddN(card, 1)
}

func (s *Set) AddN(card Card, n int) {
	s[card] += uint8(n)
}

// Remove removes one of the given Card from the Set.
// Remove panics if the card is not present in the Set.
func (s *Set) Remove(card Card) {
	s.RemoveN(card, 1)
}

func (s *Set) RemoveN(card Card, n int) {
	if int(s.CountOf(card)) < n {
		panic(fmt.Errorf("card %v not in set", card))
	}

	s[card] -= uint8(n)
}

// Discard removes one of the given Card from the Set if there is one.
// It returns whether a card was removed.
func (s *Set) Discard(card Card) bool {
	if s[card] == 0 {
		return false
	}

	s[card]--
	return true
}

// AddAll adds the given cards to the Set.
func (s *Set) AddAll(cards Set) {
	for card, count := range cards {
		s[card] += count
	}
}

// RemoveAll removes the given cards from the set.
// RemoveAll panics if the cards are not present to be removed.
func (s *Set) RemoveAll(cards Set) {
	for card := range s {
		if s[card] < cards[card] {
			panic(fmt.Errorf("cannot remove %d %v cards from set with only %d",
				cards[card], Card(card), s[card]))
		}
	}

	for card, count := range cards {
		s[card] -= count
	}
}

// Subtract returns the multiset difference s - other.
// Cards in other that are not in s are ignored.
func (s Set) Subtract(other Set) Set {
	result := s
	for card, count := range other {
		if result[card] < count {
			result[card] = 0
		} else {
			result[card] -= count
		}
	}

	return result
}

// Union returns the multiset sum of s and other.
func (s Set) Union(other Set) Set {
	result := s
	result.AddAll(other)
	return result
}

// IsSubsetOf returns whether every Card in s appears in other
// at least as many times.
func (s Set) IsSubsetOf(other Set) bool {
	for card, count := range s {
		if count > other[card] {
			return false
		}
	}

	return true
}

// String implements Stringer.
func (s Set) String() string {
	result := make([]string, 0)
	s.Iter(func(card Card, count uint8) {
		cardCount := fmt.Sprintf("%d %v", count, card)
		result = append(result, cardCount)
	})

	return "{" + strings.Join(result, ", ") + "}"
}
