package cards

import (
	"fmt"
	"math/rand"
	"strings"
)

// Stack represents an ordered pile of cards, such as the draw pile
// or the discard pile. The top card in the pile is always at position 0.
type Stack []Card

func assertWithinRange(n, length int) {
	if n < 0 || n >= length {
		panic(fmt.Errorf("card position %d is out of range for Stack of %d cards", n, length))
	}
}

func NewStack() Stack {
	return Stack{}
}

// NewStackFromCards creates a new Stack from the given slice of Cards.
// The first Card is on top.
func NewStackFromCards(cards []Card) Stack {
	result := make(Stack, len(cards))
	copy(result, cards)
	return result
}

// Len returns the number of cards in the Stack.
func (s Stack) Len() int {
	return len(s)
}

// NthCard returns the identity of the card in the Nth position of the stack.
func (s Stack) NthCard(n int) Card {
	assertWithinRange(n, len(s))
	return s[n]
}

// RemoveCard removes the Card in the Nth position.
func (s *Stack) RemoveCard(n int) {
	assertWithinRange(n, len(*s))
	*s = append((*s)[:n], (*s)[n+1:]...)
}

// InsertCard places the given card inserted in the Nth position.
func (s *Stack) InsertCard(card Card, n int) {
	if n != len(*s) {
		assertWithinRange(n, len(*s))
	}

	*s = append(*s, Unknown)
	copy((*s)[n+1:], (*s)[n:])
	(*s)[n] = card
}

// DrawTop removes and returns the top card of the Stack.
func (s *Stack) DrawTop() Card {
	card := s.NthCard(0)
	s.RemoveCard(0)
	return card
}

// Shuffle randomly permutes the Stack in place.
func (s Stack) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

// AsSet returns the unordered multiset of cards in the Stack.
func (s Stack) AsSet() Set {
	return NewSetFromCards(s)
}

// String implements Stringer.
func (s Stack) String() string {
	cards := make([]string, 0, len(s))
	for _, c := range s {
		cards = append(cards, c.String())
	}

	return "[" + strings.Join(cards, ", ") + "]"
}
