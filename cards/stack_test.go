package cards

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestNewStack(t *testing.T) {
	testCards := []Card{Guard, Guard, Spy, Trapper, Decoy, Decoy}
	stack := NewStackFromCards(testCards)
	for i, card := range testCards {
		if stack.NthCard(i) != card {
			t.Errorf("stack position %d has %v, expected %v", i, stack.NthCard(i), card)
		}
	}

	// Mutating the source slice must not affect the Stack.
	testCards[0] = Crown
	if stack.NthCard(0) != Guard {
		t.Errorf("stack shares storage with its input")
	}
}

func TestRemoveCard(t *testing.T) {
	stack := NewStackFromCards([]Card{Guard, Spy, Trapper, Decoy})
	stack.RemoveCard(1)
	expected := Stack{Guard, Trapper, Decoy}
	if !reflect.DeepEqual(stack, expected) {
		t.Errorf("got %v, expected %v", stack, expected)
	}

	stack.RemoveCard(2)
	expected = Stack{Guard, Trapper}
	if !reflect.DeepEqual(stack, expected) {
		t.Errorf("got %v, expected %v", stack, expected)
	}
}

func TestInsertCard(t *testing.T) {
	stack := NewStackFromCards([]Card{Guard, Spy})
	stack.InsertCard(Crown, 1)
	expected := Stack{Guard, Crown, Spy}
	if !reflect.DeepEqual(stack, expected) {
		t.Errorf("got %v, expected %v", stack, expected)
	}

	// Inserting at Len() places the card on the bottom.
	stack.InsertCard(Decoy, stack.Len())
	expected = Stack{Guard, Crown, Spy, Decoy}
	if !reflect.DeepEqual(stack, expected) {
		t.Errorf("got %v, expected %v", stack, expected)
	}
}

func TestDrawTop(t *testing.T) {
	stack := NewStackFromCards([]Card{Duelist, Spy})
	if card := stack.DrawTop(); card != Duelist {
		t.Errorf("drew %v, expected %v", card, Duelist)
	}
	if stack.Len() != 1 {
		t.Errorf("stack has %d cards, expected %d", stack.Len(), 1)
	}
}

func TestDrawTop_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when drawing from an empty stack")
		}
	}()

	stack := NewStack()
	stack.DrawTop()
}

func TestShuffle(t *testing.T) {
	stack := NewStackFromCards(FullDeck.AsSlice())
	before := stack.AsSet()
	stack.Shuffle(rand.New(rand.NewSource(42)))
	if stack.AsSet() != before {
		t.Errorf("shuffle changed the cards in the stack: %v", stack)
	}
}
