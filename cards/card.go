package cards

// Card represents one card from the game deck.
type Card uint8

const (
	Unknown Card = iota
	Guard
	Duelist
	Spy
	Spymaster
	Trapper
	Decoy
	Crown
)

var cardStr = [...]string{
	"Unknown",
	"Guard",
	"Duelist",
	"Spy",
	"Spymaster",
	"Trapper",
	"Decoy",
	"Crown",
}

// String implements Stringer.
func (c Card) String() string {
	if int(c) >= len(cardStr) {
		return "Invalid"
	}

	return cardStr[c]
}

// The number of distinct types of Cards.
const NumTypes = len(cardStr)
