package gamestate

import "strconv"

// Player represents the identity of a seat in the game.
type Player uint8

// MaxPlayers is the largest number of players a game can be configured for.
const MaxPlayers = 6

func (p Player) String() string {
	return "Player" + strconv.Itoa(int(p))
}
