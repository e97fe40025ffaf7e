package cards

// FullDeck is every card that exists in one game.
var FullDeck = NewSetFromCards([]Card{
	Guard, Guard, Guard, Guard, Guard, Guard,
	Duelist, Duelist, Duelist, Duelist, Duelist,
	Spy, Spy, Spy, Spy,
	Spymaster, Spymaster,
	Trapper, Trapper, Trapper,
	Decoy, Decoy, Decoy, Decoy,
	Crown, Crown,
})
