package gamestate

import (
	"fmt"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/alphaspy/cards"
)

// Config describes the table a game is dealt for.
type Config struct {
	NumPlayers int
	HandSize   int
	Deck       cards.Set
}

// DefaultConfig deals 4 cards to each of numPlayers players from the FullDeck.
func DefaultConfig(numPlayers int) Config {
	return Config{
		NumPlayers: numPlayers,
		HandSize:   4,
		Deck:       cards.FullDeck,
	}
}

func (c Config) validate() error {
	if c.NumPlayers < 2 || c.NumPlayers > MaxPlayers {
		return errors.Errorf("number of players must be between 2 and %d, got %d",
			MaxPlayers, c.NumPlayers)
	}

	if c.HandSize <= 0 {
		return errors.Errorf("hand size must be positive, got %d", c.HandSize)
	}

	if c.NumPlayers*c.HandSize > c.Deck.Len() {
		return errors.Errorf("cannot deal %d cards to %d players from a deck of %d",
			c.HandSize, c.NumPlayers, c.Deck.Len())
	}

	if c.Deck.Contains(cards.Unknown) {
		return errors.Errorf("deck must not contain %v cards", cards.Unknown)
	}

	return nil
}

// Seat receives the private information a player learns during the game.
// Both methods are called before the corresponding public Spy event is emitted.
type Seat interface {
	// ReceiveSpyCard is called on the spying player with the card they took.
	ReceiveSpyCard(card cards.Card, from Player)
	// CardStolen is called on the spied player with the card they lost.
	CardStolen(card cards.Card, by Player)
}

// GameState represents the current state of the game.
//
// GameState is the ground truth: it knows every player's hand and the
// order of the draw pile. Players only observe the public Events emitted
// on its Bus and the private notifications delivered to their Seat.
type GameState struct {
	config Config
	rng    *rand.Rand
	bus    Bus

	drawPile    cards.Stack
	discardPile cards.Stack
	hands       []cards.Set
	active      []bool
	seats       []Seat

	// The history of player actions that were taken to reach this state.
	history History
}

// New returns a new GameState created by shuffling the configured deck and
// dealing a hand to each player. Dealing emits no events, so subscribers may
// be registered after New returns but must be registered before the first Apply.
func New(config Config, rng *rand.Rand) (*GameState, error) {
	if err := config.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	drawPile := cards.NewStackFromCards(config.Deck.AsSlice())
	drawPile.Shuffle(rng)

	gs := &GameState{
		config:      config,
		rng:         rng,
		drawPile:    drawPile,
		discardPile: cards.NewStack(),
		hands:       make([]cards.Set, config.NumPlayers),
		active:      make([]bool, config.NumPlayers),
		seats:       make([]Seat, config.NumPlayers),
	}

	for i := 0; i < config.HandSize; i++ {
		for p := range gs.hands {
			gs.hands[p].Add(gs.drawPile.DrawTop())
		}
	}

	for p := range gs.active {
		gs.active[p] = true
	}

	return gs, nil
}

// Subscribe registers handler to receive every public Event of type t.
func (gs *GameState) Subscribe(t EventType, handler func(Event)) {
	gs.bus.Subscribe(t, handler)
}

// Sit registers the Seat that receives player p's private notifications.
func (gs *GameState) Sit(p Player, seat Seat) {
	gs.mustBeValid(p)
	gs.seats[p] = seat
}

func (gs *GameState) String() string {
	return fmt.Sprintf("draw pile: %s, discard: %s, hands: %v, active: %v",
		gs.drawPile, gs.discardPile, gs.hands, gs.active)
}

// NumPlayers returns the number of players dealt into the game.
func (gs *GameState) NumPlayers() int {
	return gs.config.NumPlayers
}

// Deck returns every card in the game.
func (gs *GameState) Deck() cards.Set {
	return gs.config.Deck
}

// ActivePlayers returns the players still in the game, in ascending order.
func (gs *GameState) ActivePlayers() []Player {
	var result []Player
	for p, active := range gs.active {
		if active {
			result = append(result, Player(p))
		}
	}

	return result
}

// IsActive returns whether p is still in the game.
func (gs *GameState) IsActive(p Player) bool {
	return int(p) < len(gs.active) && gs.active[p]
}

// IsOver returns whether at most one player is left in the game.
func (gs *GameState) IsOver() bool {
	return len(gs.ActivePlayers()) <= 1
}

// Winner returns the last player standing, if the game is over and
// anyone is left.
func (gs *GameState) Winner() (Player, bool) {
	active := gs.ActivePlayers()
	if len(active) != 1 {
		return 0, false
	}

	return active[0], true
}

// Hand returns the cards in player p's hand.
func (gs *GameState) Hand(p Player) cards.Set {
	gs.mustBeValid(p)
	return gs.hands[p]
}

// DrawPile returns a copy of the draw pile, top card first.
func (gs *GameState) DrawPile() cards.Stack {
	return cards.NewStackFromCards(gs.drawPile)
}

// DiscardPile returns the cards currently in the discard pile.
func (gs *GameState) DiscardPile() cards.Set {
	return gs.discardPile.AsSet()
}

// History returns the actions applied so far.
func (gs *GameState) History() History {
	result := make(History, len(gs.history))
	copy(result, gs.history)
	return result
}

// LegalActions returns the actions player p may take after drawing.
// Discarding any card in hand is always legal; each targeted card may be
// played against any other active player.
func (gs *GameState) LegalActions(p Player) []Action {
	if gs.IsOver() || !gs.IsActive(p) {
		return nil
	}

	hand := gs.hands[p]
	var result []Action
	for _, card := range hand.Distinct() {
		result = append(result, Action{Player: p, Type: DiscardCard, Card: card})
	}

	for _, actionType := range allActions {
		card, ok := playedCard[actionType]
		if !ok || !hand.Contains(card) {
			continue
		}

		for _, target := range gs.ActivePlayers() {
			if target != p {
				result = append(result, Action{Player: p, Type: actionType, Target: target})
			}
		}
	}

	return result
}

// Apply validates the given Action and applies it, emitting the resulting
// public Events. An Action that returns an error leaves the GameState unchanged.
func (gs *GameState) Apply(action Action) error {
	if err := gs.check(action); err != nil {
		return errors.Wrapf(err, "cannot apply %v", action)
	}

	glog.V(2).Infof("Applying %v", action)
	switch action.Type {
	case DrawCard:
		gs.drawCard(action.Player)
	case DiscardCard:
		gs.discard(action.Player, action.Card)
	case PlaySpy, PlaySpymaster:
		gs.discard(action.Player, playedCard[action.Type])
		gs.spy(action.Player, action.Target, numSpied[action.Type])
	case PlayDuelist:
		gs.discard(action.Player, cards.Duelist)
		gs.duel(action.Player, action.Target)
	}

	gs.history = append(gs.history, action)
	gs.eliminateEmptyHands()
	return nil
}

func (gs *GameState) check(action Action) error {
	if gs.IsOver() {
		return errors.New("game is over")
	}

	if int(action.Player) >= gs.config.NumPlayers {
		return errors.Errorf("unknown player %v", action.Player)
	}

	if !gs.active[action.Player] {
		return errors.Errorf("%v has been eliminated", action.Player)
	}

	hand := gs.hands[action.Player]
	switch action.Type {
	case DrawCard:
		return nil
	case DiscardCard:
		if !hand.Contains(action.Card) {
			return errors.Errorf("%v does not hold %v", action.Player, action.Card)
		}
		return nil
	case PlaySpy, PlaySpymaster, PlayDuelist:
		card := playedCard[action.Type]
		if !hand.Contains(card) {
			return errors.Errorf("%v does not hold %v", action.Player, card)
		}
		if action.Target == action.Player {
			return errors.Errorf("%v cannot target themselves", action.Player)
		}
		if !gs.IsActive(action.Target) {
			return errors.Errorf("target %v is not in the game", action.Target)
		}
		return nil
	default:
		return errors.Errorf("invalid action type %v", action.Type)
	}
}

func (gs *GameState) discard(player Player, card cards.Card) {
	gs.hands[player].Remove(card)
	gs.discardPile.InsertCard(card, 0)
	gs.bus.Emit(Discard{Player: player, Card: card})
}

func (gs *GameState) spy(player, target Player, n int) {
	for i := 0; i < n && !gs.hands[target].IsEmpty(); i++ {
		card := randomCard(gs.rng, gs.hands[target])
		gs.hands[target].Remove(card)
		gs.hands[player].Add(card)

		if seat := gs.seats[player]; seat != nil {
			seat.ReceiveSpyCard(card, target)
		}
		if seat := gs.seats[target]; seat != nil {
			seat.CardStolen(card, player)
		}

		gs.bus.Emit(Spy{
			Spying:    player,
			Spied:     target,
			Remaining: gs.hands[target].Len(),
		})
	}
}

func (gs *GameState) duel(challenger, defender Player) {
	duel := ResolveDuel(gs.rng, challenger, gs.hands[challenger], defender, gs.hands[defender])
	for _, p := range SortedPlayers(duel.Discarded) {
		discarded := duel.Discarded[p]
		gs.hands[p].RemoveAll(discarded)
		for _, card := range discarded.AsSlice() {
			gs.discardPile.InsertCard(card, 0)
		}
	}

	// Traps are simultaneous: take every trapped card before handing any out.
	for _, trapper := range duel.Trappers() {
		for victim, trapped := range duel.Trapped[trapper] {
			gs.hands[victim].RemoveAll(trapped)
		}
	}
	for _, trapper := range duel.Trappers() {
		for _, trapped := range duel.Trapped[trapper] {
			gs.hands[trapper].AddAll(trapped)
		}
	}

	gs.bus.Emit(duel)
}

func (gs *GameState) eliminateEmptyHands() {
	for p, active := range gs.active {
		if active && gs.hands[p].IsEmpty() {
			gs.active[p] = false
			glog.V(1).Infof("%v is out of cards and has been eliminated", Player(p))
			gs.bus.Emit(Eliminated{Player: Player(p)})
		}
	}
}

// Validate sanity checks the GameState to ensure every card in the deck
// is in exactly one place.
func (gs *GameState) Validate() error {
	total := gs.drawPile.AsSet().Union(gs.discardPile.AsSet())
	for p, hand := range gs.hands {
		if err := gs.validateHand(Player(p)); err != nil {
			return errors.Wrapf(err, "player %v hand invalid", Player(p))
		}

		total.AddAll(hand)
	}

	if total != gs.config.Deck {
		return errors.Errorf("cards in play %v do not match deck %v", total, gs.config.Deck)
	}

	return nil
}

func (gs *GameState) validateHand(p Player) error {
	hand := gs.hands[p]
	if !gs.active[p] && !hand.IsEmpty() {
		return errors.Errorf("eliminated player still holds %v", hand)
	}

	if !hand.IsSubsetOf(gs.config.Deck) {
		return errors.Errorf("%v is not drawn from deck %v", hand, gs.config.Deck)
	}

	return nil
}

func (gs *GameState) mustBeValid(p Player) {
	if int(p) >= gs.config.NumPlayers {
		panic(fmt.Errorf("%v is not in a game of %d players", p, gs.config.NumPlayers))
	}
}
