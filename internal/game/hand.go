package game

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// PotAward is the payload of the pot-award callback, fired once per
// pot in creation order before its chips are credited to the winners.
type PotAward struct {
	PlayerIDs    []string
	WinningCards []Card
	PotID        string
}

// Hand drives exactly one hand of No-Limit Hold'em from seating
// through showdown. All mutation happens on its single mutex; external
// collaborators (deck provider, evaluator, clock, givePots) are
// invoked synchronously from whichever goroutine holds the lock.
type Hand struct {
	mu sync.Mutex

	seats     []*Seat
	seatByID  map[string]*Seat
	seatIndex map[string]int
	config    Configuration

	deck         *Deck
	deckProvider DeckProvider
	evaluator    Evaluator
	clock        quartz.Clock
	logger       *log.Logger
	givePots     func(PotAward)

	holeCards map[string][2]Card
	community []Card
	bets      map[string]int
	pots      []Pot
	potSeq    int
	round     RoundState

	timer     *actorTimer
	started   bool
	destroyed bool
}

// Start deals the hand: posts blinds and antes, deals hole cards, and
// solicits the first action. It fails if fewer than two seats are
// present or the hand was already started.
func (h *Hand) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return ErrAlreadyStarted
	}
	if len(h.seats) < 2 {
		return ErrNotEnoughSeats
	}
	h.started = true
	h.round.Stage = StagePreflop

	h.deck = &Deck{cards: h.deckProvider()}
	for _, s := range h.seats {
		cards := h.dealFromDeck(2)
		h.holeCards[s.PlayerID] = [2]Card{cards[0], cards[1]}
	}

	bbIdx := h.postBlindsAndAntes()
	h.round.MinRaise = h.config.BigBlind
	h.round.LastRaiser = ""
	h.round.PlayersInGame = h.countPlayersInGame()

	firstToAct := h.nextActivePlayer(bbIdx)
	h.round.FirstToAct = firstToAct
	h.round.ActivePlayer = firstToAct

	h.logger.Debug("hand started", "seats", len(h.seats), "small_blind", h.config.SmallBlind, "big_blind", h.config.BigBlind)
	h.afterDelay(h.startTimerForActive)
	return nil
}

// Act processes playerId's action. It is a no-op (returns nil without
// mutating state) if the hand has been destroyed, has reached
// showdown, or playerId has no hole cards. Otherwise it fails with an
// *OutOfTurnError if playerId is not the active actor, or an
// *InvalidBetError if a bet action fails isValidBet.
func (h *Hand) Act(playerID string, action PlayerAction) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.destroyed || h.round.Stage == StageShowdown {
		return nil
	}
	if _, live := h.holeCards[playerID]; !live {
		return nil
	}
	if playerID != h.round.ActivePlayer {
		return &OutOfTurnError{Expected: h.round.ActivePlayer, Actual: playerID}
	}

	if h.timer != nil {
		h.timer.cancel()
		h.timer = nil
	}

	if action.Kind == ActionBet && !h.validateBet(playerID, action.Amount) {
		return &InvalidBetError{PlayerID: playerID, Amount: action.Amount}
	}

	return h.applyAction(playerID, action)
}

// GetState returns a snapshot of the hand's observable state. Hole
// cards of folded players are never included.
func (h *Hand) GetState() StateSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	hole := make(map[string][2]Card, len(h.holeCards))
	for id, cards := range h.holeCards {
		hole[id] = cards
	}
	bets := make(map[string]int, len(h.bets))
	for id, amount := range h.bets {
		bets[id] = amount
	}
	pots := make([]PotSummary, len(h.pots))
	for i, p := range h.pots {
		pots[i] = PotSummary{PotID: p.PotID, Amount: p.Amount}
	}

	return StateSnapshot{
		CommunityCards: append([]Card{}, h.community...),
		HoleCards:      hole,
		Pots:           pots,
		Bets:           bets,
		MinRaise:       h.round.MinRaise,
	}
}

// IsValidBet reports whether amount is a legal bet action for
// playerId in the hand's current state. It never mutates state.
func (h *Hand) IsValidBet(playerID string, amount int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.validateBet(playerID, amount)
}

// GetSeatByPlayerID returns a copy of playerId's seat, if seated.
func (h *Hand) GetSeatByPlayerID(playerID string) (Seat, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	seat, ok := h.seatByID[playerID]
	if !ok {
		return Seat{}, false
	}
	return *seat, true
}

// Destroy marks the hand terminated. Any scheduled callback (the
// active timer, a staged street transition, a queued pot award)
// observes the flag on its next resumption and becomes a no-op.
func (h *Hand) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.destroyed = true
	if h.timer != nil {
		h.timer.cancel()
		h.timer = nil
	}
}

// --- internal mechanics ---

func (h *Hand) validateBet(playerID string, amount int) bool {
	seat, ok := h.seatByID[playerID]
	if !ok {
		return false
	}
	currentBet := h.bets[playerID]
	maxBet := maxBetOf(h.bets)
	maxCallIn := maxCallInOf(h.seats, h.bets)
	return isValidBet(amount, seat.Stack, currentBet, maxBet, maxCallIn, h.round.MinRaise)
}

func (h *Hand) dealFromDeck(n int) []Card {
	return h.deck.Deal(n)
}

// postBlindsAndAntes posts forced bets per §4.2 and returns the big
// blind poster's seat index, which anchors preflop's firstToAct.
func (h *Hand) postBlindsAndAntes() int {
	var sbIdx, bbIdx int
	if len(h.seats) == 2 {
		sbIdx, bbIdx = 0, 1
	} else {
		sbIdx, bbIdx = 1, 2
	}
	h.post(h.seats[sbIdx], h.config.SmallBlind)
	h.post(h.seats[bbIdx], h.config.BigBlind)

	if h.config.Antes > 0 {
		for i, s := range h.seats {
			if i == sbIdx || i == bbIdx {
				continue
			}
			h.post(s, h.config.Antes)
		}
	}
	return bbIdx
}

func (h *Hand) post(seat *Seat, amount int) {
	if amount > seat.Stack {
		amount = seat.Stack
	}
	seat.Stack -= amount
	h.bets[seat.PlayerID] += amount
}

func (h *Hand) isLive(playerID string) bool {
	_, ok := h.holeCards[playerID]
	return ok
}

func (h *Hand) countPlayersInGame() int {
	n := 0
	for _, s := range h.seats {
		if h.isLive(s.PlayerID) && s.Stack > 0 {
			n++
		}
	}
	return n
}

// nextActivePlayer returns the next seat after fromIdx, in ring order,
// that is still live and not all-in — including fromIdx itself if it
// is the only such seat. It returns "" if none qualify.
func (h *Hand) nextActivePlayer(fromIdx int) string {
	n := len(h.seats)
	for i := 1; i <= n; i++ {
		idx := (fromIdx + i) % n
		s := h.seats[idx]
		if h.isLive(s.PlayerID) && s.Stack > 0 {
			return s.PlayerID
		}
	}
	return ""
}

func (h *Hand) advanceFirstToActIfNeeded(seat *Seat, isAllInOrFolded bool) {
	if isAllInOrFolded && seat.PlayerID == h.round.FirstToAct {
		h.round.FirstToAct = h.nextActivePlayer(h.seatIndex[seat.PlayerID])
	}
}

func (h *Hand) processBet(seat *Seat, amount int) {
	currentBet := h.bets[seat.PlayerID]
	maxBet := maxBetOf(h.bets)

	seat.Stack -= amount
	h.bets[seat.PlayerID] = currentBet + amount
	newBet := currentBet + amount

	if newBet >= maxBet+h.round.MinRaise {
		h.round.MinRaise = newBet - maxBet
		h.round.LastRaiser = seat.PlayerID
	}

	h.round.PlayersInGame = h.countPlayersInGame()
	h.advanceFirstToActIfNeeded(seat, seat.Stack == 0)
}

// processFold folds the seat and, if it collapses the hand to a
// single live player, moves bets into pots and schedules the pot
// awards after the inter-street delay, so they run after Act returns.
// It returns true when it has already resolved the hand (the caller
// must not run normal end-of-street logic in that case).
func (h *Hand) processFold(seat *Seat) bool {
	delete(h.holeCards, seat.PlayerID)
	h.removeFromPots(seat.PlayerID)
	h.round.PlayersInGame = h.countPlayersInGame()
	h.advanceFirstToActIfNeeded(seat, true)

	if len(h.holeCards) == 1 {
		h.moveBetsToPots()
		h.round.Stage = StageShowdown
		var winner string
		for id := range h.holeCards {
			winner = id
		}
		h.afterDelay(func() { h.awardSingleWinnerPots(winner, 0) })
		return true
	}
	return false
}

func (h *Hand) applyAction(playerID string, action PlayerAction) error {
	seat := h.seatByID[playerID]

	switch action.Kind {
	case ActionFold:
		if h.processFold(seat) {
			return nil
		}
	case ActionBet:
		h.processBet(seat, action.Amount)
	}

	if h.isEndOfStreet(playerID) {
		h.moveBetsToPots()
		h.afterDelay(h.startNextStage)
		return nil
	}

	next := h.nextActivePlayer(h.seatIndex[playerID])
	h.round.ActivePlayer = next
	h.startTimerForActive()
	return nil
}

// isEndOfStreet implements the three OR'd end-of-street conditions.
func (h *Hand) isEndOfStreet(actorID string) bool {
	maxBet := maxBetOf(h.bets)
	nextID := h.nextActivePlayer(h.seatIndex[actorID])

	if nextID == "" || nextID == actorID || nextID == h.round.LastRaiser {
		return true
	}
	if h.round.PlayersInGame <= 1 && h.bets[nextID] == maxBet {
		return true
	}

	allMatched := true
	for _, s := range h.seats {
		if h.isLive(s.PlayerID) && s.Stack > 0 && h.bets[s.PlayerID] != maxBet {
			allMatched = false
			break
		}
	}
	return allMatched && nextID == h.round.FirstToAct
}

// startNextStage advances the street, dealing community cards as
// needed, and either opens betting or — if fewer than two players can
// still act — keeps dealing straight through to showdown.
func (h *Hand) startNextStage() {
	switch h.round.Stage {
	case StagePreflop:
		h.round.Stage = StageFlop
		h.community = append(h.community, h.dealFromDeck(3)...)
	case StageFlop:
		h.round.Stage = StageTurn
		h.community = append(h.community, h.dealFromDeck(1)...)
	case StageTurn:
		h.round.Stage = StageRiver
		h.community = append(h.community, h.dealFromDeck(1)...)
	case StageRiver:
		h.round.Stage = StageShowdown
		h.runShowdown()
		return
	}

	h.round.MinRaise = h.config.BigBlind
	h.round.LastRaiser = ""
	h.round.PlayersInGame = h.countPlayersInGame()
	firstToAct := h.nextActivePlayer(0)
	h.round.FirstToAct = firstToAct

	if h.round.PlayersInGame < 2 {
		h.afterDelay(h.startNextStage)
		return
	}

	h.round.ActivePlayer = firstToAct
	h.startTimerForActive()
}

func (h *Hand) runShowdown() {
	if len(h.holeCards) <= 1 {
		var winner string
		for id := range h.holeCards {
			winner = id
		}
		h.awardSingleWinnerPots(winner, 0)
		return
	}
	h.awardPotsAtIndex(0)
}

// awardSingleWinnerPots handles the sole-survivor path: the one live
// player wins every pot they're eligible for, with no evaluator call
// and no winningCards.
func (h *Hand) awardSingleWinnerPots(winner string, idx int) {
	if idx >= len(h.pots) {
		return
	}
	pot := &h.pots[idx]
	if pot.Eligible[winner] {
		h.givePots(PotAward{PlayerIDs: []string{winner}, PotID: pot.PotID})
		h.creditPot(winner, pot.Amount)
		pot.Amount = 0
	}
	h.afterDelay(func() { h.awardSingleWinnerPots(winner, idx+1) })
}

// awardPotsAtIndex evaluates and awards pot i, then schedules pot i+1
// after the inter-pot delay.
func (h *Hand) awardPotsAtIndex(i int) {
	if i >= len(h.pots) {
		return
	}
	pot := &h.pots[i]

	eligible := make([]string, 0, len(pot.Eligible))
	for id := range pot.Eligible {
		eligible = append(eligible, id)
	}
	sort.Strings(eligible)

	winners := h.evaluator.CalculateWinners(h.holeCards, h.community, eligible)
	if len(winners) > 0 {
		ids := make([]string, len(winners))
		groups := make([][]Card, len(winners))
		for idx, w := range winners {
			ids[idx] = w.PlayerID
			groups[idx] = w.WinningCards
		}
		h.givePots(PotAward{PlayerIDs: ids, WinningCards: dedupeSortedCards(groups...), PotID: pot.PotID})

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for idx, w := range winners {
			amount := share
			if idx == 0 {
				amount += remainder
			}
			h.creditPot(w.PlayerID, amount)
		}
		pot.Amount = 0
	}
	h.afterDelay(func() { h.awardPotsAtIndex(i + 1) })
}

func (h *Hand) creditPot(playerID string, amount int) {
	h.seatByID[playerID].Stack += amount
}

// afterDelay schedules fn to run after the inter-street delay,
// re-acquiring the lock and checking destroyed before running it —
// this is the resumption point the concurrency model requires every
// suspended callback to honor.
func (h *Hand) afterDelay(fn func()) {
	h.clock.AfterFunc(interStreetDelay, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.destroyed {
			return
		}
		fn()
	})
}

func (h *Hand) startTimerForActive() {
	if h.destroyed || h.round.Stage == StageShowdown {
		return
	}
	if h.config.TimeLimit <= 0 {
		return
	}
	playerID := h.round.ActivePlayer
	h.timer = newActorTimer(h.clock, h.config.TimeLimit, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.destroyed || h.round.ActivePlayer != playerID {
			return
		}
		h.timer = nil
		action := Fold()
		if h.validateBet(playerID, 0) {
			action = Bet(0)
		}
		h.applyAction(playerID, action)
	})
}
