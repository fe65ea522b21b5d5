package game

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

func testSeats(names ...string) []*Seat {
	seats := make([]*Seat, len(names))
	for i, n := range names {
		seats[i] = &Seat{PlayerID: n, Stack: 1000}
	}
	return seats
}

func fixedDeck(cards ...string) DeckProvider {
	return func() []Card {
		out := make([]Card, len(cards))
		for i, c := range cards {
			card, err := ParseCard(c)
			if err != nil {
				panic(err)
			}
			out[i] = card
		}
		return out
	}
}

// fullDeckExcept puts an explicit prefix first and pads it out to 52
// cards with every remaining card in suit-then-rank order, so Deal
// never runs dry. The scenarios below all pass an empty prefix, so
// every card they deal comes from the padding.
func fullDeckExcept(prefix ...string) DeckProvider {
	return func() []Card {
		seen := make(map[Card]bool, len(prefix))
		out := make([]Card, 0, 52)
		for _, c := range prefix {
			card, err := ParseCard(c)
			if err != nil {
				panic(err)
			}
			out = append(out, card)
			seen[card] = true
		}
		for _, suit := range suits {
			for _, rank := range ranks {
				card := Card([]byte{byte(rank), byte(suit)})
				if !seen[card] {
					out = append(out, card)
				}
			}
		}
		return out
	}
}

func advance(t *testing.T, clock *quartz.Mock) {
	t.Helper()
	clock.Advance(interStreetDelay).MustWait(context.Background())
}

func newTestHand(t *testing.T, seats []*Seat, cfg Configuration, opts ...HandOption) (*Hand, *quartz.Mock) {
	mock := quartz.NewMock(t)
	allOpts := append([]HandOption{WithClock(mock), WithDeckProvider(fullDeckExcept())}, opts...)
	return NewHand(seats, cfg, allOpts...), mock
}

func TestBlindPostingThreePlayers(t *testing.T) {
	seats := testSeats("a", "b", "c")
	h, _ := newTestHand(t, seats, Configuration{SmallBlind: 10, BigBlind: 20})
	require.NoError(t, h.Start())

	state := h.GetState()
	require.Equal(t, 10, state.Bets["b"])
	require.Equal(t, 20, state.Bets["c"])
	require.Equal(t, "a", h.round.ActivePlayer)
}

func TestChecksThroughToFlop(t *testing.T) {
	seats := testSeats("a", "b", "c")
	h, mock := newTestHand(t, seats, Configuration{SmallBlind: 10, BigBlind: 20})
	require.NoError(t, h.Start())

	require.NoError(t, h.Act("a", Bet(20)))
	require.NoError(t, h.Act("b", Bet(10)))
	require.NoError(t, h.Act("c", Bet(0)))

	advance(t, mock)

	state := h.GetState()
	require.Len(t, state.CommunityCards, 3)
}

func TestMinRaiseAfterAllInShortRaise(t *testing.T) {
	seats := []*Seat{
		{PlayerID: "a", Stack: 1000},
		{PlayerID: "b", Stack: 50},
		{PlayerID: "c", Stack: 1000},
	}
	h, _ := newTestHand(t, seats, Configuration{SmallBlind: 10, BigBlind: 20})
	require.NoError(t, h.Start())

	require.NoError(t, h.Act("a", Bet(100)))
	require.NoError(t, h.Act("b", Bet(40))) // remaining stack after posting the 10 small blind -> all-in for 50 total

	require.False(t, h.IsValidBet("c", 79))
	require.False(t, h.IsValidBet("c", 159))
	require.True(t, h.IsValidBet("c", 160))

	require.NoError(t, h.Act("c", Bet(160)))

	state := h.GetState()
	require.Equal(t, 100, state.Bets["a"])
	require.Equal(t, 50, state.Bets["b"])
	require.Equal(t, 180, state.Bets["c"])
}

func TestHugeRaiseSetsMinRaise(t *testing.T) {
	seats := []*Seat{
		{PlayerID: "a", Stack: 50000},
		{PlayerID: "b", Stack: 50000},
	}
	h, _ := newTestHand(t, seats, Configuration{SmallBlind: 10, BigBlind: 20})
	require.NoError(t, h.Start())

	require.NoError(t, h.Act("a", Bet(25000)))

	state := h.GetState()
	require.Equal(t, 24990, state.MinRaise)
}

func TestSidePotsThreeUnequalAllIns(t *testing.T) {
	seats := []*Seat{
		{PlayerID: "a", Stack: 30},
		{PlayerID: "b", Stack: 50},
		{PlayerID: "c", Stack: 1000},
	}
	h, mock := newTestHand(t, seats, Configuration{SmallBlind: 10, BigBlind: 20})
	require.NoError(t, h.Start())

	// b posted SB(10), c posted BB(20); a (the button) is first to act.
	require.NoError(t, h.Act("a", Bet(30))) // all-in for the entire 30-chip stack
	require.NoError(t, h.Act("b", Bet(40))) // remaining stack after the small blind -> all-in for 50 total
	require.NoError(t, h.Act("c", Bet(30))) // matches the largest all-in (50) without a full raise

	// moveBetsToPots settles both side pots synchronously the moment
	// the street closes, before any dealing/award callback runs.
	stateBeforeAward := h.GetState()
	amounts := make([]int, len(stateBeforeAward.Pots))
	for i, p := range stateBeforeAward.Pots {
		amounts[i] = p.Amount
	}
	require.ElementsMatch(t, []int{90, 40}, amounts)

	for i := 0; i < 6; i++ {
		advance(t, mock)
	}

	state := h.GetState()
	require.Len(t, state.CommunityCards, 5)

	awardedTotal := 0
	for _, p := range state.Pots {
		awardedTotal += p.Amount
	}
	require.Equal(t, 0, awardedTotal)
}

// chipTotal sums every chip the hand is responsible for: stacks, live
// bets not yet swept into a pot, and pot amounts. It must equal the
// seats' starting stacks at every observable point in a hand's life.
func chipTotal(h *Hand) int {
	total := 0
	for _, s := range h.seats {
		total += s.Stack
	}
	for _, amount := range h.bets {
		total += amount
	}
	total += h.totalPotAmount()
	return total
}

func TestChipsConservedAcrossHandLifecycle(t *testing.T) {
	seats := []*Seat{
		{PlayerID: "a", Stack: 30},
		{PlayerID: "b", Stack: 50},
		{PlayerID: "c", Stack: 1000},
	}
	initial := 0
	for _, s := range seats {
		initial += s.Stack
	}

	h, mock := newTestHand(t, seats, Configuration{SmallBlind: 10, BigBlind: 20})
	require.NoError(t, h.Start())
	require.Equal(t, initial, chipTotal(h), "conservation must hold immediately after blinds are posted")

	require.NoError(t, h.Act("a", Bet(30))) // all-in for the entire 30-chip stack
	require.Equal(t, initial, chipTotal(h), "conservation must hold mid-street, before the pot is swept")

	require.NoError(t, h.Act("b", Bet(40))) // remaining stack after the small blind -> all-in for 50 total
	require.NoError(t, h.Act("c", Bet(30))) // matches the largest all-in (50) without a full raise
	require.Equal(t, initial, chipTotal(h), "conservation must hold once moveBetsToPots has swept bets into side pots")

	for i := 0; i < 6; i++ {
		advance(t, mock)
		require.Equal(t, initial, chipTotal(h), "conservation must hold through every step of the award cascade")
	}

	// Once every pot is awarded, the whole total must sit in stacks: no
	// chips left in bets or pots that GetState would double-count.
	stacksOnly := 0
	for _, s := range h.seats {
		stacksOnly += s.Stack
	}
	require.Equal(t, initial, stacksOnly)
	require.Equal(t, 0, h.totalPotAmount())
}
