package game

import (
	"sort"

	chehsunliu "github.com/chehsunliu/poker"
)

// Winner is one entry of an evaluator oracle's result: the player who
// shares (or holds outright) the best hand, and the five cards that
// make it up.
type Winner struct {
	PlayerID     string
	WinningCards []Card
}

// Evaluator is the card-ranking oracle collaborator. It is invoked
// synchronously, once per pot, with the hole cards of every live
// player, the shared board, and the ids of the players eligible for
// that pot; only the eligible players are ranked.
type Evaluator interface {
	CalculateWinners(holeCards map[string][2]Card, board []Card, eligible []string) []Winner
}

// chehsunliuEvaluator wraps github.com/chehsunliu/poker, converting
// between the engine's two-character card codec and the oracle's
// internal Card representation at the boundary. Lower ranks are
// better in the wrapped library, so ties are exactly the players
// sharing the minimum rank value.
type chehsunliuEvaluator struct{}

// NewEvaluator returns the default oracle-backed evaluator.
func NewEvaluator() Evaluator {
	return chehsunliuEvaluator{}
}

func (chehsunliuEvaluator) CalculateWinners(holeCards map[string][2]Card, board []Card, eligible []string) []Winner {
	boardCards := toChehsunliu(board)

	type scored struct {
		playerID string
		rank     int32
		all      []chehsunliu.Card
	}

	var hands []scored
	for _, id := range eligible {
		hole, ok := holeCards[id]
		if !ok {
			continue
		}
		all := append(append([]chehsunliu.Card{}, toChehsunliu(hole[:])...), boardCards...)
		hands = append(hands, scored{
			playerID: id,
			rank:     chehsunliu.Evaluate(all),
			all:      all,
		})
	}
	if len(hands) == 0 {
		return nil
	}

	best := hands[0].rank
	for _, h := range hands[1:] {
		if h.rank < best {
			best = h.rank
		}
	}

	var winners []Winner
	for _, h := range hands {
		if h.rank == best {
			winners = append(winners, Winner{
				PlayerID:     h.playerID,
				WinningCards: bestFiveOf(h.all, h.rank),
			})
		}
	}
	return winners
}

// bestFiveOf finds the five-card subset of all that reproduces rank,
// since chehsunliu/poker's Evaluate only returns a strength value for
// the best five of seven, not the cards composing it.
func bestFiveOf(all []chehsunliu.Card, rank int32) []Card {
	n := len(all)
	indices := make([]int, 5)
	var combo func(start, depth int) []Card
	combo = func(start, depth int) []Card {
		if depth == 5 {
			hand := make([]chehsunliu.Card, 5)
			for i, idx := range indices {
				hand[i] = all[idx]
			}
			if chehsunliu.Evaluate(hand) == rank {
				return fromChehsunliu(hand)
			}
			return nil
		}
		for i := start; i < n; i++ {
			indices[depth] = i
			if found := combo(i+1, depth+1); found != nil {
				return found
			}
		}
		return nil
	}
	found := combo(0, 0)
	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })
	return found
}

func toChehsunliu(cards []Card) []chehsunliu.Card {
	out := make([]chehsunliu.Card, len(cards))
	for i, c := range cards {
		out[i] = chehsunliu.NewCard(string(c))
	}
	return out
}

func fromChehsunliu(cards []chehsunliu.Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = Card(c.String())
	}
	return out
}

// dedupeSortedCards returns the sorted, de-duplicated union of card
// sets, used to build the givePots callback's winningCards per §4.6.
func dedupeSortedCards(groups ...[]Card) []Card {
	seen := make(map[Card]bool)
	var out []Card
	for _, group := range groups {
		for _, c := range group {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
