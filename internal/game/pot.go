package game

import (
	"fmt"
	"sort"
)

// Pot is a single tier of the pot list: an amount plus the set of
// players who may win it at showdown. Eligibility only ever shrinks
// (a live player can fold and be retroactively removed) or a pot can
// merge with another of identical eligibility — it is never widened.
type Pot struct {
	PotID    string
	Amount   int
	Eligible map[string]bool
}

// eligibleKey canonicalizes a pot's eligibility set for exact-match
// comparison during pot construction.
func eligibleKey(m map[string]bool) string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	key := ""
	for _, id := range ids {
		key += id + "\x00"
	}
	return key
}

func equalEligibility(a, b map[string]bool) bool {
	return eligibleKey(a) == eligibleKey(b)
}

// moveBetsToPots implements the pot builder: it consumes the current
// street's bets map entirely, layering contributions into the pot
// list by tier. A folded player's chips still flow into the pots
// they contributed to, but that player is excluded from eligibility.
func (h *Hand) moveBetsToPots() {
	type contribution struct {
		playerID string
		amount   int
	}

	contributions := make([]contribution, 0, len(h.bets))
	for id, amount := range h.bets {
		if amount > 0 {
			contributions = append(contributions, contribution{id, amount})
		}
	}
	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].amount < contributions[j].amount
	})

	for len(contributions) > 0 {
		smallest := contributions[0].amount

		eligible := make(map[string]bool)
		for _, c := range contributions {
			if h.isLive(c.playerID) {
				eligible[c.playerID] = true
			}
		}

		amount := smallest * len(contributions)

		merged := false
		for i := range h.pots {
			if equalEligibility(h.pots[i].Eligible, eligible) {
				h.pots[i].Amount += amount
				merged = true
				break
			}
		}
		if !merged {
			h.potSeq++
			h.pots = append(h.pots, Pot{
				PotID:    fmt.Sprintf("pot-%d", h.potSeq),
				Amount:   amount,
				Eligible: eligible,
			})
		}

		remaining := contributions[:0]
		for _, c := range contributions {
			c.amount -= smallest
			if c.amount > 0 {
				remaining = append(remaining, c)
			}
		}
		contributions = remaining
	}

	h.bets = make(map[string]int)
}

// removeFromPots drops playerID from every existing pot's eligibility
// set — called when a player folds, per the retroactive-removal rule.
func (h *Hand) removeFromPots(playerID string) {
	for i := range h.pots {
		delete(h.pots[i].Eligible, playerID)
	}
}

// totalPotAmount sums every pot's amount, used by chip-conservation checks.
func (h *Hand) totalPotAmount() int {
	total := 0
	for _, p := range h.pots {
		total += p.Amount
	}
	return total
}
