package game

// RoundState is the live snapshot of betting-round progress: whose
// turn it is, who opened the street, who last raised, and the current
// minimum raise increment. It is owned exclusively by the Hand that
// created it.
type RoundState struct {
	Stage         Stage
	ActivePlayer  string
	FirstToAct    string
	LastRaiser    string
	MinRaise      int
	PlayersInGame int
}

// StateSnapshot is the externally observable view returned by
// Hand.GetState. Hole cards of folded players are never present.
type StateSnapshot struct {
	CommunityCards []Card
	HoleCards      map[string][2]Card
	Pots           []PotSummary
	Bets           map[string]int
	MinRaise       int
}

// PotSummary is the public, eligibility-free view of a Pot used in
// StateSnapshot. Pot eligibility is not exposed by the Hand's public
// API.
type PotSummary struct {
	PotID  string
	Amount int
}
