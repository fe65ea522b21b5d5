package game

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// HandOption configures optional injections for a Hand during
// construction. Every injection has a production default, so a caller
// passing no options gets a fully working, wall-clock-driven hand.
type HandOption func(*handSettings)

type handSettings struct {
	deckProvider DeckProvider
	evaluator    Evaluator
	clock        quartz.Clock
	logger       *log.Logger
	givePots     func(PotAward)
}

// WithDeckProvider injects a custom deck provider, overriding the
// default RNG-seeded shuffle. Tests use this to arrange a known deck.
func WithDeckProvider(p DeckProvider) HandOption {
	return func(s *handSettings) { s.deckProvider = p }
}

// WithSeed seeds the default deck provider deterministically.
func WithSeed(seed int64) HandOption {
	return func(s *handSettings) { s.deckProvider = RandomDeckProvider(rand.New(rand.NewSource(seed))) }
}

// WithEvaluator injects a custom evaluator oracle, overriding the
// default github.com/chehsunliu/poker-backed implementation.
func WithEvaluator(e Evaluator) HandOption {
	return func(s *handSettings) { s.evaluator = e }
}

// WithClock injects a quartz.Clock. Production callers can omit this
// (it defaults to quartz.NewReal()); tests inject quartz.NewMock(t) to
// fast-forward timers and inter-street delays deterministically.
func WithClock(c quartz.Clock) HandOption {
	return func(s *handSettings) { s.clock = c }
}

// WithLogger injects a *log.Logger; the hand scopes it with
// .With("component", "hand").
func WithLogger(l *log.Logger) HandOption {
	return func(s *handSettings) { s.logger = l }
}

// WithGivePots injects the pot-award callback fired once per pot in
// creation order during showdown.
func WithGivePots(fn func(PotAward)) HandOption {
	return func(s *handSettings) { s.givePots = fn }
}

// NewHand constructs a hand over seats (index 0 is the button) with
// the given configuration. The hand is inert until Start is called.
func NewHand(seats []*Seat, config Configuration, opts ...HandOption) *Hand {
	settings := &handSettings{}
	for _, opt := range opts {
		opt(settings)
	}
	if settings.deckProvider == nil {
		settings.deckProvider = RandomDeckProvider(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	if settings.evaluator == nil {
		settings.evaluator = NewEvaluator()
	}
	if settings.clock == nil {
		settings.clock = quartz.NewReal()
	}
	if settings.logger == nil {
		settings.logger = log.Default()
	}
	if settings.givePots == nil {
		settings.givePots = func(PotAward) {}
	}

	seatByID := make(map[string]*Seat, len(seats))
	seatIndex := make(map[string]int, len(seats))
	for i, s := range seats {
		seatByID[s.PlayerID] = s
		seatIndex[s.PlayerID] = i
	}

	return &Hand{
		seats:        seats,
		seatByID:     seatByID,
		seatIndex:    seatIndex,
		config:       config,
		deckProvider: settings.deckProvider,
		evaluator:    settings.evaluator,
		clock:        settings.clock,
		logger:       settings.logger.With("component", "hand"),
		givePots:     settings.givePots,
		holeCards:    make(map[string][2]Card),
		bets:         make(map[string]int),
	}
}
