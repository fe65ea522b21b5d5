// Command handreplay loads a seating, a game configuration, and a
// scripted action sequence from an HCL scenario file and replays one
// hand end-to-end through the engine, logging every pot award.
package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Replay  ReplayCmd        `cmd:"" default:"1" help:"Replay a scripted hand from an HCL scenario file"`
}

type ReplayCmd struct {
	Scenario string `arg:"" help:"Path to the .hcl scenario file"`
	Verbose  bool   `short:"V" help:"Enable debug-level logging"`
}

func (c *ReplayCmd) Run() error {
	logger := log.New(log.Default())
	if c.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	sc, err := loadScenario(c.Scenario)
	if err != nil {
		return err
	}
	cfg := sc.config()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("handreplay: %w", err)
	}

	var awards []game.PotAward
	h := game.NewHand(sc.buildSeats(), cfg,
		game.WithSeed(sc.Seed),
		game.WithLogger(logger),
		game.WithGivePots(func(a game.PotAward) {
			awards = append(awards, a)
			logger.Info("pot awarded", "pot_id", a.PotID, "winners", a.PlayerIDs, "winning_cards", a.WinningCards)
		}),
	)

	if err := h.Start(); err != nil {
		return fmt.Errorf("handreplay: starting hand: %w", err)
	}

	for _, s := range sc.Actions {
		action, err := s.toAction()
		if err != nil {
			return err
		}
		if err := h.Act(s.PlayerID, action); err != nil {
			return fmt.Errorf("handreplay: action by %s: %w", s.PlayerID, err)
		}
	}

	waitUntilSettled(h)

	for _, s := range sc.Seats {
		seat, _ := h.GetSeatByPlayerID(s.PlayerID)
		logger.Info("final stack", "player_id", seat.PlayerID, "stack", seat.Stack)
	}
	logger.Info("replay complete", "pots_awarded", len(awards))
	return nil
}

// waitUntilSettled polls the hand's observable state on the real wall
// clock until it stops changing, which happens once every inter-street
// delay and pot award scheduled during the action loop above has run.
// Eight unchanged polls 200ms apart (1.6s) outlast the engine's 1s
// inter-street delay, so a pending step is not taken for the end.
func waitUntilSettled(h *game.Hand) {
	last := h.GetState()
	stable := 0
	for stable < 8 {
		time.Sleep(200 * time.Millisecond)
		next := h.GetState()
		if statesEqual(last, next) {
			stable++
		} else {
			stable = 0
		}
		last = next
	}
}

func statesEqual(a, b game.StateSnapshot) bool {
	if len(a.CommunityCards) != len(b.CommunityCards) || len(a.Pots) != len(b.Pots) {
		return false
	}
	for i := range a.Pots {
		if a.Pots[i] != b.Pots[i] {
			return false
		}
	}
	return true
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handreplay"),
		kong.Description("Replays a scripted No-Limit Hold'em hand through the engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
