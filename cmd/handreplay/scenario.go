package main

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/lox/holdem-engine/internal/game"
)

// scenarioFile is the on-disk HCL shape for a scripted hand replay: a
// seating ring, a game configuration, and the ordered action sequence
// the CLI feeds through Hand.Act.
type scenarioFile struct {
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	Antes      int    `hcl:"antes,optional"`
	TimeLimit  int    `hcl:"time_limit,optional"`
	Seed       int64  `hcl:"seed,optional"`
	Seats      []seat `hcl:"seat,block"`
	Actions    []step `hcl:"action,block"`
}

type seat struct {
	PlayerID string `hcl:"player_id"`
	Stack    int    `hcl:"stack"`
}

type step struct {
	PlayerID string `hcl:"player_id"`
	Kind     string `hcl:"kind"`
	Amount   int    `hcl:"amount,optional"`
}

func loadScenario(path string) (scenarioFile, error) {
	var sc scenarioFile
	if err := hclsimple.DecodeFile(path, nil, &sc); err != nil {
		return scenarioFile{}, fmt.Errorf("handreplay: loading scenario: %w", err)
	}
	return sc, nil
}

func (sc scenarioFile) config() game.Configuration {
	return game.Configuration{
		SmallBlind: sc.SmallBlind,
		BigBlind:   sc.BigBlind,
		Antes:      sc.Antes,
		TimeLimit:  sc.TimeLimit,
	}
}

func (sc scenarioFile) buildSeats() []*game.Seat {
	seats := make([]*game.Seat, len(sc.Seats))
	for i, s := range sc.Seats {
		seats[i] = &game.Seat{PlayerID: s.PlayerID, Stack: s.Stack}
	}
	return seats
}

func (s step) toAction() (game.PlayerAction, error) {
	switch s.Kind {
	case "fold":
		return game.Fold(), nil
	case "bet":
		return game.Bet(s.Amount), nil
	default:
		return game.PlayerAction{}, fmt.Errorf("handreplay: unknown action kind %q", s.Kind)
	}
}
