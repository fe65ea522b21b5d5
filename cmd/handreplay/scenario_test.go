package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	sc, err := loadScenario("testdata/heads_up.hcl")
	require.NoError(t, err)

	require.Equal(t, 10, sc.SmallBlind)
	require.Equal(t, 20, sc.BigBlind)
	require.Len(t, sc.Seats, 2)
	require.Equal(t, "alice", sc.Seats[0].PlayerID)
	require.Equal(t, 1000, sc.Seats[1].Stack)
	require.Len(t, sc.Actions, 2)
	require.Equal(t, "bet", sc.Actions[0].Kind)
}

func TestStepToAction(t *testing.T) {
	fold := step{PlayerID: "alice", Kind: "fold"}
	action, err := fold.toAction()
	require.NoError(t, err)
	require.Equal(t, 0, action.Amount)

	bet := step{PlayerID: "alice", Kind: "bet", Amount: 40}
	action, err = bet.toAction()
	require.NoError(t, err)
	require.Equal(t, 40, action.Amount)

	_, err = step{PlayerID: "alice", Kind: "raise"}.toAction()
	require.Error(t, err)
}
