package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid ace of hearts", "Ah", false},
		{"valid ten of spades", "Ts", false},
		{"valid two of clubs", "2c", false},
		{"too short", "A", true},
		{"too long", "Ahh", true},
		{"invalid rank", "1h", true},
		{"invalid suit", "Az", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCard(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewDeckHas52UniqueCards(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(1)))
	require.Equal(t, 52, deck.Remaining())

	seen := make(map[Card]bool)
	for deck.Remaining() > 0 {
		card := deck.Deal(1)[0]
		require.False(t, seen[card], "duplicate card dealt: %s", card)
		seen[card] = true
	}
	require.Len(t, seen, 52)
}

func TestDeckDealExhaustedPanics(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(1)))
	deck.Deal(52)
	require.Panics(t, func() { deck.Deal(1) })
}

func TestRandomDeckProviderIsReproducibleWithSameSeed(t *testing.T) {
	a := RandomDeckProvider(rand.New(rand.NewSource(7)))()
	b := RandomDeckProvider(rand.New(rand.NewSource(7)))()
	require.Equal(t, a, b)
}
