package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
small_blind = 5
big_blind   = 10
antes       = 1
time_limit  = 30
`), 0o644))

	cfg, err := LoadConfiguration(path)
	require.NoError(t, err)
	require.Equal(t, Configuration{SmallBlind: 5, BigBlind: 10, Antes: 1, TimeLimit: 30}, cfg)
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/table.hcl")
	require.Error(t, err)
}

func TestConfigurationValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Configuration
		wantErr bool
	}{
		{"valid", Configuration{SmallBlind: 10, BigBlind: 20}, false},
		{"zero small blind", Configuration{SmallBlind: 0, BigBlind: 20}, true},
		{"zero big blind", Configuration{SmallBlind: 10, BigBlind: 0}, true},
		{"small exceeds big", Configuration{SmallBlind: 30, BigBlind: 20}, true},
		{"negative antes", Configuration{SmallBlind: 10, BigBlind: 20, Antes: -1}, true},
		{"negative time limit", Configuration{SmallBlind: 10, BigBlind: 20, TimeLimit: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
