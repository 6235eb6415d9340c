// Package prefs persists user preferences that must survive restarts,
// currently just the forced-offline switch.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

const (
	prefsFileName = "prefs"
	prefsFileType = "yaml"
	prefsFileExt  = "prefs.yaml"

	keyOfflineMode = "offline_mode"
)

// Prefs is a viper-backed preference file in the config directory. Reads are
// served from memory; writes go straight back to disk.
type Prefs struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// Load reads prefs.yaml from the config directory, creating the directory if
// needed. A missing file is not an error; defaults apply.
func Load(configDir string) (*Prefs, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(keyOfflineMode, false)
	v.SetConfigName(prefsFileName)
	v.SetConfigType(prefsFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read prefs: %w", err)
		}
	}

	return &Prefs{v: v, path: filepath.Join(configDir, prefsFileExt)}, nil
}

// OfflineMode reports whether the user has forced local-only behavior.
func (p *Prefs) OfflineMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v.GetBool(keyOfflineMode)
}

// SetOfflineMode persists the forced-offline switch.
func (p *Prefs) SetOfflineMode(offline bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.v.Set(keyOfflineMode, offline)
	if err := p.v.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
