// Package seed loads roster and scenario data from YAML, falling back to the
// copies compiled into the binary.
package seed

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	tradedomain "github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apperror"
)

var (
	//go:embed roster.yaml
	defaultRoster []byte

	//go:embed scenarios.yaml
	defaultScenarios []byte
)

// Scenarios returns the embedded scenarios document.
func Scenarios() []byte { return defaultScenarios }

// Roster returns the embedded roster document.
func Roster() []byte { return defaultRoster }

type rosterFile struct {
	Assets []tradedomain.Asset `yaml:"assets"`
}

// ParseRoster decodes a roster document with a top-level assets list.
// Assets without a kind are players.
func ParseRoster(data []byte) ([]tradedomain.Asset, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperror.New(apperror.CodeSeedLoadFailed, apperror.WithCause(err), apperror.WithContext("roster"))
	}
	for i := range f.Assets {
		a := &f.Assets[i]
		if a.ID == "" || a.Team == "" {
			return nil, apperror.Validation(apperror.CodeSeedLoadFailed, "asset "+a.Name+" needs id and team")
		}
		if a.Kind == "" {
			a.Kind = tradedomain.KindPlayer
		}
	}
	return f.Assets, nil
}

// LoadRoster reads the roster at path, or the embedded roster when path is empty.
func LoadRoster(path string) ([]tradedomain.Asset, error) {
	if path == "" {
		return ParseRoster(defaultRoster)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.New(apperror.CodeSeedLoadFailed, apperror.WithCause(err), apperror.WithContext(path))
	}
	return ParseRoster(data)
}
