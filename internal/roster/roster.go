// Package roster loads the static set of reference professional players the
// analyzer ranks against. The roster is loaded once at startup and is
// read-only for the lifetime of the process.
package roster

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed dataset.yaml
var embeddedDataset []byte

// Player is one reference roster entry with a precomputed feature vector.
type Player struct {
	Name     string    `koanf:"name"`
	Position string    `koanf:"position"`
	Club     string    `koanf:"club"`
	Vector   []float64 `koanf:"vector"`
}

// dataset mirrors the YAML document shape.
type dataset struct {
	Players []Player `koanf:"players"`
}

// Load reads the roster dataset. When path is empty the embedded default
// dataset is used; otherwise the YAML file at path is loaded. Every vector
// must have exactly dim dimensions and every name must be unique and
// non-empty; violations fail the load so a bad dataset stops the process at
// startup instead of skewing rankings later.
func Load(ctx context.Context, path string, dim int) ([]Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("roster load cancelled: %w", err)
	}

	k := koanf.New(".")
	if path == "" {
		if err := k.Load(rawbytes.Provider(embeddedDataset), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: embedded dataset: %w", ErrLoad, err)
		}
	} else {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
		}
	}

	var ds dataset
	if err := k.UnmarshalWithConf("", &ds, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	if err := validate(ds.Players, dim); err != nil {
		return nil, err
	}
	return ds.Players, nil
}

func validate(players []Player, dim int) error {
	if len(players) == 0 {
		return fmt.Errorf("%w: dataset has no players", ErrInvalidDataset)
	}
	seen := make(map[string]struct{}, len(players))
	for i, p := range players {
		if p.Name == "" {
			return fmt.Errorf("%w: entry %d has no name", ErrInvalidDataset, i)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: duplicate player %q", ErrInvalidDataset, p.Name)
		}
		seen[p.Name] = struct{}{}
		if len(p.Vector) != dim {
			return fmt.Errorf("%w: %q has %d dimensions, want %d",
				ErrInvalidDataset, p.Name, len(p.Vector), dim)
		}
	}
	return nil
}
