package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/wflink/pkg/errors"
)

// Marshal renders cfg as a TOML document that Load accepts back
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return data, nil
}
