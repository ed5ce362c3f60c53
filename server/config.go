package server

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/lumenchat/lumen/pkg/llm"
	"github.com/lumenchat/lumen/pkg/usage"
)

// Config is the chat server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string `toml:"listen_addr"`

	// BackendURL is the inference backend base URL (e.g., "http://localhost:11434")
	BackendURL string `toml:"backend_url"`

	// Model is the default model for generation requests. A chat request
	// may override it per message.
	Model string `toml:"model"`

	// Energy holds the display-only energy estimate constants.
	Energy EnergyConfig `toml:"energy"`

	// Generation tunes the upstream generation requests.
	Generation GenerationConfig `toml:"generation"`
}

// GenerationConfig carries the knobs forwarded to the backend with every
// generation request. Everything is optional; unset values leave the
// backend's own defaults in place.
type GenerationConfig struct {
	System    string `toml:"system"`     // System prompt prepended by the backend
	KeepAlive string `toml:"keep_alive"` // How long the backend keeps the model loaded

	Temperature   *float64 `toml:"temperature"`
	TopP          *float64 `toml:"top_p"`
	TopK          *int     `toml:"top_k"`
	Seed          *int     `toml:"seed"`
	NumPredict    *int     `toml:"num_predict"`
	NumCtx        *int     `toml:"num_ctx"`
	RepeatPenalty *float64 `toml:"repeat_penalty"`
	RepeatLastN   *int     `toml:"repeat_last_n"`
	Stop          []string `toml:"stop"`
}

// Options maps the configured knobs onto request options. Returns nil when
// nothing is set, so the request body omits the section entirely.
func (g GenerationConfig) Options() *llm.Options {
	if g.Temperature == nil && g.TopP == nil && g.TopK == nil && g.Seed == nil &&
		g.NumPredict == nil && g.NumCtx == nil &&
		g.RepeatPenalty == nil && g.RepeatLastN == nil && len(g.Stop) == 0 {
		return nil
	}

	return &llm.Options{
		Temperature:   g.Temperature,
		TopP:          g.TopP,
		TopK:          g.TopK,
		Seed:          g.Seed,
		NumPredict:    g.NumPredict,
		NumCtx:        g.NumCtx,
		RepeatPenalty: g.RepeatPenalty,
		RepeatLastN:   g.RepeatLastN,
		Stop:          g.Stop,
	}
}

// EnergyConfig carries the presentational energy constants. They are
// flavor figures, not measurements, which is why they are configurable.
type EnergyConfig struct {
	WattsUnderLoad  float64 `toml:"watts_under_load"`
	SecondsPerToken float64 `toml:"seconds_per_token"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		BackendURL: "http://localhost:11434",
		Model:      "deepseek-r1",
		Energy: EnergyConfig{
			WattsUnderLoad:  usage.DefaultWattsUnderLoad,
			SecondsPerToken: usage.DefaultSecondsPerToken,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults, so a partial
// file only overrides what it names.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Meter builds the usage meter from the configured constants.
func (c Config) Meter() usage.Meter {
	return usage.Meter{
		WattsUnderLoad:  c.Energy.WattsUnderLoad,
		SecondsPerToken: c.Energy.SecondsPerToken,
	}
}
