// Package yaml loads application configuration from YAML files.
package yaml

import (
	"os"
	"time"

	"github.com/epollo/epollo"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors epollo.Config with pointer fields so that a key
// absent from the file can be told apart from a zero value. Only keys
// present in the file override the defaults.
type fileConfig struct {
	Topics *[]string `yaml:"topics"`

	Ollama struct {
		Model       *string `yaml:"model"`
		VisionModel *string `yaml:"vision_model"`
		APIURL      *string `yaml:"api_url"`
	} `yaml:"ollama"`

	Filtering struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"filtering"`

	Display struct {
		RemoveMedia *bool `yaml:"remove_media"`
		SummaryView *bool `yaml:"summary_view"`
	} `yaml:"display"`

	Fetch struct {
		Timeout  *string `yaml:"timeout"`
		MaxBytes *int64  `yaml:"max_bytes"`
	} `yaml:"fetch"`

	Screenshot struct {
		Width    *int    `yaml:"width"`
		Height   *int    `yaml:"height"`
		FullPage *bool   `yaml:"full_page"`
		Format   *string `yaml:"format"`
		Quality  *int    `yaml:"quality"`
	} `yaml:"screenshot"`
}

// LoadConfig reads configuration from path and merges it over the
// built-in defaults. A missing file is not an error: the defaults are
// returned. A file that cannot be read or parsed also yields the
// defaults, along with the error, so callers can warn and continue.
func LoadConfig(path string) (epollo.Config, error) {
	cfg := epollo.DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, epollo.Errorf(epollo.EINVALID, "reading config file: %v", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, epollo.Errorf(epollo.EINVALID, "parsing config file: %v", err)
	}

	if err := merge(&cfg, &fc); err != nil {
		return epollo.DefaultConfig(), err
	}
	return cfg, nil
}

// merge applies every key present in the file over cfg.
func merge(cfg *epollo.Config, fc *fileConfig) error {
	if fc.Topics != nil {
		cfg.Topics = *fc.Topics
	}

	if fc.Ollama.Model != nil {
		cfg.Ollama.Model = *fc.Ollama.Model
	}
	if fc.Ollama.VisionModel != nil {
		cfg.Ollama.VisionModel = *fc.Ollama.VisionModel
	}
	if fc.Ollama.APIURL != nil {
		cfg.Ollama.APIURL = *fc.Ollama.APIURL
	}

	if fc.Filtering.Enabled != nil {
		cfg.Filtering.Enabled = *fc.Filtering.Enabled
	}

	if fc.Display.RemoveMedia != nil {
		cfg.Display.RemoveMedia = *fc.Display.RemoveMedia
	}
	if fc.Display.SummaryView != nil {
		cfg.Display.SummaryView = *fc.Display.SummaryView
	}

	if fc.Fetch.Timeout != nil {
		timeout, err := time.ParseDuration(*fc.Fetch.Timeout)
		if err != nil {
			return epollo.Errorf(epollo.EINVALID, "invalid fetch timeout %q: %v", *fc.Fetch.Timeout, err)
		}
		cfg.Fetch.Timeout = timeout
	}
	if fc.Fetch.MaxBytes != nil {
		cfg.Fetch.MaxBytes = *fc.Fetch.MaxBytes
	}

	if fc.Screenshot.Width != nil {
		cfg.Screenshot.Width = *fc.Screenshot.Width
	}
	if fc.Screenshot.Height != nil {
		cfg.Screenshot.Height = *fc.Screenshot.Height
	}
	if fc.Screenshot.FullPage != nil {
		cfg.Screenshot.FullPage = *fc.Screenshot.FullPage
	}
	if fc.Screenshot.Format != nil {
		format := *fc.Screenshot.Format
		if format != epollo.FormatPNG && format != epollo.FormatJPEG {
			return epollo.Errorf(epollo.EINVALID, "invalid screenshot format %q", format)
		}
		cfg.Screenshot.Format = format
	}
	if fc.Screenshot.Quality != nil {
		cfg.Screenshot.Quality = *fc.Screenshot.Quality
	}

	return nil
}
