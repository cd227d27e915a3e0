package epollo

import "time"

// Config holds application configuration. Values not present in the
// configuration file keep their defaults; see DefaultConfig.
type Config struct {
	// Topics to remove when content filtering is enabled.
	Topics []string `yaml:"topics"`

	Ollama     OllamaConfig     `yaml:"ollama"`
	Filtering  FilteringConfig  `yaml:"filtering"`
	Display    DisplayConfig    `yaml:"display"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
}

// OllamaConfig locates the local LLM service and names its models.
type OllamaConfig struct {
	Model       string `yaml:"model"`
	VisionModel string `yaml:"vision_model"`
	APIURL      string `yaml:"api_url"`
}

// FilteringConfig controls LLM-based topic filtering.
type FilteringConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DisplayConfig controls how fetched pages are presented.
type DisplayConfig struct {
	RemoveMedia bool `yaml:"remove_media"`
	SummaryView bool `yaml:"summary_view"`
}

// FetchConfig bounds network fetches.
type FetchConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	MaxBytes int64         `yaml:"max_bytes"`
}

// ScreenshotConfig sets screenshot capture defaults.
type ScreenshotConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	FullPage bool   `yaml:"full_page"`
	Format   string `yaml:"format"`
	Quality  int    `yaml:"quality"`
}

// DefaultConfig returns the built-in configuration used when no file is
// present. File values are merged over these defaults field by field.
func DefaultConfig() Config {
	return Config{
		Topics: []string{
			"advertising",
			"sponsored content",
			"newsletter signup",
		},
		Ollama: OllamaConfig{
			Model:       "qwen2.5:1.5b",
			VisionModel: "qwen3-vl:2b",
			APIURL:      "http://localhost:11434",
		},
		Filtering: FilteringConfig{Enabled: true},
		Display:   DisplayConfig{},
		Fetch: FetchConfig{
			Timeout:  30 * time.Second,
			MaxBytes: 10 << 20,
		},
		Screenshot: ScreenshotConfig{
			Width:    1200,
			Height:   800,
			FullPage: true,
			Format:   FormatPNG,
			Quality:  90,
		},
	}
}
