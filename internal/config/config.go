package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mgpai22/srtlayers/internal/subtitle"
)

const FormatFCPXML = "fcpxml"

// import settings, read from a YAML file and overridden by flags
type Config struct {
	// words per text layer, coerced to a whole number >= 1
	GroupSize float64 `yaml:"group_size"`
	FontName  string  `yaml:"font_name"`
	// 0 derives the size from the composition height
	FontSize int    `yaml:"font_size" validate:"gte=0"`
	Encoding string `yaml:"encoding"`
	Format   string `yaml:"format" validate:"oneof=fcpxml srt vtt ass ttml"`

	// composition
	Width     int     `yaml:"width" validate:"gte=1"`
	Height    int     `yaml:"height" validate:"gte=1"`
	FrameRate float64 `yaml:"frame_rate" validate:"gt=0,lte=240"`
	Duration  float64 `yaml:"duration" validate:"gte=0"`
}

func Default() *Config {
	return &Config{
		GroupSize: 3,
		FontName:  "",
		FontSize:  0,
		Encoding:  "utf-8",
		Format:    FormatFCPXML,
		Width:     1920,
		Height:    1080,
		FrameRate: 29.97,
		Duration:  0,
	}
}

var validate = validator.New()

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// absent keys keep their defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Normalize() {
	c.GroupSize = float64(subtitle.CoerceGroupSize(c.GroupSize))
	c.FontName = strings.TrimSpace(c.FontName)
	c.Encoding = strings.TrimSpace(strings.ToLower(c.Encoding))
	if c.Encoding == "" {
		c.Encoding = "utf-8"
	}
	c.Format = strings.TrimSpace(strings.ToLower(c.Format))
	if c.Format == "" {
		c.Format = FormatFCPXML
	}
}

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf(
			"%s: failed %q (got %v)",
			fe.Field(),
			fe.Tag(),
			fe.Value(),
		))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// GroupSizeInt returns the coerced words-per-layer value.
func (c *Config) GroupSizeInt() int {
	return subtitle.CoerceGroupSize(c.GroupSize)
}
