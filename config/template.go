package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var keyComments = map[string]string{
	KeyVolume:     "Gain for loaded clips, 0-100 (0 = -35 dB, 100 = +5 dB)",
	KeyTickCount:  "Host ticks between cues; 0 disables the metronome",
	KeyTickOffset: "Phase shift applied before the period test",
	KeyTockNumber: "Every Nth cue is a tock; 0 disables tocks",
	KeyTickVolume: "Built-in tick effect volume when no tick clip is loaded; 0 silences it",
	KeyTockVolume: "Built-in tock effect volume when no tock clip is loaded; 0 disables tocks",
	KeyTickPath:   "Optional tick clip (.wav, .mp3, .ogg, .flac)",
	KeyTockPath:   "Optional tock clip (.wav, .mp3, .ogg, .flac)",
}

const templateHeader = `Metronome configuration
Changes are picked up while running; counters are never reset by a reload.
Every key can be overridden from the environment, e.g. METRONOME_TICKCOUNT=4`

// Render encodes cfg as commented YAML.
func Render(cfg Config) ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	doc.HeadComment = templateHeader

	// Mapping content alternates key and value nodes
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if c, ok := keyComments[doc.Content[i].Value]; ok {
			doc.Content[i].HeadComment = c
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultConfigTemplate returns the default configuration as commented YAML.
func DefaultConfigTemplate() string {
	out, err := Render(Defaults())
	if err != nil {
		panic(err) // Defaults always encode
	}
	return string(out)
}

// WriteDefault writes the default configuration to path, creating parent directories.
func WriteDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
