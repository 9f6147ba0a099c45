package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

const maxBindingsFileBytes = 1 << 20

var ErrNoBindings = errors.New("no shortcuts configured")

// Binding ties a chord string to an action name.
type Binding struct {
	Chord  string `yaml:"chord"`
	Action string `yaml:"action"`
}

type bindingsFile struct {
	Shortcuts []Binding `yaml:"shortcuts"`
}

// Bindings returns the configured shortcuts: the contents of ShortcutsFile
// when set, otherwise the image and GIF shortcuts from the environment.
func (c *Config) Bindings() ([]Binding, error) {
	if c.ShortcutsFile != "" {
		return LoadBindings(c.ShortcutsFile)
	}
	return []Binding{
		{Chord: c.ImageShortcut, Action: "image"},
		{Chord: c.GifShortcut, Action: "gif"},
	}, nil
}

// LoadBindings reads a YAML shortcuts file:
//
//	shortcuts:
//	  - chord: Ctrl+Alt+Key1
//	    action: image
func LoadBindings(path string) ([]Binding, error) {
	raw, err := readLimitedFile(path, maxBindingsFileBytes)
	if err != nil {
		return nil, err
	}
	return ParseBindings(raw)
}

// ParseBindings decodes YAML shortcut bindings. Chords are kept verbatim;
// they are validated when compiled.
func ParseBindings(raw []byte) ([]Binding, error) {
	var file bindingsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse shortcuts: %w", err)
	}
	if len(file.Shortcuts) == 0 {
		return nil, ErrNoBindings
	}
	for i, b := range file.Shortcuts {
		if b.Chord == "" {
			return nil, fmt.Errorf("shortcut %d: chord is required", i)
		}
		if strings.TrimSpace(b.Action) == "" {
			return nil, fmt.Errorf("shortcut %d (%s): action is required", i, b.Chord)
		}
	}
	return file.Shortcuts, nil
}

func readLimitedFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, limit)
	}
	return raw, nil
}
