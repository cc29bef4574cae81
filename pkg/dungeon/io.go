package dungeon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// levelWire mirrors Level but also accepts the "doors" alias some adapters
// emit instead of "connections".
type levelWire struct {
	Name        string        `json:"name,omitempty"`
	Rooms       []Room        `json:"rooms"`
	Connections []Connection  `json:"connections"`
	Doors       []Connection  `json:"doors"`
	Corridors   []Room        `json:"corridors,omitempty"`
	Elements    []GameElement `json:"game_elements,omitempty"`
}

// UnmarshalJSON decodes a level, merging the "doors" alias into Connections.
func (l *Level) UnmarshalJSON(data []byte) error {
	var w levelWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	l.Name = w.Name
	l.Rooms = w.Rooms
	l.Connections = append(w.Connections, w.Doors...)
	l.Corridors = w.Corridors
	l.Elements = w.Elements
	return nil
}

// LoadLevel reads and validates a level from a JSON file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level: %w", err)
	}
	return ParseLevel(data)
}

// ParseLevel decodes and validates a level from JSON bytes.
func ParseLevel(data []byte) (*Level, error) {
	var level Level
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("unmarshaling level: %w", err)
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	return &level, nil
}

// SaveLevel writes a level to disk as JSON.
func SaveLevel(path string, level *Level) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for level: %w", err)
	}

	data, err := json.MarshalIndent(level, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling level: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing level: %w", err)
	}

	return nil
}
