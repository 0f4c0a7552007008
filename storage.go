package manhattan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SavegameStore persists game progress. Implementations log and swallow
// their own failures: a game that cannot save keeps running.
type SavegameStore interface {
	// Load returns the stored progress, or nil when there is none.
	Load() *Savegame
	// Save stores sg. A nil sg clears the stored progress.
	Save(sg *Savegame)
}

// FileStorage keeps the savegame in a JSON file of the form
// {"id": ..., "gameplay": {...}}. A file written under a different id is
// ignored, so changing the id invalidates old saves.
type FileStorage struct {
	Path string
	ID   string
}

// NewFileStorage returns a store for path using id.
func NewFileStorage(path, id string) *FileStorage {
	return &FileStorage{Path: path, ID: id}
}

// DefaultSavePath returns the savegame location under the user config dir.
func DefaultSavePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "paint-manhattan", "savegame.json")
}

// Load reads the savegame.
func (s *FileStorage) Load() *Savegame {
	sg, err := s.load()
	if err != nil {
		log.Printf("manhattan: loading game failed: %v", err)
		return nil
	}
	if sg != nil && globalDebug {
		log.Printf("manhattan: found savegame with id %q", s.ID)
	}
	return sg
}

func (s *FileStorage) load() (*Savegame, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: invalid JSON", s.Path)
	}
	if gjson.GetBytes(data, "id").String() != s.ID {
		return nil, nil
	}
	gameplay := gjson.GetBytes(data, "gameplay")
	if !gameplay.IsObject() {
		return nil, nil
	}
	var sg Savegame
	if err := json.Unmarshal([]byte(gameplay.Raw), &sg); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return &sg, nil
}

// Save writes or clears the savegame.
func (s *FileStorage) Save(sg *Savegame) {
	if sg == nil {
		if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("manhattan: clearing savegame failed: %v", err)
		}
		return
	}
	if err := s.save(sg); err != nil {
		log.Printf("manhattan: saving game failed: %v", err)
		return
	}
	if globalDebug {
		log.Printf("manhattan: saved game with id %q", s.ID)
	}
}

func (s *FileStorage) save(sg *Savegame) error {
	gameplay, err := json.Marshal(sg)
	if err != nil {
		return err
	}
	data, err := sjson.SetBytes([]byte(`{}`), "id", s.ID)
	if err != nil {
		return err
	}
	if data, err = sjson.SetRawBytes(data, "gameplay", gameplay); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

// SavegameInfo describes a savegame file regardless of its id.
type SavegameInfo struct {
	ID       string
	Gameplay *Savegame
}

// InspectSavegame reads the savegame file at path without checking its id.
// It returns nil and no error when the file does not exist.
func InspectSavegame(path string) (*SavegameInfo, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("manhattan: inspect savegame: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("manhattan: inspect savegame: %s is not valid JSON", path)
	}
	info := &SavegameInfo{ID: gjson.GetBytes(data, "id").String()}
	if gameplay := gjson.GetBytes(data, "gameplay"); gameplay.IsObject() {
		var sg Savegame
		if err := json.Unmarshal([]byte(gameplay.Raw), &sg); err != nil {
			return nil, fmt.Errorf("manhattan: inspect savegame: %w", err)
		}
		info.Gameplay = &sg
	}
	return info, nil
}

// MemoryStorage keeps the savegame in memory.
type MemoryStorage struct {
	Savegame *Savegame
	// Saves counts Save calls, including clears.
	Saves int
}

// Load returns a copy of the stored savegame.
func (m *MemoryStorage) Load() *Savegame {
	if m.Savegame == nil {
		return nil
	}
	sg := cloneSavegame(m.Savegame)
	return &sg
}

// Save stores a copy of sg.
func (m *MemoryStorage) Save(sg *Savegame) {
	m.Saves++
	if sg == nil {
		m.Savegame = nil
		return
	}
	c := cloneSavegame(sg)
	m.Savegame = &c
}

func cloneSavegame(sg *Savegame) Savegame {
	c := *sg
	c.StreetList = append([]string(nil), sg.StreetList...)
	if sg.NextStreetHasMissedOnce != nil {
		v := *sg.NextStreetHasMissedOnce
		c.NextStreetHasMissedOnce = &v
	}
	return c
}
