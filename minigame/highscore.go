package minigame

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// HighScoreStore persists the best Feed-a-Cow score as a small YAML file.
// An empty path keeps the score in memory only.
type HighScoreStore struct {
	path  string
	score int
}

type highScoreFile struct {
	HighScore int `yaml:"high_score"`
}

// NewHighScoreStore creates a store backed by path.
func NewHighScoreStore(path string) *HighScoreStore {
	return &HighScoreStore{path: path}
}

// Path returns the backing file path.
func (s *HighScoreStore) Path() string { return s.path }

// Load returns the stored score. A missing file counts as zero.
func (s *HighScoreStore) Load() (int, error) {
	if s.path == "" {
		return s.score, nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading high score: %w", err)
	}

	var f highScoreFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parsing high score: %w", err)
	}
	if f.HighScore < 0 {
		return 0, nil
	}
	s.score = f.HighScore
	return f.HighScore, nil
}

// Save stores score.
func (s *HighScoreStore) Save(score int) error {
	s.score = score
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(highScoreFile{HighScore: score})
	if err != nil {
		return fmt.Errorf("marshaling high score: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing high score: %w", err)
	}
	return nil
}
