package customtags

import (
	"context"
	"fmt"
	"strings"

	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
)

// StorageKey is the key the whole custom-tag blob lives under.
const StorageKey = "wrongnotebook_custom_tags"

// KV is the persistence the store needs. Get reports false when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type Stats struct {
	Math      int `json:"math"`
	English   int `json:"english"`
	Physics   int `json:"physics"`
	Chemistry int `json:"chemistry"`
	Other     int `json:"other"`
	Total     int `json:"total"`
}

// Store reads and writes one custom-tag blob. Writes are read-modify-write
// with last-write-wins semantics.
type Store struct {
	log *logger.Logger
	kv  KV
}

func NewStore(log *logger.Logger, kv KV) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{log: log.With("service", "CustomTagStore"), kv: kv}
}

// Get returns the stored tags. A missing or unreadable blob yields the empty
// structure; only a backend failure is returned as an error.
func (s *Store) Get(ctx context.Context) (Data, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return Empty(), fmt.Errorf("read custom tags: %w", err)
	}
	if !ok {
		return Empty(), nil
	}
	d, err := Decode([]byte(raw))
	if err != nil {
		s.log.Warn("Stored custom tags unreadable, using empty set", "error", err)
		return Empty(), nil
	}
	return d, nil
}

func (s *Store) save(ctx context.Context, d Data) error {
	b, err := Encode(d)
	if err != nil {
		return fmt.Errorf("encode custom tags: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(b)); err != nil {
		return fmt.Errorf("write custom tags: %w", err)
	}
	return nil
}

// Add appends a tag to subject. It reports false without writing when the
// subject is unknown, the trimmed name is empty, or the name already exists
// in that subject.
func (s *Store) Add(ctx context.Context, subject knowledge.Subject, name, category string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	d, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	list := d.list(subject)
	if list == nil {
		return false, nil
	}
	for _, t := range *list {
		if t.Name == name {
			return false, nil
		}
	}
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	*list = append(*list, CustomTag{Name: name, Category: category})
	if err := s.save(ctx, d); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the first tag in subject named exactly name.
func (s *Store) Remove(ctx context.Context, subject knowledge.Subject, name string) (bool, error) {
	d, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	list := d.list(subject)
	if list == nil {
		return false, nil
	}
	idx := -1
	for i, t := range *list {
		if t.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	*list = append((*list)[:idx], (*list)[idx+1:]...)
	if err := s.save(ctx, d); err != nil {
		return false, err
	}
	return true, nil
}

// AllFlat lists every tag name in subject order. Names repeated across
// subjects appear once per subject.
func (s *Store) AllFlat(ctx context.Context) ([]string, error) {
	d, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, subj := range knowledge.AllSubjects {
		for _, t := range d.Tags(subj) {
			out = append(out, t.Name)
		}
	}
	return out, nil
}

func (s *Store) IsCustomTag(ctx context.Context, name string) (bool, error) {
	names, err := s.AllFlat(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Export(ctx context.Context) (string, error) {
	d, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	b, err := Encode(d)
	if err != nil {
		return "", fmt.Errorf("encode custom tags: %w", err)
	}
	return string(b), nil
}

// Import replaces the stored tags with jsonText. It reports false and leaves
// the stored tags untouched when jsonText cannot be parsed.
func (s *Store) Import(ctx context.Context, jsonText string) (bool, error) {
	d, err := Decode([]byte(jsonText))
	if err != nil {
		s.log.Debug("Rejected custom tag import", "error", err)
		return false, nil
	}
	if err := s.save(ctx, d); err != nil {
		return false, err
	}
	return true, nil
}

// Clear deletes the blob; a later Get sees the empty structure.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear custom tags: %w", err)
	}
	return nil
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	d, err := s.Get(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{
		Math:      len(d.Math),
		English:   len(d.English),
		Physics:   len(d.Physics),
		Chemistry: len(d.Chemistry),
		Other:     len(d.Other),
	}
	st.Total = st.Math + st.English + st.Physics + st.Chemistry + st.Other
	return st, nil
}
