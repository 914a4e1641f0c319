package store

import (
	"fmt"
	"io"

	"github.com/healthassist/healthassist/internal/prompt"
	"github.com/healthassist/healthassist/types"
	"go.uber.org/zap"
)

// RecordStore owns an ordered collection of user records. New records go to
// the front, so traversal order is most recent first.
type RecordStore struct {
	records []*types.UserRecord
	lenient bool
	logger  *zap.Logger
}

// Option configures a RecordStore.
type Option func(*RecordStore)

// WithLenientLoad makes Load skip malformed lines instead of failing.
func WithLenientLoad(lenient bool) Option {
	return func(s *RecordStore) {
		s.lenient = lenient
	}
}

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *RecordStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewRecordStore(opts ...Option) *RecordStore {
	s := &RecordStore{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create reads a record interactively through p, inserts it and writes a
// confirmation to w.
func (s *RecordStore) Create(p *prompt.Prompter, w io.Writer) (types.UserRecord, error) {
	rec, err := prompt.ReadRecord(p)
	if err != nil {
		return types.UserRecord{}, err
	}
	s.Insert(rec)
	fmt.Fprintf(w, "User %s has been added.\n\n", rec.Name)
	return rec, nil
}

// Insert places a copy of rec at the front of traversal order.
func (s *RecordStore) Insert(rec types.UserRecord) {
	s.records = append([]*types.UserRecord{&rec}, s.records...)
}

// Find returns the first record named name. The returned record is live:
// changes through it are visible to later reads.
func (s *RecordStore) Find(name string) (*types.UserRecord, error) {
	if i := s.index(name); i >= 0 {
		return s.records[i], nil
	}
	return nil, fmt.Errorf("user %s: %w", name, ErrNotFound)
}

// Delete removes the first record named name.
func (s *RecordStore) Delete(name string) error {
	i := s.index(name)
	if i < 0 {
		return fmt.Errorf("user %s: %w", name, ErrNotFound)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

// All returns copies of every record in traversal order.
func (s *RecordStore) All() []types.UserRecord {
	out := make([]types.UserRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *rec)
	}
	return out
}

// Names returns record names in traversal order.
func (s *RecordStore) Names() []string {
	names := make([]string, 0, len(s.records))
	for _, rec := range s.records {
		names = append(names, rec.Name)
	}
	return names
}

func (s *RecordStore) Len() int {
	return len(s.records)
}

// Clear drops every record.
func (s *RecordStore) Clear() {
	s.records = nil
}

func (s *RecordStore) index(name string) int {
	for i, rec := range s.records {
		if rec.Name == name {
			return i
		}
	}
	return -1
}
