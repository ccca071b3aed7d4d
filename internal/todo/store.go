// Package todo holds the task collection, its mutations and derived queries.
//
// The collection is kept in memory and written in full to a key/value store
// after every mutation. Due dates are validated by the caller (see package
// duedate) before they reach the store.
package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sadopc/daybook/internal/clock"
)

// StorageKey is the key the collection is persisted under.
const StorageKey = "todos"

var ErrNotFound = errors.New("task not found")

// KV is the persistence collaborator.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Store owns the task collection. Mutations and their writes happen under one
// lock, so writes are serialized and a clear is never followed by a write of
// the collection it discarded.
type Store struct {
	mu     sync.Mutex
	kv     KV
	clock  clock.Clock
	log    *zap.SugaredLogger
	tasks  []Task
	lastID int64
}

// Open reads the saved collection from kv. Malformed saved data is logged and
// treated as an empty collection; a failing kv read is returned as an error.
func Open(kv KV, clk clock.Clock, log *zap.SugaredLogger) (*Store, error) {
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Store{kv: kv, clock: clk, log: log}

	raw, ok, err := kv.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		return s, nil
	}

	var saved []Task
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		log.Warnw("discarding malformed saved tasks", "key", StorageKey, "error", err)
		return s, nil
	}
	s.tasks = saved
	for _, t := range saved {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	log.Debugw("loaded tasks", "count", len(saved))
	return s, nil
}

// nextID is millisecond-timestamp based but never repeats or goes backwards.
func (s *Store) nextID() int64 {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) snapshotLocked() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		if t.DueDate != nil {
			d := *t.DueDate
			t.DueDate = &d
		}
		out[i] = t
	}
	return out
}

// commitLocked installs next as the current collection and persists it.
func (s *Store) commitLocked(next []Task) error {
	s.tasks = next
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		s.log.Errorw("persist tasks", "error", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// update applies fn to the task with id. It reports false, without writing,
// when no task matches or fn leaves the task unchanged.
func (s *Store) update(id int64, fn func(Task) (Task, bool)) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID != id {
			continue
		}
		changed, ok := fn(t)
		if !ok {
			break
		}
		next := make([]Task, len(s.tasks))
		copy(next, s.tasks)
		next[i] = changed
		err := s.commitLocked(next)
		return s.snapshotLocked(), err
	}
	return s.snapshotLocked(), nil
}

// Add appends a new task. ok is false and nothing changes when text is blank.
// dueDate "" means no deadline.
func (s *Store) Add(text, dueDate string) (Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:      s.nextID(),
		Text:    text,
		DueDate: dueString(strings.TrimSpace(dueDate)),
	}
	next := make([]Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, t)
	return t, true, s.commitLocked(next)
}

// Toggle flips the completion flag of the task with id.
func (s *Store) Toggle(id int64) ([]Task, error) {
	return s.update(id, func(t Task) (Task, bool) {
		t.Completed = !t.Completed
		return t, true
	})
}

// EditText replaces the text of the task with id. Blank text abandons the edit.
func (s *Store) EditText(id int64, text string) ([]Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.Tasks(), nil
	}
	return s.update(id, func(t Task) (Task, bool) {
		t.Text = text
		return t, true
	})
}

// EditDueDate sets the due date of the task with id. "" clears it.
func (s *Store) EditDueDate(id int64, dueDate string) ([]Task, error) {
	due := dueString(strings.TrimSpace(dueDate))
	return s.update(id, func(t Task) (Task, bool) {
		t.DueDate = due
		return t, true
	})
}

// Remove deletes the task with id. Removing a missing id is a no-op.
func (s *Store) Remove(id int64) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s.snapshotLocked(), nil
	}

	next := make([]Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)
	err := s.commitLocked(next)
	return s.snapshotLocked(), err
}

// ClearAll discards every task and removes the saved collection.
func (s *Store) ClearAll() ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.tasks)
	s.tasks = nil
	if err := s.kv.Remove(StorageKey); err != nil {
		s.log.Errorw("remove saved tasks", "error", err)
		return []Task{}, fmt.Errorf("clear tasks: %w", err)
	}
	s.log.Infow("cleared all tasks", "count", n)
	return []Task{}, nil
}

// Tasks returns the collection in insertion order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns the task with id.
func (s *Store) Get(id int64) (Task, error) {
	for _, t := range s.Tasks() {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statsOf(s.tasks)
}

// Overdue lists the pending tasks whose due date is before today.
func (s *Store) Overdue(today time.Time) []Task {
	return s.filter(func(t Task) bool { return !t.Completed && t.IsOverdue(today) })
}

// DueToday lists the pending tasks due today.
func (s *Store) DueToday(today time.Time) []Task {
	return s.filter(func(t Task) bool { return !t.Completed && t.IsDueToday(today) })
}

func (s *Store) filter(keep func(Task) bool) []Task {
	var out []Task
	for _, t := range s.Tasks() {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
