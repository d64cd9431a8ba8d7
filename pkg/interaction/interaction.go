// Package interaction tracks the viewer's liked, saved and followed ids.
// Toggles apply immediately and are then persisted; each toggle is a
// Command that ends confirmed or failed, and a failed one is rolled back.
package interaction

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/daksh-app/daksh/backend/pkg/client"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/daksh-app/daksh/backend/pkg/retry"
	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen -source=interaction.go -destination=mocks/persister.go -package=mocks

type Kind string

const (
	KindLike   Kind = "like"
	KindSave   Kind = "save"
	KindFollow Kind = "follow"
)

type Status int

const (
	StatusPending Status = iota
	StatusConfirmed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Command is one toggle of one id.
type Command struct {
	ID     string
	Kind   Kind
	Target string
	// Add is the membership the toggle asked for.
	Add       bool
	Status    Status
	Err       error
	CreatedAt time.Time
}

// Persister saves a membership change on the server.
type Persister interface {
	Apply(ctx context.Context, target string, add bool) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, target string, add bool) error

func (f PersisterFunc) Apply(ctx context.Context, target string, add bool) error {
	return f(ctx, target, add)
}

// Event is delivered to listeners on every change.
type Event struct {
	Command Command
	// Member is the target's membership after the change.
	Member bool
	// RolledBack is set when a failed command reverted membership.
	RolledBack bool
}

type Listener func(Event)

type Options struct {
	Retry  *retry.Config
	Logger logger.Logger
	Now    func() time.Time
}

type Set struct {
	kind      Kind
	persister Persister
	retry     retry.Config
	log       logger.Logger
	now       func() time.Time

	mu        sync.Mutex
	members   map[string]bool
	entries   map[string]*entry
	listeners []Listener
}

// entry orders the toggles of one id. confirmed is the membership the server
// last acknowledged, as of toggle number confirmedSeq.
type entry struct {
	issued       uint64
	confirmed    bool
	confirmedSeq uint64
	settled      bool
}

func New(kind Kind, persister Persister, opts Options) *Set {
	cfg := retry.DefaultConfig()
	if opts.Retry != nil {
		cfg = *opts.Retry
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Set{
		kind:      kind,
		persister: persister,
		retry:     cfg,
		log:       opts.Logger.WithComponent("interaction").With("kind", string(kind)),
		now:       opts.Now,
		members:   make(map[string]bool),
		entries:   make(map[string]*entry),
	}
}

// Seed replaces membership with server truth.
func (s *Set) Seed(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = make(map[string]bool, len(ids))
	s.entries = make(map[string]*entry)
	for _, id := range ids {
		s.members[id] = true
	}
}

func (s *Set) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[id]
}

// IDs returns the members, sorted.
func (s *Set) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Set) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Set) emit(ev Event) {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l(ev)
	}
}

// Toggle flips membership of id right away, then persists it. It blocks
// until the command is confirmed or failed and returns the final command.
func (s *Set) Toggle(ctx context.Context, id string) Command {
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry{confirmed: s.members[id]}
		s.entries[id] = e
	}
	e.issued++
	e.settled = false
	seq := e.issued
	cmd := Command{
		ID:        uuid.NewString(),
		Kind:      s.kind,
		Target:    id,
		Add:       !s.members[id],
		Status:    StatusPending,
		CreatedAt: s.now(),
	}
	s.setMember(id, cmd.Add)
	s.mu.Unlock()

	s.emit(Event{Command: cmd, Member: cmd.Add})

	err := retry.Do(ctx, s.log, "interaction."+string(s.kind), func() error {
		err := s.persister.Apply(ctx, id, cmd.Add)
		if isPermanent(err) {
			return retry.Permanent(err)
		}
		return err
	}, s.retry)

	if err == nil {
		cmd.Status = StatusConfirmed
		s.mu.Lock()
		current := s.entries[id] == e
		if current && seq > e.confirmedSeq {
			e.confirmed, e.confirmedSeq = cmd.Add, seq
		}
		if seq == e.issued {
			e.settled = true
		} else if current && e.settled {
			// The newest toggle already failed and rolled back to an older
			// acknowledgement; this one is newer.
			s.setMember(id, e.confirmed)
		}
		member := s.members[id]
		s.mu.Unlock()
		s.emit(Event{Command: cmd, Member: member})
		return cmd
	}

	cmd.Status = StatusFailed
	cmd.Err = err
	s.log.Warn("toggle failed", "target", id, "add", cmd.Add, "error", err)

	s.mu.Lock()
	rolledBack := false
	if s.entries[id] == e && seq == e.issued {
		e.settled = true
		s.setMember(id, e.confirmed)
		rolledBack = true
	}
	member := s.members[id]
	s.mu.Unlock()

	s.emit(Event{Command: cmd, Member: member, RolledBack: rolledBack})
	return cmd
}

// setMember updates membership. Caller holds mu.
func (s *Set) setMember(id string, member bool) {
	if member {
		s.members[id] = true
	} else {
		delete(s.members, id)
	}
}

// isPermanent reports whether retrying err cannot help: client errors and
// cancellation.
func isPermanent(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.Status < 500
}
