// Package state holds the single authoritative resume document and notifies
// subscribers after every mutation.
package state

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// Listener receives the post-mutation document.
// The document is a private copy; listeners may keep it but must not expect
// changes to it to reach the store.
type Listener func(doc *types.Document)

type subscription struct {
	fn     Listener
	active atomic.Bool
}

// round is one notification: the document after a mutation plus the
// listeners registered when the mutation happened.
type round struct {
	op   string
	doc  *types.Document
	subs []*subscription
}

// Store is the single source of truth for the resume document.
//
// Mutations are applied to a working copy and swapped in only when complete,
// so a listener never sees a partially applied change. Notification rounds are
// delivered synchronously, in mutation order and in registration order, by
// whichever goroutine finds the dispatcher idle. A listener may call back into
// the store; the nested round is delivered after the current one finishes.
type Store struct {
	mu          sync.Mutex
	doc         *types.Document
	subs        []*subscription
	queue       []round
	dispatching bool

	ids    *IDGenerator
	logger *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for mutation traces and listener panics
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDocument starts the store from doc instead of the empty document
func WithDocument(doc *types.Document) Option {
	return func(s *Store) {
		if doc != nil {
			s.doc = doc.Clone()
			s.doc.Normalize()
		}
	}
}

// WithIDGenerator shares an id generator between stores
func WithIDGenerator(ids *IDGenerator) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithClock sets the time source used for entry ids
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.ids = NewIDGenerator(now)
	}
}

// New creates a store holding the canonical empty document
func New(opts ...Option) *Store {
	s := &Store{
		doc:    types.NewEmptyDocument(),
		ids:    NewIDGenerator(nil),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids.repairIDs(s.doc)
	return s
}

// State returns a snapshot of the current document
func (s *Store) State() *types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// SetState merges the present keys of p into the document and notifies.
// Entries with a missing or repeated id get a fresh one.
func (s *Store) SetState(p types.Partial) {
	s.commit("set_state", func(doc *types.Document) bool {
		p.ApplyTo(doc)
		s.ids.repairIDs(doc)
		return true
	})
}

// UpdateSection replaces one top-level key wholesale. value must have the
// section's Go type (types.Personal, string, []string, []types.Experience,
// []types.Education, []types.Project, []types.Certification or types.Meta).
func (s *Store) UpdateSection(section types.Section, value any) error {
	p, err := sectionPartial(section, value)
	if err != nil {
		return err
	}
	s.commit("update_section", func(doc *types.Document) bool {
		p.ApplyTo(doc)
		s.ids.repairIDs(doc)
		return true
	})
	return nil
}

// UpdatePersonal sets one personal field and notifies
func (s *Store) UpdatePersonal(field types.PersonalField, value string) error {
	var setErr error
	s.commit("update_personal", func(doc *types.Document) bool {
		setErr = doc.Personal.Set(field, value)
		return setErr == nil
	})
	return setErr
}

// UpdateSummary sets the summary and notifies
func (s *Store) UpdateSummary(value string) {
	s.commit("update_summary", func(doc *types.Document) bool {
		doc.Summary = value
		return true
	})
}

// UpdateMeta sets one meta field and notifies. A template or page size
// outside the accepted values is ignored: the prior value is kept and no
// notification fires.
func (s *Store) UpdateMeta(field types.MetaField, value string) error {
	var metaErr error
	s.commit("update_meta", func(doc *types.Document) bool {
		next, err := doc.Meta.With(field, value)
		if err != nil {
			metaErr = err
			return false
		}
		if err := next.Validate(); err != nil {
			s.logger.Debug("ignoring invalid meta value", "field", field, "value", value)
			return false
		}
		doc.Meta = next
		return true
	})
	return metaErr
}

// AddSkill appends the trimmed skill unless it is empty or already present.
// It reports whether the skill was added.
func (s *Store) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	return s.commit("add_skill", func(doc *types.Document) bool {
		if skill == "" || types.ContainsSkill(doc.Skills, skill) {
			return false
		}
		doc.Skills = append(doc.Skills, skill)
		return true
	})
}

// RemoveSkill removes every exact match of skill. Listeners are notified even
// when nothing matched. It reports whether a skill was removed.
func (s *Store) RemoveSkill(skill string) bool {
	removed := false
	s.commit("remove_skill", func(doc *types.Document) bool {
		kept := doc.Skills[:0:0]
		for _, existing := range doc.Skills {
			if existing == skill {
				removed = true
				continue
			}
			kept = append(kept, existing)
		}
		doc.Skills = kept
		return true
	})
	return removed
}

// AddExperience appends a new experience entry built from p and notifies
func (s *Store) AddExperience(p types.ExperiencePatch) types.Experience {
	var entry types.Experience
	s.commit("add_experience", func(doc *types.Document) bool {
		entry = types.Experience{ID: s.ids.Next()}
		p.Apply(&entry)
		doc.Experience = append(doc.Experience, entry)
		return true
	})
	return entry
}

// UpdateExperience merges p into the entry with id. Listeners are notified
// even when no entry matches. It reports whether the entry exists.
func (s *Store) UpdateExperience(id int64, p types.ExperiencePatch) bool {
	found := false
	s.commit("update_experience", func(doc *types.Document) bool {
		found = updateByID(doc.Experience, id, func(e *types.Experience) int64 { return e.ID }, func(e *types.Experience) { p.Apply(e) })
		return true
	})
	return found
}

// RemoveExperience removes the entry with id and notifies
func (s *Store) RemoveExperience(id int64) bool {
	found := false
	s.commit("remove_experience", func(doc *types.Document) bool {
		doc.Experience, found = removeByID(doc.Experience, id, func(e types.Experience) int64 { return e.ID })
		return true
	})
	return found
}

// AddEducation appends a new education entry built from p and notifies
func (s *Store) AddEducation(p types.EducationPatch) types.Education {
	var entry types.Education
	s.commit("add_education", func(doc *types.Document) bool {
		entry = types.Education{ID: s.ids.Next()}
		p.Apply(&entry)
		doc.Education = append(doc.Education, entry)
		return true
	})
	return entry
}

// UpdateEducation merges p into the entry with id and notifies
func (s *Store) UpdateEducation(id int64, p types.EducationPatch) bool {
	found := false
	s.commit("update_education", func(doc *types.Document) bool {
		found = updateByID(doc.Education, id, func(e *types.Education) int64 { return e.ID }, func(e *types.Education) { p.Apply(e) })
		return true
	})
	return found
}

// RemoveEducation removes the entry with id and notifies
func (s *Store) RemoveEducation(id int64) bool {
	found := false
	s.commit("remove_education", func(doc *types.Document) bool {
		doc.Education, found = removeByID(doc.Education, id, func(e types.Education) int64 { return e.ID })
		return true
	})
	return found
}

// AddProject appends a new project entry built from p and notifies
func (s *Store) AddProject(p types.ProjectPatch) types.Project {
	var entry types.Project
	s.commit("add_project", func(doc *types.Document) bool {
		entry = types.Project{ID: s.ids.Next()}
		p.Apply(&entry)
		doc.Projects = append(doc.Projects, entry)
		return true
	})
	return entry
}

// UpdateProject merges p into the entry with id and notifies
func (s *Store) UpdateProject(id int64, p types.ProjectPatch) bool {
	found := false
	s.commit("update_project", func(doc *types.Document) bool {
		found = updateByID(doc.Projects, id, func(e *types.Project) int64 { return e.ID }, func(e *types.Project) { p.Apply(e) })
		return true
	})
	return found
}

// RemoveProject removes the entry with id and notifies
func (s *Store) RemoveProject(id int64) bool {
	found := false
	s.commit("remove_project", func(doc *types.Document) bool {
		doc.Projects, found = removeByID(doc.Projects, id, func(e types.Project) int64 { return e.ID })
		return true
	})
	return found
}

// AddCertification appends a new certification entry built from p and notifies
func (s *Store) AddCertification(p types.CertificationPatch) types.Certification {
	var entry types.Certification
	s.commit("add_certification", func(doc *types.Document) bool {
		entry = types.Certification{ID: s.ids.Next()}
		p.Apply(&entry)
		doc.Certifications = append(doc.Certifications, entry)
		return true
	})
	return entry
}

// UpdateCertification merges p into the entry with id and notifies
func (s *Store) UpdateCertification(id int64, p types.CertificationPatch) bool {
	found := false
	s.commit("update_certification", func(doc *types.Document) bool {
		found = updateByID(doc.Certifications, id, func(e *types.Certification) int64 { return e.ID }, func(e *types.Certification) { p.Apply(e) })
		return true
	})
	return found
}

// RemoveCertification removes the entry with id and notifies
func (s *Store) RemoveCertification(id int64) bool {
	found := false
	s.commit("remove_certification", func(doc *types.Document) bool {
		doc.Certifications, found = removeByID(doc.Certifications, id, func(e types.Certification) int64 { return e.ID })
		return true
	})
	return found
}

// Mutate runs fn against a working copy of the document under the store lock.
// When fn returns true the copy becomes the document and listeners are
// notified; when it returns false nothing changes. fn must not call back into
// the store.
func (s *Store) Mutate(op string, fn func(doc *types.Document) bool) bool {
	return s.commit(op, func(doc *types.Document) bool {
		if !fn(doc) {
			return false
		}
		s.ids.repairIDs(doc)
		return true
	})
}

// ResetState replaces the document with the canonical empty document and notifies
func (s *Store) ResetState() {
	s.commit("reset_state", func(doc *types.Document) bool {
		*doc = *types.NewEmptyDocument()
		return true
	})
}

// Subscribe registers l for every notification and returns a function that
// removes exactly this registration. Calling the returned function more than
// once is harmless.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	sub := &subscription{fn: l}
	sub.active.Store(true)

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.active.Store(false)
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, existing := range s.subs {
				if existing == sub {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// ListenerCount returns the number of registered listeners
func (s *Store) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// commit runs fn against a working copy of the document. When fn reports
// true the copy replaces the document and a notification round is queued.
func (s *Store) commit(op string, fn func(doc *types.Document) bool) bool {
	s.mu.Lock()
	next := s.doc.Clone()
	if !fn(next) {
		s.mu.Unlock()
		return false
	}
	s.doc = next
	s.queue = append(s.queue, round{
		op:   op,
		doc:  next.Clone(),
		subs: append([]*subscription(nil), s.subs...),
	})
	s.mu.Unlock()

	s.logger.Debug("state updated", "op", op)
	s.dispatch()
	return true
}

// dispatch delivers queued rounds until the queue is empty. Only one
// goroutine delivers at a time; others return after queueing.
func (s *Store) dispatch() {
	s.mu.Lock()
	if s.dispatching {
		s.mu.Unlock()
		return
	}
	s.dispatching = true
	for len(s.queue) > 0 {
		r := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		s.deliver(r)
		s.mu.Lock()
	}
	s.dispatching = false
	s.mu.Unlock()
}

func (s *Store) deliver(r round) {
	for _, sub := range r.subs {
		if !sub.active.Load() {
			continue
		}
		s.invoke(r, sub)
	}
}

func (s *Store) invoke(r round, sub *subscription) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("state listener panicked",
				"op", r.op,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()))
		}
	}()
	sub.fn(r.doc.Clone())
}

func updateByID[T any](items []T, id int64, idOf func(*T) int64, apply func(*T)) bool {
	for i := range items {
		if idOf(&items[i]) == id {
			apply(&items[i])
			return true
		}
	}
	return false
}

func removeByID[T any](items []T, id int64, idOf func(T) int64) ([]T, bool) {
	out := make([]T, 0, len(items))
	found := false
	for _, item := range items {
		if idOf(item) == id {
			found = true
			continue
		}
		out = append(out, item)
	}
	return out, found
}
