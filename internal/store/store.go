// Package store holds the portal's in-memory state: the session, the
// optional company profile and the ordered task collection.
//
// Every command is a single transition. It either applies completely or
// returns an error and leaves the state untouched. The store performs no I/O.
package store

import (
	"sync"

	"company-portal/internal/domain"
	apperrors "company-portal/internal/errors"
	"company-portal/internal/validation"
)

// Snapshot is a deep copy of the store contents at one instant.
type Snapshot struct {
	Session        *domain.Session
	CompanyProfile *domain.CompanyProfile
	Tasks          []domain.Task
}

// Listener is notified with a fresh snapshot after each applied mutation.
type Listener func(Snapshot)

// Store is the state container injected into services and views.
type Store struct {
	mu      sync.RWMutex
	session *domain.Session
	profile *domain.CompanyProfile
	tasks   []domain.Task

	listenersMu  sync.Mutex
	listeners    map[int]Listener
	nextListener int

	links *validation.ProfileValidator
}

// New creates an empty store: no session, no profile, no tasks.
func New() *Store {
	return &Store{
		tasks:     []domain.Task{},
		listeners: make(map[int]Listener),
		links:     validation.NewProfileValidator(),
	}
}

// Subscribe registers fn and returns a function that removes it.
// Listeners run after the write lock is released, in no particular order.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) listenersSnapshot() []Listener {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	return fns
}

// mutate runs fn under the write lock and notifies listeners when fn
// reports a change and no error. The state handed to listeners is copied
// before the lock is released.
func (s *Store) mutate(fn func() (changed bool, err error)) error {
	s.mu.Lock()
	changed, err := fn()
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	for _, l := range s.listenersSnapshot() {
		l(snap)
	}
	return nil
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Session:        cloneSession(s.session),
		CompanyProfile: cloneProfile(s.profile),
		Tasks:          cloneTasks(s.tasks),
	}
}

// Session returns a copy of the current session, or nil.
func (s *Store) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSession(s.session)
}

// CompanyProfile returns a copy of the current profile, or nil.
func (s *Store) CompanyProfile() *domain.CompanyProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProfile(s.profile)
}

// Tasks returns a copy of the task collection in storage order.
func (s *Store) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// SetSession replaces the session wholesale. nil clears it. The
// authenticated flag is derived from the trimmed token.
func (s *Store) SetSession(session *domain.Session) {
	_ = s.mutate(func() (bool, error) {
		if session == nil {
			s.session = nil
			return true, nil
		}
		s.session = domain.NewSession(session.User, session.Token)
		return true, nil
	})
}

// UpdateUser merges the set fields into the session's user.
// No-op without an authenticated session.
func (s *Store) UpdateUser(update domain.UserUpdate) {
	_ = s.mutate(func() (bool, error) {
		if !s.session.IsAuthenticated() {
			return false, nil
		}
		s.session.User = update.Apply(s.session.User)
		return true, nil
	})
}

// Logout clears the session and destroys the company profile.
// Tasks are left for the caller to reload under the next session.
func (s *Store) Logout() {
	_ = s.mutate(func() (bool, error) {
		s.session = nil
		s.profile = nil
		return true, nil
	})
}

// SetCompanyProfile replaces the profile wholesale. nil clears it.
func (s *Store) SetCompanyProfile(profile *domain.CompanyProfile) {
	_ = s.mutate(func() (bool, error) {
		s.profile = cloneProfile(profile)
		return true, nil
	})
}

// MergeCompanyProfile shallow-merges the set fields into the profile.
// Without a profile the partial becomes the profile. No validation here.
func (s *Store) MergeCompanyProfile(partial domain.CompanyProfileUpdate) {
	_ = s.mutate(func() (bool, error) {
		base := domain.CompanyProfile{}
		if s.profile != nil {
			base = *s.profile
		}
		merged := partial.Apply(base)
		s.profile = &merged
		return true, nil
	})
}

// AddSocialLink appends link to the profile's links.
// Without a profile an empty one is created to hold the link.
func (s *Store) AddSocialLink(link domain.SocialLink) error {
	if err := s.links.ValidateSocialLink(link); err != nil {
		return apperrors.NewValidationError("invalid social link", err)
	}

	return s.mutate(func() (bool, error) {
		if s.profile == nil {
			s.profile = &domain.CompanyProfile{}
		}
		links := make([]domain.SocialLink, len(s.profile.SocialLinks), len(s.profile.SocialLinks)+1)
		copy(links, s.profile.SocialLinks)
		s.profile.SocialLinks = append(links, link)
		return true, nil
	})
}

// RemoveSocialLink removes the link at index.
func (s *Store) RemoveSocialLink(index int) error {
	return s.mutate(func() (bool, error) {
		length := 0
		if s.profile != nil {
			length = len(s.profile.SocialLinks)
		}
		if index < 0 || index >= length {
			return false, apperrors.NewIndexError("social link", index, length)
		}

		links := make([]domain.SocialLink, 0, length-1)
		links = append(links, s.profile.SocialLinks[:index]...)
		links = append(links, s.profile.SocialLinks[index+1:]...)
		s.profile.SocialLinks = links
		return true, nil
	})
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// AddTask appends task, or fails when its identifier is already taken.
func (s *Store) AddTask(task domain.Task) error {
	return s.mutate(func() (bool, error) {
		if s.indexOf(task.ID) >= 0 {
			return false, apperrors.NewDuplicateIDError("task", task.ID)
		}
		s.tasks = append(s.tasks, task.Clone())
		return true, nil
	})
}

// SetTasks replaces the collection. A batch with repeated identifiers is
// rejected as a whole.
func (s *Store) SetTasks(tasks []domain.Task) error {
	seen := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if _, dup := seen[task.ID]; dup {
			return apperrors.NewDuplicateIDError("task", task.ID)
		}
		seen[task.ID] = struct{}{}
	}

	return s.mutate(func() (bool, error) {
		s.tasks = cloneTasks(tasks)
		return true, nil
	})
}

// ToggleTaskCompletion flips the completed flag. Absent id is a no-op.
func (s *Store) ToggleTaskCompletion(id string) {
	_ = s.mutate(func() (bool, error) {
		i := s.indexOf(id)
		if i < 0 {
			return false, nil
		}
		s.tasks[i].Completed = !s.tasks[i].Completed
		return true, nil
	})
}

// UpdateTask merges the set fields into the task. Absent id is a no-op.
func (s *Store) UpdateTask(id string, update domain.TaskUpdate) {
	_ = s.mutate(func() (bool, error) {
		i := s.indexOf(id)
		if i < 0 {
			return false, nil
		}
		s.tasks[i] = update.Apply(s.tasks[i])
		return true, nil
	})
}

// DeleteTask removes the task. Absent id is a no-op.
func (s *Store) DeleteTask(id string) {
	_ = s.mutate(func() (bool, error) {
		i := s.indexOf(id)
		if i < 0 {
			return false, nil
		}
		tasks := make([]domain.Task, 0, len(s.tasks)-1)
		tasks = append(tasks, s.tasks[:i]...)
		tasks = append(tasks, s.tasks[i+1:]...)
		s.tasks = tasks
		return true, nil
	})
}

// Task returns a copy of the task with id.
func (s *Store) Task(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

func cloneSession(session *domain.Session) *domain.Session {
	if session == nil {
		return nil
	}
	c := *session
	return &c
}

func cloneProfile(profile *domain.CompanyProfile) *domain.CompanyProfile {
	if profile == nil {
		return nil
	}
	c := profile.Clone()
	return &c
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, task := range tasks {
		out[i] = task.Clone()
	}
	return out
}
