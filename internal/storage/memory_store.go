package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"webinar-token-service/internal/logger"
	"webinar-token-service/internal/service"
)

type formEntry struct {
	form     *service.Form
	lastSeen time.Time
}

// MemoryFormStore implements FormStore with a mutex-guarded map
type MemoryFormStore struct {
	newForm func() *service.Form
	now     func() time.Time

	mu    sync.Mutex
	forms map[string]*formEntry
}

// NewMemoryFormStore creates a store whose forms all use svc
func NewMemoryFormStore(svc service.TokenService) *MemoryFormStore {
	return &MemoryFormStore{
		newForm: func() *service.Form { return service.NewForm(svc) },
		now:     time.Now,
		forms:   make(map[string]*formEntry),
	}
}

func (s *MemoryFormStore) Create() (string, *service.Form) {
	id := uuid.New().String()
	form := s.newForm()

	s.mu.Lock()
	s.forms[id] = &formEntry{form: form, lastSeen: s.now()}
	s.mu.Unlock()

	logger.Debug("Form session created", "session_id", id)
	return id, form
}

func (s *MemoryFormStore) Get(id string) (*service.Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.forms[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = s.now()
	return entry.form, true
}

func (s *MemoryFormStore) Delete(id string) {
	s.mu.Lock()
	entry, ok := s.forms[id]
	delete(s.forms, id)
	s.mu.Unlock()

	if ok {
		entry.form.Close()
	}
}

func (s *MemoryFormStore) SweepIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	var expired []*service.Form
	s.mu.Lock()
	for id, entry := range s.forms {
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, entry.form)
			delete(s.forms, id)
		}
	}
	s.mu.Unlock()

	for _, form := range expired {
		form.Close()
	}
	return len(expired)
}

func (s *MemoryFormStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

func (s *MemoryFormStore) CloseAll() {
	s.mu.Lock()
	forms := s.forms
	s.forms = make(map[string]*formEntry)
	s.mu.Unlock()

	for _, entry := range forms {
		entry.form.Close()
	}
}
