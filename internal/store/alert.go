package store

import (
	"sync"

	"nexcos/internal/models"
)

// AlertStore keeps community alerts newest first; the banner shows the head.
type AlertStore struct {
	mu     sync.RWMutex
	alerts []models.Alert
	opts   options
}

// NewAlertStore returns a store seeded with a copy of seed, kept in the
// order given.
func NewAlertStore(seed []models.Alert, opts ...Option) *AlertStore {
	return &AlertStore{
		alerts: append([]models.Alert(nil), seed...),
		opts:   buildOptions(opts),
	}
}

// List returns all alerts, newest first.
func (s *AlertStore) List() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Alert(nil), s.alerts...)
}

// Latest returns the alert at the head of the list.
func (s *AlertStore) Latest() (models.Alert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.alerts) == 0 {
		return models.Alert{}, false
	}
	return s.alerts[0], true
}

// Add assigns an id and created_at and prepends the alert.
func (s *AlertStore) Add(in models.AlertInput) models.Alert {
	id, now := s.opts.stamp()
	a := models.Alert{
		ID:          id,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Sender:      in.Sender,
		Verified:    in.Verified,
		CreatedAt:   now,
	}

	s.mu.Lock()
	s.alerts = append([]models.Alert{a}, s.alerts...)
	s.mu.Unlock()

	return a
}

// Remove drops the alert with the given id; a missing id is a no-op.
func (s *AlertStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts = append(s.alerts[:i:i], s.alerts[i+1:]...)
			return true
		}
	}
	return false
}

// Verify marks the alert as verified. Verification is one-way: repeating it
// or naming a missing id changes nothing. The returned flag reports whether
// the alert exists.
func (s *AlertStore) Verify(id string) (models.Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].Verified = true
			return s.alerts[i], true
		}
	}
	return models.Alert{}, false
}
