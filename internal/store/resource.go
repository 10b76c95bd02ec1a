package store

import (
	"strings"
	"sync"

	"nexcos/internal/models"
)

// ResourceStore keeps the shared-resource catalog. New resources are
// appended, so the catalog reads oldest first.
type ResourceStore struct {
	mu        sync.RWMutex
	resources []models.Resource
	opts      options
}

// NewResourceStore returns a store seeded with a copy of seed.
func NewResourceStore(seed []models.Resource, opts ...Option) *ResourceStore {
	s := &ResourceStore{
		resources: make([]models.Resource, 0, len(seed)),
		opts:      buildOptions(opts),
	}
	for _, r := range seed {
		s.resources = append(s.resources, r.Clone())
	}
	return s
}

// List returns every resource in catalog order.
func (s *ResourceStore) List() []models.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Resource, len(s.resources))
	for i, r := range s.resources {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the catalog size.
func (s *ResourceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources)
}

// Get returns the resource with the given id.
func (s *ResourceStore) Get(id string) (models.Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.resources[i].Clone(), true
	}
	return models.Resource{}, false
}

// Add assigns an id and created_at to in and appends it to the catalog.
// Field values are stored as given.
func (s *ResourceStore) Add(in models.ResourceInput) models.Resource {
	id, now := s.opts.stamp()
	r := models.Resource{
		ID:          id,
		Title:       in.Title,
		Type:        in.Type,
		Description: in.Description,
		Location:    in.Location,
		Owner:       in.Owner,
		Status:      in.Status,
		Image:       in.Image,
		Capacity:    in.Capacity,
		Rate:        in.Rate,
		Amenities:   in.Amenities,
		CreatedAt:   now,
	}
	r = r.Clone()

	s.mu.Lock()
	s.resources = append(s.resources, r)
	s.mu.Unlock()

	return r.Clone()
}

// Update merges patch over the resource with the given id. A missing id is
// a no-op and reports false.
func (s *ResourceStore) Update(id string, patch models.ResourcePatch) (models.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Resource{}, false
	}
	s.resources[i] = patch.Apply(s.resources[i])
	return s.resources[i].Clone(), true
}

// Delete removes the resource with the given id. Deleting a missing id is a
// no-op and reports false.
func (s *ResourceStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.resources = append(s.resources[:i:i], s.resources[i+1:]...)
	return true
}

// Search returns the resources matching f in catalog order.
func (s *ResourceStore) Search(f ResourceFilter) []models.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		if f.Matches(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}

func (s *ResourceStore) indexOf(id string) int {
	for i := range s.resources {
		if s.resources[i].ID == id {
			return i
		}
	}
	return -1
}

// AllTypes is the type filter value that matches every resource.
const AllTypes = "All"

// ResourceFilter narrows the catalog the way the resource browser does: a
// case-insensitive substring of title, type or location, and an exact type.
type ResourceFilter struct {
	Query string
	Type  string
}

// Matches reports whether r passes the filter.
func (f ResourceFilter) Matches(r models.Resource) bool {
	if f.Type != "" && f.Type != AllTypes && string(r.Type) != f.Type {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(string(r.Type)), q) ||
		strings.Contains(strings.ToLower(r.Location), q)
}
