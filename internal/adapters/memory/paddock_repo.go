// Package memory holds process-local repositories used for single-node
// deployments and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// PaddockRepo implements ports.PaddockRepository in memory.
type PaddockRepo struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Paddock
	order []string
}

// NewPaddockRepo creates an empty PaddockRepo.
func NewPaddockRepo() *PaddockRepo {
	return &PaddockRepo{byID: make(map[string]*domain.Paddock)}
}

func clonePaddock(p *domain.Paddock) *domain.Paddock {
	cp := *p
	cp.Boundary = append([]domain.GeoPoint(nil), p.Boundary...)
	cp.Distance = nil
	return &cp
}

// Insert stores a new paddock.
func (r *PaddockRepo) Insert(ctx context.Context, p *domain.Paddock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return fmt.Errorf("paddock %s already exists", p.ID)
	}
	r.byID[p.ID] = clonePaddock(p)
	r.order = append(r.order, p.ID)
	return nil
}

// GetByID returns a copy of the stored paddock.
func (r *PaddockRepo) GetByID(ctx context.Context, id string) (*domain.Paddock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePaddock(p), nil
}

// List returns all paddocks in insertion order.
func (r *PaddockRepo) List(ctx context.Context) ([]domain.Paddock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Paddock, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *clonePaddock(r.byID[id]))
	}
	return out, nil
}

// Update replaces the stored record.
func (r *PaddockRepo) Update(ctx context.Context, p *domain.Paddock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[p.ID] = clonePaddock(p)
	return nil
}

// Delete removes a paddock and reports whether it existed.
func (r *PaddockRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}
