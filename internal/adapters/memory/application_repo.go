package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// ApplicationRepo implements ports.ApplicationRepository in memory.
type ApplicationRepo struct {
	mu   sync.RWMutex
	byID map[string]*domain.Application
	log  []string
}

// NewApplicationRepo creates an empty ApplicationRepo.
func NewApplicationRepo() *ApplicationRepo {
	return &ApplicationRepo{byID: make(map[string]*domain.Application)}
}

func cloneApplication(a *domain.Application) *domain.Application {
	cp := *a
	cp.PaddockIDs = append([]string(nil), a.PaddockIDs...)
	cp.Chemicals = append([]domain.Chemical{}, a.Chemicals...)
	if a.Weather != nil {
		w := *a.Weather
		cp.Weather = &w
	}
	if a.GPS != nil {
		g := *a.GPS
		cp.GPS = &g
	}
	return &cp
}

func (r *ApplicationRepo) Insert(ctx context.Context, a *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; exists {
		return fmt.Errorf("application %s already exists", a.ID)
	}
	r.byID[a.ID] = cloneApplication(a)
	r.log = append(r.log, a.ID)
	return nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneApplication(a), nil
}

func (r *ApplicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Application, 0, len(r.log))
	for _, id := range r.log {
		out = append(out, *cloneApplication(r.byID[id]))
	}
	return out, nil
}
