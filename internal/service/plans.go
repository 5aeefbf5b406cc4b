// internal/service/plans.go
package service

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dangerclosesec/atrium/internal/domain"
)

// Plan describes one subscription tier from the plan catalog file.
type Plan struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	PriceCentsMonth  int64    `json:"price_cents_month"`
	MaxMembers       int      `json:"max_members"`
	MaxConversations int      `json:"max_conversations"`
	MaxStorageGB     float64  `json:"max_storage_gb"`
	Features         []string `json:"features"`
}

// PlanService serves the subscription plan catalog. It is an explicitly
// constructed, injected instance; the backing JSON file is re-read whenever
// its modification time advances, so catalog edits show up without a
// restart.
type PlanService struct {
	path string

	mu      sync.RWMutex
	plans   map[string]Plan
	modTime time.Time
}

func NewPlanService(path string) *PlanService {
	return &PlanService{path: path, plans: make(map[string]Plan)}
}

// GetPlan returns the plan by ID, refreshing from disk first if the file
// changed.
func (s *PlanService) GetPlan(id string) (*Plan, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %q: %w", id, domain.ErrNotFound)
	}
	return &plan, nil
}

// ListPlans returns all plans in the catalog.
func (s *PlanService) ListPlans() ([]Plan, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Plan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, p)
	}
	return out, nil
}

func (s *PlanService) refresh() error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("statting plans file: %w", err)
	}

	s.mu.RLock()
	fresh := !info.ModTime().After(s.modTime)
	s.mu.RUnlock()
	if fresh {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading plans file: %w", err)
	}

	var list []Plan
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("parsing plans file: %w", err)
	}

	plans := make(map[string]Plan, len(list))
	for _, p := range list {
		plans[p.ID] = p
	}

	s.mu.Lock()
	s.plans = plans
	s.modTime = info.ModTime()
	s.mu.Unlock()

	return nil
}
