// Package memstore keeps every record kind in process memory. It backs the
// "memory" store driver and the service tests.
package memstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/repository"
)

// Store holds all collections behind one lock.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	members  map[string]domain.Member
	reports  map[string]domain.BugReport
	states   map[string]domain.SystemState
	usage    map[string]domain.Usage
	counters map[string]int64
	seq      int64
	order    map[string]int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:      time.Now,
		members:  make(map[string]domain.Member),
		reports:  make(map[string]domain.BugReport),
		states:   make(map[string]domain.SystemState),
		usage:    make(map[string]domain.Usage),
		counters: make(map[string]int64),
		order:    make(map[string]int64),
	}
}

// Repositories exposes the store through the repository contracts.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Members:      memberRepo{s},
		BugReports:   bugReportRepo{s},
		SystemStates: systemStateRepo{s},
		Usage:        usageRepo{s},
		Counters:     counterRepo{s},
		Stats:        statsRepo{s},
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// insertion order keeps listings stable when timestamps collide.
func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

type memberRepo struct{ s *Store }

func (r memberRepo) Create(_ context.Context, member *domain.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.usernameTaken(member.Username, "") {
		return repository.ErrDuplicate
	}
	now := r.s.now()
	member.ID = uuid.NewString()
	member.CreatedAt = now
	member.UpdatedAt = now
	r.s.members[member.ID] = *member
	r.s.track(member.ID)
	return nil
}

func (r memberRepo) usernameTaken(username, exceptID string) bool {
	for id, m := range r.s.members {
		if id != exceptID && m.Username == username {
			return true
		}
	}
	return false
}

func (r memberRepo) Update(_ context.Context, member *domain.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.members[member.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.usernameTaken(member.Username, member.ID) {
		return repository.ErrDuplicate
	}
	stored.Username = member.Username
	stored.Password = member.Password
	stored.Access = member.Access
	stored.UpdatedAt = r.s.now()
	r.s.members[member.ID] = stored
	*member = stored
	return nil
}

func (r memberRepo) SetAccess(_ context.Context, id string, field domain.AccessField, value bool) (*domain.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.Access.Set(field, value)
	stored.UpdatedAt = r.s.now()
	r.s.members[id] = stored
	return &stored, nil
}

func (r memberRepo) GetByID(_ context.Context, id string) (*domain.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r memberRepo) GetByUsername(_ context.Context, username string) (*domain.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.members {
		if m.Username == username {
			found := m
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memberRepo) List(_ context.Context, filter repository.MemberFilter) ([]domain.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.Member, 0, len(r.s.members))
	for _, m := range r.s.members {
		if search != "" && !strings.Contains(strings.ToLower(m.Username), search) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return r.s.order[out[i].ID] < r.s.order[out[j].ID]
	})
	return out, nil
}

func (r memberRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.members[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.members, id)
	delete(r.s.order, id)
	return nil
}

type bugReportRepo struct{ s *Store }

func (r bugReportRepo) Create(_ context.Context, report *domain.BugReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	report.ID = uuid.NewString()
	report.CreatedAt = r.s.now()
	r.s.reports[report.ID] = cloneReport(*report)
	r.s.track(report.ID)
	return nil
}

func (r bugReportRepo) GetByID(_ context.Context, id string) (*domain.BugReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	report, ok := r.s.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneReport(report)
	return &out, nil
}

func (r bugReportRepo) List(_ context.Context, filter repository.BugReportFilter) ([]domain.BugReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.BugReport, 0, len(r.s.reports))
	for _, report := range r.s.reports {
		if !statusMatches(report.Status, filter.Statuses) {
			continue
		}
		out = append(out, cloneReport(report))
	}
	sort.Slice(out, func(i, j int) bool {
		return r.s.order[out[i].ID] < r.s.order[out[j].ID]
	})
	return out, nil
}

func (r bugReportRepo) Apply(_ context.Context, id string, changes repository.BugReportChanges) (*domain.BugReport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	report, ok := r.s.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	changes.ApplyTo(&report)
	r.s.reports[id] = report
	out := cloneReport(report)
	return &out, nil
}

func (r bugReportRepo) CountByStatus(context.Context) (map[domain.BugReportStatus]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[domain.BugReportStatus]int64)
	for _, report := range r.s.reports {
		counts[report.Status]++
	}
	return counts, nil
}

func statusMatches(status domain.BugReportStatus, allowed []domain.BugReportStatus) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}

func cloneReport(report domain.BugReport) domain.BugReport {
	if report.ResolutionMessage != nil {
		msg := *report.ResolutionMessage
		report.ResolutionMessage = &msg
	}
	return report
}

type systemStateRepo struct{ s *Store }

func (r systemStateRepo) Get(_ context.Context, key string) (*domain.SystemState, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	state, ok := r.s.states[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &state, nil
}

func (r systemStateRepo) Upsert(_ context.Context, key string, value bool) (*domain.SystemState, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	state, ok := r.s.states[key]
	if !ok {
		state = domain.SystemState{Key: key, CreatedAt: now}
	}
	state.Value = value
	state.UpdatedAt = now
	r.s.states[key] = state
	return &state, nil
}

type usageRepo struct{ s *Store }

func (r usageRepo) Increment(_ context.Context, userID string, seconds float64) (*domain.Usage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	usage, ok := r.s.usage[userID]
	if !ok {
		usage = domain.Usage{ID: uuid.NewString(), UserID: userID}
	}
	usage.Seconds += seconds
	usage.UpdatedAt = r.s.now()
	r.s.usage[userID] = usage
	return &usage, nil
}

func (r usageRepo) GetByUser(_ context.Context, userID string) (*domain.Usage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	usage, ok := r.s.usage[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &usage, nil
}

func (r usageRepo) List(context.Context) ([]domain.Usage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Usage, 0, len(r.s.usage))
	for _, usage := range r.s.usage {
		out = append(out, usage)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type counterRepo struct{ s *Store }

func (r counterRepo) Next(_ context.Context, name string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.counters[name]++
	return r.s.counters[name], nil
}

type statsRepo struct{ s *Store }

// DataSize approximates the footprint as the JSON-encoded size of all records.
func (r statsRepo) DataSize(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var total int64
	for _, collection := range []any{r.s.members, r.s.reports, r.s.states, r.s.usage, r.s.counters} {
		raw, err := json.Marshal(collection)
		if err != nil {
			return 0, err
		}
		total += int64(len(raw))
	}
	return total, nil
}
