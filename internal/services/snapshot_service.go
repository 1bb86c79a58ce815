package services

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"content-tracker-report/internal/database"
	"content-tracker-report/internal/models"
)

// Snapshot is one immutable view of every feed collection. All filtering,
// grouping, and report assembly runs against a snapshot, never against the
// live store.
type Snapshot struct {
	Tasks         []models.Task
	ActiveClients ActiveClientSet
	Employees     []models.Employee
	Version       uint64
	RefreshedAt   time.Time
}

// SnapshotService holds the in-memory mirror of the external store. Each feed
// refresh replaces the corresponding collection wholesale; there is no
// incremental merge. Single writer (the refresh loop), many readers.
type SnapshotService struct {
	db *database.MongoDBClient

	mutex         sync.RWMutex
	tasks         map[string]models.Task
	primary       []models.Client
	strategy      []models.Client
	strategyHead  []models.Client
	activeClients ActiveClientSet
	employees     []models.Employee
	version       uint64
	refreshedAt   time.Time

	listenerMutex sync.Mutex
	listeners     []func(Snapshot)
}

// NewSnapshotService creates an empty snapshot service backed by the store
func NewSnapshotService(db *database.MongoDBClient) *SnapshotService {
	return &SnapshotService{
		db:            db,
		tasks:         make(map[string]models.Task),
		activeClients: ResolveActiveClients(),
	}
}

// Subscribe registers a callback invoked after every snapshot replacement
func (s *SnapshotService) Subscribe(fn func(Snapshot)) {
	s.listenerMutex.Lock()
	defer s.listenerMutex.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Refresh reloads every collection from the store and replaces the local
// snapshot wholesale. A failure on one collection keeps its previous copy.
func (s *SnapshotService) Refresh(ctx context.Context) error {
	tasks, err := s.db.LoadTasks(ctx)
	if err != nil {
		return err
	}
	primary, err := s.db.LoadClients(ctx, database.SourcePrimary)
	if err != nil {
		return err
	}
	strategy, err := s.db.LoadClients(ctx, database.SourceStrategy)
	if err != nil {
		return err
	}
	strategyHead, err := s.db.LoadClients(ctx, database.SourceStrategyHead)
	if err != nil {
		return err
	}
	employees, err := s.db.LoadEmployees(ctx)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	s.tasks = tasks
	s.primary = primary
	s.strategy = strategy
	s.strategyHead = strategyHead
	s.employees = employees
	s.activeClients = ResolveActiveClients(primary, strategy, strategyHead)
	s.version++
	s.refreshedAt = time.Now()
	snapshot := s.snapshotLocked()
	s.mutex.Unlock()

	s.notify(snapshot)
	return nil
}

// ReplaceTasks swaps in a new task collection (used by tests and by callers
// that refresh a single feed)
func (s *SnapshotService) ReplaceTasks(tasks map[string]models.Task) {
	s.mutex.Lock()
	s.tasks = tasks
	s.version++
	s.refreshedAt = time.Now()
	snapshot := s.snapshotLocked()
	s.mutex.Unlock()
	s.notify(snapshot)
}

// ReplaceClients swaps in one client collection and recomputes the active set
func (s *SnapshotService) ReplaceClients(source string, clients []models.Client) {
	s.mutex.Lock()
	switch source {
	case database.SourcePrimary:
		s.primary = clients
	case database.SourceStrategy:
		s.strategy = clients
	case database.SourceStrategyHead:
		s.strategyHead = clients
	}
	s.activeClients = ResolveActiveClients(s.primary, s.strategy, s.strategyHead)
	s.version++
	s.refreshedAt = time.Now()
	snapshot := s.snapshotLocked()
	s.mutex.Unlock()
	s.notify(snapshot)
}

// ReplaceEmployees swaps in the employee collection
func (s *SnapshotService) ReplaceEmployees(employees []models.Employee) {
	s.mutex.Lock()
	s.employees = employees
	s.version++
	s.refreshedAt = time.Now()
	snapshot := s.snapshotLocked()
	s.mutex.Unlock()
	s.notify(snapshot)
}

// Snapshot returns a copy of the current snapshot. Tasks are ordered by
// creation time then id so repeated queries see identical sequences.
func (s *SnapshotService) Snapshot() Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.snapshotLocked()
}

// GetTask looks up a single task by id in the current snapshot
func (s *SnapshotService) GetTask(taskID string) (models.Task, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	task, ok := s.tasks[taskID]
	return task, ok
}

// SocialMediaEmployees returns the working roster: active social media team
// members excluding leadership roles.
func (s *SnapshotService) SocialMediaEmployees() []models.Employee {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	var members []models.Employee
	for _, e := range s.employees {
		if e.IsSocialMediaMember() {
			members = append(members, e)
		}
	}
	return members
}

// Watch runs the refresh loop until the context is cancelled
func (s *SnapshotService) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Snapshot refresh loop stopped")
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				log.Printf("WARNING: Snapshot refresh failed: %v", err)
			}
		}
	}
}

func (s *SnapshotService) snapshotLocked() Snapshot {
	tasks := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt != tasks[j].CreatedAt {
			return tasks[i].CreatedAt < tasks[j].CreatedAt
		}
		return tasks[i].ID < tasks[j].ID
	})

	employees := make([]models.Employee, len(s.employees))
	copy(employees, s.employees)

	return Snapshot{
		Tasks:         tasks,
		ActiveClients: s.activeClients,
		Employees:     employees,
		Version:       s.version,
		RefreshedAt:   s.refreshedAt,
	}
}

func (s *SnapshotService) notify(snapshot Snapshot) {
	s.listenerMutex.Lock()
	listeners := make([]func(Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	s.listenerMutex.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
