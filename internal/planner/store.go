// Package planner owns the task collection: every mutation, conflict-free
// placement and the persistence round-trip go through Store.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/recurrence"
	"github.com/sandeepkv93/timeboxd/internal/stats"
	"github.com/sandeepkv93/timeboxd/internal/storage"
)

type Options struct {
	// Repo may be nil, in which case the store never persists.
	Repo   storage.Repository
	Logger *zap.Logger
	Now    func() time.Time
	NewID  func() string
	// OpenErr is the error from opening Repo, if that failed. The store then
	// starts degraded.
	OpenErr error
}

// Snapshot is a consistent copy of the store at one point in time.
type Snapshot struct {
	Tasks    []model.Task
	ActiveID string
	Stats    stats.Stats
}

type Store struct {
	mu       sync.RWMutex
	tasks    []model.Task
	activeID string
	degraded bool

	repo   storage.Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewID returns a short random task identifier.
func NewID() string {
	return uuid.New().String()[:8]
}

// New loads the persisted collection and runs the recurrence pass once. A
// storage failure never fails construction; the store continues in memory.
func New(ctx context.Context, opts Options) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &Store{
		repo:   opts.Repo,
		logger: opts.Logger,
		now:    opts.Now,
		newID:  opts.NewID,
		tasks:  make([]model.Task, 0),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = NewID
	}

	if opts.OpenErr != nil {
		s.degrade(opts.OpenErr)
	}
	s.load(ctx)
	if err := s.RunRecurrence(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) {
	if s.repo == nil {
		return
	}
	raw, err := s.repo.Get(ctx, storage.TasksKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return
	case err != nil:
		s.degrade(err)
		return
	}

	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		s.logger.Warn("discarding unreadable task snapshot", zap.Error(err))
		return
	}
	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			s.logger.Warn("dropping invalid task", zap.String("task_id", t.ID), zap.Error(err))
			continue
		}
		if t.Status == model.StatusActive {
			if s.activeID != "" {
				t.Status = model.StatusIdle
			} else {
				s.activeID = t.ID
			}
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	s.logger.Info("task snapshot loaded", zap.Int("tasks", len(kept)), zap.String("active_id", s.activeID))
}

// Degraded reports that persistence failed and the session is memory-only.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

func (s *Store) degrade(err error) {
	if s.degraded {
		return
	}
	s.degraded = true
	s.logger.Warn("task storage unavailable, continuing in memory", zap.Error(err))
}

// mutate runs fn on a private copy of the collection and swaps it in when fn
// reports a change. fn must not retain the slice.
func (s *Store) mutate(ctx context.Context, op, id string, fn func(tasks []model.Task, now time.Time) ([]model.Task, bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed, err := fn(cloneAll(s.tasks), s.now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	s.tasks = next
	s.activeID = ""
	for _, t := range next {
		if t.Status == model.StatusActive {
			s.activeID = t.ID
			break
		}
	}
	s.logger.Debug("task mutation", zap.String("op", op), zap.String("task_id", id), zap.Int("tasks", len(next)))
	s.persist(ctx)
	return nil
}

func (s *Store) persist(ctx context.Context) {
	if s.repo == nil || s.degraded {
		return
	}
	raw, err := json.Marshal(s.tasks)
	if err != nil {
		s.degrade(fmt.Errorf("%w: encode tasks: %v", storage.ErrStorageUnavailable, err))
		return
	}
	if err := s.repo.Put(ctx, storage.TasksKey, raw); err != nil {
		s.degrade(err)
	}
}

// AddTask creates an idle task, or a recurring template when pattern recurs.
// A template matching today materializes its first instance immediately. An
// empty title is ignored and returns a zero task.
func (s *Store) AddTask(ctx context.Context, title string, duration int, pattern model.Recurrence, at *model.Slot) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, nil
	}
	if duration <= 0 {
		duration = model.DefaultDuration
	}
	if pattern == "" {
		pattern = model.RecurrenceNone
	}
	if !pattern.IsValid() {
		return model.Task{}, fmt.Errorf("planner: add task: %w: %q", model.ErrInvalidRecurrence, pattern)
	}

	var created model.Task
	err := s.mutate(ctx, "add", "", func(tasks []model.Task, now time.Time) ([]model.Task, bool, error) {
		created = model.Task{
			ID:         s.uniqueID(tasks),
			Title:      title,
			Duration:   duration,
			Status:     model.StatusIdle,
			CreatedAt:  now,
			Recurrence: pattern,
		}
		if pattern.IsRecurring() {
			created.IsRecurringTemplate = true
			if at != nil {
				slot := *at
				created.RecurrenceTime = &slot
			}
		}
		tasks = append(tasks, created)
		if created.IsRecurringTemplate {
			tasks = s.materialize(tasks, now)
		}
		return tasks, true, nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return created.Clone(), nil
}

// UpdateTask applies the mutations in order. Either all of them take effect
// or none do. Unknown ids are ignored.
func (s *Store) UpdateTask(ctx context.Context, id string, mutations ...Mutation) error {
	return s.mutate(ctx, "update", id, func(tasks []model.Task, now time.Time) ([]model.Task, bool, error) {
		idx := indexOf(tasks, id)
		if idx < 0 || len(mutations) == 0 {
			return nil, false, nil
		}
		t := tasks[idx]
		for _, m := range mutations {
			if err := m.apply(&t, now); err != nil {
				return nil, false, fmt.Errorf("planner: %s %s: %w", m.name(), id, err)
			}
		}
		if err := t.Validate(); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrIllegalTransition, err)
		}
		if t.Status == model.StatusActive {
			demoteActive(tasks, id)
		}
		tasks[idx] = t
		return tasks, true, nil
	})
}

// DeleteTask removes one task. Instances of a deleted template are kept.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete", id, func(tasks []model.Task, _ time.Time) ([]model.Task, bool, error) {
		idx := indexOf(tasks, id)
		if idx < 0 {
			return nil, false, nil
		}
		return append(tasks[:idx], tasks[idx+1:]...), true, nil
	})
}

// DeleteRecurringTemplate removes the template and every instance it
// produced.
func (s *Store) DeleteRecurringTemplate(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_template", id, func(tasks []model.Task, _ time.Time) ([]model.Task, bool, error) {
		kept := tasks[:0]
		for _, t := range tasks {
			if t.ID == id || t.ParentRecurringID == id {
				continue
			}
			kept = append(kept, t)
		}
		return kept, len(kept) != len(tasks), nil
	})
}

// ScheduleTask places the task at slot or the first conflict-free slot after
// it, and returns where it landed. ok is false when nothing was scheduled.
func (s *Store) ScheduleTask(ctx context.Context, id string, slot model.Slot) (placed model.Slot, ok bool, err error) {
	err = s.mutate(ctx, "schedule", id, func(tasks []model.Task, _ time.Time) ([]model.Task, bool, error) {
		idx := indexOf(tasks, id)
		if idx < 0 || tasks[idx].IsRecurringTemplate {
			return nil, false, nil
		}
		placed = Place(tasks, id, slot, tasks[idx].Duration)
		ok = true
		if cur := tasks[idx].ScheduledTime; cur != nil && *cur == placed {
			return nil, false, nil
		}
		tasks[idx].ScheduledTime = model.SlotPtr(placed)
		return tasks, true, nil
	})
	if err != nil {
		return 0, false, err
	}
	return placed, ok, nil
}

func (s *Store) UnscheduleTask(ctx context.Context, id string) error {
	return s.mutate(ctx, "unschedule", id, func(tasks []model.Task, _ time.Time) ([]model.Task, bool, error) {
		idx := indexOf(tasks, id)
		if idx < 0 || tasks[idx].ScheduledTime == nil {
			return nil, false, nil
		}
		tasks[idx].ScheduledTime = nil
		return tasks, true, nil
	})
}

// StartTask makes id the only active task. A previously active task goes
// back to idle. Templates and completed tasks cannot be started.
func (s *Store) StartTask(ctx context.Context, id string) error {
	return s.mutate(ctx, "start", id, func(tasks []model.Task, _ time.Time) ([]model.Task, bool, error) {
		idx := indexOf(tasks, id)
		if idx < 0 {
			return nil, false, nil
		}
		t := tasks[idx]
		if t.IsRecurringTemplate || t.IsCompleted() || t.Status == model.StatusActive {
			return nil, false, nil
		}
		demoteActive(tasks, id)
		tasks[idx].Status = model.StatusActive
		return tasks, true, nil
	})
}

// CompleteTask is terminal. completedAt is stamped on the first completion
// only.
func (s *Store) CompleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, "complete", id, func(tasks []model.Task, now time.Time) ([]model.Task, bool, error) {
		idx := indexOf(tasks, id)
		if idx < 0 || tasks[idx].IsRecurringTemplate || tasks[idx].IsCompleted() {
			return nil, false, nil
		}
		done := now
		tasks[idx].Status = model.StatusCompleted
		tasks[idx].CompletedAt = &done
		return tasks, true, nil
	})
}

// StopTask returns the active task to idle. Without an active task it does
// nothing.
func (s *Store) StopTask(ctx context.Context) error {
	return s.mutate(ctx, "stop", "", func(tasks []model.Task, _ time.Time) ([]model.Task, bool, error) {
		changed := demoteActive(tasks, "")
		return tasks, changed, nil
	})
}

func (s *Store) ClearCompleted(ctx context.Context) error {
	return s.mutate(ctx, "clear_completed", "", func(tasks []model.Task, _ time.Time) ([]model.Task, bool, error) {
		kept := tasks[:0]
		for _, t := range tasks {
			if !t.IsCompleted() {
				kept = append(kept, t)
			}
		}
		return kept, len(kept) != len(tasks), nil
	})
}

// RunRecurrence materializes today's instances for every due template.
func (s *Store) RunRecurrence(ctx context.Context) error {
	return s.mutate(ctx, "recurrence", "", func(tasks []model.Task, now time.Time) ([]model.Task, bool, error) {
		before := len(tasks)
		tasks = s.materialize(tasks, now)
		return tasks, len(tasks) != before, nil
	})
}

func (s *Store) materialize(tasks []model.Task, now time.Time) []model.Task {
	for _, tpl := range recurrence.Due(tasks, now) {
		inst := recurrence.Instance(tpl, s.uniqueID(tasks), now)
		tasks = append(tasks, inst)
		s.logger.Debug("recurring instance materialized", zap.String("template_id", tpl.ID), zap.String("task_id", inst.ID))
	}
	return tasks
}

func (s *Store) uniqueID(tasks []model.Task) string {
	for {
		id := s.newID()
		if id != "" && indexOf(tasks, id) < 0 {
			return id
		}
	}
}

// Tasks returns every task, templates included, in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.tasks)
}

func (s *Store) Backlog() []model.Task {
	return s.filter(model.Task.InBacklog)
}

// Timeline lists scheduled non-template tasks, completed ones included,
// ordered by start slot.
func (s *Store) Timeline() []model.Task {
	out := s.filter(func(t model.Task) bool {
		return !t.IsRecurringTemplate && t.IsScheduled()
	})
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].ScheduledTime < *out[j].ScheduledTime
	})
	return out
}

func (s *Store) Templates() []model.Task {
	return s.filter(func(t model.Task) bool { return t.IsRecurringTemplate })
}

func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := indexOf(s.tasks, id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx].Clone(), true
}

func (s *Store) Active() (model.Task, bool) {
	s.mu.RLock()
	id := s.activeID
	s.mu.RUnlock()
	if id == "" {
		return model.Task{}, false
	}
	return s.Task(id)
}

func (s *Store) Stats() stats.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Compute(s.tasks, s.now())
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Tasks:    cloneAll(s.tasks),
		ActiveID: s.activeID,
		Stats:    stats.Compute(s.tasks, s.now()),
	}
}

func (s *Store) filter(keep func(model.Task) bool) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, 0)
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func cloneAll(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func indexOf(tasks []model.Task, id string) int {
	if id == "" {
		return -1
	}
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// demoteActive sets every active task except keep back to idle.
func demoteActive(tasks []model.Task, keep string) bool {
	changed := false
	for i := range tasks {
		if tasks[i].Status == model.StatusActive && tasks[i].ID != keep {
			tasks[i].Status = model.StatusIdle
			changed = true
		}
	}
	return changed
}
