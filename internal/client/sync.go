package client

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"sync"
	"time"

	"todo-list/internal/config"
	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/view"

	"github.com/charmbracelet/log"
)

// ErrServerUnavailable is the cause reported once reconnection gives up
var ErrServerUnavailable = stderrors.New("could not connect to the server, check that it is running")

// Connectivity is the controller's view of the server
type Connectivity int

const (
	ConnectivityUnknown Connectivity = iota
	ConnectivityOnline
	ConnectivityOffline
)

func (c Connectivity) String() string {
	switch c {
	case ConnectivityOnline:
		return "online"
	case ConnectivityOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Notifier surfaces failed actions to the user
type Notifier interface {
	Notify(err error)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(err error)

func (f NotifierFunc) Notify(err error) { f(err) }

// SyncController keeps the local task mirror in step with the server.
// Every mutation checks connectivity first, and the mirror is patched
// only after the server accepted the change.
type SyncController struct {
	api       API
	clock     Clock
	notifier  Notifier
	logger    *log.Logger
	projector *view.Projector

	maxAttempts   int
	retryDelay    time.Duration
	probeInterval time.Duration

	mu           sync.Mutex
	tasks        []domain.Task
	options      view.Options
	connectivity Connectivity
	attempts     int
}

// NewSyncController creates a controller. nil cfg, clock, notifier and
// logger fall back to defaults, the real clock, no-op and discard.
func NewSyncController(api API, cfg *config.Config, clock Clock, notifier Notifier, logger *log.Logger) *SyncController {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if clock == nil {
		clock = RealClock()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(error) {})
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SyncController{
		api:           api,
		clock:         clock,
		notifier:      notifier,
		logger:        logger,
		projector:     view.NewProjector(cfg.Display.Locale),
		maxAttempts:   cfg.Client.MaxReconnectAttempts,
		retryDelay:    cfg.Client.ReconnectDelay,
		probeInterval: cfg.Client.ProbeInterval,
		options:       view.Options{Filter: view.FilterAll},
	}
}

// Connectivity returns the last known server state
func (s *SyncController) Connectivity() Connectivity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connectivity
}

// ServerOnline reports whether the last probe or call reached the server
func (s *SyncController) ServerOnline() bool {
	return s.Connectivity() == ConnectivityOnline
}

// ReconnectAttempts returns the attempts used since the last successful probe
func (s *SyncController) ReconnectAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Tasks returns a copy of the mirror in fetch order
func (s *SyncController) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Task returns the mirrored task with id
func (s *SyncController) Task(id int64) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return cloneTask(s.tasks[i]), true
	}
	return domain.Task{}, false
}

// Options returns the active filter and sort
func (s *SyncController) Options() view.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

// SetFilter changes the filter applied by View
func (s *SyncController) SetFilter(f view.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options.Filter = f
}

// SetSort changes the sort applied by View
func (s *SyncController) SetSort(m view.SortMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options.Sort = m
}

// View projects the mirror through the active options
func (s *SyncController) View() view.ViewModel {
	s.mu.Lock()
	tasks := cloneTasks(s.tasks)
	opts := s.options
	s.mu.Unlock()
	return s.projector.Project(tasks, opts, s.clock.Now())
}

// CheckServer probes the status endpoint. Success marks the server online
// and resets the reconnect attempts; any failure marks it offline.
func (s *SyncController) CheckServer(ctx context.Context) bool {
	_, err := s.api.Status(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.connectivity = ConnectivityOffline
		s.logger.Warn("server check failed", "err", err)
		return false
	}
	s.connectivity = ConnectivityOnline
	s.attempts = 0
	return true
}

// Reconnect probes until the server answers or the attempt budget is spent.
// The delay follows every failed probe, the last one included.
func (s *SyncController) Reconnect(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.attempts >= s.maxAttempts {
			s.mu.Unlock()
			s.logger.Error("maximum reconnect attempts reached", "attempts", s.maxAttempts)
			return errors.NewNetworkError("reconnect", 0, ErrServerUnavailable)
		}
		s.attempts++
		attempt := s.attempts
		s.mu.Unlock()

		s.logger.Info("reconnecting", "attempt", attempt, "max", s.maxAttempts)
		if s.CheckServer(ctx) {
			return nil
		}
		if err := sleep(ctx, s.clock, s.retryDelay); err != nil {
			return err
		}
	}
}

// RunProber checks the server every probe interval while it is not online.
// It returns when ctx is cancelled.
func (s *SyncController) RunProber(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.probeInterval):
			if !s.ServerOnline() {
				s.CheckServer(ctx)
			}
		}
	}
}

// Start checks the server and loads the task list
func (s *SyncController) Start(ctx context.Context) error {
	s.CheckServer(ctx)
	return s.Load(ctx)
}

// Load replaces the mirror with the server's task list
func (s *SyncController) Load(ctx context.Context) error {
	if err := s.ensureOnline(ctx); err != nil {
		return err
	}
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return s.fail("load tasks", err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	s.logger.Debug("tasks loaded", "count", len(tasks))
	return nil
}

// Refresh reloads the mirror while the server is online. Offline it keeps
// the mirror and returns false; RunProber brings the server back.
func (s *SyncController) Refresh(ctx context.Context) bool {
	if !s.ServerOnline() {
		return false
	}
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.fail("refresh tasks", err)
		}
		return false
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return true
}

// AddTask creates a task and appends the server's copy to the mirror
func (s *SyncController) AddTask(ctx context.Context, text string, dueDate *time.Time, category domain.Category) (*domain.Task, error) {
	text, err := requireText("texto", text)
	if err != nil {
		return nil, s.fail("add task", err)
	}
	if err := s.ensureOnline(ctx); err != nil {
		return nil, err
	}

	task, err := s.api.CreateTask(ctx, text, dueDate, category)
	if err != nil {
		return nil, s.fail("add task", err)
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, cloneTask(*task))
	s.mu.Unlock()
	return task, nil
}

// ToggleTask flips a task's completed flag
func (s *SyncController) ToggleTask(ctx context.Context, id int64) error {
	task, ok := s.Task(id)
	if !ok {
		return s.fail("toggle task", taskNotFound(id))
	}
	return s.UpdateTask(ctx, id, domain.TaskPatch{Completed: domain.Some(!task.Completed)})
}

// EditTask replaces a task's text. Blank text is rejected before any request.
func (s *SyncController) EditTask(ctx context.Context, id int64, text string) error {
	text, err := requireText("texto", text)
	if err != nil {
		return s.fail("edit task", err)
	}
	return s.UpdateTask(ctx, id, domain.TaskPatch{Text: domain.Some(text)})
}

// UpdateTask sends patch and applies it to the mirror once accepted
func (s *SyncController) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) error {
	if _, ok := s.Task(id); !ok {
		return s.fail("update task", taskNotFound(id))
	}
	if err := s.ensureOnline(ctx); err != nil {
		return err
	}
	if err := s.api.UpdateTask(ctx, id, patch); err != nil {
		return s.fail("update task", err)
	}

	s.mutate(id, func(t *domain.Task) bool {
		patch.Apply(t)
		return true
	})
	return nil
}

// RemoveTask deletes a task and drops it from the mirror
func (s *SyncController) RemoveTask(ctx context.Context, id int64) error {
	if _, ok := s.Task(id); !ok {
		return s.fail("remove task", taskNotFound(id))
	}
	if err := s.ensureOnline(ctx); err != nil {
		return err
	}
	if err := s.api.DeleteTask(ctx, id); err != nil {
		return s.fail("remove task", err)
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// AddSubtask creates a subtask and attaches it to its task in the mirror
func (s *SyncController) AddSubtask(ctx context.Context, taskID int64, text string) (*domain.Subtask, error) {
	if _, ok := s.Task(taskID); !ok {
		return nil, s.fail("add subtask", taskNotFound(taskID))
	}
	text, err := requireText("texto", text)
	if err != nil {
		return nil, s.fail("add subtask", err)
	}
	if err := s.ensureOnline(ctx); err != nil {
		return nil, err
	}

	subtask, err := s.api.CreateSubtask(ctx, taskID, text)
	if err != nil {
		return nil, s.fail("add subtask", err)
	}

	s.mutate(taskID, func(t *domain.Task) bool {
		t.AddSubtask(*subtask)
		return true
	})
	return subtask, nil
}

// ToggleSubtask flips a subtask's completed flag
func (s *SyncController) ToggleSubtask(ctx context.Context, taskID, subtaskID int64) error {
	subtask, err := s.subtask(taskID, subtaskID)
	if err != nil {
		return s.fail("toggle subtask", err)
	}
	return s.updateSubtask(ctx, "toggle subtask", subtask, domain.SubtaskPatch{Completed: domain.Some(!subtask.Completed)})
}

// EditSubtask replaces a subtask's text. Blank text is rejected before any request.
func (s *SyncController) EditSubtask(ctx context.Context, taskID, subtaskID int64, text string) error {
	subtask, err := s.subtask(taskID, subtaskID)
	if err != nil {
		return s.fail("edit subtask", err)
	}
	text, err = requireText("texto", text)
	if err != nil {
		return s.fail("edit subtask", err)
	}
	return s.updateSubtask(ctx, "edit subtask", subtask, domain.SubtaskPatch{Text: domain.Some(text)})
}

func (s *SyncController) updateSubtask(ctx context.Context, op string, subtask domain.Subtask, patch domain.SubtaskPatch) error {
	if err := s.ensureOnline(ctx); err != nil {
		return err
	}
	if err := s.api.UpdateSubtask(ctx, subtask.ID, patch); err != nil {
		return s.fail(op, err)
	}

	patch.Apply(&subtask)
	s.mutate(subtask.TaskID, func(t *domain.Task) bool {
		return t.ReplaceSubtask(subtask)
	})
	return nil
}

// RemoveSubtask deletes a subtask and recomputes its task in the mirror
func (s *SyncController) RemoveSubtask(ctx context.Context, taskID, subtaskID int64) error {
	if _, err := s.subtask(taskID, subtaskID); err != nil {
		return s.fail("remove subtask", err)
	}
	if err := s.ensureOnline(ctx); err != nil {
		return err
	}
	if err := s.api.DeleteSubtask(ctx, subtaskID); err != nil {
		return s.fail("remove subtask", err)
	}

	s.mutate(taskID, func(t *domain.Task) bool {
		return t.RemoveSubtask(subtaskID)
	})
	return nil
}

// ensureOnline reconnects when the server is offline. A controller that
// never probed checks once first, so only a failed check spends attempts.
// Exhausting the attempts is reported to the user.
func (s *SyncController) ensureOnline(ctx context.Context) error {
	switch s.Connectivity() {
	case ConnectivityOnline:
		return nil
	case ConnectivityUnknown:
		if s.CheckServer(ctx) {
			return nil
		}
	}
	if err := s.Reconnect(ctx); err != nil {
		s.notifier.Notify(err)
		return err
	}
	return nil
}

// fail records a failed action. Failures that never reached the server
// mark it offline.
func (s *SyncController) fail(op string, err error) error {
	if errors.IsTransportFailure(err) {
		s.mu.Lock()
		s.connectivity = ConnectivityOffline
		s.mu.Unlock()
	}
	s.logger.Warn("action failed", "op", op, "err", err)
	s.notifier.Notify(err)
	return err
}

// mutate applies fn to the mirrored task with id under the lock
func (s *SyncController) mutate(id int64, fn func(t *domain.Task) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		task := cloneTask(s.tasks[i])
		if fn(&task) {
			s.tasks[i] = task
		}
	}
}

func (s *SyncController) subtask(taskID, subtaskID int64) (domain.Subtask, error) {
	task, ok := s.Task(taskID)
	if !ok {
		return domain.Subtask{}, taskNotFound(taskID)
	}
	subtask, ok := task.FindSubtask(subtaskID)
	if !ok {
		return domain.Subtask{}, errors.NewNotFoundError("subtask", formatID(subtaskID))
	}
	return subtask, nil
}

// indexOf must be called with mu held
func (s *SyncController) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func requireText(field, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.NewValidationError(field+" is required", nil)
	}
	return text, nil
}

func taskNotFound(id int64) error {
	return errors.NewNotFoundError("task", formatID(id))
}

func cloneTask(t domain.Task) domain.Task {
	subtasks := make([]domain.Subtask, len(t.Subtasks))
	copy(subtasks, t.Subtasks)
	t.Subtasks = subtasks
	return t
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	return out
}
