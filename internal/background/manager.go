// Package background runs ingestion and extraction as queued tasks with a
// bounded worker pool, so the HTTP surface can return 202 immediately and
// clients poll the process id.
package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/logging/types"
)

const (
	DefaultMaxWorkers = 4
	DefaultQueueSize  = 50
	MaxWorkers        = 32
	MaxQueueSize      = 500
)

// ExecuteFunc produces a task's result payload.
type ExecuteFunc func(ctx context.Context) (interface{}, error)

// taskExecution pairs a queued task with its execution context.
type taskExecution struct {
	processID string
	taskType  TaskType
	execute   ExecuteFunc
	ctx       context.Context
	cancel    context.CancelFunc
}

// Manager queues tasks and runs them on a fixed pool of workers.
type Manager struct {
	config    *config.Config
	store     TaskStore
	logger    types.Logger
	taskChan  chan *taskExecution
	maxAge    time.Duration
	taskLimit time.Duration

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	workers int
}

// NewManager creates a task manager from configuration, clamping worker and
// queue sizes to sane bounds.
func NewManager(cfg *config.Config) *Manager {
	logger := logging.GetGlobalLogger()

	workers := cfg.Tasks.MaxWorkers
	if workers <= 0 || workers > MaxWorkers {
		logger.Warn("Invalid worker count, using default", map[string]interface{}{
			"configured": cfg.Tasks.MaxWorkers,
			"default":    DefaultMaxWorkers,
		})
		workers = DefaultMaxWorkers
	}

	queueSize := cfg.Tasks.QueueSize
	if queueSize <= 0 || queueSize > MaxQueueSize {
		queueSize = DefaultQueueSize
	}

	return &Manager{
		config:    cfg,
		store:     NewInMemoryTaskStore(),
		logger:    logger,
		taskChan:  make(chan *taskExecution, queueSize),
		maxAge:    cfg.Tasks.MaxTaskAge,
		taskLimit: cfg.Tasks.TaskTimeout,
		workers:   workers,
	}
}

// Start launches the worker pool and the cleanup routine.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("task manager already running")
	}

	m.ctx, m.cancel = context.WithCancel(ctx)
	m.running = true

	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	m.wg.Add(1)
	go m.cleanupRoutine()

	m.logger.Info("Task manager started", map[string]interface{}{
		"max_workers": m.workers,
	})
	return nil
}

// Stop drains the pool, waiting for in-flight tasks until ctx expires.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil
	}

	m.cancel()
	close(m.taskChan)

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Task manager stopped gracefully")
	case <-ctx.Done():
		m.logger.Warn("Task manager shutdown timed out")
	}

	m.running = false
	return nil
}

// Submit queues a task for execution. The task runs with its own timeout
// detached from the submitting request's context.
func (m *Manager) Submit(processID string, taskType TaskType, execute ExecuteFunc) error {
	m.mu.Lock()
	running := m.running
	m.mu.Unlock()
	if !running {
		return fmt.Errorf("task manager is not running")
	}

	result := &TaskResult{
		ProcessID: processID,
		Type:      taskType,
		Status:    TaskStatusAccepted,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Store(context.Background(), result); err != nil {
		return fmt.Errorf("failed to record task: %w", err)
	}

	taskCtx, taskCancel := context.WithTimeout(m.ctx, m.taskLimit)
	task := &taskExecution{
		processID: processID,
		taskType:  taskType,
		execute:   execute,
		ctx:       taskCtx,
		cancel:    taskCancel,
	}

	select {
	case m.taskChan <- task:
		m.logger.Info("Task accepted", map[string]interface{}{
			"process_id": processID,
			"task_type":  string(taskType),
		})
		return nil
	default:
		taskCancel()
		return fmt.Errorf("task queue is full")
	}
}

// GetTaskResult retrieves a task result by process ID
func (m *Manager) GetTaskResult(ctx context.Context, processID string) (*TaskResult, error) {
	return m.store.Get(ctx, processID)
}

// ListTasks returns all task results
func (m *Manager) ListTasks(ctx context.Context) ([]*TaskResult, error) {
	return m.store.List(ctx)
}

// IsHealthy reports whether the manager accepts new tasks.
func (m *Manager) IsHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Manager) worker(workerID int) {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case task, ok := <-m.taskChan:
			if !ok {
				return
			}
			m.processTask(workerID, task)
		}
	}
}

func (m *Manager) processTask(workerID int, task *taskExecution) {
	defer task.cancel()
	start := time.Now()

	m.logger.Info("Processing task", map[string]interface{}{
		"worker_id":  workerID,
		"process_id": task.processID,
		"task_type":  string(task.taskType),
	})

	if err := m.updateStatus(task.processID, TaskStatusProcessing); err != nil {
		m.logger.Error("Failed to mark task processing", map[string]interface{}{
			"process_id": task.processID,
			"error":      err.Error(),
		})
	}

	data, err := task.execute(task.ctx)
	elapsed := time.Since(start)

	result, getErr := m.store.Get(context.Background(), task.processID)
	if getErr != nil {
		result = &TaskResult{
			ProcessID: task.processID,
			Type:      task.taskType,
			CreatedAt: start.UTC(),
		}
	}
	result.ProcessingTime = elapsed
	completedAt := time.Now().UTC()
	result.CompletedAt = &completedAt

	if err != nil {
		result.Status = TaskStatusFailure
		result.Error = err.Error()
		m.logger.Error("Task execution failed", map[string]interface{}{
			"worker_id":       workerID,
			"process_id":      task.processID,
			"processing_time": elapsed.String(),
			"error":           err.Error(),
		})
	} else {
		result.Status = TaskStatusSuccess
		result.Data = data
		m.logger.Info("Task execution completed", map[string]interface{}{
			"worker_id":       workerID,
			"process_id":      task.processID,
			"processing_time": elapsed.String(),
		})
	}

	if storeErr := m.store.Store(context.Background(), result); storeErr != nil {
		m.logger.Error("Failed to store task result", map[string]interface{}{
			"process_id": task.processID,
			"error":      storeErr.Error(),
		})
	}
}

func (m *Manager) updateStatus(processID string, status TaskStatus) error {
	result, err := m.store.Get(context.Background(), processID)
	if err != nil {
		return err
	}

	result.Status = status
	return m.store.Update(context.Background(), result)
}

func (m *Manager) cleanupRoutine() {
	defer m.wg.Done()

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if err := m.store.Cleanup(context.Background(), m.maxAge); err != nil {
				m.logger.Error("Failed to clean up old task results", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
