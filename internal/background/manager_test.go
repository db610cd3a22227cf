package background

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhound-ingest/internal/config"
)

func startedManager(t *testing.T) *Manager {
	t.Helper()
	manager := NewManager(config.DefaultConfig())
	require.NoError(t, manager.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		manager.Stop(ctx)
	})
	return manager
}

func waitForTerminal(t *testing.T, manager *Manager, processID string) *TaskResult {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		result, err := manager.GetTaskResult(context.Background(), processID)
		require.NoError(t, err)
		if result.Status == TaskStatusSuccess || result.Status == TaskStatusFailure {
			return result
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("task %s did not reach a terminal status", processID)
	return nil
}

func TestSubmitRunsTask(t *testing.T) {
	manager := startedManager(t)

	err := manager.Submit("p1", TaskTypeIngest, func(ctx context.Context) (interface{}, error) {
		return map[string]int{"jobs_created": 3}, nil
	})
	require.NoError(t, err)

	result := waitForTerminal(t, manager, "p1")
	assert.Equal(t, TaskStatusSuccess, result.Status)
	assert.Equal(t, TaskTypeIngest, result.Type)
	assert.NotNil(t, result.Data)
	assert.NotNil(t, result.CompletedAt)
}

func TestSubmitRecordsFailure(t *testing.T) {
	manager := startedManager(t)

	err := manager.Submit("p2", TaskTypeExtract, func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("no provider configured")
	})
	require.NoError(t, err)

	result := waitForTerminal(t, manager, "p2")
	assert.Equal(t, TaskStatusFailure, result.Status)
	assert.Equal(t, "no provider configured", result.Error)
}

func TestSubmitRejectedWhenStopped(t *testing.T) {
	manager := NewManager(config.DefaultConfig())

	err := manager.Submit("p3", TaskTypeIngest, func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	require.Error(t, err)
}

func TestGetUnknownTask(t *testing.T) {
	manager := startedManager(t)

	_, err := manager.GetTaskResult(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskStoreCleanup(t *testing.T) {
	store := NewInMemoryTaskStore()
	ctx := context.Background()

	old := &TaskResult{ProcessID: "old", CreatedAt: time.Now().Add(-48 * time.Hour)}
	fresh := &TaskResult{ProcessID: "fresh", CreatedAt: time.Now()}
	require.NoError(t, store.Store(ctx, old))
	require.NoError(t, store.Store(ctx, fresh))

	require.NoError(t, store.Cleanup(ctx, 24*time.Hour))

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}
