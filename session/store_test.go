package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/tripweaver/trip"
)

func TestStore_Messages(t *testing.T) {
	store := NewStore()

	first := store.AddUserMessage("我想去东京旅行")
	second := store.AddAssistantMessage("正在查询目的地天气...")

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, first.IsUser)
	assert.False(t, second.IsUser)

	snap := store.Snapshot()
	require.Len(t, snap.Conversation, 2)
	assert.Equal(t, "我想去东京旅行", snap.Conversation[0].Message)
	assert.Equal(t, "正在查询目的地天气...", snap.Conversation[1].Message)
}

func TestStore_AddMessage_KeepsExplicitID(t *testing.T) {
	store := NewStore()
	msg := store.AddMessage(Message{ID: "fixed", Message: "hello"})
	assert.Equal(t, "fixed", msg.ID)
}

func TestStore_UniqueMessageIDs(t *testing.T) {
	store := NewStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := store.AddAssistantMessage(fmt.Sprintf("message %d", i))
		assert.False(t, seen[msg.ID], "duplicate id %s", msg.ID)
		seen[msg.ID] = true
	}
}

func TestStore_Tasks(t *testing.T) {
	store := NewStore()

	tasks := []Task{
		{ID: 1, Name: "查询目的地天气", Status: TaskPending},
		{ID: 2, Name: "搜索景点", Status: TaskPending},
	}
	store.SetTasks(tasks)

	require.True(t, store.UpdateTaskStatus(1, TaskInProgress))
	require.True(t, store.UpdateTaskStatus(1, TaskCompleted))
	assert.False(t, store.UpdateTaskStatus(99, TaskCompleted))

	snap := store.Snapshot()
	require.Len(t, snap.Tasks, 2)
	assert.Equal(t, TaskCompleted, snap.Tasks[0].Status)
	assert.Equal(t, TaskPending, snap.Tasks[1].Status)

	// The caller's slice is not aliased by the store.
	tasks[1].Status = TaskFailed
	assert.Equal(t, TaskPending, store.Snapshot().Tasks[1].Status)
}

func TestStore_PlanAndRequirements(t *testing.T) {
	store := NewStore()

	req := trip.Requirements{Destination: "东京", Budget: 6000, Days: 3, Interests: []string{"美食"}}
	store.SetRequirements(req)
	assert.Equal(t, req, store.Requirements())

	assert.Nil(t, store.Plan())

	plan := &trip.Plan{Destination: "东京", Days: 3}
	store.SetPlan(plan)
	assert.Equal(t, plan, store.Plan())
}

func TestStore_Reset(t *testing.T) {
	store := NewStore()
	store.SetRequirements(trip.Requirements{Destination: "东京"})
	store.SetTasks([]Task{{ID: 1, Name: "查询目的地天气"}})
	store.AddUserMessage("hi")
	store.SetPlan(&trip.Plan{Destination: "东京"})

	store.Reset()

	snap := store.Snapshot()
	assert.Empty(t, snap.Requirements.Destination)
	assert.Empty(t, snap.Tasks)
	assert.Empty(t, snap.Conversation)
	assert.Nil(t, snap.Plan)
}

func TestStore_SnapshotIsolation(t *testing.T) {
	store := NewStore()
	store.AddUserMessage("first")

	snap := store.Snapshot()
	snap.Conversation[0].Message = "mutated"
	snap.Conversation = append(snap.Conversation, Message{Message: "extra"})

	fresh := store.Snapshot()
	require.Len(t, fresh.Conversation, 1)
	assert.Equal(t, "first", fresh.Conversation[0].Message)
}

func TestStore_Subscribe(t *testing.T) {
	store := NewStore()

	events, cancel := store.Subscribe()
	defer cancel()

	store.AddUserMessage("hello")
	store.SetTasks([]Task{{ID: 1, Name: "查询目的地天气"}})
	store.UpdateTaskStatus(1, TaskInProgress)
	store.SetPlan(&trip.Plan{Destination: "东京"})
	store.Reset()

	wantTypes := []EventType{EventMessage, EventTasks, EventTask, EventPlan, EventReset}
	for _, want := range wantTypes {
		event := <-events
		assert.Equal(t, want, event.Type)
	}
}

func TestStore_SubscribeCancelStopsDelivery(t *testing.T) {
	store := NewStore()

	events, cancel := store.Subscribe()
	cancel()

	// Channel is closed after cancel; publishing must not panic.
	store.AddUserMessage("hello")

	_, open := <-events
	assert.False(t, open)
}

func TestStore_SlowSubscriberDoesNotBlock(t *testing.T) {
	store := NewStore()

	_, cancel := store.Subscribe()
	defer cancel()

	// Overflow the subscriber buffer; writers must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			store.AddAssistantMessage("event")
		}
		close(done)
	}()
	<-done
}

func TestStore_ConcurrentWrites(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				store.AddAssistantMessage(fmt.Sprintf("w%d-%d", n, j))
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Snapshot().Conversation, 200)
}
