// Package session holds the per-session planning state: trip requirements,
// the agent task list, the conversation transcript, and the generated plan.
// The store is the single point of mutation; every exposed operation is one
// atomic state transition.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tripweaver/tripweaver/trip"
)

// TaskStatus is the lifecycle state of one agent task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Task is one step of the planning pipeline shown to the user as progress.
type Task struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

// Message is one entry of the conversation transcript. The transcript is
// append-only; entries are never mutated or removed within a session.
type Message struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	IsUser  bool   `json:"isUser"`
}

// EventType identifies a store change for stream subscribers.
type EventType string

const (
	EventMessage EventType = "message"
	EventTasks   EventType = "tasks"
	EventTask    EventType = "task"
	EventPlan    EventType = "plan"
	EventReset   EventType = "reset"
)

// Event describes one store mutation.
type Event struct {
	Type    EventType  `json:"type"`
	Message *Message   `json:"message,omitempty"`
	Task    *Task      `json:"task,omitempty"`
	Tasks   []Task     `json:"tasks,omitempty"`
	Plan    *trip.Plan `json:"plan,omitempty"`
}

// Snapshot is a consistent copy of the full session state.
type Snapshot struct {
	Requirements trip.Requirements `json:"requirements"`
	Tasks        []Task            `json:"tasks"`
	Conversation []Message         `json:"conversation"`
	Plan         *trip.Plan        `json:"plan"`
}

// subscriberBuffer sizes each subscriber channel. A stalled subscriber drops
// events instead of blocking writers.
const subscriberBuffer = 64

// Store is the session state store.
type Store struct {
	mu           sync.Mutex
	requirements trip.Requirements
	tasks        []Task
	conversation []Message
	plan         *trip.Plan

	subscribers map[int]chan Event
	nextSubID   int
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		subscribers: make(map[int]chan Event),
	}
}

// SetRequirements records the requirements for the current submission.
func (s *Store) SetRequirements(req trip.Requirements) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requirements = req
}

// Requirements returns the current trip requirements.
func (s *Store) Requirements() trip.Requirements {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requirements
}

// AddMessage appends a message to the transcript, assigning a unique id when
// the caller omitted one, and returns the stored message.
func (s *Store) AddMessage(msg Message) Message {
	s.mu.Lock()
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	s.conversation = append(s.conversation, msg)
	s.mu.Unlock()

	s.publish(Event{Type: EventMessage, Message: &msg})
	return msg
}

// AddAssistantMessage appends an assistant-side narration message.
func (s *Store) AddAssistantMessage(text string) Message {
	return s.AddMessage(Message{Message: text})
}

// AddUserMessage appends a user-side message.
func (s *Store) AddUserMessage(text string) Message {
	return s.AddMessage(Message{Message: text, IsUser: true})
}

// SetTasks replaces the task list. The previous list is discarded; a new
// submission starts from a fresh set.
func (s *Store) SetTasks(tasks []Task) {
	copied := append([]Task(nil), tasks...)

	s.mu.Lock()
	s.tasks = copied
	s.mu.Unlock()

	s.publish(Event{Type: EventTasks, Tasks: copied})
}

// UpdateTaskStatus patches one task's status by id. It reports whether a
// task with that id exists.
func (s *Store) UpdateTaskStatus(id int, status TaskStatus) bool {
	s.mu.Lock()
	var updated *Task
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status
			t := s.tasks[i]
			updated = &t
			break
		}
	}
	s.mu.Unlock()

	if updated == nil {
		return false
	}
	s.publish(Event{Type: EventTask, Task: updated})
	return true
}

// SetPlan stores the generated plan, replacing any previous one. A nil plan
// clears it.
func (s *Store) SetPlan(plan *trip.Plan) {
	s.mu.Lock()
	s.plan = plan
	s.mu.Unlock()

	s.publish(Event{Type: EventPlan, Plan: plan})
}

// Plan returns the stored plan, or nil when no generation has succeeded yet.
func (s *Store) Plan() *trip.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// Reset returns all state to its initial empty values.
func (s *Store) Reset() {
	s.mu.Lock()
	s.requirements = trip.Requirements{}
	s.tasks = nil
	s.conversation = nil
	s.plan = nil
	s.mu.Unlock()

	s.publish(Event{Type: EventReset})
}

// Snapshot returns a copy of the full session state. Mutating the returned
// slices does not affect the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Requirements: s.requirements,
		Tasks:        append([]Task(nil), s.tasks...),
		Conversation: append([]Message(nil), s.conversation...),
		Plan:         s.plan,
	}
}

// Subscribe registers a store-event listener. The returned cancel function
// must be called to release the subscription.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Event, subscriberBuffer)
	s.subscribers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// publish fans an event out to all subscribers, dropping it for any
// subscriber whose buffer is full.
func (s *Store) publish(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
