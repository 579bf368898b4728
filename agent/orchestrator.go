// Package agent runs the simulated planning pipeline: a fixed sequence of
// progress tasks narrated into the conversation, followed by the real plan
// generation call.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripweaver/tripweaver/llm"
	"github.com/tripweaver/tripweaver/session"
	"github.com/tripweaver/tripweaver/trip"
)

// defaultTaskDelay is the simulated execution time per task.
const defaultTaskDelay = 1500 * time.Millisecond

// PlanGenerator produces a trip plan from requirements. Satisfied by
// *trip.Planner; tests substitute stubs.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req trip.Requirements) (*trip.Plan, error)
}

// Orchestrator executes planning runs against a session store. At most one
// run is active per store: a new submission cancels the in-flight run, and a
// cancelled run stops mutating state at its next step boundary.
type Orchestrator struct {
	store     *session.Store
	planner   PlanGenerator
	taskDelay time.Duration
	logger    *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	token  string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTaskDelay overrides the simulated per-task delay.
func WithTaskDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.taskDelay = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New creates an orchestrator bound to a store and a plan generator.
func New(store *session.Store, planner PlanGenerator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:     store,
		planner:   planner,
		taskDelay: defaultTaskDelay,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// buildTasks creates the fixed five-task pipeline for a submission.
func buildTasks(req trip.Requirements) []session.Task {
	interests := strings.Join(req.Interests, "、")
	return []session.Task{
		{ID: 1, Name: "查询目的地天气", Status: session.TaskPending,
			Description: fmt.Sprintf("查询%s未来%d天的天气情况", req.Destination, req.Days)},
		{ID: 2, Name: "搜索景点", Status: session.TaskPending,
			Description: fmt.Sprintf("根据兴趣%s搜索%s的热门景点", interests, req.Destination)},
		{ID: 3, Name: "规划路线", Status: session.TaskPending,
			Description: fmt.Sprintf("根据天数%d和景点分布规划合理的旅行路线", req.Days)},
		{ID: 4, Name: "推荐酒店", Status: session.TaskPending,
			Description: fmt.Sprintf("根据预算%d推荐%s的合适酒店", req.Budget, req.Destination)},
		{ID: 5, Name: "生成旅行计划", Status: session.TaskPending,
			Description: "整合所有信息生成完整的旅行计划文档"},
	}
}

// Start begins a planning run for the given requirements and returns a
// channel closed when the run ends. An in-flight run is cancelled first; the
// stale run gives up before its next state mutation.
func (o *Orchestrator) Start(ctx context.Context, req trip.Requirements) (<-chan struct{}, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	token := uuid.NewString()

	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.cancel = cancel
	o.token = token
	o.mu.Unlock()

	o.store.SetRequirements(req)
	o.store.AddUserMessage(fmt.Sprintf("我想去%s旅行，预算%d元，%d天，兴趣包括%s",
		req.Destination, req.Budget, req.Days, strings.Join(req.Interests, "、")))

	tasks := buildTasks(req)
	o.store.SetTasks(tasks)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		o.run(runCtx, token, req, tasks)
	}()

	return done, nil
}

// active reports whether the given run may still mutate state.
func (o *Orchestrator) active(ctx context.Context, token string) bool {
	if ctx.Err() != nil {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.token == token
}

// run executes the task sequence and the final plan generation. Tasks run
// strictly in declared order; task k fully completes, including its
// narration, before task k+1 begins.
func (o *Orchestrator) run(ctx context.Context, token string, req trip.Requirements, tasks []session.Task) {
	for _, task := range tasks {
		if !o.active(ctx, token) {
			o.logger.Debug("planning run superseded", "task", task.ID)
			return
		}

		o.store.UpdateTaskStatus(task.ID, session.TaskInProgress)
		o.store.AddAssistantMessage(fmt.Sprintf("正在%s...", task.Description))

		select {
		case <-ctx.Done():
			return
		case <-time.After(o.taskDelay):
		}

		if !o.active(ctx, token) {
			return
		}
		o.store.UpdateTaskStatus(task.ID, session.TaskCompleted)
		o.store.AddAssistantMessage(fmt.Sprintf("%s已完成！", task.Name))
	}

	if !o.active(ctx, token) {
		return
	}
	o.store.AddAssistantMessage("正在为您生成详细的旅行计划...")

	plan, err := o.planner.GeneratePlan(ctx, req)

	if !o.active(ctx, token) {
		return
	}
	if err != nil {
		o.logger.Warn("plan generation failed", "destination", req.Destination, "error", err)
		o.store.AddAssistantMessage(fmt.Sprintf("生成旅行计划时发生错误: %s", llm.UserMessage(err)))
		return
	}

	o.store.SetPlan(plan)
	o.store.AddAssistantMessage("旅行计划已生成完成！我们为您准备了详细的行程安排。")
}

// Stop cancels the in-flight run, if any.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
		o.token = ""
	}
}
