package trip

import (
	"context"
	"log/slog"
	"time"

	"github.com/tripweaver/tripweaver/llm"
)

// planTemperature matches the product's completion settings.
const planTemperature = 0.7

// fallbackAnswer is returned when the model produces an empty reply.
const fallbackAnswer = "抱歉，我无法生成回复。"

// Planner produces trip plans and follow-up answers through the completion
// client. Both operations are single-shot; failures come back as typed
// errors for the caller to log into the conversation.
type Planner struct {
	client *llm.Client
	logger *slog.Logger
	now    func() time.Time
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) PlannerOption {
	return func(p *Planner) {
		p.logger = logger
	}
}

// WithClock overrides the plan timestamp source, for tests.
func WithClock(now func() time.Time) PlannerOption {
	return func(p *Planner) {
		p.now = now
	}
}

// NewPlanner creates a planner on top of a completion client.
func NewPlanner(client *llm.Client, opts ...PlannerOption) *Planner {
	p := &Planner{
		client: client,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GeneratePlan requests a JSON-shaped plan for the given requirements and
// normalizes the response into a complete plan document. The requirements
// are copied into the plan at generation time.
func (p *Planner) GeneratePlan(ctx context.Context, req Requirements) (*Plan, error) {
	temperature := planTemperature

	resp, err := p.client.Complete(ctx, llm.Request{
		Messages:    ComposePlanMessages(req),
		Temperature: &temperature,
		JSONObject:  true,
	})
	if err != nil {
		return nil, err
	}

	details := NormalizePlanDetails(resp.Content, req.Days)

	p.logger.Info("trip plan generated",
		"destination", req.Destination,
		"days", req.Days,
		"model", resp.Model,
		"tokens", resp.TokensUsed)

	return &Plan{
		Destination: req.Destination,
		Budget:      req.Budget,
		Days:        req.Days,
		Interests:   append([]string(nil), req.Interests...),
		CreatedDate: p.now().UTC(),
		PlanDetails: details,
	}, nil
}

// AnswerQuestion asks the model a free-text question about an existing plan
// and returns the natural-language answer. No JSON constraint applies.
func (p *Planner) AnswerQuestion(ctx context.Context, question string, plan *Plan) (string, error) {
	messages, err := ComposeAnswerMessages(question, plan)
	if err != nil {
		return "", err
	}

	temperature := planTemperature

	resp, err := p.client.Complete(ctx, llm.Request{
		Messages:    messages,
		Temperature: &temperature,
	})
	if err != nil {
		return "", err
	}

	if resp.Content == "" {
		return fallbackAnswer, nil
	}
	return resp.Content, nil
}
