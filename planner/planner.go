// Package planner turns goals into execution plans grounded in past
// experience. It reads similar episodes from the shared memory system,
// plans steps from the goal's requested tools, and leaves the chosen plan
// in working memory for downstream components.
//
// LLM-assisted planning lives outside this SDK; this is the deterministic
// core every deployment gets.
package planner

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/evoforge/evo-go-sdk/memory"
)

// KeyLastPlan is the working memory key holding the most recent plan.
const KeyLastPlan = "last_plan"

// Goal describes what the agent should achieve.
type Goal struct {
	// Description is the goal in plain text; it doubles as the similarity
	// query for grounding.
	Description string

	// Tools lists the tools the caller wants exercised, in order. Empty
	// means a single step on the goal itself.
	Tools []string
}

// Step is one planned tool invocation.
type Step struct {
	Tool   string `json:"tool"`
	Action string `json:"action"`
}

// Plan is an ordered set of steps plus the experiences that grounded it.
type Plan struct {
	Goal      string          `json:"goal"`
	Steps     []Step          `json:"steps"`
	Grounding []memory.Record `json:"grounding,omitempty"`
}

// Planner builds plans over a shared memory system. Like the feedback
// loop, it holds the System by reference and does not own its lifecycle.
type Planner struct {
	mem    *memory.System
	logger *log.Logger
}

// New creates a planner over a shared memory system.
func New(mem *memory.System) *Planner {
	return &Planner{
		mem:    mem,
		logger: log.Default().With("component", "planner"),
	}
}

// PlanAction creates an execution plan for the goal. Past experiences
// similar to the goal description are attached as grounding; retrieval
// failures degrade to an ungrounded plan rather than failing the call.
func (p *Planner) PlanAction(ctx context.Context, goal Goal) (Plan, error) {
	if goal.Description == "" {
		return Plan{}, fmt.Errorf("plan action: empty goal")
	}

	grounding, err := p.mem.Episodic.RetrieveSimilar(ctx, goal.Description, -1)
	if err != nil {
		p.logger.Warn("planning without grounding", "err", err)
		grounding = nil
	}

	steps := make([]Step, 0, len(goal.Tools))
	for _, tool := range goal.Tools {
		steps = append(steps, Step{Tool: tool, Action: "execute"})
	}
	if len(steps) == 0 {
		steps = append(steps, Step{Tool: goal.Description, Action: "execute"})
	}

	plan := Plan{
		Goal:      goal.Description,
		Steps:     steps,
		Grounding: grounding,
	}
	p.mem.Working.Store(KeyLastPlan, plan)

	p.logger.Debug("planned", "goal", goal.Description, "steps", len(steps), "grounding", len(grounding))
	return plan, nil
}

// LastPlan returns the most recent plan left in working memory by any
// sharer of the same System.
func (p *Planner) LastPlan() (Plan, bool) {
	v, ok := p.mem.Working.Retrieve(KeyLastPlan)
	if !ok {
		return Plan{}, false
	}
	plan, ok := v.(Plan)
	return plan, ok
}
