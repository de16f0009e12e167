package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/boardplan/internal/column"
	"github.com/roach88/boardplan/internal/game"
	"github.com/roach88/boardplan/internal/gamelist"
	"github.com/roach88/boardplan/internal/planner"
	"github.com/roach88/boardplan/internal/source"
)

// Harness is the scenario execution engine.
type Harness struct {
	planner *planner.Planner
	list    *gamelist.List
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Load the collection from the CSV file or the inline games
// 2. Execute flow steps, validating each expect clause
// 3. Evaluate assertions against the trace and final state
//
// A returned error means the scenario could not run; failed expectations
// and assertions are reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.DiscardHandler))
}

// RunWithLogger is Run with planner and list diagnostics sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	games, err := loadGames(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	logger = logger.With("scenario", scenario.Name)
	h := &Harness{
		planner: planner.New(games, planner.WithLogger(logger)),
		list:    gamelist.New(gamelist.WithLogger(logger)),
		logger:  logger,
	}

	result := NewResult()
	for i, step := range scenario.Flow {
		h.executeStep(i, step, result)
	}

	result.Working = names(h.planner.Working())
	result.List = h.list.Names()

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

func loadGames(scenario *Scenario) ([]game.Game, error) {
	if scenario.Data != "" {
		return source.LoadFile(scenario.Data)
	}
	return slices.Clone(scenario.Games), nil
}

// executeStep runs one step, records it in the trace and checks its
// expect clause.
func (h *Harness) executeStep(index int, step FlowStep, result *Result) {
	event := TraceEvent{
		Seq:     int64(index + 1),
		Op:      step.Op,
		Arg:     step.Arg,
		Desc:    step.Desc,
		Outcome: OutcomeOK,
	}

	var err error
	switch step.Op {
	case OpFilter:
		sortOn := column.Default()
		if step.Sort != "" {
			sortOn, _ = column.Parse(step.Sort) // validated on load
		}
		event.Sort = sortOn.Name()
		for _, c := range planner.Parse(step.Arg).Degraded() {
			event.Ignored = append(event.Ignored, c.Raw+": "+c.Degraded)
		}
		event.Names = names(h.planner.Filter(step.Arg, sortOn, !step.Desc))
	case OpSort:
		sortOn, _ := column.Parse(step.Arg)
		event.Sort = sortOn.Name()
		event.Names = names(h.planner.Filter("", sortOn, !step.Desc))
	case OpReset:
		h.planner.Reset()
		event.Names = names(h.planner.Working())
	case OpAdd:
		err = h.list.Add(step.Arg, h.planner.Working())
		event.Names = h.list.Names()
	case OpRemove:
		err = h.list.Remove(step.Arg)
		event.Names = h.list.Names()
	case OpClear:
		h.list.Clear()
		event.Names = h.list.Names()
	}

	if err != nil {
		var selErr *gamelist.SelectionError
		if errors.As(err, &selErr) {
			event.Outcome = string(selErr.Code)
		} else {
			event.Outcome = err.Error()
		}
	}
	result.AddTrace(event)

	for _, msg := range checkExpect(index, step, event) {
		result.AddError(msg)
	}

	h.logger.Debug("flow step completed",
		"step", index,
		"op", step.Op,
		"arg", step.Arg,
		"outcome", event.Outcome,
		"names", len(event.Names),
	)
}

// checkExpect compares a step's trace event with its expect clause.
func checkExpect(index int, step FlowStep, event TraceEvent) []string {
	var errs []string
	wantOutcome := OutcomeOK
	if step.Expect != nil && step.Expect.Error != "" {
		wantOutcome = step.Expect.Error
	}
	if event.Outcome != wantOutcome {
		errs = append(errs, fmt.Sprintf("flow[%d] %s %q: expected outcome %s, got %s",
			index, step.Op, step.Arg, wantOutcome, event.Outcome))
	}
	if step.Expect == nil {
		return errs
	}

	if step.Expect.Names != nil && !slices.Equal(step.Expect.Names, event.Names) {
		errs = append(errs, fmt.Sprintf("flow[%d] %s %q: expected names %v, got %v",
			index, step.Op, step.Arg, step.Expect.Names, event.Names))
	}
	if step.Expect.Count != nil && *step.Expect.Count != len(event.Names) {
		errs = append(errs, fmt.Sprintf("flow[%d] %s %q: expected count %d, got %d",
			index, step.Op, step.Arg, *step.Expect.Count, len(event.Names)))
	}
	return errs
}

func names(games []game.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name
	}
	return out
}
