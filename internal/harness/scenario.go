package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/boardplan/internal/column"
	"github.com/roach88/boardplan/internal/game"
	"github.com/roach88/boardplan/internal/gamelist"
)

// Scenario defines a scripted planning session.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Data is a games CSV. Relative paths are resolved against the
	// scenario file's directory by LoadScenario.
	Data string `yaml:"data,omitempty"`

	// Games is an inline collection, used when Data is empty.
	Games []game.Game `yaml:"games,omitempty"`

	// Flow contains the steps, executed in order.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final trace and state.
	// Supported types: trace_contains, trace_order, trace_count, final_state
	Assertions []Assertion `yaml:"assertions"`
}

// FlowStep is one operation on the planner or the list.
type FlowStep struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// Arg is the filter expression, the sort column or the selector.
	Arg string `yaml:"arg,omitempty"`

	// Sort is the column a filter step sorts on. Defaults to name.
	Sort string `yaml:"sort,omitempty"`

	// Desc sorts filter and sort steps descending.
	Desc bool `yaml:"desc,omitempty"`

	// Expect validates the step. If nil, the step must not fail.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies what a step should produce.
type ExpectClause struct {
	// Names is the exact, ordered output of the step: the working set for
	// planner steps, the list for list steps.
	Names []string `yaml:"names,omitempty"`

	// Count is the expected output size.
	Count *int `yaml:"count,omitempty"`

	// Error is the expected selection error code (OUT_OF_RANGE,
	// INVALID_SELECTOR). Empty means the step must succeed.
	Error string `yaml:"error,omitempty"`
}

// Step operations.
const (
	OpFilter = "filter"
	OpSort   = "sort"
	OpReset  = "reset"
	OpAdd    = "add"
	OpRemove = "remove"
	OpClear  = "clear"
)

var ops = []string{OpFilter, OpSort, OpReset, OpAdd, OpRemove, OpClear}

// Assertion validates trace or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": Check a step with Op (and Arg, if set) ran
	// - "trace_order": Check Ops appear in order
	// - "trace_count": Check Op ran exactly Count times
	// - "final_state": Check Target holds exactly Names
	Type string `yaml:"type"`

	// Op is the step operation (used by trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Arg is the expected step argument (used by trace_contains).
	Arg string `yaml:"arg,omitempty"`

	// Count is the expected number of occurrences (used by trace_count).
	Count int `yaml:"count,omitempty"`

	// Ops is the expected operation order (used by trace_order).
	Ops []string `yaml:"ops,omitempty"`

	// Target is "working" or "list" (used by final_state).
	Target string `yaml:"target,omitempty"`

	// Names is the expected content of Target (used by final_state).
	// The working set is compared in order, the list in name order.
	Names []string `yaml:"names,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// final_state targets.
const (
	TargetWorking = "working"
	TargetList    = "list"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Data != "" && !filepath.IsAbs(scenario.Data) {
		scenario.Data = filepath.Join(filepath.Dir(path), scenario.Data)
	}
	if scenario.Data != "" {
		if _, err := os.Stat(scenario.Data); err != nil {
			return nil, fmt.Errorf("invalid scenario: data file not found: %s", scenario.Data)
		}
	}

	return scenario, nil
}

// ParseScenario parses and validates scenario YAML. Data paths are left as
// written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Data == "" && len(s.Games) == 0 {
		return fmt.Errorf("data or games is required")
	}
	if s.Data != "" && len(s.Games) > 0 {
		return fmt.Errorf("data and games are mutually exclusive")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single flow step based on its op.
func validateStep(index int, step FlowStep) error {
	if step.Op == "" {
		return fmt.Errorf("flow[%d]: op is required", index)
	}
	if !slices.Contains(ops, step.Op) {
		return fmt.Errorf("flow[%d]: unknown op %q", index, step.Op)
	}

	switch step.Op {
	case OpSort:
		if _, err := column.Parse(step.Arg); err != nil {
			return fmt.Errorf("flow[%d]: sort: %w", index, err)
		}
	case OpAdd, OpRemove:
		if step.Arg == "" {
			return fmt.Errorf("flow[%d]: arg is required for %s", index, step.Op)
		}
	}

	if step.Sort != "" {
		if step.Op != OpFilter {
			return fmt.Errorf("flow[%d]: sort is only valid for filter", index)
		}
		if _, err := column.Parse(step.Sort); err != nil {
			return fmt.Errorf("flow[%d]: sort: %w", index, err)
		}
	}

	if step.Expect != nil {
		switch gamelist.SelectionErrorCode(step.Expect.Error) {
		case "", gamelist.ErrCodeOutOfRange, gamelist.ErrCodeInvalidSelector:
		default:
			return fmt.Errorf("flow[%d].expect: unknown error code %q", index, step.Expect.Error)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if a.Target != TargetWorking && a.Target != TargetList {
			return fmt.Errorf("assertions[%d]: target must be %q or %q for final_state", index, TargetWorking, TargetList)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
