package harness

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq     int64    `json:"seq"`
	Op      string   `json:"op"`
	Arg     string   `json:"arg,omitempty"`
	Sort    string   `json:"sort,omitempty"`
	Desc    bool     `json:"desc,omitempty"`
	Outcome string   `json:"outcome"` // "ok" or a selection error code
	Ignored []string `json:"ignored,omitempty"`
	Names   []string `json:"names"`
}

// OutcomeOK marks a step that completed without error.
const OutcomeOK = "ok"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success.
	// True if all expect clauses and assertions match.
	Pass bool `json:"pass"`

	// Trace contains one event per flow step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Working is the working set after the last step, in its sorted order.
	Working []string `json:"working"`

	// List is the retained list after the last step, in name order.
	List []string `json:"list"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Working: []string{},
		List:    []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
