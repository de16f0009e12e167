// Package harness runs scripted planning sessions and checks their outcome.
//
// A scenario loads a game collection, drives a planner and a game list
// through a flow of steps, and asserts on the resulting trace and final
// state. Traces are compared against golden files.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	data: games.csv            # CSV relative to the scenario file
//	games:                     # or inline games
//	  - { name: Go, id: 1, min_players: 2, rating: 7.5 }
//	flow:
//	  - op: filter
//	    arg: "min_players>=2"
//	    sort: rating
//	    desc: true
//	    expect:
//	      names: [Chess, golang]
//	  - op: add
//	    arg: 1-3
//	    expect: { count: 3 }
//	  - op: remove
//	    arg: "9"
//	    expect: { error: OUT_OF_RANGE }
//	assertions:
//	  - type: trace_contains
//	    op: add
//	    arg: 1-3
//	  - type: final_state
//	    target: list
//	    names: [Chess, Go, Go Fish]
//
// # Step Operations
//
//   - filter: narrow the working set with arg, sorted on sort (default name)
//   - sort: re-sort the working set on arg without narrowing
//   - reset: restore the full collection
//   - add: add working-set games designated by the selector in arg
//   - remove: remove list games designated by the selector in arg
//   - clear: empty the list
//
// # Assertion Types
//
//   - trace_contains: a step with the given op (and arg, when set) ran
//   - trace_order: ops appear in the given order
//   - trace_count: an op ran exactly N times
//   - final_state: the working set or the list holds exactly the given names
//
// # Determinism
//
// Every scenario runs against a fresh in-memory catalogue, steps are numbered
// from 1 and carry no wall-clock data, so the same scenario always produces
// the same trace.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/weekend_picks.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
