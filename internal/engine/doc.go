// Package engine replays a scenario (a config.Model) against a heap and a
// collector, playing the part of the host program: it allocates and owns the
// declared objects, links their edges, and then executes each step in order.
//
// Every step produces a StepResult carrying the registry size it left behind.
// A step with an expectation that does not match stops the run with an
// *ExpectationError; the report gathered so far is still returned.
package engine
