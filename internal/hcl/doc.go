// Package hcl provides the concrete HCL implementation of the scenario
// loading interface defined in the `config` package. It is responsible for
// file discovery, parsing, expression evaluation and HCL-to-model
// translation.
//
// A scenario declares objects and an ordered list of steps:
//
//	object "A" { children = [object.B] }
//	object "B" {}
//
//	step "collect" "initial" {
//	  roots  = [object.A]
//	  expect = 2
//	}
//
// Every declared object, and every object named by an `allocate` step, is
// available to expressions as `object.<name>`, which evaluates to the
// object's name. Plain strings are accepted as well.
package hcl
