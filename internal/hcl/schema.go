package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Objects []*objectBlock `hcl:"object,block"`
	Steps   []*stepBlock   `hcl:"step,block"`
}

// objectBlock is the HCL schema of an `object` block.
type objectBlock struct {
	Name     string         `hcl:"name,label"`
	Children hcl.Expression `hcl:"children,optional"`
	Register hcl.Expression `hcl:"register,optional"`
	DefRange hcl.Range      `hcl:",def_range"`
}

// stepBlock is the HCL schema of a `step` block. Its body is decoded in a
// second pass with the schema matching its kind.
type stepBlock struct {
	Kind     string    `hcl:"kind,label"`
	Name     string    `hcl:"name,label"`
	Body     hcl.Body  `hcl:",remain"`
	DefRange hcl.Range `hcl:",def_range"`
}

type collectBody struct {
	Roots  hcl.Expression `hcl:"roots,optional"`
	Expect hcl.Expression `hcl:"expect,optional"`
}

type countBody struct {
	Expect hcl.Expression `hcl:"expect,optional"`
}

type edgeBody struct {
	Parent hcl.Expression `hcl:"parent"`
	Target hcl.Expression `hcl:"target"`
	Expect hcl.Expression `hcl:"expect,optional"`
}

type objectsBody struct {
	Objects hcl.Expression `hcl:"objects"`
	Expect  hcl.Expression `hcl:"expect,optional"`
}
