package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Operations []*operationBlock `hcl:"operation,block"`
	Calls      []*callBlock      `hcl:"call,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

type operationBlock struct {
	Name        string   `hcl:"name,label"`
	Output      string   `hcl:"output"`
	Provides    []string `hcl:"provides,optional"`
	Requires    []string `hcl:"requires,optional"`
	Description string   `hcl:"description,optional"`
}

type callBlock struct {
	Name      string    `hcl:"name,label"`
	Arguments cty.Value `hcl:"arguments,optional"`
	DependsOn []string  `hcl:"depends_on,optional"`
}
