package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top level of a Takefile.hcl.
type fileRoot struct {
	Options *optionsBlock  `hcl:"options,block"`
	Default *defaultBlock  `hcl:"default,block"`
	Targets []*targetBlock `hcl:"target,block"`
}

type optionsBlock struct {
	Separator       *string     `hcl:"separator,optional"`
	Parent          *string     `hcl:"parent,optional"`
	AllDepsAbsolute *bool       `hcl:"all_deps_absolute,optional"`
	Shell           *shellBlock `hcl:"shell,block"`
}

type shellBlock struct {
	Echo             *bool `hcl:"echo,optional"`
	PrintStdout      *bool `hcl:"print_stdout,optional"`
	PrintStderr      *bool `hcl:"print_stderr,optional"`
	AbortOnErrorCode *bool `hcl:"abort_on_error_code,optional"`
}

// defaultBlock declares the root target. Its body uses the target schema.
type defaultBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type targetBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// targetBody is the content shared by target and default blocks.
type targetBody struct {
	Desc         *string `hcl:"desc,optional"`
	Kind         *string `hcl:"kind,optional"`
	ParallelDeps *bool   `hcl:"parallel_deps,optional"`
	DepParent    *bool   `hcl:"dep_parent,optional"`
	Echo         *bool   `hcl:"echo,optional"`
	AbortOnError *bool   `hcl:"abort_on_error_code,optional"`

	Deps  hcl.Expression `hcl:"deps,optional"`
	Dir   hcl.Expression `hcl:"dir,optional"`
	Env   hcl.Expression `hcl:"env,optional"`
	Run   hcl.Expression `hcl:"run,optional"`
	Shell hcl.Expression `hcl:"shell,optional"`

	Targets []*targetBlock `hcl:"target,block"`
}
