package yamlfile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	Options *optionsNode  `yaml:"options"`
	Targets []*targetNode `yaml:"targets"`
}

type optionsNode struct {
	Separator       *string    `yaml:"separator"`
	Parent          *string    `yaml:"parent"`
	AllDepsAbsolute *bool      `yaml:"allDepsAbsolute"`
	Shell           *shellNode `yaml:"shell"`
}

type shellNode struct {
	Echo             *bool `yaml:"echo"`
	PrintStdout      *bool `yaml:"printStdout"`
	PrintStderr      *bool `yaml:"printStderr"`
	AbortOnErrorCode *bool `yaml:"abortOnErrorCode"`
}

type targetNode struct {
	// Name is empty for the root target.
	Name             string            `yaml:"name"`
	Desc             string            `yaml:"desc"`
	Kind             string            `yaml:"kind"`
	Deps             stringList        `yaml:"deps"`
	ParallelDeps     bool              `yaml:"parallelDeps"`
	DepParent        bool              `yaml:"depParent"`
	Dir              string            `yaml:"dir"`
	Env              map[string]string `yaml:"env"`
	Run              commandList       `yaml:"run"`
	Shell            string            `yaml:"shell"`
	Echo             *bool             `yaml:"echo"`
	AbortOnErrorCode *bool             `yaml:"abortOnErrorCode"`
	Children         []*targetNode     `yaml:"children"`
}

// stringList accepts a single scalar or a sequence of scalars.
type stringList []string

func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// commandList accepts one command (a sequence of words) or a sequence of
// commands.
type commandList [][]string

func (c *commandList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: run must be a list of words or a list of commands; use shell for a command line", node.Line)
	}
	if len(node.Content) == 0 {
		*c = nil
		return nil
	}
	if node.Content[0].Kind == yaml.ScalarNode {
		var argv []string
		if err := node.Decode(&argv); err != nil {
			return err
		}
		*c = commandList{argv}
		return nil
	}
	var cmds [][]string
	if err := node.Decode(&cmds); err != nil {
		return err
	}
	*c = cmds
	return nil
}
