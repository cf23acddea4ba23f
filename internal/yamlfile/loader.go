package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/ctxlog"
	"github.com/vk/take/internal/takeerr"
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML Takefile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and translates the file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Takefile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, takeerr.Wrap(takeerr.KindInvalidConfig, err, "Unable to read %s", path)
	}
	return l.LoadBytes(ctx, src, path)
}

// LoadBytes translates src as if it had been read from filename.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Takefile, error) {
	logger := ctxlog.FromContext(ctx).With("path", filename)
	logger.Debug("YAML loader started.")

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var root fileRoot
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, takeerr.Wrap(takeerr.KindInvalidConfig, err, "Unable to parse %s: %s", filename, err)
	}

	tf := &config.Takefile{
		Path:    filename,
		Options: translateOptions(root.Options),
	}
	for _, node := range root.Targets {
		tc, err := translateTarget(node)
		if err != nil {
			return nil, err
		}
		tf.Targets = append(tf.Targets, tc)
	}

	logger.Debug("YAML loading complete.", "targets", len(tf.Targets))
	return tf, nil
}

func translateOptions(n *optionsNode) config.Options {
	opts := config.DefaultOptions()
	if n == nil {
		return opts
	}
	setIf(&opts.Separator, n.Separator)
	setIf(&opts.Parent, n.Parent)
	setIf(&opts.AllDepsAbsolute, n.AllDepsAbsolute)
	if s := n.Shell; s != nil {
		setIf(&opts.Shell.Echo, s.Echo)
		setIf(&opts.Shell.PrintStdout, s.PrintStdout)
		setIf(&opts.Shell.PrintStderr, s.PrintStderr)
		setIf(&opts.Shell.AbortOnErrorCode, s.AbortOnErrorCode)
	}
	return opts
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func translateTarget(n *targetNode) (*config.TargetConfig, error) {
	if n == nil {
		return nil, takeerr.New(takeerr.KindInvalidTargetDefinition, "Empty target entry")
	}
	kind, ok := config.ParseKind(n.Kind)
	if !ok {
		return nil, takeerr.New(takeerr.KindInvalidTargetDefinition, "Target '%s' has unknown kind %q", n.Name, n.Kind)
	}

	tc := &config.TargetConfig{
		Name:         n.Name,
		Kind:         kind,
		Description:  n.Desc,
		Deps:         n.Deps,
		ParallelDeps: n.ParallelDeps,
		DepParent:    n.DepParent,
		Action:       newAction(n),
	}
	for _, child := range n.Children {
		ctc, err := translateTarget(child)
		if err != nil {
			return nil, err
		}
		tc.Children = append(tc.Children, ctc)
	}
	return tc, nil
}
