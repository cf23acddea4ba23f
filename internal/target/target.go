package target

import (
	"context"
	"strings"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/namespace"
	"github.com/vk/take/internal/takeerr"
)

// RootIndex is the exact-index key of the root target.
const RootIndex = ""

// RootName is the display name of the root target.
const RootName = "root"

// Target is a built, immutable target.
type Target struct {
	Name        string
	Kind        config.Kind
	Description string
	// Namespace is where the target is declared, i.e. its parent path plus
	// its own name. Pattern targets carry the pattern as their last segment.
	Namespace    namespace.Namespace
	Dependencies []namespace.Namespace
	ParallelDeps bool
	Action       config.Action
	Children     *Tree
}

// Executes reports whether the target has an action.
func (t *Target) Executes() bool {
	return t.Action != nil
}

// Execute runs the target's action, if any.
func (t *Target) Execute(ctx context.Context, inv config.Invocation) error {
	if t.Action == nil {
		return nil
	}
	return t.Action(ctx, inv)
}

// Build turns a Takefile batch into the top-level tree.
func Build(batch config.Batch, opts config.Options) (*Tree, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b := &builder{opts: opts, root: opts.Root()}
	return b.batch(batch, b.root)
}

type builder struct {
	opts config.Options
	root namespace.Namespace
}

func (b *builder) batch(batch config.Batch, parent namespace.Namespace) (*Tree, error) {
	tree := newTree()
	for _, cfg := range batch {
		t, err := b.target(cfg, parent)
		if err != nil {
			return nil, err
		}
		if err := tree.add(t); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func (b *builder) target(cfg *config.TargetConfig, parent namespace.Namespace) (*Target, error) {
	name := cfg.Name
	isRoot := name == RootIndex

	if isRoot && !parent.IsRoot() {
		return nil, takeerr.New(takeerr.KindInvalidTargetDefinition, "Empty target name not allowed other than in root config")
	}
	if strings.Contains(name, b.opts.Separator) {
		return nil, takeerr.New(takeerr.KindInvalidTargetDefinition, "Target '%s' cannot have the namespace separator in", name)
	}
	if name == b.opts.Parent {
		return nil, takeerr.New(takeerr.KindInvalidTargetDefinition, "'%s' is not allowed as a target name", b.opts.Parent)
	}
	if isRoot && len(cfg.Children) > 0 {
		return nil, takeerr.New(takeerr.KindInvalidTargetDefinition, "The root target cannot declare children")
	}

	kind := cfg.Kind.Resolve(name)
	if isRoot {
		kind = config.KindExact
	}

	ns := parent
	if !isRoot {
		ns = parent.Child(name)
	}

	base := ns
	if b.opts.AllDepsAbsolute {
		base = b.root
	}

	t := &Target{
		Name:         name,
		Kind:         kind,
		Description:  cfg.Description,
		Namespace:    ns,
		ParallelDeps: cfg.ParallelDeps,
		Action:       cfg.Action,
	}

	if cfg.DepParent && !parent.IsRoot() {
		dep, err := base.Resolve(b.opts.Parent)
		if err != nil {
			return nil, err
		}
		t.Dependencies = append(t.Dependencies, dep)
	}

	for _, depName := range cfg.Deps {
		if depName == "" {
			return nil, takeerr.New(takeerr.KindInvalidTargetDefinition, "Dependency cannot be an empty string (target '%s')", ns)
		}
		dep, err := base.Resolve(depName)
		if err != nil {
			return nil, takeerr.Wrap(takeerr.KindInvalidTargetDefinition, err, "Target '%s' has an invalid dependency '%s'", ns, depName)
		}
		t.Dependencies = append(t.Dependencies, dep)
	}

	children, err := b.batch(cfg.Children, ns)
	if err != nil {
		return nil, err
	}
	t.Children = children

	return t, nil
}
