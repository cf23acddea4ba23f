package target

import (
	"regexp"

	"github.com/gobwas/glob"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/namespace"
	"github.com/vk/take/internal/takeerr"
)

type regexEntry struct {
	pattern *regexp.Regexp
	target  *Target
}

type globEntry struct {
	pattern glob.Glob
	target  *Target
}

// Tree is the matching index for one level of targets.
type Tree struct {
	exact map[string]*Target
	// order keeps exact entries in declaration order for listings.
	order []string
	regex []regexEntry
	glob  []globEntry
}

func newTree() *Tree {
	return &Tree{exact: make(map[string]*Target)}
}

func (tr *Tree) add(t *Target) error {
	switch t.Kind {
	case config.KindRegex:
		re, err := regexp.Compile(t.Name)
		if err != nil {
			return takeerr.Wrap(takeerr.KindInvalidTargetDefinition, err, "Target '%s' is not a valid regular expression", t.Name)
		}
		tr.regex = append(tr.regex, regexEntry{pattern: re, target: t})
	case config.KindGlob:
		g, err := glob.Compile(t.Name)
		if err != nil {
			return takeerr.Wrap(takeerr.KindInvalidTargetDefinition, err, "Target '%s' is not a valid glob pattern", t.Name)
		}
		tr.glob = append(tr.glob, globEntry{pattern: g, target: t})
	default:
		if _, exists := tr.exact[t.Name]; exists {
			return takeerr.New(takeerr.KindInvalidTargetDefinition, "Target '%s' is declared more than once", t.Namespace)
		}
		tr.exact[t.Name] = t
		tr.order = append(tr.order, t.Name)
	}
	return nil
}

// Root returns the root (default) target if one was declared.
func (tr *Tree) Root() (*Target, bool) {
	t, ok := tr.exact[RootIndex]
	return t, ok
}

// Len returns the number of targets on this level, including the root target.
func (tr *Tree) Len() int {
	return len(tr.exact) + len(tr.regex) + len(tr.glob)
}

// Targets returns this level's targets in lookup priority order: exact names
// in declaration order, then regex entries, then glob entries. The root
// target is excluded.
func (tr *Tree) Targets() []*Target {
	targets := make([]*Target, 0, tr.Len())
	for _, name := range tr.order {
		if name == RootIndex {
			continue
		}
		targets = append(targets, tr.exact[name])
	}
	for _, e := range tr.regex {
		targets = append(targets, e.target)
	}
	for _, e := range tr.glob {
		targets = append(targets, e.target)
	}
	return targets
}

// Match finds the target for a single segment on this level.
func (tr *Tree) Match(segment string) (*Target, config.MatchData, bool) {
	match := config.MatchData{Full: segment}

	if segment == RootIndex {
		return nil, match, false
	}
	if t, ok := tr.exact[segment]; ok {
		return t, match, true
	}
	for _, e := range tr.regex {
		if groups := e.pattern.FindStringSubmatch(segment); groups != nil {
			match.Groups = groups[1:]
			return e.target, match, true
		}
	}
	for _, e := range tr.glob {
		if e.pattern.Match(segment) {
			return e.target, match, true
		}
	}
	return nil, match, false
}

// Resolve walks ns segment by segment from this tree. The returned match
// data belongs to the final segment.
func (tr *Tree) Resolve(ns namespace.Namespace) (*Target, config.MatchData, error) {
	if ns.IsRoot() {
		t, ok := tr.Root()
		if !ok {
			return nil, config.MatchData{}, takeerr.New(takeerr.KindMissingDefaultTarget, "Unable to find default target")
		}
		return t, config.MatchData{}, nil
	}

	var (
		current *Target
		match   config.MatchData
		level   = tr
	)
	for _, segment := range ns.Names() {
		t, m, ok := level.Match(segment)
		if !ok {
			return nil, config.MatchData{}, takeerr.New(takeerr.KindTargetNotFound, "Unable to find target %s", ns)
		}
		current, match, level = t, m, t.Children
	}
	return current, match, nil
}
