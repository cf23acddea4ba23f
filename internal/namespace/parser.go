package namespace

import (
	"regexp"
	"strings"

	"github.com/vk/take/internal/takeerr"
)

// nameRegex splits `<path>[<args>]`. Brackets are reserved for the argument list.
var nameRegex = regexp.MustCompile(`^([^\[\]]*)(?:\[([^\[\]]*)\])?$`)

// Resolve resolves fullName relative to n.
func (n Namespace) Resolve(fullName string) (Namespace, error) {
	return n.ResolveFrom(fullName, n)
}

// ResolveFrom resolves fullName against base. An empty path returns base
// unchanged, discarding any arguments. A name starting with the separator is
// absolute; anything else is appended to base before parent tokens collapse.
func (n Namespace) ResolveFrom(fullName string, base Namespace) (Namespace, error) {
	matches := nameRegex.FindStringSubmatch(fullName)
	if matches == nil {
		return Namespace{}, takeerr.New(takeerr.KindInvalidTargetName, "'%s' is an invalid target name", fullName)
	}

	name := matches[1]
	if name == "" {
		return base, nil
	}

	var args []string
	if matches[2] != "" {
		args = strings.Split(matches[2], ",")
	}

	sep := n.syntax.Separator
	absolute := strings.HasPrefix(name, sep)

	var path []string
	if !absolute {
		path = append(path, base.path...)
	}
	for _, segment := range strings.Split(name, sep) {
		if segment != "" {
			path = append(path, segment)
		}
	}

	return Namespace{syntax: n.syntax, path: collapseParents(path, n.syntax.Parent), args: args}, nil
}

// collapseParents removes every parent token together with the segment before
// it. A token with nothing before it is simply dropped.
func collapseParents(path []string, parent string) []string {
	for i := 0; i < len(path); i++ {
		if path[i] != parent {
			continue
		}
		path = append(path[:i], path[i+1:]...)
		i--
		if i >= 0 {
			path = append(path[:i], path[i+1:]...)
			i--
		}
	}
	return path
}
