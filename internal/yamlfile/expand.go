package yamlfile

import (
	"os"
	"strconv"
	"strings"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/shell"
)

// expander substitutes invocation references in command words.
type expander struct {
	inv config.Invocation
	// keepUnknown leaves unknown references for the shell instead of reading
	// them from the environment.
	keepUnknown bool
}

func (e expander) lookup(name string) string {
	switch {
	case name == "@":
		if e.keepUnknown {
			return shell.Format(e.inv.Args)
		}
		return strings.Join(e.inv.Args, " ")
	case name == "0" || name == "target":
		return e.inv.Namespace
	case name == "match":
		return e.inv.Match.Full
	case isIndex(name):
		return at(e.inv.Args, name)
	case len(name) > 1 && name[0] == 'g' && isIndex(name[1:]):
		return at(e.inv.Match.Groups, name[1:])
	case e.keepUnknown:
		return "${" + name + "}"
	default:
		return os.Getenv(name)
	}
}

func isIndex(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

// at returns the 1-based index'th item, or "" when out of range.
func at(items []string, index string) string {
	n, _ := strconv.Atoi(index)
	if n > len(items) {
		return ""
	}
	return items[n-1]
}

// words expands each word of argv. A word that is exactly $@ becomes one word
// per argument.
func (e expander) words(argv []string) []string {
	out := make([]string, 0, len(argv))
	for _, word := range argv {
		if word == "$@" || word == "${@}" {
			out = append(out, e.inv.Args...)
			continue
		}
		out = append(out, os.Expand(word, e.lookup))
	}
	return out
}

func (e expander) expand(s string) string {
	return os.Expand(s, e.lookup)
}
