package hcl

import (
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// environ returns the process environment as a map, read on every call so
// watch mode re-runs see changes.
func environ() cty.Value {
	vars := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		name, value, ok := strings.Cut(e, "=")
		if ok && name != "" {
			vars[name] = cty.StringVal(value)
		}
	}
	if len(vars) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	return cty.MapVal(vars)
}
