package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/vk/take/internal/runner"
	"github.com/vk/take/internal/target"
)

const extraSplit = " | "

// Legend explains the colors used for target names. With deps set it also
// covers the dependency tree states.
func Legend(st Styles, deps bool) string {
	parts := []string{
		st.Action.Render("runs an action"),
		st.Group.Render("groups dependencies"),
	}
	if deps {
		parts = append(parts,
			st.Skipped.Render("already scheduled"),
			st.Cyclic.Render("cyclic"),
		)
	}
	return st.Dim.Render("Legend: ") + strings.Join(parts, st.Dim.Render(", "))
}

// Targets renders every declared target as a tree. The root target, when
// declared, heads the tree.
func Targets(tr *target.Tree, st Styles) string {
	var out strings.Builder
	out.WriteString(st.Title.Render(st.emoji("🔎") + "Targets:"))
	out.WriteString("\n")

	t := newTree(st)
	if root, ok := tr.Root(); ok {
		t.Root(label(st, targetName(st, target.RootName, root), root.Description))
	}
	for _, tgt := range tr.Targets() {
		t.Child(targetNode(tgt, st))
	}
	out.WriteString(t.String())
	return out.String()
}

func targetNode(tgt *target.Target, st Styles) any {
	text := label(st, targetName(st, tgt.Name, tgt), tgt.Description)
	children := tgt.Children.Targets()
	if len(children) == 0 {
		return text
	}
	t := newTree(st).Root(text)
	for _, child := range children {
		t.Child(targetNode(child, st))
	}
	return t
}

// Dependencies renders a dependency tree. Cyclic and already scheduled nodes
// are rendered in their own styles.
func Dependencies(node *runner.DependencyNode, st Styles) string {
	var out strings.Builder
	out.WriteString(st.Title.Render(st.emoji("🔧") + "Dependency tree:"))
	out.WriteString("\n")
	out.WriteString(dependencyTree(node, st).String())
	return out.String()
}

func dependencyTree(node *runner.DependencyNode, st Styles) *tree.Tree {
	var name string
	switch {
	case node.Cyclic:
		name = st.Cyclic.Render(node.DisplayName)
	case !node.ShouldExecute:
		name = st.Skipped.Render(node.DisplayName)
	default:
		name = targetName(st, node.DisplayName, node.Target)
	}

	t := newTree(st).Root(label(st, name, node.Target.Description))
	for _, child := range node.Children {
		t.Child(dependencyTree(child, st))
	}
	return t
}

func newTree(st Styles) *tree.Tree {
	return tree.New().EnumeratorStyle(st.Dim.PaddingRight(1))
}

func targetName(st Styles, name string, tgt *target.Target) string {
	if tgt != nil && tgt.Executes() {
		return st.Action.Render(name)
	}
	return st.Group.Render(name)
}

func label(st Styles, text, desc string) string {
	if desc == "" {
		return text
	}
	return text + st.Dim.Render(extraSplit) + desc
}

// Duration formats an execution time like 1.52s or 2m 3.40s.
func Duration(d time.Duration) string {
	cs := d.Round(10*time.Millisecond).Milliseconds() / 10
	secs, hundredths := cs/100, cs%100
	if secs >= 60 {
		return fmt.Sprintf("%dm %d.%02ds", secs/60, secs%60, hundredths)
	}
	return fmt.Sprintf("%d.%02ds", secs, hundredths)
}

// Executed is the summary printed after a run.
func Executed(st Styles, d time.Duration) string {
	return st.Dim.Render(st.emoji("✨") + "Target executed in " + Duration(d))
}
