package tree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	commandStyle = lipgloss.NewStyle().Bold(true)
	originStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	chainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	phaseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// Render returns a human-readable rendering of the execution plan: bindings
// with their chains, validations, tag groups and globals, in declaration
// order.
func (t *Tree) Render() string {
	var sb strings.Builder
	sb.WriteString(commandStyle.Render(t.Command))
	sb.WriteString("\n")

	for _, g := range t.GlobalsFirst {
		fmt.Fprintf(&sb, "  %s %s\n", phaseStyle.Render("global/first"), g.Name)
	}
	for _, b := range t.Bindings {
		fmt.Fprintf(&sb, "  %s %s (%s)\n", originStyle.Render(b.Origin), b.Display, b.Name)
		for _, m := range b.Chain {
			fmt.Fprintf(&sb, "    %s\n", chainStyle.Render("└ "+m.Name))
		}
	}
	for _, group := range t.Tags.Groups() {
		members := strings.Join(t.Tags.Members(group), ", ")
		fmt.Fprintf(&sb, "  %s %s: %s\n", tagStyle.Render("tag"), group, members)
	}
	for _, v := range t.Validations {
		anchor := ""
		if v.Anchored {
			anchor = " @" + t.Display(v.Anchor)
		}
		fmt.Fprintf(&sb, "  %s %s(%s)%s\n",
			phaseStyle.Render("validate"), v.Name, strings.Join(v.Refs, ", "), anchor)
	}
	for _, g := range t.GlobalsLast {
		fmt.Fprintf(&sb, "  %s %s\n", phaseStyle.Render("global/last"), g.Name)
	}
	return sb.String()
}
