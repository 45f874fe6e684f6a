package check

import (
	"context"
	"fmt"

	"github.com/marcusfrdk/click-extended-sub002/internal/humanize"
	"github.com/marcusfrdk/click-extended-sub002/node"
	"github.com/marcusfrdk/click-extended-sub002/runtime"
)

// expandRefs resolves every reference into an ordered, deduplicated list
// of member binding names. A direct binding name resolves to itself even
// when a tag group shares the name; unknown references expand to nothing.
func expandRefs(lk node.Lookup, refs []string) []string {
	var members []string
	seen := make(map[string]bool)
	for _, ref := range refs {
		for _, name := range lk.Expand(ref) {
			if !seen[name] {
				seen[name] = true
				members = append(members, name)
			}
		}
	}
	return members
}

func displays(lk node.Lookup, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = lk.Display(n)
	}
	return out
}

// Requires declares that the binding above it can only be used when every
// referenced binding is also provided. A reference that resolves to
// nothing counts as missing: an unknown name can never satisfy a
// requirement.
func Requires(refs ...string) *node.Validation {
	return node.NewValidation("requires", true, refs, func(ctx context.Context, lk node.Lookup, v *node.Validation) error {
		if !lk.Provided(v.Anchor) {
			return nil
		}
		var missing []string
		for _, ref := range v.Refs {
			members := expandRefs(lk, []string{ref})
			if len(members) == 0 {
				missing = append(missing, ref)
				continue
			}
			for _, name := range members {
				if !lk.Provided(name) {
					missing = append(missing, lk.Display(name))
				}
			}
		}
		if len(missing) == 0 {
			return nil
		}
		return &runtime.Failure{Message: fmt.Sprintf(
			"%s requires %s to be provided.",
			humanize.JoinQuoted([]string{lk.Display(v.Anchor)}),
			humanize.JoinQuoted(missing),
		)}
	})
}

// Conflicts declares that the binding above it cannot be combined with any
// referenced binding. Unknown references are ignored.
func Conflicts(refs ...string) *node.Validation {
	return node.NewValidation("conflicts", true, refs, func(ctx context.Context, lk node.Lookup, v *node.Validation) error {
		if !lk.Provided(v.Anchor) {
			return nil
		}
		var clashing []string
		for _, name := range expandRefs(lk, v.Refs) {
			if name != v.Anchor && lk.Provided(name) {
				clashing = append(clashing, lk.Display(name))
			}
		}
		if len(clashing) == 0 {
			return nil
		}
		return &runtime.Failure{Message: fmt.Sprintf(
			"%s conflicts with %s. They cannot be used together.",
			humanize.JoinQuoted([]string{lk.Display(v.Anchor)}),
			humanize.JoinQuoted(clashing),
		)}
	})
}

// Dependencies declares that the referenced bindings form a group provided
// all together or not at all. It is symmetric and attaches nowhere in
// particular. Unknown references are ignored.
func Dependencies(refs ...string) *node.Validation {
	return node.NewValidation("dependencies", false, refs, func(ctx context.Context, lk node.Lookup, v *node.Validation) error {
		members := expandRefs(lk, v.Refs)
		var provided, missing []string
		for _, name := range members {
			if lk.Provided(name) {
				provided = append(provided, name)
			} else {
				missing = append(missing, name)
			}
		}
		if len(provided) == 0 || len(missing) == 0 {
			return nil
		}
		return &runtime.Failure{Message: fmt.Sprintf(
			"%s requires %s to be provided.",
			humanize.JoinQuoted(displays(lk, provided)),
			humanize.JoinQuoted(displays(lk, missing)),
		)}
	})
}

// Exclusive declares that at most one of the referenced bindings may be
// provided. It is symmetric. Unknown references are ignored.
func Exclusive(refs ...string) *node.Validation {
	return node.NewValidation("exclusive", false, refs, func(ctx context.Context, lk node.Lookup, v *node.Validation) error {
		members := expandRefs(lk, v.Refs)
		count := 0
		for _, name := range members {
			if lk.Provided(name) {
				count++
			}
		}
		if count <= 1 {
			return nil
		}
		return &runtime.Failure{Message: fmt.Sprintf(
			"only one of %s can be provided, but got %d.",
			humanize.JoinQuoted(displays(lk, members)),
			count,
		)}
	})
}
