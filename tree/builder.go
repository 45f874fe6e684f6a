package tree

import (
	"context"
	"sort"
	"strings"

	"github.com/marcusfrdk/click-extended-sub002/internal/ctxlog"
	"github.com/marcusfrdk/click-extended-sub002/node"
)

// Builder accumulates directive registrations for one command and compiles
// them into a Tree. Directive application is an explicit ordered Register
// call, never implicit global state, so nested or concurrent command
// definitions cannot corrupt each other.
type Builder struct {
	command  string
	pending  []node.Directive
	finished bool
}

// NewBuilder creates a builder for the named command.
func NewBuilder(command string) *Builder {
	return &Builder{command: command}
}

// Register appends a directive in registration order. Callers must register
// in the reverse of written order: the directive textually closest to the
// command body first. The claiming algorithm depends entirely on this
// ordering.
func (b *Builder) Register(d node.Directive) {
	node.SetRank(d, len(b.pending))
	b.pending = append(b.pending, d)
}

// membership records one tag membership declaration with the rank of the
// directive that declared it, so registry insertion order can follow
// declaration order.
type membership struct {
	group  string
	member string
	rank   int
}

// Finish drains the registration list into a finalized Tree. The pending
// list is cleared afterward; a builder compiles exactly one tree.
func (b *Builder) Finish(ctx context.Context) (*Tree, error) {
	logger := ctxlog.FromContext(ctx)
	if b.finished {
		return nil, buildErr(ErrFinished, "command %q", b.command)
	}
	b.finished = true
	logger.Debug("Finish: starting tree construction.", "command", b.command, "directives", len(b.pending))

	t := &Tree{
		Command: b.command,
		Tags:    NewTagRegistry(),
		byName:  make(map[string]*node.Binding),
	}

	// First pass: claim. Modifiers and grouping directives stack up until
	// the next-registered binding pops them; popping LIFO from registration
	// order yields the written order of the chain.
	var (
		modifiers   []*node.Modifier
		tagClaims   []*node.TagClaim
		anchored    []*node.Validation
		memberships []membership
	)
	for _, d := range b.pending {
		switch n := d.(type) {
		case *node.Modifier:
			modifiers = append(modifiers, n)
		case *node.TagClaim:
			tagClaims = append(tagClaims, n)
		case *node.Validation:
			if n.Anchored {
				anchored = append(anchored, n)
			} else {
				t.Validations = append(t.Validations, n)
			}
		case *node.Global:
			if n.Phase == node.PhaseFirst {
				t.GlobalsFirst = append(t.GlobalsFirst, n)
			} else {
				t.GlobalsLast = append(t.GlobalsLast, n)
			}
		case *node.Binding:
			for i := len(modifiers) - 1; i >= 0; i-- {
				n.Chain = append(n.Chain, modifiers[i])
			}
			modifiers = nil
			for i := len(tagClaims) - 1; i >= 0; i-- {
				memberships = append(memberships, membership{
					group:  tagClaims[i].Group,
					member: n.Name,
					rank:   tagClaims[i].Rank,
				})
			}
			tagClaims = nil
			for i := len(anchored) - 1; i >= 0; i-- {
				anchored[i].Anchor = n.Name
			}
			t.Validations = append(t.Validations, anchored...)
			anchored = nil
			for _, tag := range n.Tags {
				memberships = append(memberships, membership{group: tag, member: n.Name, rank: n.Rank})
			}
			t.Bindings = append(t.Bindings, n)
			logger.Debug("Finish: binding claimed its chain.",
				"binding", n.Name, "chain_len", len(n.Chain))
		}
	}

	if len(modifiers) > 0 {
		last := modifiers[len(modifiers)-1]
		return nil, buildErr(ErrDanglingModifier, "modifier %q", last.Name)
	}
	if len(tagClaims) > 0 {
		return nil, buildErr(ErrDanglingDirective, "tag %q", tagClaims[len(tagClaims)-1].Group)
	}
	if len(anchored) > 0 {
		return nil, buildErr(ErrDanglingDirective, "validation %q", anchored[len(anchored)-1].Name)
	}

	// Second pass: order. Rank records registration order, the reverse of
	// written order, so declaration order is descending rank.
	sort.SliceStable(t.Bindings, func(i, j int) bool { return t.Bindings[i].Rank > t.Bindings[j].Rank })
	sort.SliceStable(t.Validations, func(i, j int) bool { return t.Validations[i].Rank > t.Validations[j].Rank })
	sort.SliceStable(t.GlobalsFirst, func(i, j int) bool { return t.GlobalsFirst[i].Rank > t.GlobalsFirst[j].Rank })
	sort.SliceStable(t.GlobalsLast, func(i, j int) bool { return t.GlobalsLast[i].Rank > t.GlobalsLast[j].Rank })
	sort.SliceStable(memberships, func(i, j int) bool { return memberships[i].rank > memberships[j].rank })

	// Third pass: validate names and populate the tag registry.
	for _, bd := range t.Bindings {
		if bd.Name == "" || strings.ContainsAny(bd.Name, " \t\n") {
			return nil, buildErr(ErrInvalidName, "binding %q", bd.Name)
		}
		if _, exists := t.byName[bd.Name]; exists {
			return nil, buildErr(ErrDuplicateName, "binding %q", bd.Name)
		}
		t.byName[bd.Name] = bd
	}
	for _, m := range memberships {
		owner := t.byName[m.member]
		if owner != nil && owner.Origin == "env" {
			return nil, buildErr(ErrTaggedEnv, "env binding %q in tag %q", m.member, m.group)
		}
		if _, exists := t.byName[m.group]; exists {
			return nil, buildErr(ErrDuplicateName, "tag %q collides with a binding", m.group)
		}
		t.Tags.Add(m.group, m.member)
	}

	b.pending = nil
	logger.Debug("Finish: tree construction successful.",
		"command", b.command,
		"bindings", len(t.Bindings),
		"validations", len(t.Validations),
		"globals_first", len(t.GlobalsFirst),
		"globals_last", len(t.GlobalsLast),
		"tags", len(t.Tags.Groups()))
	return t, nil
}
