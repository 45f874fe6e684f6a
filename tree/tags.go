package tree

// TagRegistry maps group names to the ordered set of member binding names.
// Groups are populated by bindings declaring membership and by explicit
// grouping directives. Membership is monotonic: once added, a name is never
// removed within a command's lifetime.
type TagRegistry struct {
	order   []string
	members map[string][]string
}

// NewTagRegistry creates an empty registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{members: make(map[string][]string)}
}

// Add records member in the named group, preserving insertion order and
// ignoring duplicates.
func (r *TagRegistry) Add(group, member string) {
	existing, ok := r.members[group]
	if !ok {
		r.order = append(r.order, group)
	}
	for _, m := range existing {
		if m == member {
			return
		}
	}
	r.members[group] = append(existing, member)
}

// Has reports whether the named group exists.
func (r *TagRegistry) Has(group string) bool {
	_, ok := r.members[group]
	return ok
}

// Members returns the ordered member names of a group; nil for unknown
// groups.
func (r *TagRegistry) Members(group string) []string {
	return r.members[group]
}

// Groups returns all group names in insertion order.
func (r *TagRegistry) Groups() []string {
	return r.order
}
