package block

// Context carries the entity-dependent inputs of a collision shape
// query. It captures values at the call site rather than referencing
// the entity; a Context is only valid for the duration of the query it
// was built for.
//
// The zero-value-adjacent EmptyContext selects placement shapes;
// ForEntity selects movement shapes, which differ for kinds like
// fences.
type Context struct {
	entity     bool
	bottomY    float64
	descending bool
}

// EmptyContext returns the context of a query with no entity involved,
// such as placement and support checks.
func EmptyContext() Context {
	return Context{}
}

// ForEntity returns the context of a movement query: the bottom Y of
// the entity's box and whether it is moving downward.
func ForEntity(bottomY float64, descending bool) Context {
	return Context{entity: true, bottomY: bottomY, descending: descending}
}

// ForEntity reports whether the context describes a moving entity.
func (c Context) ForEntity() bool { return c.entity }

// BottomY returns the bottom Y of the querying entity. Only meaningful
// when ForEntity reports true.
func (c Context) BottomY() float64 { return c.bottomY }

// Descending reports whether the querying entity moves downward.
func (c Context) Descending() bool { return c.descending }
