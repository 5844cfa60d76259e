package loader

import (
	"github.com/c360/factorykit/registration"
	"github.com/c360/factorykit/typeregistry"
)

// Context is the discovery scope for factory loading: the ordered
// registration sources visible to a caller plus the type registry that
// resolves discovered names to constructible types. Contexts are owned by the
// caller and compared by identity; the loader uses them as cache keys and
// never creates or destroys one.
type Context struct {
	name    string
	sources []registration.Source
	types   *typeregistry.Registry
}

// NewContext creates a discovery scope. Sources are enumerated in the given
// order on every scan; name is informational, for logs and diagnostics.
func NewContext(name string, types *typeregistry.Registry, sources ...registration.Source) *Context {
	if types == nil {
		types = typeregistry.NewRegistry()
	}
	return &Context{
		name:    name,
		sources: append([]registration.Source(nil), sources...),
		types:   types,
	}
}

// Name returns the informational name of the scope.
func (c *Context) Name() string { return c.name }

// EnumerateSources returns the registration sources of the scope in their
// fixed discovery order.
func (c *Context) EnumerateSources() []registration.Source {
	out := make([]registration.Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// ResolveType resolves an implementation type name through the scope's type
// registry. It fails when the name was never registered.
func (c *Context) ResolveType(name string) (typeregistry.Type, error) {
	return c.types.Resolve(name)
}

// Types returns the scope's type registry.
func (c *Context) Types() *typeregistry.Registry { return c.types }
