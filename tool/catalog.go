package tool

import (
	"sort"
	"sync"
)

// Catalog is a named tool registry. The sub-agent factory resolves each
// spec's tool allow-list against one combined catalog (built-ins plus any
// caller supplied tools). It is safe for concurrent reads after setup.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewCatalog constructs a catalog holding the given tools. Later additions
// with the same name overwrite earlier ones.
func NewCatalog(tools ...Tool) *Catalog {
	c := &Catalog{tools: make(map[string]Tool, len(tools))}
	c.Register(tools...)
	return c
}

// NewBuiltinCatalog constructs a catalog pre-populated with the built-in
// virtual document tools every sub-agent can use.
func NewBuiltinCatalog() *Catalog {
	return NewCatalog(
		NewWriteDocumentTool(),
		NewReadDocumentTool(),
		NewListDocumentsTool(),
	)
}

// Register adds tools to the catalog, overwriting same-named entries.
func (c *Catalog) Register(tools ...Tool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		if t == nil {
			continue
		}
		c.tools[t.Name()] = t
	}
}

// Resolve returns the tool registered under name.
func (c *Catalog) Resolve(name string) (Tool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tools[name]
	return t, ok
}

// Names returns all registered tool names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.tools))
	for name := range c.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered tools keyed by name, as a copy safe for caller
// mutation.
func (c *Catalog) All() map[string]Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tools := make(map[string]Tool, len(c.tools))
	for name, t := range c.tools {
		tools[name] = t
	}
	return tools
}

// Merge returns a new catalog containing this catalog's tools overlaid with
// other's (other wins on name collisions). Neither input is mutated.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := NewCatalog()
	for _, t := range c.All() {
		merged.Register(t)
	}
	if other != nil {
		for _, t := range other.All() {
			merged.Register(t)
		}
	}
	return merged
}
