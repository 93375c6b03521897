package modkit

// Option tweaks how a module is built
type Option func(*buildCfg)

type buildCfg struct {
	name  string
	ports any
}

// WithName overrides the module name used in logs
func WithName(name string) Option {
	return func(c *buildCfg) {
		if name != "" {
			c.name = name
		}
	}
}

// WithPorts hands the module a prebuilt collaborator, e.g. a key validator
// in tests. The module decides which types it accepts
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}
