// Package module resolves typed ports out of wired modules
package module

// Module is the part of modkit.Module that PortsOf reads.
// Declared here so modkit can import this package without a cycle
type Module interface {
	Name() string
	Ports() any
}
