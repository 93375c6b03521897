package modkit

// Module is what a job binary sees of a wired service: a name for logs and a
// port bundle to pull runners from
type Module interface {
	Name() string
	Ports() any
}

// Builder is the constructor shape of job modules. Construction can fail on
// configuration, so unlike long running services it returns an error
type Builder func(Deps, ...Option) (Module, error)
