package nodes

// SetEnviron replaces the source of the local node's environment.
func (p *Provider) SetEnviron(fn func() []string) {
	p.environ = fn
}
