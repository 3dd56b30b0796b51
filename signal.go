package overlay

// Completion is a one-shot signal delivered by a renderer when a dismissal has
// finished. Continuations registered with Then run exactly once, in
// registration order, when Resolve is first called. A Completion that is never
// resolved never runs its continuations.
//
// Completion is not safe for concurrent use; resolve it from the same loop
// that drives the Coordinator.
type Completion struct {
	resolved bool
	then     []func()
}

// NewCompletion returns an unresolved Completion.
func NewCompletion() *Completion {
	return &Completion{}
}

// Resolved returns a Completion that has already fired. Renderers whose
// dismissal is instantaneous can return it directly.
func Resolved() *Completion {
	return &Completion{resolved: true}
}

// Then registers fn to run on resolution. If the Completion has already been
// resolved, fn runs immediately.
func (c *Completion) Then(fn func()) {
	if fn == nil {
		return
	}
	if c.resolved {
		fn()
		return
	}
	c.then = append(c.then, fn)
}

// Resolve fires the signal. Calls after the first are no-ops.
func (c *Completion) Resolve() {
	if c.resolved {
		return
	}
	c.resolved = true
	fns := c.then
	c.then = nil
	for _, fn := range fns {
		fn()
	}
}

// Done reports whether Resolve has been called.
func (c *Completion) Done() bool {
	return c.resolved
}
