package services

import "github.com/openinvoice/openinvoice/internal/models"

// Incremental-reveal windowing: the list starts at an initial window and
// grows by a fixed step each time the scroll sentinel becomes visible. Any
// change of year, tab or search query resets the window.
const (
	DefaultWindow = 10
	DefaultStep   = 10
)

// Pager tracks the visible window size.
type Pager struct {
	initial int
	step    int
	visible int
}

// NewPager builds a pager; non-positive arguments fall back to the defaults.
func NewPager(initial, step int) *Pager {
	if initial <= 0 {
		initial = DefaultWindow
	}
	if step <= 0 {
		step = DefaultStep
	}
	return &Pager{initial: initial, step: step, visible: initial}
}

// Visible is the current window size.
func (p *Pager) Visible() int { return p.visible }

// Grow extends the window by one step and returns the new size.
func (p *Pager) Grow() int {
	p.visible += p.step
	return p.visible
}

// Reset shrinks the window back to the initial size.
func (p *Pager) Reset() {
	p.visible = p.initial
}

// Window returns the leading slice of invoices fitting the current window.
func (p *Pager) Window(invoices []models.Invoice) []models.Invoice {
	if len(invoices) <= p.visible {
		return invoices
	}
	return invoices[:p.visible]
}
