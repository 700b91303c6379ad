package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

type State int

const (
	Editing State = iota
	Submitting
	Result
	Failed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Result:
		return "result"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrValidation       = errors.New("invalid input")
	ErrDiscarded        = errors.New("response discarded")
)

// SubmitFunc performs the single backend request of a submission.
type SubmitFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// ControllerConfig holds the optional parts of a Controller. Clone must
// deep-copy inputs that share memory (slices, maps); nil means plain
// assignment.
type ControllerConfig[In any] struct {
	Timeout  time.Duration
	Validate func(In) error
	Clone    func(In) In
}

type Controller[In, Out any] struct {
	mu     sync.Mutex
	state  State
	input  In
	result Out
	err    error
	gen    uint64

	submit SubmitFunc[In, Out]
	cfg    ControllerConfig[In]
}

func NewController[In, Out any](initial In, submit SubmitFunc[In, Out], cfg ControllerConfig[In]) *Controller[In, Out] {
	return &Controller[In, Out]{input: initial, submit: submit, cfg: cfg}
}

func (c *Controller[In, Out]) clone(in In) In {
	if c.cfg.Clone == nil {
		return in
	}
	return c.cfg.Clone(in)
}

func (c *Controller[In, Out]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Input returns a copy of the current input.
func (c *Controller[In, Out]) Input() In {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clone(c.input)
}

// Result returns the last successful response.
func (c *Controller[In, Out]) Result() (Out, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.state == Result
}

// Err returns the failure that put the controller in Failed.
func (c *Controller[In, Out]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Failed {
		return nil
	}
	return c.err
}

// Edit applies fn to the input. Edits are refused while a submission is in
// flight. A successful edit of a failed form returns it to Editing; the
// input itself is left as fn leaves it even when fn returns an error.
func (c *Controller[In, Out]) Edit(fn func(in *In) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Submitting {
		return ErrSubmitInProgress
	}
	if err := fn(&c.input); err != nil {
		return err
	}
	if c.state == Failed {
		c.state = Editing
		c.err = nil
	}
	return nil
}

// Submit validates a snapshot of the input and sends it. Exactly one
// request is made per accepted call. If the page was deactivated while the
// request was in flight the response is dropped, the state is left alone
// and ErrDiscarded is returned.
func (c *Controller[In, Out]) Submit(ctx context.Context) (Out, error) {
	var zero Out

	c.mu.Lock()
	if c.state == Submitting {
		c.mu.Unlock()
		return zero, ErrSubmitInProgress
	}
	snapshot := c.clone(c.input)
	if c.cfg.Validate != nil {
		if err := c.cfg.Validate(snapshot); err != nil {
			c.state = Failed
			c.err = fmt.Errorf("%w: %w", ErrValidation, err)
			err = c.err
			c.mu.Unlock()
			return zero, err
		}
	}
	c.state = Submitting
	gen := c.gen
	c.mu.Unlock()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	out, err := c.submit(ctx, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return zero, ErrDiscarded
	}
	if err != nil {
		c.state = Failed
		c.err = err
		return zero, err
	}
	c.state = Result
	c.result = out
	c.err = nil
	return out, nil
}

// Acknowledge clears a failure once the user has seen it.
func (c *Controller[In, Out]) Acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Failed {
		c.state = Editing
		c.err = nil
	}
}

// Deactivate invalidates any submission in flight. The form becomes
// editable again immediately.
func (c *Controller[In, Out]) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.state == Submitting {
		c.state = Editing
	}
}

// Discard drops everything the controller holds: the input is replaced,
// any result or failure is forgotten and a submission in flight will be
// discarded when it returns.
func (c *Controller[In, Out]) Discard(initial In) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero Out
	c.gen++
	c.input = initial
	c.result = zero
	c.err = nil
	c.state = Editing
}

// Reset replaces the input and forgets any result or failure.
func (c *Controller[In, Out]) Reset(initial In) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Submitting {
		return ErrSubmitInProgress
	}
	var zero Out
	c.input = initial
	c.result = zero
	c.err = nil
	c.state = Editing
	return nil
}
