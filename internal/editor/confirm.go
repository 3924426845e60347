package editor

// Confirmation is the yes/no gate in front of destructive or persisting
// actions. It carries no state beyond open/closed; confirming runs the
// caller-supplied action at most once per open/confirm cycle.
type Confirmation struct {
	open         bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	action       func() error
}

// NewConfirmation returns a closed gate.
func NewConfirmation() *Confirmation {
	return &Confirmation{}
}

// Open arms the gate with labels and the action to run on confirm. Empty
// labels fall back to defaults.
func (c *Confirmation) Open(title, message, confirmLabel, cancelLabel string, action func() error) {
	if title == "" {
		title = "Confirm Changes"
	}
	if confirmLabel == "" {
		confirmLabel = "Save"
	}
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	c.open = true
	c.title = title
	c.message = message
	c.confirmLabel = confirmLabel
	c.cancelLabel = cancelLabel
	c.action = action
}

func (c *Confirmation) IsOpen() bool {
	return c.open
}

func (c *Confirmation) Title() string {
	return c.title
}

func (c *Confirmation) Message() string {
	return c.message
}

func (c *Confirmation) ConfirmLabel() string {
	return c.confirmLabel
}

func (c *Confirmation) CancelLabel() string {
	return c.cancelLabel
}

// Confirm runs the armed action and closes the gate. A second confirm on
// the same cycle is a no-op.
func (c *Confirmation) Confirm() error {
	if !c.open {
		return nil
	}
	action := c.action
	c.close()
	if action == nil {
		return nil
	}
	return action()
}

// Cancel closes the gate without running the action.
func (c *Confirmation) Cancel() {
	c.close()
}

func (c *Confirmation) close() {
	c.open = false
	c.action = nil
}
