package handoff

import "sync"

// Slot names mirror the screens that exchange payloads.
const (
	SlotPlanogramDraft = "planogramData"
	SlotOrderReview    = "orderReviewData"
	SlotConfirmation   = "orderConfirmation"
)

// Confirmation is the just-created-order flag consumed by the detail view.
type Confirmation struct {
	OrderID          string `json:"order_id"`
	ShowConfirmation bool   `json:"show_confirmation"`
}

// Channel is the transient handoff between screens: short-lived structured
// payloads that live until the next screen reads them. Absence means "no
// draft", never an error. Nothing here is durable.
type Channel struct {
	mu    sync.Mutex
	slots map[string]any
}

func New() *Channel {
	return &Channel{slots: make(map[string]any)}
}

// Put replaces the slot's payload.
func (c *Channel) Put(slot string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[slot] = v
}

// Take removes and returns the slot's payload. The second return is false
// when the slot is empty.
func (c *Channel) Take(slot string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.slots[slot]
	if ok {
		delete(c.slots, slot)
	}
	return v, ok
}
