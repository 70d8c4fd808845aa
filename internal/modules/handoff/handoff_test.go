package handoff

import "testing"

func TestTakeIsOnce(t *testing.T) {
	ch := New()
	ch.Put(SlotOrderReview, "draft-1")

	v, ok := ch.Take(SlotOrderReview)
	if !ok || v.(string) != "draft-1" {
		t.Fatalf("Take = %v, %v", v, ok)
	}
	if _, ok := ch.Take(SlotOrderReview); ok {
		t.Fatalf("second Take returned a payload")
	}
}

func TestTakeEmptySlot(t *testing.T) {
	ch := New()
	if v, ok := ch.Take(SlotConfirmation); ok || v != nil {
		t.Fatalf("empty slot yielded %v, %v", v, ok)
	}
}

func TestPutOverwrites(t *testing.T) {
	ch := New()
	ch.Put(SlotPlanogramDraft, "old")
	ch.Put(SlotPlanogramDraft, "new")

	v, ok := ch.Take(SlotPlanogramDraft)
	if !ok || v.(string) != "new" {
		t.Fatalf("Take = %v, %v, want the latest payload", v, ok)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	ch := New()
	ch.Put(SlotOrderReview, "review")
	ch.Put(SlotConfirmation, Confirmation{OrderID: "ORD-1", ShowConfirmation: true})

	if _, ok := ch.Take(SlotOrderReview); !ok {
		t.Fatalf("review slot empty")
	}
	v, ok := ch.Take(SlotConfirmation)
	if !ok {
		t.Fatalf("confirmation slot drained by another Take")
	}
	if c := v.(Confirmation); c.OrderID != "ORD-1" || !c.ShowConfirmation {
		t.Fatalf("unexpected confirmation %+v", c)
	}
}
