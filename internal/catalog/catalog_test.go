package catalog

import "testing"

func TestFindService(t *testing.T) {
	svc, ok := FindService("Veneers")
	if !ok {
		t.Fatalf("expected Veneers in catalog")
	}
	if svc.Price != "From ₦6,000,000" {
		t.Fatalf("unexpected price %q", svc.Price)
	}
	if _, ok := FindService("veneers"); ok {
		t.Fatalf("lookup should match titles exactly")
	}
	if HasService("Botox") {
		t.Fatalf("unexpected catalog hit for Botox")
	}
}

func TestServicesReturnsCopy(t *testing.T) {
	list := Services()
	list[0].Title = "mutated"
	if Services()[0].Title != "Teeth Whitening" {
		t.Fatalf("catalog should not be mutable through Services()")
	}
}

func TestTimeSlotsOrdered(t *testing.T) {
	slots := TimeSlots()
	if len(slots) != 13 {
		t.Fatalf("expected 13 slots, got %d", len(slots))
	}
	if slots[0] != "09:00 AM" || slots[len(slots)-1] != "04:00 PM" {
		t.Fatalf("unexpected slot bounds %q..%q", slots[0], slots[len(slots)-1])
	}
	if !IsTimeSlot("01:30 PM") || IsTimeSlot("12:00 PM") {
		t.Fatalf("time slot membership mismatch")
	}
}

func TestPaymentOptions(t *testing.T) {
	if !IsPaymentOption(PaymentOnline) || !IsPaymentOption(PaymentOnArrival) {
		t.Fatalf("expected both payment options to be valid")
	}
	if IsPaymentOption("card") {
		t.Fatalf("unexpected payment option")
	}
	if got := PaymentLabel("arrival"); got != "Pay on Arrival" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := PaymentLabel("cash"); got != "cash" {
		t.Fatalf("unknown values should pass through, got %q", got)
	}
}
