package enums

import "testing"

func TestParsePurchaseOrderStatus(t *testing.T) {
	status, err := ParsePurchaseOrderStatus("received")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != PurchaseOrderStatusReceived {
		t.Fatalf("unexpected status %s", status)
	}

	if _, err := ParsePurchaseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestAgeModeValidation(t *testing.T) {
	for _, mode := range []AgeMode{AgeModeNinos, AgeModeJovenes, AgeModeAdultos} {
		if !mode.IsValid() {
			t.Fatalf("expected %s to be valid", mode)
		}
	}
	if AgeMode("bebes").IsValid() {
		t.Fatal("expected unknown mode to be invalid")
	}
}

func TestParseMemberRole(t *testing.T) {
	role, err := ParseMemberRole("clerk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != MemberRoleClerk {
		t.Fatalf("unexpected role %s", role)
	}

	if _, err := ParseMemberRole("root"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
