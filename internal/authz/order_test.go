package authz

import (
	"testing"
	"time"

	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

func clientOrder() model.Order {
	return model.Order{
		ID:       10,
		PublicID: "6f2b5ef2-68f0-4a54-9c2a-62f36bb54e72",
		ClientID: 7,
		Status:   model.OrderStatusPendingClientConfirmation,
		Amount:   1500,
	}
}

func TestAuthorizeOrderInsert(t *testing.T) {
	row := model.Order{ClientID: 7}

	t.Run("owner with client role allowed", func(t *testing.T) {
		d := AuthorizeOrderInsert(CallerContext{PrincipalID: 7, Role: model.RoleClient}, row)
		if !d.Allowed {
			t.Fatalf("expected allow, got deny: %s", d.Reason)
		}
	})

	t.Run("non-owner denied", func(t *testing.T) {
		d := AuthorizeOrderInsert(CallerContext{PrincipalID: 8, Role: model.RoleClient}, row)
		if d.Allowed {
			t.Fatal("expected deny for non-owner insert")
		}
	})

	t.Run("owner without client role denied", func(t *testing.T) {
		d := AuthorizeOrderInsert(CallerContext{PrincipalID: 7, Role: model.RoleSupplier}, row)
		if d.Allowed {
			t.Fatal("expected deny for non-client role")
		}
	})

	t.Run("system trust bypasses policy", func(t *testing.T) {
		d := AuthorizeOrderInsert(SystemContext(), row)
		if !d.Allowed {
			t.Fatalf("expected allow for system context: %s", d.Reason)
		}
	})
}

func TestAuthorizeOrderUpdateOwnership(t *testing.T) {
	current := clientOrder()
	proposed := current
	proposed.PaymentNotes = "wire transfer"

	d := AuthorizeOrderUpdate(CallerContext{PrincipalID: 99, Role: model.RoleClient}, current, proposed)
	if d.Allowed {
		t.Fatal("expected deny for update by non-owner")
	}
}

func TestAuthorizeOrderUpdateConfirmationFieldsAllowed(t *testing.T) {
	current := clientOrder()
	now := time.Now()
	proposed := current
	proposed.NotTestOrderConfirmedAt = &now
	proposed.PaymentTermsConfirmedAt = &now
	proposed.ClientPOConfirmationSubmittedAt = &now
	proposed.ClientPOUploaded = true

	d := AuthorizeOrderUpdate(CallerContext{PrincipalID: 7, Role: model.RoleClient}, current, proposed)
	if !d.Allowed {
		t.Fatalf("expected allow for confirmation fields, got deny: %s", d.Reason)
	}
}

func TestAuthorizeOrderUpdateStatusChangeDenied(t *testing.T) {
	current := clientOrder()
	for _, status := range []model.OrderStatus{
		model.OrderStatusPendingAdminConfirmation,
		model.OrderStatusConfirmed,
		model.OrderStatusDraft,
	} {
		proposed := current
		proposed.Status = status
		d := AuthorizeOrderUpdate(CallerContext{PrincipalID: 7, Role: model.RoleClient}, current, proposed)
		if d.Allowed {
			t.Fatalf("expected deny for owner changing status to %s", status)
		}
	}
}

func TestAuthorizeOrderUpdateColumnAllowList(t *testing.T) {
	current := clientOrder()
	caller := CallerContext{PrincipalID: 7, Role: model.RoleClient}

	t.Run("amount change denied", func(t *testing.T) {
		proposed := current
		proposed.Amount = 9999
		if d := AuthorizeOrderUpdate(caller, current, proposed); d.Allowed {
			t.Fatal("expected deny for amount change")
		}
	})

	t.Run("supplier change denied", func(t *testing.T) {
		proposed := current
		proposed.SupplierID = 42
		if d := AuthorizeOrderUpdate(caller, current, proposed); d.Allowed {
			t.Fatal("expected deny for supplier change")
		}
	})

	t.Run("payment fields allowed", func(t *testing.T) {
		now := time.Now()
		proposed := current
		proposed.PaymentReference = "REF-001"
		proposed.PaymentNotes = "paid via bank"
		proposed.PaymentSubmittedAt = &now
		if d := AuthorizeOrderUpdate(caller, current, proposed); !d.Allowed {
			t.Fatalf("expected allow for payment fields, got deny: %s", d.Reason)
		}
	})
}

func TestAuthorizeOrderUpdateSystemTrust(t *testing.T) {
	current := clientOrder()
	proposed := current
	proposed.Status = model.OrderStatusConfirmed
	proposed.Amount = 2000

	if d := AuthorizeOrderUpdate(SystemContext(), current, proposed); !d.Allowed {
		t.Fatalf("expected allow for system context, got deny: %s", d.Reason)
	}
}

func TestOrderDelta(t *testing.T) {
	old := clientOrder()
	now := time.Now()
	new := old
	new.Status = model.OrderStatusConfirmed
	new.Amount = 1
	new.ClientPOUploaded = true
	new.PaymentSubmittedAt = &now

	changed := OrderDelta(old, new)
	want := map[string]bool{
		ColOrderStatus:        true,
		ColOrderAmount:        true,
		ColClientPOUploaded:   true,
		ColPaymentSubmittedAt: true,
	}
	if len(changed) != len(want) {
		t.Fatalf("unexpected delta %v", changed)
	}
	for _, col := range changed {
		if !want[col] {
			t.Fatalf("unexpected changed column %s", col)
		}
	}

	if d := OrderDelta(old, old); len(d) != 0 {
		t.Fatalf("expected empty delta for identical rows, got %v", d)
	}
}

func TestOrderDeltaEqualTimestampsDifferentPointers(t *testing.T) {
	at := time.Now()
	atCopy := at
	old := clientOrder()
	old.NotTestOrderConfirmedAt = &at
	new := old
	new.NotTestOrderConfirmedAt = &atCopy

	if d := OrderDelta(old, new); len(d) != 0 {
		t.Fatalf("equal timestamps behind different pointers must not count as a change, got %v", d)
	}
}
