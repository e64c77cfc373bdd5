package token

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func TestTransfer(t *testing.T) {
	tok := newTestToken(t, 1000)
	call := Call{Caller: authority, Height: 1}

	if err := tok.Transfer(call, alice, uint256.NewInt(400)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if !tok.BalanceOf(authority).Eq(uint256.NewInt(600)) {
		t.Errorf("authority balance = %s, want 600", tok.BalanceOf(authority).Dec())
	}
	if !tok.BalanceOf(alice).Eq(uint256.NewInt(400)) {
		t.Errorf("alice balance = %s, want 400", tok.BalanceOf(alice).Dec())
	}
	if tok.TransferCount() != 1 {
		t.Errorf("transfer count = %d, want 1", tok.TransferCount())
	}
	if tok.TransfersBy(authority) != 1 {
		t.Errorf("transfers by authority = %d, want 1", tok.TransfersBy(authority))
	}

	events := tok.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0].(TransferEvent)
	if ev.From != authority || ev.To != alice || !ev.Amount.Eq(uint256.NewInt(400)) {
		t.Errorf("unexpected transfer event: %+v", ev)
	}
	checkSupply(t, tok)
}

func TestTransferFailures(t *testing.T) {
	tok := newTestToken(t, 1000)

	tests := []struct {
		name   string
		caller Address
		to     Address
		amount uint64
		want   error
	}{
		{"null recipient", authority, "", 10, ErrInvalidRecipient},
		{"zero hex recipient", authority, "0x0000000000000000000000000000000000000000", 10, ErrInvalidRecipient},
		{"insufficient balance", alice, bob, 10, ErrInsufficientBalance},
		{"over balance", authority, alice, 1001, ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tok.Transfer(Call{Caller: tt.caller}, tt.to, uint256.NewInt(tt.amount))
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	// Failures leave no events and no state changes.
	if evs := tok.DrainEvents(); len(evs) != 0 {
		t.Errorf("failed transfers emitted %d events", len(evs))
	}
	if tok.TransferCount() != 0 {
		t.Errorf("failed transfers bumped the counter to %d", tok.TransferCount())
	}
	checkSupply(t, tok)
}

func TestTransferZeroAmount(t *testing.T) {
	tok := newTestToken(t, 1000)

	// Zero-value transfers are permitted and still notify.
	if err := tok.Transfer(Call{Caller: authority}, alice, new(uint256.Int)); err != nil {
		t.Fatalf("zero transfer failed: %v", err)
	}
	if !tok.BalanceOf(alice).IsZero() {
		t.Errorf("alice balance = %s, want 0", tok.BalanceOf(alice).Dec())
	}
	events := tok.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !events[0].(TransferEvent).Amount.IsZero() {
		t.Error("expected zero-value transfer event")
	}

	// A sender with no balance entry at all can still move zero.
	if err := tok.Transfer(Call{Caller: alice}, bob, new(uint256.Int)); err != nil {
		t.Fatalf("zero transfer from unfunded sender failed: %v", err)
	}
	if tok.TransfersBy(alice) != 1 {
		t.Errorf("transfers by alice = %d, want 1", tok.TransfersBy(alice))
	}
	events = tok.DrainEvents()
	if len(events) != 1 || !events[0].(TransferEvent).Amount.IsZero() {
		t.Errorf("expected 1 zero-value transfer event, got %v", events)
	}
	checkSupply(t, tok)
}

func TestTransferToSelf(t *testing.T) {
	tok := newTestToken(t, 1000)

	if err := tok.Transfer(Call{Caller: authority}, authority, uint256.NewInt(700)); err != nil {
		t.Fatalf("self transfer failed: %v", err)
	}
	if !tok.BalanceOf(authority).Eq(uint256.NewInt(1000)) {
		t.Errorf("self transfer changed balance to %s", tok.BalanceOf(authority).Dec())
	}
	checkSupply(t, tok)
}

func TestApproveOverwrites(t *testing.T) {
	tok := newTestToken(t, 1000)
	call := Call{Caller: authority}

	if err := tok.Approve(call, alice, uint256.NewInt(50)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := tok.Approve(call, alice, uint256.NewInt(20)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !tok.Allowance(authority, alice).Eq(uint256.NewInt(20)) {
		t.Errorf("allowance = %s, want 20 (overwrite, not add)", tok.Allowance(authority, alice).Dec())
	}

	events := tok.DrainEvents()
	if len(events) != 2 {
		t.Fatalf("expected 2 approval events, got %d", len(events))
	}
	for _, ev := range events {
		if ev.Kind() != KindApproval {
			t.Errorf("unexpected event kind %s", ev.Kind())
		}
	}
}

func TestTransferFrom(t *testing.T) {
	tok := newTestToken(t, 1000)

	if err := tok.Approve(Call{Caller: authority}, alice, uint256.NewInt(300)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := tok.TransferFrom(Call{Caller: alice}, authority, bob, uint256.NewInt(200)); err != nil {
		t.Fatalf("transferFrom failed: %v", err)
	}

	if !tok.BalanceOf(bob).Eq(uint256.NewInt(200)) {
		t.Errorf("bob balance = %s, want 200", tok.BalanceOf(bob).Dec())
	}
	if !tok.Allowance(authority, alice).Eq(uint256.NewInt(100)) {
		t.Errorf("allowance = %s, want 100", tok.Allowance(authority, alice).Dec())
	}

	// Exceeding the remaining allowance fails before any state change.
	err := tok.TransferFrom(Call{Caller: alice}, authority, bob, uint256.NewInt(101))
	if !errors.Is(err, ErrInsufficientAllowance) {
		t.Errorf("got %v, want ErrInsufficientAllowance", err)
	}
	if !tok.BalanceOf(bob).Eq(uint256.NewInt(200)) {
		t.Error("failed transferFrom changed balances")
	}
	checkSupply(t, tok)
}

func TestTransferFromUnlimitedAllowance(t *testing.T) {
	tok := newTestToken(t, 1000)

	if err := tok.Approve(Call{Caller: authority}, alice, Unlimited()); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := tok.TransferFrom(Call{Caller: alice}, authority, bob, uint256.NewInt(999)); err != nil {
		t.Fatalf("transferFrom failed: %v", err)
	}

	// The sentinel is never decremented, regardless of amount moved.
	if !tok.Allowance(authority, alice).Eq(Unlimited()) {
		t.Errorf("unlimited allowance was decremented to %s", tok.Allowance(authority, alice).Dec())
	}
	checkSupply(t, tok)
}

func TestTransferFromNoAllowance(t *testing.T) {
	tok := newTestToken(t, 1000)
	err := tok.TransferFrom(Call{Caller: alice}, authority, bob, uint256.NewInt(1))
	if !errors.Is(err, ErrInsufficientAllowance) {
		t.Errorf("got %v, want ErrInsufficientAllowance", err)
	}
}

func TestTransferFromInsufficientBalance(t *testing.T) {
	tok := newTestToken(t, 100)

	if err := tok.Approve(Call{Caller: authority}, alice, uint256.NewInt(500)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	err := tok.TransferFrom(Call{Caller: alice}, authority, bob, uint256.NewInt(200))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("got %v, want ErrInsufficientBalance", err)
	}
	// The finite allowance must not be consumed on failure.
	if !tok.Allowance(authority, alice).Eq(uint256.NewInt(500)) {
		t.Errorf("allowance = %s after failed transfer, want 500", tok.Allowance(authority, alice).Dec())
	}
}
