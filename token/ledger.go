package token

import "github.com/holiman/uint256"

// Transfer moves amount from the caller to recipient. A zero amount is
// permitted and records a zero-value Transfer.
func (t *Token) Transfer(call Call, to Address, amount *uint256.Int) error {
	return t.move(call.Caller, to, amount)
}

// Approve sets the caller's allowance for spender, overwriting any prior
// value.
func (t *Token) Approve(call Call, spender Address, amount *uint256.Int) error {
	owner := call.Caller
	m, ok := t.allowances[owner]
	if !ok {
		m = make(map[Address]*uint256.Int)
		t.allowances[owner] = m
	}
	m[spender] = amount.Clone()
	t.emit(ApprovalEvent{Owner: owner, Spender: spender, Amount: amount.Clone()})
	return nil
}

// TransferFrom moves amount from owner to recipient on the caller's
// allowance. The max-uint256 allowance is treated as unlimited and is
// never decremented.
func (t *Token) TransferFrom(call Call, from, to Address, amount *uint256.Int) error {
	allowed := new(uint256.Int)
	stored := false
	if m, ok := t.allowances[from]; ok {
		if a, ok := m[call.Caller]; ok {
			allowed = a
			stored = true
		}
	}

	unlimited := allowed.Eq(Unlimited())
	if !unlimited && allowed.Lt(amount) {
		return ErrInsufficientAllowance
	}

	if err := t.move(from, to, amount); err != nil {
		return err
	}

	// Consuming a finite allowance notifies the new remaining value, so
	// the stream alone reconstructs allowance state.
	if !unlimited && stored {
		allowed.Sub(allowed, amount)
		t.emit(ApprovalEvent{Owner: from, Spender: call.Caller, Amount: allowed.Clone()})
	}
	return nil
}

// move debits from and credits to, with checked arithmetic. Shared by
// every fund-moving operation.
func (t *Token) move(from, to Address, amount *uint256.Int) error {
	if from.IsNull() || to.IsNull() {
		return ErrInvalidRecipient
	}

	// A missing entry is a zero balance, not a failure: a zero-amount
	// move from an unfunded address is a valid no-op.
	src := t.balances[from]
	if src == nil {
		src = new(uint256.Int)
		t.balances[from] = src
	}
	if src.Lt(amount) {
		return ErrInsufficientBalance
	}

	if from != to {
		dst := t.balances[to]
		if dst == nil {
			dst = new(uint256.Int)
			t.balances[to] = dst
		}
		if _, overflow := new(uint256.Int).AddOverflow(dst, amount); overflow {
			return ErrAmountOverflow
		}
		src.Sub(src, amount)
		dst.Add(dst, amount)
	}

	t.transferCount++
	t.transfersBy[from]++
	t.emit(TransferEvent{From: from, To: to, Amount: amount.Clone()})
	return nil
}
