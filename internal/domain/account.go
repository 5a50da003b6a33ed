package domain

// Account is the per-client mutable balance state. Total is always derived
// as Available + Held; Held never goes below zero. Available may go
// negative while a withdrawal is under dispute, because disputing a
// withdrawal reclaims funds that were already paid out.
type Account struct {
	ClientID  uint16
	Available Amount
	Held      Amount
	Locked    bool
	LastSeq   uint64 // global sequence at which the account was last touched
}

// NewAccount creates an empty, unlocked account for the given client.
func NewAccount(clientID uint16) *Account {
	return &Account{ClientID: clientID}
}

// Total returns Available + Held. The engine keeps both balances inside
// the checked-arithmetic envelope, so the plain sum cannot wrap here.
func (a *Account) Total() Amount {
	return a.Available + a.Held
}

// Credit increases the available balance.
func (a *Account) Credit(amount Amount) error {
	next, err := a.Available.Add(amount)
	if err != nil {
		return err
	}
	a.Available = next
	return nil
}

// Debit decreases the available balance. It fails with ErrAccountLocked on
// a locked account and ErrInsufficientFunds when the available balance is
// smaller than the requested amount.
func (a *Account) Debit(amount Amount) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if a.Available < amount {
		return ErrInsufficientFunds
	}
	a.Available -= amount
	return nil
}

// Hold moves funds from available to held. Available is allowed to go
// negative: a disputed withdrawal holds funds that already left the
// account.
func (a *Account) Hold(amount Amount) error {
	nextHeld, err := a.Held.Add(amount)
	if err != nil {
		return err
	}
	nextAvailable, err := a.Available.Sub(amount)
	if err != nil {
		return err
	}
	a.Held = nextHeld
	a.Available = nextAvailable
	return nil
}

// Release moves previously held funds back to available.
func (a *Account) Release(amount Amount) error {
	nextAvailable, err := a.Available.Add(amount)
	if err != nil {
		return err
	}
	nextHeld, err := a.Held.Sub(amount)
	if err != nil {
		return err
	}
	a.Available = nextAvailable
	a.Held = nextHeld
	return nil
}

// Forfeit removes funds from held permanently and locks the account. This
// is the chargeback outcome.
func (a *Account) Forfeit(amount Amount) error {
	nextHeld, err := a.Held.Sub(amount)
	if err != nil {
		return err
	}
	a.Held = nextHeld
	a.Locked = true
	return nil
}

// Snapshot is the reportable view of an account, with balances rendered
// as fixed-point decimal strings.
type Snapshot struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// Snapshot returns the reportable view of the account.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		Client:    a.ClientID,
		Available: a.Available.String(),
		Held:      a.Held.String(),
		Total:     a.Total().String(),
		Locked:    a.Locked,
	}
}
