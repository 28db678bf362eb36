package dao

import "aff-payout-api/internal/engine"

// Store 组合主库与资金库，满足 engine.Store
type Store struct {
	*MainDao
	*LedgerDao
}

func NewStore() *Store {
	return &Store{MainDao: NewMainDao(), LedgerDao: NewLedgerDao()}
}

var _ engine.Store = (*Store)(nil)
