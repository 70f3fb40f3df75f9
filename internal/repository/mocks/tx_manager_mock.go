package mocks

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManagerStub runs the callback without a database. Repository mocks receive a nil tx.
type TxManagerStub struct {
	Calls int
}

func (s *TxManagerStub) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	s.Calls++
	return fn(nil)
}
