package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context carries a request context together with the transaction the
// current operation runs in. A nil Tx means the repo should fall back to
// its own connection.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

func New(ctx context.Context) Context {
	return Context{Ctx: ctx}
}

func (c Context) WithTx(tx *gorm.DB) Context {
	return Context{Ctx: c.Ctx, Tx: tx}
}
