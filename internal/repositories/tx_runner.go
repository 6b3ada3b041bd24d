package repositories

import (
	"context"
	"fmt"
)

// TxRunner executes callbacks inside a single database transaction with
// repositories bound to the transaction.
type TxRunner struct {
	db TxStarter
}

func NewTxRunner(db TxStarter) *TxRunner {
	return &TxRunner{db: db}
}

// RunRFQ runs fn with RFQ-workflow repositories bound to one transaction.
// Commit happens only when fn returns nil; any error rolls everything back.
func (r *TxRunner) RunRFQ(ctx context.Context, fn func(
	rfqRepo RFQRepository,
	requisitionRepo RequisitionRepository,
	rfqVendorRepo RFQVendorRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRFQRepo(tx), NewRequisitionRepo(tx), NewRFQVendorRepo(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
