package ports

import "context"

// TxManager runs fn inside a single store transaction. The transaction is
// carried in the context; repository calls made with that context join it.
// fn returning an error aborts the transaction and undoes every write made
// within it.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
