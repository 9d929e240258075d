package order

import "errors"

var (
	// ErrEmptyCart is returned when committing a cart with no lines.
	ErrEmptyCart = errors.New("order: cart is empty")

	// ErrInsufficientPayment is returned when the tendered amount does
	// not cover the cart total. The UI blocks confirmation before this
	// point; the service re-validates as the last line of defense.
	ErrInsufficientPayment = errors.New("order: insufficient payment")

	// ErrDuplicateOrderNumber is returned when the storage layer rejects
	// the generated order number as already taken. Retried once with a
	// regenerated number before being surfaced.
	ErrDuplicateOrderNumber = errors.New("order: duplicate order number")

	// ErrOrderNotFound is returned when looking up an unknown order number.
	ErrOrderNotFound = errors.New("order: order not found")
)

// StorageError wraps a storage-level fault during a commit attempt. The
// unit of work has been rolled back; nothing was persisted.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "order: storage fault during " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a local precondition failure that
// the cashier can fix, as opposed to a storage fault.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrInsufficientPayment)
}
