package ports

import "context"

// Confirmer asks an operator a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}
