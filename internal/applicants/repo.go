package applicants

import "context"

// Store defines persistence operations for applicant records.
//
// UpdateFirst and DeleteAll differ on purpose: an update touches only the
// first row carrying the email, a delete removes every such row.
type Store interface {
	Bootstrap(ctx context.Context) error
	List(ctx context.Context) ([]Applicant, error)
	Append(ctx context.Context, a Applicant) error
	FindByEmail(ctx context.Context, email string) (Applicant, error)
	UpdateFirst(ctx context.Context, originalEmail string, a Applicant) error
	DeleteAll(ctx context.Context, email string) (int, error)
}
