package submission

import (
	"context"

	"github.com/goliatone/go-scholarform/pkg/model"
)

// Gateway delivers a submission record to an external relay.
type Gateway interface {
	Send(ctx context.Context, record model.SubmissionRecord) error
}

// GatewayFunc adapts a function into a Gateway.
type GatewayFunc func(ctx context.Context, record model.SubmissionRecord) error

// Send calls the underlying function.
func (fn GatewayFunc) Send(ctx context.Context, record model.SubmissionRecord) error {
	return fn(ctx, record)
}
