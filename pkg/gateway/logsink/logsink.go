// Package logsink is a dry-run gateway: records are logged, never sent.
package logsink

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/submission"
)

// Gateway logs every record at info level.
type Gateway struct {
	logger *zap.Logger
}

var _ submission.Gateway = (*Gateway)(nil)

// New returns a gateway writing to logger; nil logs nowhere.
func New(logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{logger: logger.Named("logsink")}
}

func (g *Gateway) Send(ctx context.Context, record model.SubmissionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields := make([]zap.Field, 0, record.Len())
	for _, key := range record.Keys() {
		value, _ := record.Get(key)
		fields = append(fields, zap.Any(key, value))
	}
	g.logger.Info("submission record", fields...)
	return nil
}
