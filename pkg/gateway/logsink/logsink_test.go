package logsink_test

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-scholarform/pkg/gateway/logsink"
	"github.com/goliatone/go-scholarform/pkg/model"
)

func TestSendLogsRecord(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	gateway := logsink.New(zap.New(core))

	record := model.NewRecordBuilder().String("firstName", "Ada").Bool("acceptedTo", false).Build()
	if err := gateway.Send(context.Background(), record); err != nil {
		t.Fatalf("send: %v", err)
	}

	entries := logs.FilterMessage("submission record").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["firstName"] != "Ada" || fields["acceptedTo"] != false {
		t.Fatalf("unexpected fields %v", fields)
	}
	if entries[0].LoggerName != "logsink" {
		t.Fatalf("unexpected logger name %q", entries[0].LoggerName)
	}
}

func TestSendHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := logsink.New(nil).Send(ctx, model.NewRecordBuilder().Build()); err == nil {
		t.Fatalf("expected context error")
	}
}
