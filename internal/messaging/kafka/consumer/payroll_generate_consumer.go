package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PayrollGenerator is the slice of payroll.Service the batch consumer calls.
type PayrollGenerator interface {
	GeneratePayroll(ctx context.Context, actor domain.Actor, workerID string, periodStart, periodEnd time.Time) (payroll.PayrollResponse, bool, error)
}

// ConsumePayrollGenerateRequested runs GeneratePayroll for every queued batch
// item as the actor that requested the batch. Generation is idempotent per
// period, so redelivered messages are harmless.
func ConsumePayrollGenerateRequested(
	ctx context.Context,
	reader MessageReader,
	generator PayrollGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_generate")
	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		return handlePayrollGenerateRequested(ctx, msg, generator, log)
	})
}

func handlePayrollGenerateRequested(ctx context.Context, msg kafkago.Message, generator PayrollGenerator, log *zap.Logger) error {
	var event events.PayrollGenerateRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payroll generate event failed", zap.Error(err))
		return errSkip
	}

	start, errStart := time.Parse("2006-01-02", event.PeriodStart)
	end, errEnd := time.Parse("2006-01-02", event.PeriodEnd)
	if errStart != nil || errEnd != nil {
		log.Error("payroll generate event has a bad period",
			zap.String("period_start", event.PeriodStart),
			zap.String("period_end", event.PeriodEnd),
		)
		return errSkip
	}

	rid := event.RequestID
	if rid == "" {
		rid = headerValue(msg, "request_id")
	}
	ctx = contextutil.WithRequestID(ctx, rid)

	actor := domain.Actor{UserID: event.RequestedBy, Role: domain.Role(event.Role), CompanyID: event.CompanyID}
	resp, created, err := generator.GeneratePayroll(ctx, actor, event.WorkerID, start, end)
	if err != nil {
		if permanent(err) {
			log.Warn("payroll generate request rejected",
				zap.String("batch_id", event.BatchID),
				zap.String("worker_id", event.WorkerID),
				zap.Error(err),
			)
			return errSkip
		}
		return fmt.Errorf("generate payroll for worker %s: %w", event.WorkerID, err)
	}

	log.Info("payroll generated from batch",
		zap.String("request_id", rid),
		zap.String("batch_id", event.BatchID),
		zap.String("worker_id", event.WorkerID),
		zap.String("payroll_id", resp.ID),
		zap.Bool("created", created),
	)
	return nil
}
