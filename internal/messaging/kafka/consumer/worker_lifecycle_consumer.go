package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-payroll/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type BalanceInitializer interface {
	InitializeBalances(ctx context.Context, companyID, workerID string, year int) (int, error)
}

// ConsumeWorkerLifecycle opens the current year's leave balances for newly
// created workers. Other lifecycle events are acknowledged and ignored.
func ConsumeWorkerLifecycle(
	ctx context.Context,
	reader MessageReader,
	balances BalanceInitializer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.worker_lifecycle")
	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		return handleWorkerLifecycle(ctx, msg, balances, time.Now, log)
	})
}

func handleWorkerLifecycle(ctx context.Context, msg kafkago.Message, balances BalanceInitializer, now func() time.Time, log *zap.Logger) error {
	var event events.WorkerLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode worker lifecycle event failed", zap.Error(err))
		return errSkip
	}
	if event.EventType != events.EventWorkerCreated {
		return nil
	}

	year := now().UTC().Year()
	if !event.OccurredAt.IsZero() {
		year = event.OccurredAt.UTC().Year()
	}

	created, err := balances.InitializeBalances(ctx, event.CompanyID, event.WorkerID, year)
	if err != nil {
		if permanent(err) {
			log.Warn("leave balance initialisation rejected", zap.String("worker_id", event.WorkerID), zap.Error(err))
			return errSkip
		}
		return fmt.Errorf("initialise leave balances for worker %s: %w", event.WorkerID, err)
	}

	log.Info("leave balances initialised",
		zap.String("worker_id", event.WorkerID),
		zap.String("company_id", event.CompanyID),
		zap.Int("year", year),
		zap.Int("created", created),
	)
	return nil
}
