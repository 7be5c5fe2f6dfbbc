package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-payroll/internal/config"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func newReader(broker, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

// RunConsumer processes queued payroll batches and worker lifecycle events
// until SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if err := cfg.RequireKafka(); err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer closeDB(sqlDB, logger)

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	m, err := buildModules(sqlDB, gormDB, rdb, zap.L())
	if err != nil {
		return err
	}

	payrollReader := newReader(cfg.Kafka.Broker, events.PayrollGenerateRequestedTopic, "go-payroll-payroll-generate")
	defer payrollReader.Close()
	workerReader := newReader(cfg.Kafka.Broker, events.WorkerLifecycleTopic, "go-payroll-leave-balances")
	defer workerReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumePayrollGenerateRequested(ctx, payrollReader, m.payroll, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeWorkerLifecycle(ctx, workerReader, m.leaves, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}
