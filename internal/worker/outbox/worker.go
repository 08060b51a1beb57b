package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/ecommerce-api/internal/dal/rabbitmq"
	"github.com/corray333/ecommerce-api/internal/service/models/outbox"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// Worker drains the outbox table into RabbitMQ. Order events become
// visible to consumers only after the placing transaction committed.
type Worker struct {
	log           *slog.Logger
	outboxRepo    ioutboxrepo.IOutboxRepository
	rabbitClient  *rabbitmq.Client
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	stopCh        chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	log *slog.Logger,
	outboxRepo ioutboxrepo.IOutboxRepository,
	rabbitClient *rabbitmq.Client,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	retryIntervalSeconds := viper.GetInt("rabbitmq.outbox.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 30
	}

	return &Worker{
		log:           log,
		outboxRepo:    outboxRepo,
		rabbitClient:  rabbitClient,
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		retryInterval: time.Duration(retryIntervalSeconds) * time.Second,
		stopCh:        make(chan struct{}),
	}
}

// Start polls the outbox until the context is canceled or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.log.Info("outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("outbox worker shutting down")

			return
		case <-w.stopCh:
			w.log.Info("outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		w.log.Error("failed to get pending outbox messages", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	w.log.Info("processing outbox messages", "count", len(messages))

	for _, msg := range messages {
		if err := w.publish(msg); err != nil {
			w.scheduleRetry(ctx, msg, err)

			continue
		}

		if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
			w.log.Error("failed to delete published outbox message",
				"outbox_id", msg.ID,
				"error", err,
			)

			continue
		}

		w.log.Info("outbox message published",
			"outbox_id", msg.ID,
			"exchange", msg.ExchangeName,
			"routing_key", msg.RoutingKey,
		)
	}
}

func (w *Worker) publish(msg outbox.Message) error {
	return w.rabbitClient.Channel().Publish(
		msg.ExchangeName,
		msg.RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Payload,
		},
	)
}

// scheduleRetry bumps the retry count with exponential backoff
// (2^n * retry interval) until max_retries is reached.
func (w *Worker) scheduleRetry(ctx context.Context, msg outbox.Message, pubErr error) {
	newRetryCount := msg.RetryCount + 1
	backoff := time.Duration(math.Pow(2, float64(newRetryCount))) * w.retryInterval
	nextRetryAt := time.Now().Add(backoff)

	w.log.Warn("failed to publish outbox message, will retry",
		"outbox_id", msg.ID,
		"retry_count", newRetryCount,
		"next_retry", nextRetryAt,
		"error", pubErr,
	)

	err := w.outboxRepo.UpdateRetry(ctx, msg.ID, newRetryCount, pubErr.Error(), nextRetryAt)
	if err != nil {
		w.log.Error("failed to update outbox message retry state",
			"outbox_id", msg.ID,
			"error", err,
		)
	}
}
