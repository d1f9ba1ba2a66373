package alert

import (
	"context"
	"encoding/json"

	"staywise/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeSettlementAlert is the task type for settlement inconsistencies.
const TypeSettlementAlert = "settlement:inconsistency"

// Notifier escalates settlement inconsistencies to operators. A captured
// payment with no corresponding booking must never be dropped silently.
type Notifier interface {
	SettlementInconsistency(ctx context.Context, a models.SettlementAlert) error
}

// AsynqNotifier enqueues alert tasks on the Redis-backed queue; the worker in
// cron picks them up.
type AsynqNotifier struct {
	Client *asynq.Client
	logger *zap.Logger
}

func NewAsynqNotifier(client *asynq.Client, logger *zap.Logger) *AsynqNotifier {
	return &AsynqNotifier{Client: client, logger: logger}
}

func (n *AsynqNotifier) SettlementInconsistency(ctx context.Context, a models.SettlementAlert) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeSettlementAlert, b)
	_, err = n.Client.EnqueueContext(ctx, task, asynq.Queue("alerts"), asynq.MaxRetry(10))
	if err != nil {
		// The queue failing must not lose the alert; the log line is the fallback.
		n.logger.Error("failed to enqueue settlement alert",
			zap.String("incidentId", a.IncidentID),
			zap.String("eventId", a.EventID),
			zap.String("reason", a.Reason),
			zap.Error(err))
		return err
	}
	return nil
}
