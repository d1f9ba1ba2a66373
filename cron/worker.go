package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"staywise/config"
	"staywise/models"
	"staywise/services/alert"
	"staywise/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitAlertWorker runs the async worker that drains the operator-alert queue
// in the background.
func InitAlertWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAlertDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"alerts": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(alert.TypeSettlementAlert, handleSettlementAlert)

	go func() {
		log.Println("[AlertWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				break
			}
			log.Printf("[AlertWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
			if attempts == maxAttempts {
				log.Fatal("[AlertWorker] max retry attempts reached, exiting")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// handleSettlementAlert surfaces a captured payment without a booking. Logged
// at error severity so it stands apart from ordinary 4xx/5xx noise; a paging
// integration would hang off this handler.
func handleSettlementAlert(ctx context.Context, t *asynq.Task) error {
	var a models.SettlementAlert
	if err := json.Unmarshal(t.Payload(), &a); err != nil {
		return err
	}

	utils.GetLogger().Error("OPERATOR ALERT: payment captured without a booking",
		zap.String("incidentId", a.IncidentID),
		zap.String("eventId", a.EventID),
		zap.String("reason", a.Reason),
		zap.String("roomNr", a.RoomNr),
		zap.String("startDate", a.StartDate),
		zap.String("endDate", a.EndDate),
		zap.String("emailUser", a.EmailUser),
		zap.Int64("amount", a.Amount))
	return nil
}
