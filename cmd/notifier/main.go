package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/infra"
)

// The notifier consumes quest completion events and delivers the user-facing
// notification. It sits behind Kafka on purpose: a slow or failing delivery
// target can never touch quest progress writes.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("notifier failed", "error", err)
		os.Exit(1)
	}
}

// envelope is the message shape produced by the outbox poller.
type envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	consumer := infra.NewKafkaConsumer(
		cfg.KafkaBrokers,
		string(domain.EventQuestCompleted),
		cfg.NotifierGroupID,
		cfg.KafkaEnabled,
		logger,
	)
	defer consumer.Close()
	if !consumer.Enabled() {
		return fmt.Errorf("kafka is disabled; the notifier has nothing to consume")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	logger.Info("notifier starting", "topic", domain.EventQuestCompleted, "group", cfg.NotifierGroupID)

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("notifier shutting down")
				return nil
			}
			logger.Error("read message", "error", err)
			continue
		}

		var env envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			logger.Error("decode envelope", "error", err)
			continue
		}
		var payload domain.QuestCompletedPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			logger.Error("decode payload", "event_id", env.EventID, "error", err)
			continue
		}

		if err := notify(ctx, client, cfg.NotifierWebhookURL, payload, logger); err != nil {
			// At-least-once: the event is already consumed, so a failed
			// delivery is logged and dropped rather than retried forever.
			logger.Error("notify failed", "event_id", env.EventID, "user_id", payload.UserID, "error", err)
		}
	}
}

// notify posts the completion to the configured webhook. Without a webhook it
// degrades to a structured log line, which is enough for local dev.
func notify(ctx context.Context, client *http.Client, webhookURL string, p domain.QuestCompletedPayload, logger *slog.Logger) error {
	if webhookURL == "" {
		logger.Info("quest completed notification",
			"user_id", p.UserID, "quest_id", p.QuestID, "quest_name", p.QuestName)
		return nil
	}

	body, _ := json.Marshal(p)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
