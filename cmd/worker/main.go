package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"

	"github.com/dariofm/flightdeck/internal/email"
	"github.com/dariofm/flightdeck/internal/kafka"
	"github.com/dariofm/flightdeck/pkg/config"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker consumes booking events and sends confirmation emails to the
// booking's contact address. It shares the API server's configuration.
func main() {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingTopic)
	defer consumer.Close()

	sender := email.NewSender()

	log.Printf("worker consuming %s", cfg.Kafka.BookingTopic)
	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("decode event error: %v", err)
			return nil
		}
		return sender.Send(ctx, event)
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
}
