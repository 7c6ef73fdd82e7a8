package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"survey-dashboard-be/internal/config"
	"survey-dashboard-be/internal/constant"
	"survey-dashboard-be/pkg/events"
	pktNats "survey-dashboard-be/pkg/nats"

	"github.com/fatih/color"
)

// Tails dashboard activity from NATS JetStream.
func main() {
	subject := flag.String("subject", pktNats.SubjectPrefix+".>", "subject filter")
	durable := flag.String("durable", "", "durable consumer name (ephemeral when empty)")
	flag.Parse()

	cfg := config.Load()
	if cfg.Broker.NatsURL == "" {
		log.Fatal("NATS_URL is not set")
	}

	sub, err := pktNats.NewSubscriber(cfg.Broker.NatsURL)
	if err != nil {
		log.Fatalf("Unable to connect to NATS: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sub.Subscribe(ctx, *subject, *durable, func(_ context.Context, ev events.Event) error {
		line := color.New(colorFor(ev.EventType())).SprintFunc()
		log.Printf("%s session=%v rows=%v source=%v",
			line(ev.EventType()), ev.Payload()["session_id"], ev.Payload()["rows"], ev.Payload()["source"])
		return nil
	})
	if err != nil {
		log.Fatalf("Subscribe failed: %v", err)
	}

	color.Cyan("Listening on %s", *subject)
	<-ctx.Done()
}

func colorFor(eventType string) color.Attribute {
	switch eventType {
	case constant.EventDatasetUploaded:
		return color.FgGreen
	case constant.EventDatasetEdited:
		return color.FgYellow
	case constant.EventDatasetPurged:
		return color.FgMagenta
	case constant.EventUploadRejected:
		return color.FgRed
	}
	return color.FgWhite
}
