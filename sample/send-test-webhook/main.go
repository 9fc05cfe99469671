package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

// Sends a signed Calendly webhook to a running server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	url := flag.String("url", "http://localhost:8080/api/calendly/webhook", "webhook endpoint")
	email := flag.String("email", "joao.teste@email.com", "invitee email")
	event := flag.String("event", usecase.CalendlyEventInviteeCreated, "event type")
	skew := flag.Duration("skew", 0, "shift the signed timestamp, e.g. -5m to test replay rejection")
	flag.Parse()

	key := os.Getenv("CALENDLY_WEBHOOK_SIGNING_KEY")
	if key == "" {
		log.Fatal("CALENDLY_WEBHOOK_SIGNING_KEY must be set")
	}

	body, err := json.Marshal(usecase.CalendlyWebhookPayload{
		Event: *event,
		Time:  time.Now().UTC().Format(time.RFC3339),
		Payload: &usecase.CalendlyEventPayload{
			Event: "https://api.calendly.com/scheduled_events/TEST",
			Invitee: &usecase.CalendlyInvitee{
				URI:   "https://api.calendly.com/invitees/TEST",
				Email: *email,
				Name:  "Test Invitee",
			},
		},
	})
	if err != nil {
		log.Fatalf("encode payload: %v", err)
	}

	ts := time.Now().Add(*skew).Unix()
	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Calendly-Webhook-Signature", usecase.CalendlySignatureHeader(key, ts, body))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("send webhook: %v", err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	fmt.Printf("status: %d\n%s\n", resp.StatusCode, out)
}
