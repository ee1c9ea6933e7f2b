package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/example/grama/internal/config"
	"github.com/example/grama/internal/otp"
)

// SMSService dispatches verification messages through an HTTP SMS gateway.
// It implements otp.Sender.
type SMSService struct {
	gatewayURL string
	apiKey     string
	senderID   string
}

// NewSMSService creates an SMSService from gateway settings.
func NewSMSService(gatewayURL, apiKey, senderID string) *SMSService {
	return &SMSService{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		senderID:   senderID,
	}
}

type smsPayload struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
	APIKey  string `json:"api_key"`
}

// Send posts the message to the gateway.
func (s *SMSService) Send(phone, message string) error {
	payload := smsPayload{
		To:      phone,
		From:    s.senderID,
		Message: message,
		APIKey:  s.apiKey,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := http.Post(s.gatewayURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[SMS] Failed to reach gateway: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[SMS] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	return nil
}

// logSender writes the message to the server log instead of sending it.
type logSender struct{}

func (logSender) Send(phone, message string) error {
	log.Printf("[SMS] To %s: %s", phone, message)
	return nil
}

// NewSender picks the delivery channel for the current configuration: the
// HTTP gateway when one is configured, the log otherwise.
func NewSender(cfg *config.Config) otp.Sender {
	if cfg.SMSGatewayURL == "" {
		if cfg.IsProduction() {
			log.Println("[SMS] Gateway not configured; codes will only be logged")
		}
		return logSender{}
	}
	return NewSMSService(cfg.SMSGatewayURL, cfg.SMSAPIKey, cfg.SMSSenderID)
}
