// services/sender.go
package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"solune-backend/config"
)

// Channels a message can go out on.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"
)

// Delivery is the provider's acknowledgement of one message.
type Delivery struct {
	MessageID string
	Channel   string
}

// Sender delivers a single text message. Failures that carry an HTTP status
// are returned as *SendError.
type Sender interface {
	Send(ctx context.Context, to, body string) (Delivery, error)
}

type SendError struct {
	Status  int
	Message string
}

func (e *SendError) Error() string {
	return e.Message
}

// StatusOf extracts the HTTP status from a send failure, 0 when unknown.
func StatusOf(err error) int {
	var se *SendError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// TwilioSender sends through the Twilio Messages API. E.164 numbers go over
// WhatsApp when a WhatsApp sender is configured, everything else over SMS.
type TwilioSender struct {
	client   *twilio.RestClient
	from     string
	whatsapp string
}

func NewTwilioSender(cfg config.TwilioConfig) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from:     cfg.PhoneNumber,
		whatsapp: cfg.WhatsAppNumber,
	}
}

func (s *TwilioSender) channel(to string) string {
	if strings.HasPrefix(to, "+") && s.whatsapp != "" {
		return ChannelWhatsApp
	}
	return ChannelSMS
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) (Delivery, error) {
	if err := ctx.Err(); err != nil {
		return Delivery{}, err
	}

	d := Delivery{Channel: s.channel(to)}
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if d.Channel == ChannelWhatsApp {
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + s.whatsapp)
	} else {
		params.SetTo(to)
		params.SetFrom(s.from)
	}

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		var restErr *client.TwilioRestError
		if errors.As(err, &restErr) {
			return d, &SendError{Status: restErr.Status, Message: restErr.Message}
		}
		return d, &SendError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	if resp.Sid != nil {
		d.MessageID = *resp.Sid
	}
	return d, nil
}
