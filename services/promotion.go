// services/promotion.go
package services

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"solune-backend/models"
	"solune-backend/store"
)

// Template ids.
const (
	TemplateWelcome  = "welcome"
	TemplateBirthday = "birthday"
	TemplateReminder = "reminder"
	TemplateCustom   = "custom"
)

// NamePlaceholder is replaced with the recipient's name in every message.
const NamePlaceholder = "[CustomerName]"

var Templates = []models.PromotionTemplate{
	{ID: TemplateWelcome, Name: "Welcome Offer", Message: "Welcome to our salon! Enjoy 20% off on your next visit. Book now!"},
	{ID: TemplateBirthday, Name: "Birthday Wishes", Message: "Happy Birthday [CustomerName]! 🎉 Get 30% off on all services today. Treat yourself!"},
	{ID: TemplateReminder, Name: "Appointment Reminder", Message: "It's been a while! Come visit us and get 15% off on your next service."},
	{ID: TemplateCustom, Name: "Custom Message"},
}

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrEmptyMessage    = errors.New("message required")
	ErrNoRecipients    = errors.New("no recipients")
)

// ResolveMessage returns the body for a template; custom takes the caller's
// text.
func ResolveMessage(templateID, custom string) (string, error) {
	for _, t := range Templates {
		if t.ID != templateID {
			continue
		}
		msg := t.Message
		if t.ID == TemplateCustom {
			msg = custom
		}
		if strings.TrimSpace(msg) == "" {
			return "", ErrEmptyMessage
		}
		return msg, nil
	}
	return "", ErrUnknownTemplate
}

// Personalize fills in the recipient name.
func Personalize(message, name string) string {
	return strings.ReplaceAll(message, NamePlaceholder, name)
}

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhone reduces a number to digits and adds the 91 country code to
// bare 10-digit numbers. Fewer than 10 digits is invalid.
func FormatPhone(phone string) (string, error) {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	if len(cleaned) == 10 {
		cleaned = "91" + cleaned
	}
	if len(cleaned) < 10 {
		return "", &SendError{Status: http.StatusBadRequest, Message: "Invalid phone number format"}
	}
	return cleaned, nil
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true
	}
	return false
}

type Recipient struct {
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type RecipientResult struct {
	Phone     string `json:"phone"`
	Name      string `json:"name,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Retried   bool   `json:"retried,omitempty"`
}

type BulkSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type BulkResult struct {
	Results []RecipientResult `json:"results"`
	Summary BulkSummary       `json:"summary"`
}

type PromotionService struct {
	sender  Sender
	logs    store.Repository[models.PromotionLog]
	delay   time.Duration
	logger  *zap.Logger
	onSent  func(status string)
	sleep   func(ctx context.Context, d time.Duration) error
	nowFunc func() time.Time
}

// NewPromotionService wires a sender and its delivery log. onSent, when set,
// is told "sent" or "failed" for every recipient.
func NewPromotionService(sender Sender, logs store.Repository[models.PromotionLog], delay time.Duration, logger *zap.Logger, onSent func(string)) *PromotionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromotionService{
		sender:  sender,
		logs:    logs,
		delay:   delay,
		logger:  logger,
		onSent:  onSent,
		sleep:   sleepCtx,
		nowFunc: time.Now,
	}
}

// Enabled reports whether a sender is configured.
func (s *PromotionService) Enabled() bool {
	return s != nil && s.sender != nil
}

// SendBulk delivers to each recipient in turn, pausing delay between them.
// Transient failures (429, 500, 503) are retried exactly once after twice
// the delay. If ctx ends early the partial result is returned with ctx's
// error.
func (s *PromotionService) SendBulk(ctx context.Context, templateID string, recipients []Recipient) (BulkResult, error) {
	if len(recipients) == 0 {
		return BulkResult{}, ErrNoRecipients
	}

	res := BulkResult{Results: make([]RecipientResult, 0, len(recipients))}
	for i, r := range recipients {
		if i > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				return s.finish(res), err
			}
		}

		out, channel, err := s.sendOne(ctx, r)
		if err != nil {
			return s.finish(res), err
		}
		res.Results = append(res.Results, out)
		s.record(ctx, templateID, r, out, channel)
	}
	return s.finish(res), nil
}

// sendOne only returns an error when ctx ends; delivery failures land in
// the result.
func (s *PromotionService) sendOne(ctx context.Context, r Recipient) (RecipientResult, string, error) {
	out := RecipientResult{Phone: r.Phone, Name: r.Name}
	body := Personalize(r.Message, r.Name)

	phone, err := FormatPhone(r.Phone)
	if err != nil {
		out.Error = err.Error()
		return out, "", nil
	}
	to := "+" + phone

	d, err := s.sender.Send(ctx, to, body)
	if err != nil && retryable(StatusOf(err)) {
		s.logger.Warn("transient send failure, retrying",
			zap.String("phone", phone), zap.Int("status", StatusOf(err)))
		if serr := s.sleep(ctx, 2*s.delay); serr != nil {
			return out, "", serr
		}
		out.Retried = true
		d, err = s.sender.Send(ctx, to, body)
	}
	if err != nil {
		if ctx.Err() != nil {
			return out, d.Channel, ctx.Err()
		}
		out.Error = err.Error()
		return out, d.Channel, nil
	}
	out.Success = true
	out.MessageID = d.MessageID
	return out, d.Channel, nil
}

func (s *PromotionService) record(ctx context.Context, templateID string, r Recipient, out RecipientResult, channel string) {
	status := "sent"
	if !out.Success {
		status = "failed"
		s.logger.Warn("promotion not delivered", zap.String("phone", r.Phone), zap.String("error", out.Error))
	}
	if s.onSent != nil {
		s.onSent(status)
	}
	if s.logs == nil {
		return
	}
	entry := &models.PromotionLog{
		Phone:     r.Phone,
		Name:      r.Name,
		Template:  templateID,
		Message:   Personalize(r.Message, r.Name),
		Status:    status,
		Retried:   out.Retried,
		MessageID: out.MessageID,
		Error:     out.Error,
		Channel:   channel,
		SentAt:    s.nowFunc(),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.Error("failed to log promotion", zap.String("phone", r.Phone), zap.Error(err))
	}
}

func (s *PromotionService) finish(res BulkResult) BulkResult {
	res.Summary.Total = len(res.Results)
	for _, r := range res.Results {
		if r.Success {
			res.Summary.Succeeded++
		}
	}
	res.Summary.Failed = res.Summary.Total - res.Summary.Succeeded
	return res
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
