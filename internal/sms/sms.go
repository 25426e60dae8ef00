// Package sms sends contact-form texts through the Twilio messages
// API. Validation failures, missing credentials, upstream rejections
// and network failures are distinct error kinds so the API layer can
// map each to its own status code.
package sms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidPhone means the destination failed the phone format check.
	ErrInvalidPhone = errors.New("sms: invalid phone number format")

	// ErrInvalidMessage means the body is empty or over the length cap.
	ErrInvalidMessage = errors.New("sms: message must be between 1 and 1600 characters")

	// ErrNotConfigured means the gateway credentials are missing.
	ErrNotConfigured = errors.New("sms: service not configured")

	// ErrSendFailed means the gateway rejected the message.
	ErrSendFailed = errors.New("sms: sending failed")

	// ErrGatewayUnreachable means the gateway could not be reached.
	ErrGatewayUnreachable = errors.New("sms: failed to connect to gateway")
)

// phonePattern accepts E.164-style numbers after whitespace stripping.
var phonePattern = regexp.MustCompile(`^[+]?[1-9]\d{0,15}$`)

const maxMessageLength = 1600

// Config holds the Twilio credentials and sender number.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Result describes a successfully sent message.
type Result struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	To        string `json:"to"`
}

// Service is the outbound SMS gateway client.
type Service struct {
	logger  *logrus.Logger
	client  *http.Client
	config  Config
	baseURL string
}

// NewService creates an SMS service with the given credentials.
func NewService(config Config, logger *logrus.Logger) *Service {
	return &Service{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		config:  config,
		baseURL: "https://api.twilio.com",
	}
}

// SetBaseURL overrides the gateway endpoint. Used by tests.
func (s *Service) SetBaseURL(baseURL string) {
	s.baseURL = baseURL
}

// IsConfigured reports whether all credentials are present.
func (s *Service) IsConfigured() bool {
	return s.config.AccountSID != "" && s.config.AuthToken != "" && s.config.FromNumber != ""
}

// NormalizePhone strips whitespace and validates the number format.
func NormalizePhone(to string) (string, error) {
	clean := strings.ReplaceAll(to, " ", "")
	if !phonePattern.MatchString(clean) {
		return "", ErrInvalidPhone
	}
	return clean, nil
}

// ValidateMessage checks the body against the gateway length limits.
// The cap is 1600 characters, not bytes, so multibyte text is counted
// by rune.
func ValidateMessage(message string) error {
	length := utf8.RuneCountInString(message)
	if length < 1 || length > maxMessageLength {
		return ErrInvalidMessage
	}
	return nil
}

type twilioResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	To      string `json:"to"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Send validates the inputs and submits the message to the gateway.
func (s *Service) Send(to, message string) (*Result, error) {
	clean, err := NormalizePhone(to)
	if err != nil {
		return nil, err
	}
	if err := ValidateMessage(message); err != nil {
		return nil, err
	}
	if !s.IsConfigured() {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.config.AccountSID)
	form := url.Values{
		"From": {s.config.FromNumber},
		"To":   {clean},
		"Body": {message},
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}
	req.SetBasicAuth(s.config.AccountSID, s.config.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Failed to reach SMS gateway")
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	var body twilioResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"code":   body.Code,
		}).Error("SMS gateway rejected message")
		if body.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrSendFailed, body.Message)
		}
		return nil, ErrSendFailed
	}

	s.logger.WithField("message_id", body.SID).Info("SMS sent")
	return &Result{
		MessageID: body.SID,
		Status:    body.Status,
		To:        body.To,
	}, nil
}
