package bookingflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"moto-tours/internal/dto/request"
	"moto-tours/internal/dto/response"
)

// HTTPSubmitter posts bookings to the API as the signed-in user.
type HTTPSubmitter struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewHTTPSubmitter(baseURL, token string) *HTTPSubmitter {
	return &HTTPSubmitter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SubmitError is a non-2xx answer from the API.
type SubmitError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("booking rejected (%d): %s", e.StatusCode, e.Message)
}

func (s *HTTPSubmitter) Submit(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode booking: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/api/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := s.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit booking: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Status  bool                      `json:"status"`
		Message string                    `json:"message"`
		Data    *response.BookingResponse `json:"data"`
		Errors  map[string]string         `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode booking response (%d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusCreated || envelope.Data == nil {
		return nil, &SubmitError{StatusCode: resp.StatusCode, Message: envelope.Message, Fields: envelope.Errors}
	}
	return envelope.Data, nil
}
