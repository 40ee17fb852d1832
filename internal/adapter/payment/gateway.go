package payment

import (
	"context"
	"errors"
)

var ErrGatewayUnavailable = errors.New("payment gateway is not configured")

type InitializeRequest struct {
	Reference   string
	Email       string
	Name        string
	AmountMinor int64
	Currency    string
	Description string
	Metadata    map[string]string
}

type InitializeResult struct {
	TransactionID string
	ClientSecret  string
	Status        string
}

type VerifyResult struct {
	TransactionID string
	Reference     string
	Succeeded     bool
	Status        string
	AmountMinor   int64
	Currency      string
}

// Gateway creates and inspects payments with the card processor.
type Gateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)
	Verify(ctx context.Context, transactionID string) (*VerifyResult, error)
}
