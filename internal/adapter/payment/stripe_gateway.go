package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
)

const metadataReferenceKey = "reference"

type stripeGateway struct {
	api *client.API
	log logger.Logger
}

// NewStripeGateway talks to Stripe PaymentIntents. BackendURL overrides the
// API host, which tests point at a local server.
func NewStripeGateway(cfg config.StripeConfig, log logger.Logger) (Gateway, error) {
	if !cfg.Enabled() {
		return nil, ErrGatewayUnavailable
	}

	var backends *stripe.Backends
	if cfg.BackendURL != "" {
		backendCfg := &stripe.BackendConfig{
			URL:               stripe.String(cfg.BackendURL),
			MaxNetworkRetries: stripe.Int64(0),
			LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
		}
		api := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)
		backends = &stripe.Backends{
			API:     api,
			Connect: api,
			Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
		}
	}

	return &stripeGateway{
		api: client.New(cfg.SecretKey, backends),
		log: log,
	}, nil
}

func (g *stripeGateway) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	if req.AmountMinor <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %d", req.AmountMinor)
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(req.AmountMinor),
		Currency:     stripe.String(strings.ToLower(req.Currency)),
		Description:  stripe.String(req.Description),
		ReceiptEmail: stripe.String(req.Email),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.Reference)
	params.AddMetadata(metadataReferenceKey, req.Reference)
	params.AddMetadata("customer_name", req.Name)
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent for %s: %w", req.Reference, describeStripeError(err))
	}

	g.log.Infof("Created payment intent %s for reference %s", pi.ID, req.Reference)
	return &InitializeResult{
		TransactionID: pi.ID,
		ClientSecret:  pi.ClientSecret,
		Status:        string(pi.Status),
	}, nil
}

func (g *stripeGateway) Verify(ctx context.Context, transactionID string) (*VerifyResult, error) {
	if transactionID == "" {
		return nil, errors.New("transaction id cannot be empty")
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(transactionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent %s: %w", transactionID, describeStripeError(err))
	}

	return &VerifyResult{
		TransactionID: pi.ID,
		Reference:     pi.Metadata[metadataReferenceKey],
		Succeeded:     pi.Status == stripe.PaymentIntentStatusSucceeded,
		Status:        string(pi.Status),
		AmountMinor:   pi.Amount,
		Currency:      string(pi.Currency),
	}, nil
}

func describeStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf("%s (%s): %w", stripeErr.Msg, stripeErr.Code, err)
	}
	return err
}
