package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/bookingstate"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/metrics"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

const defaultBookingStateTTL = 72 * time.Hour

var sessionTracer = otel.Tracer("booking-service/session")

// SessionView is a session id with a snapshot of its booking state.
type SessionView struct {
	SessionID string               `json:"session_id"`
	State     *entity.BookingState `json:"state"`
}

type ExtraQuantity struct {
	ExtraID  string `json:"extra_id"`
	Quantity int    `json:"quantity"`
}

// UpdateSessionRequest references catalog items by id. Nil fields are left
// untouched; the Clear flags drop an optional selection.
type UpdateSessionRequest struct {
	ServiceID     *string          `json:"service_id,omitempty"`
	ServiceSlug   *string          `json:"service_slug,omitempty"`
	Bedrooms      *int             `json:"bedrooms,omitempty"`
	Bathrooms     *int             `json:"bathrooms,omitempty"`
	Address       *string          `json:"address,omitempty"`
	SuburbID      *string          `json:"suburb_id,omitempty"`
	ScheduledDate *string          `json:"scheduled_date,omitempty"`
	ScheduledTime *string          `json:"scheduled_time,omitempty"`
	CleanerID     *string          `json:"cleaner_id,omitempty"`
	Extras        *[]ExtraQuantity `json:"extras,omitempty"`

	ClearService bool `json:"clear_service,omitempty"`
	ClearSuburb  bool `json:"clear_suburb,omitempty"`
	ClearCleaner bool `json:"clear_cleaner,omitempty"`
}

type BookingSessionService interface {
	CreateSession(ctx context.Context) (*SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	UpdateSession(ctx context.Context, sessionID string, req UpdateSessionRequest) (*SessionView, error)
	AddExtra(ctx context.Context, sessionID, extraID string) (*SessionView, error)
	RemoveExtra(ctx context.Context, sessionID, extraID string) (*SessionView, error)
	SetExtraQuantity(ctx context.Context, sessionID, extraID string, quantity int) (*SessionView, error)
	ResetSession(ctx context.Context, sessionID string) error
	OpenStore(ctx context.Context, sessionID string) (*bookingstate.Store, error)
}

type BookingSessionServiceConfig struct {
	StateTTL time.Duration
}

type bookingSessionService struct {
	stateRepo repository.BookingStateRepository
	catalog   CatalogService
	metrics   *metrics.MetricsManager
	log       logger.Logger
	stateTTL  time.Duration
}

func NewBookingSessionService(
	stateRepo repository.BookingStateRepository,
	catalogService CatalogService,
	metricsManager *metrics.MetricsManager,
	log logger.Logger,
	cfg BookingSessionServiceConfig,
) BookingSessionService {
	stateTTL := cfg.StateTTL
	if stateTTL <= 0 {
		stateTTL = defaultBookingStateTTL
	}
	return &bookingSessionService{
		stateRepo: stateRepo,
		catalog:   catalogService,
		metrics:   metricsManager,
		log:       log.Named("session"),
		stateTTL:  stateTTL,
	}
}

func validateSessionID(sessionID string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(sessionID))
	if err != nil {
		return "", fmt.Errorf("%w: %s", entity.ErrInvalidSession, sessionID)
	}
	return id.String(), nil
}

// OpenStore returns an initialized store for the session. Unknown sessions
// start empty. When the stored state cannot be read the store is not handed
// out, so a request never writes over a session it failed to load.
func (s *bookingSessionService) OpenStore(ctx context.Context, sessionID string) (*bookingstate.Store, error) {
	id, err := validateSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	store := bookingstate.NewStore(
		bookingstate.NewSessionPersistence(s.stateRepo, id, s.stateTTL),
		s.log.With("session_id", id),
	)
	if err := store.Initialize(ctx); err != nil {
		s.log.Errorf("Session %s could not be loaded: %v", id, err)
		return nil, err
	}
	return store, nil
}

func (s *bookingSessionService) CreateSession(ctx context.Context) (*SessionView, error) {
	_, span := sessionTracer.Start(ctx, "session.Create")
	defer span.End()

	id := uuid.NewString()
	span.SetAttributes(attribute.String("session.id", id))
	s.metrics.SessionsCreatedTotal.Inc()
	s.log.Infof("Booking session %s created", id)
	return &SessionView{SessionID: id, State: entity.NewBookingState()}, nil
}

func (s *bookingSessionService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	ctx, span := s.startSpan(ctx, "session.Get", sessionID)
	defer span.End()

	store, err := s.OpenStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sessionID, store), nil
}

func (s *bookingSessionService) UpdateSession(ctx context.Context, sessionID string, req UpdateSessionRequest) (*SessionView, error) {
	ctx, span := s.startSpan(ctx, "session.Update", sessionID)
	defer span.End()

	store, err := s.OpenStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	patch, err := s.buildPatch(ctx, req)
	if err != nil {
		s.record("update", err)
		s.log.Warnf("Rejected update for session %s: %v", sessionID, err)
		return nil, err
	}
	if err := store.Update(ctx, patch); err != nil {
		s.record("update", err)
		s.log.Warnf("Rejected update for session %s: %v", sessionID, err)
		return nil, err
	}

	s.record("update", nil)
	s.observeQuote(store)
	s.log.Infof("Session %s updated", sessionID)
	return s.view(sessionID, store), nil
}

func (s *bookingSessionService) AddExtra(ctx context.Context, sessionID, extraID string) (*SessionView, error) {
	ctx, span := s.startSpan(ctx, "session.AddExtra", sessionID)
	defer span.End()

	store, err := s.OpenStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	extra, err := s.catalog.GetExtra(ctx, extraID)
	if err != nil {
		s.record("add_extra", err)
		s.log.Warnf("Cannot add extra %s to session %s: %v", extraID, sessionID, err)
		return nil, fmt.Errorf("%w: %s", err, extraID)
	}
	if err := store.AddExtra(ctx, extra.ID, extra.Name, extra.Price); err != nil {
		s.record("add_extra", err)
		return nil, err
	}

	s.record("add_extra", nil)
	s.observeQuote(store)
	s.log.Infof("Extra %s added to session %s", extraID, sessionID)
	return s.view(sessionID, store), nil
}

func (s *bookingSessionService) RemoveExtra(ctx context.Context, sessionID, extraID string) (*SessionView, error) {
	ctx, span := s.startSpan(ctx, "session.RemoveExtra", sessionID)
	defer span.End()

	store, err := s.OpenStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := store.RemoveExtra(ctx, extraID); err != nil {
		s.record("remove_extra", err)
		return nil, err
	}

	s.record("remove_extra", nil)
	s.observeQuote(store)
	s.log.Infof("Extra %s removed from session %s", extraID, sessionID)
	return s.view(sessionID, store), nil
}

func (s *bookingSessionService) SetExtraQuantity(ctx context.Context, sessionID, extraID string, quantity int) (*SessionView, error) {
	ctx, span := s.startSpan(ctx, "session.SetExtraQuantity", sessionID)
	defer span.End()

	store, err := s.OpenStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := store.SetExtraQuantity(ctx, extraID, quantity); err != nil {
		s.record("set_extra_quantity", err)
		return nil, err
	}

	s.record("set_extra_quantity", nil)
	s.observeQuote(store)
	s.log.Infof("Extra %s quantity set to %d in session %s", extraID, quantity, sessionID)
	return s.view(sessionID, store), nil
}

func (s *bookingSessionService) ResetSession(ctx context.Context, sessionID string) error {
	ctx, span := s.startSpan(ctx, "session.Reset", sessionID)
	defer span.End()

	store, err := s.OpenStore(ctx, sessionID)
	if err != nil {
		return err
	}
	store.Reset(ctx)
	s.record("reset", nil)
	s.log.Infof("Session %s reset", sessionID)
	return nil
}

// buildPatch resolves catalog references into the values stored on the
// booking state.
func (s *bookingSessionService) buildPatch(ctx context.Context, req UpdateSessionRequest) (bookingstate.Patch, error) {
	patch := bookingstate.Patch{
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Address:       req.Address,
		ScheduledTime: req.ScheduledTime,
		ClearService:  req.ClearService,
		ClearSuburb:   req.ClearSuburb,
		ClearCleaner:  req.ClearCleaner,
	}

	switch {
	case req.ServiceID != nil:
		svc, err := s.catalog.GetService(ctx, *req.ServiceID)
		if err != nil {
			return patch, fmt.Errorf("%w: %s", err, *req.ServiceID)
		}
		patch.Service = &svc
	case req.ServiceSlug != nil:
		svc, _, err := s.catalog.GetServiceBySlug(ctx, *req.ServiceSlug)
		if err != nil {
			return patch, err
		}
		patch.Service = &svc
	}

	if req.SuburbID != nil {
		suburb, err := s.catalog.GetSuburb(ctx, *req.SuburbID)
		if err != nil {
			return patch, fmt.Errorf("%w: %s", err, *req.SuburbID)
		}
		ref := suburb.Ref()
		patch.Suburb = &ref
	}

	if req.CleanerID != nil {
		cleaner, err := s.catalog.GetCleaner(ctx, *req.CleanerID)
		if err != nil {
			return patch, fmt.Errorf("%w: %s", err, *req.CleanerID)
		}
		ref := cleaner.Ref()
		patch.Cleaner = &ref
	}

	if req.ScheduledDate != nil {
		date, err := entity.ParseScheduledDate(*req.ScheduledDate)
		if err != nil {
			return patch, err
		}
		patch.ScheduledDate = &date
	}

	if req.Extras != nil {
		extras := make([]entity.ExtraSelection, 0, len(*req.Extras))
		for _, eq := range *req.Extras {
			extra, err := s.catalog.GetExtra(ctx, eq.ExtraID)
			if err != nil {
				return patch, fmt.Errorf("%w: %s", err, eq.ExtraID)
			}
			extras = append(extras, entity.ExtraSelection{
				ID:       extra.ID,
				Name:     extra.Name,
				Price:    extra.Price,
				Quantity: eq.Quantity,
			})
		}
		patch.Extras = &extras
	}

	return patch, nil
}

func (s *bookingSessionService) startSpan(ctx context.Context, name, sessionID string) (context.Context, trace.Span) {
	return sessionTracer.Start(ctx, name, trace.WithAttributes(attribute.String("session.id", sessionID)))
}

func (s *bookingSessionService) view(sessionID string, store *bookingstate.Store) *SessionView {
	id, _ := validateSessionID(sessionID)
	return &SessionView{SessionID: id, State: store.State()}
}

func (s *bookingSessionService) record(operation string, err error) {
	s.metrics.StateMutationsTotal.WithLabelValues(operation, metrics.Outcome(err)).Inc()
}

func (s *bookingSessionService) observeQuote(store *bookingstate.Store) {
	state := store.State()
	if state.Service == nil {
		return
	}
	total, _ := state.Pricing.Total.Float64()
	s.metrics.QuotedTotal.Observe(total)
}
