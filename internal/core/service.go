package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// PopupService runs the popup refresh chain: identity check, email fetch,
// threshold read, card building
type PopupService struct {
	backend      SortingBackend
	settings     *SettingsService
	logger       *zap.Logger
	sessionAware bool
}

// NewPopupService creates a new popup service
func NewPopupService(
	backend SortingBackend,
	settings *SettingsService,
	logger *zap.Logger,
	sessionAware bool,
) *PopupService {
	return &PopupService{
		backend:      backend,
		settings:     settings,
		logger:       logger,
		sessionAware: sessionAware,
	}
}

// LoginURL returns the page a user opens to log in
func (s *PopupService) LoginURL() string {
	return s.backend.LoginURL()
}

// Load performs one refresh. It never fails; every outcome is a state.
func (s *PopupService) Load(ctx context.Context) *PopupState {
	startTime := time.Now()
	state := s.load(ctx)
	s.logger.Debug("Popup refreshed",
		zap.Stringer("status", state.Status),
		zap.Int("cards", len(state.Cards)),
		zap.Duration("duration", time.Since(startTime)))
	return state
}

func (s *PopupService) load(ctx context.Context) *PopupState {
	var identity string
	if s.sessionAware {
		var err error
		identity, err = s.backend.WhoAmI(ctx)
		if err != nil {
			s.logger.Error("Failed to check session", zap.Error(err))
			return &PopupState{Status: StateUnreachable}
		}
		if identity == "" {
			s.logger.Info("No active session")
			return &PopupState{Status: StateNotLoggedIn, LoginURL: s.backend.LoginURL()}
		}
	}

	listing, err := s.backend.FetchEmails(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrUnexpectedResponse) {
			s.logger.Warn("Unexpected email listing", zap.Error(err))
			return &PopupState{Status: StateUnexpected, Identity: identity}
		}
		s.logger.Error("Failed to fetch emails", zap.Error(err))
		return &PopupState{Status: StateUnreachable, Identity: identity}
	}
	if listing.Kind == ListingMalformed {
		s.logger.Warn("Unexpected email listing",
			zap.String("identity", identity),
			zap.String("backend_error", listing.Error))
		return &PopupState{Status: StateUnexpected, Identity: identity}
	}

	threshold, err := s.settings.Threshold(ctx)
	if err != nil {
		s.logger.Warn("Using default threshold", zap.Error(err))
	}

	state := &PopupState{
		Status:    StateEmails,
		Identity:  identity,
		Threshold: threshold,
		Cards:     BuildCards(listing.Emails, threshold),
	}
	if len(state.Cards) == 0 {
		state.Status = StateEmpty
	}
	return state
}
