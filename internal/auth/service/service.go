// Package service implements the registration and login flows on top of the
// credential hasher, token service, and identity store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/audit"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/password"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/token"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/identity"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/metrics"
	dErrors "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/domainerrors"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/sentinel"
)

// WorkflowAuth is the workflow name under which auth events are audited.
const WorkflowAuth = "auth"

// Auditor is the advisory audit hook. Record never blocks and never fails the
// caller.
type Auditor interface {
	Record(entry audit.Entry)
}

// RegisterRequest carries the registration input after transport decoding.
type RegisterRequest struct {
	Email      string
	Password   string
	FullName   string
	Role       string
	Department string
}

// Service owns the credential flows. It holds no cross-request state; all
// state lives in the identity store.
type Service struct {
	identities identity.Store
	hasher     password.Hasher
	tokens     *token.Service
	auditor    Auditor
	metrics    *metrics.Metrics
	logger     *slog.Logger

	// dummyHash is compared against when the email is unknown so that login
	// latency does not reveal whether an account exists.
	dummyHash string
}

func New(
	identities identity.Store,
	hasher password.Hasher,
	tokens *token.Service,
	auditor Auditor,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*Service, error) {
	dummyHash, err := hasher.Hash("credential-timing-probe")
	if err != nil {
		return nil, err
	}
	return &Service{
		identities: identities,
		hasher:     hasher,
		tokens:     tokens,
		auditor:    auditor,
		metrics:    m,
		logger:     logger,
		dummyHash:  dummyHash,
	}, nil
}

// Register validates the password policy, hashes the credential, and inserts
// the identity. Duplicate emails surface as a conflict error; the database
// unique index is the arbiter under concurrency.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (identity.Identity, error) {
	if ok, reason := password.ValidateStrength(req.Password); !ok {
		return identity.Identity{}, dErrors.New(dErrors.CodeBadRequest, reason)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return identity.Identity{}, dErrors.Wrap(dErrors.CodeInternal, "failed to hash password", err)
	}

	ident := identity.Identity{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         req.Role,
		Department:   req.Department,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.identities.Insert(ctx, ident); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return identity.Identity{}, dErrors.New(dErrors.CodeConflict, "email already exists")
		}
		return identity.Identity{}, dErrors.Wrap(dErrors.CodeInternal, "failed to create identity", err)
	}

	s.metrics.RegistrationsCreated.Inc()
	s.auditor.Record(audit.Entry{
		Workflow: WorkflowAuth,
		RecordID: ident.ID.String(),
		Action:   audit.ActionCreate,
		ActorID:  ident.ID,
		Changes:  map[string]any{"event": "registered", "email": ident.Email, "role": ident.Role},
	})

	return ident, nil
}

// errInvalidCredentials is deliberately identical for unknown email and wrong
// password to avoid account enumeration.
var errInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "Invalid email or password")

// Login verifies the credential and mints a session token. The uniform
// failure contract applies regardless of which check failed.
func (s *Service) Login(ctx context.Context, email, pass string) (identity.Identity, string, error) {
	ident, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Burn a comparison so the miss costs as much as a mismatch.
			s.hasher.Verify(pass, s.dummyHash)
			return identity.Identity{}, "", s.failLogin(email, "unknown email")
		}
		return identity.Identity{}, "", dErrors.Wrap(dErrors.CodeInternal, "failed to look up identity", err)
	}

	if !s.hasher.Verify(pass, ident.PasswordHash) {
		return identity.Identity{}, "", s.failLogin(email, "wrong password")
	}

	signed, err := s.tokens.Issue(ident.ID, ident.Email, ident.Role)
	if err != nil {
		return identity.Identity{}, "", dErrors.Wrap(dErrors.CodeInternal, "failed to issue token", err)
	}

	s.metrics.LoginsSucceeded.Inc()
	s.auditor.Record(audit.Entry{
		Workflow: WorkflowAuth,
		RecordID: ident.ID.String(),
		Action:   "login",
		ActorID:  ident.ID,
		Changes:  map[string]any{"event": "login"},
	})

	return ident, signed, nil
}

func (s *Service) failLogin(email, reason string) error {
	s.metrics.LoginsFailed.Inc()
	s.logger.Warn("login failed", "email", email, "reason", reason)
	s.auditor.Record(audit.Entry{
		Workflow: WorkflowAuth,
		RecordID: strings.ToLower(email),
		Action:   "login_failed",
		Changes:  map[string]any{"event": "login_failed"},
	})
	return errInvalidCredentials
}
