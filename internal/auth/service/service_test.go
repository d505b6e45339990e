package service

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/audit"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/password"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/token"
	identitystore "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/identity/store"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/logger"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/metrics"
	dErrors "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/domainerrors"
)

// captureAuditor records entries synchronously so tests can assert on them.
type captureAuditor struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (c *captureAuditor) Record(entry audit.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
}

func (c *captureAuditor) actions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	actions := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		actions = append(actions, e.Action)
	}
	return actions
}

func newTestService(t *testing.T) (*Service, *captureAuditor) {
	t.Helper()

	tokens, err := token.NewService("service-test-key", token.DefaultTTL, nil)
	require.NoError(t, err)

	auditor := &captureAuditor{}
	svc, err := New(
		identitystore.NewMemoryStore(),
		password.NewHasher(bcrypt.MinCost),
		tokens,
		auditor,
		metrics.New(prometheus.NewRegistry()),
		logger.New(),
	)
	require.NoError(t, err)
	return svc, auditor
}

var validRegistration = RegisterRequest{
	Email:    "alice@x.com",
	Password: "Passw0rd",
	FullName: "Alice Smith",
	Role:     "hr",
}

func Test_Register(t *testing.T) {
	t.Run("creates identity and audits it", func(t *testing.T) {
		svc, auditor := newTestService(t)

		ident, err := svc.Register(context.Background(), validRegistration)
		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", ident.Email)
		assert.Equal(t, "hr", ident.Role)
		assert.NotEqual(t, "Passw0rd", ident.PasswordHash)
		assert.Contains(t, auditor.actions(), audit.ActionCreate)
	})

	t.Run("normalizes email case", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := validRegistration
		req.Email = "Alice@X.Com"
		ident, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", ident.Email)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := validRegistration
		req.Password = "short"
		_, err := svc.Register(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})

	t.Run("duplicate email conflicts, case-insensitively", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Register(context.Background(), validRegistration)
		require.NoError(t, err)

		dup := validRegistration
		dup.Email = "ALICE@x.com"
		_, err = svc.Register(context.Background(), dup)
		require.ErrorIs(t, err, dErrors.New(dErrors.CodeConflict, "email already exists"))
	})
}

func Test_Login(t *testing.T) {
	t.Run("valid credentials yield identity and token", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Register(context.Background(), validRegistration)
		require.NoError(t, err)

		ident, signed, err := svc.Login(context.Background(), "alice@x.com", "Passw0rd")
		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", ident.Email)
		assert.NotEmpty(t, signed)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Register(context.Background(), validRegistration)
		require.NoError(t, err)

		_, _, wrongPass := svc.Login(context.Background(), "alice@x.com", "WrongPass1")
		_, _, unknown := svc.Login(context.Background(), "nobody@x.com", "Passw0rd")

		require.Error(t, wrongPass)
		require.Error(t, unknown)
		assert.Equal(t, wrongPass.Error(), unknown.Error())
		assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(wrongPass))
	})

	t.Run("failed attempts are audited", func(t *testing.T) {
		svc, auditor := newTestService(t)
		_, err := svc.Register(context.Background(), validRegistration)
		require.NoError(t, err)

		_, _, err = svc.Login(context.Background(), "alice@x.com", "WrongPass1")
		require.Error(t, err)
		assert.Contains(t, auditor.actions(), "login_failed")
	})
}
