package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/token"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/identity"
	identitystore "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/identity/store"
	dErrors "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/domainerrors"
)

type resolverFixture struct {
	resolver   *Resolver
	tokens     *token.Service
	identities *identitystore.MemoryStore
	ident      identity.Identity
	clock      *time.Time
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()

	current := time.Now()
	clock := func() time.Time { return current }

	tokens, err := token.NewService("resolver-test-key", token.DefaultTTL, clock)
	require.NoError(t, err)

	identities := identitystore.NewMemoryStore()
	ident := identity.Identity{
		ID:       uuid.New(),
		Email:    "user@example.com",
		FullName: "Test User",
		Role:     "hr",
	}
	require.NoError(t, identities.Insert(context.Background(), ident))

	return &resolverFixture{
		resolver:   NewResolver(tokens, identities),
		tokens:     tokens,
		identities: identities,
		ident:      ident,
		clock:      &current,
	}
}

func (f *resolverFixture) issue(t *testing.T) string {
	t.Helper()
	signed, err := f.tokens.Issue(f.ident.ID, f.ident.Email, f.ident.Role)
	require.NoError(t, err)
	return signed
}

func Test_Resolve_Success(t *testing.T) {
	f := newResolverFixture(t)

	got, ok := f.resolver.Resolve(context.Background(), f.issue(t))
	require.True(t, ok)
	assert.Equal(t, f.ident.ID, got.ID)
	assert.Equal(t, f.ident.Email, got.Email)
}

func Test_Resolve_NoCredential(t *testing.T) {
	f := newResolverFixture(t)

	_, ok := f.resolver.Resolve(context.Background(), "")
	assert.False(t, ok)
}

func Test_Resolve_ExpiredToken(t *testing.T) {
	f := newResolverFixture(t)
	signed := f.issue(t)

	*f.clock = f.clock.Add(token.DefaultTTL + time.Second)

	_, ok := f.resolver.Resolve(context.Background(), signed)
	assert.False(t, ok)
}

func Test_Resolve_TamperedToken(t *testing.T) {
	f := newResolverFixture(t)
	signed := f.issue(t)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + strings.Repeat("x", len(parts[1])) + "." + parts[2]

	_, ok := f.resolver.Resolve(context.Background(), tampered)
	assert.False(t, ok)
}

func Test_Resolve_DeletedIdentity(t *testing.T) {
	f := newResolverFixture(t)
	signed := f.issue(t)

	// The account disappears after the token was issued; the token must not
	// outlive it.
	f.identities.Delete(context.Background(), f.ident.ID)

	_, ok := f.resolver.Resolve(context.Background(), signed)
	assert.False(t, ok)
}

func Test_Require(t *testing.T) {
	f := newResolverFixture(t)

	got, err := f.resolver.Require(context.Background(), f.issue(t))
	require.NoError(t, err)
	assert.Equal(t, f.ident.ID, got.ID)

	_, err = f.resolver.Require(context.Background(), "")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized"))
}
