package services

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HadarPadael/facyBook-Server/config"
	"github.com/HadarPadael/facyBook-Server/models"
)

func newTokenService(t *testing.T, expire time.Duration) (*TokenService, *MemStore) {
	t.Helper()
	store := NewMemStore()
	svc := NewTokenService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: expire,
		Issuer:     "facybook-test",
	}, store)
	return svc, store
}

func TestTokenRoundTrip(t *testing.T) {
	svc, store := newTokenService(t, time.Hour)
	ctx := context.Background()

	token, err := svc.Issue(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	nickname, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", nickname)

	// The informational record is persisted alongside issuance.
	item, err := store.GetItem(ctx, models.TokensTable, StringKey("token", token))
	require.NoError(t, err)
	var record models.AuthToken
	require.NoError(t, attributevalue.UnmarshalMap(item, &record))
	assert.Equal(t, "alice", record.Nickname)
	assert.Greater(t, record.ExpiresAt, time.Now().Unix())
}

func TestIssueRequiresNickname(t *testing.T) {
	svc, _ := newTokenService(t, time.Hour)

	_, err := svc.Issue(context.Background(), "")
	assert.Error(t, err)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc, _ := newTokenService(t, time.Hour)

	token, err := svc.Issue(context.Background(), "alice")
	require.NoError(t, err)

	_, err = svc.Verify(token + "x")
	assert.Error(t, err)

	_, err = svc.Verify("")
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc, _ := newTokenService(t, -time.Minute)

	token, err := svc.Issue(context.Background(), "alice")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsForeignIssuer(t *testing.T) {
	issuerA, store := newTokenService(t, time.Hour)
	issuerB := NewTokenService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "someone-else",
	}, store)

	token, err := issuerB.Issue(context.Background(), "alice")
	require.NoError(t, err)

	_, err = issuerA.Verify(token)
	assert.Error(t, err)
}
