package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_Issue(t *testing.T) {
	s := newMemStore()
	ts := newTestTokenService(s, testConfig())

	first, err := ts.Issue(context.Background(), nil, 5)
	require.NoError(t, err)
	second, err := ts.Issue(context.Background(), nil, 5)
	require.NoError(t, err)

	assert.Equal(t, "tok-1", first.Token)
	assert.Equal(t, fixedNow.Add(14*24*time.Hour), first.Expires)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Len(t, s.tokens, 2, "repeated issues keep earlier tokens")
}

func TestTokenService_SingleActive(t *testing.T) {
	cfg := testConfig()
	cfg.SingleActiveToken = true
	s := newMemStore()
	ts := newTestTokenService(s, cfg)

	_, err := ts.Issue(context.Background(), nil, 5)
	require.NoError(t, err)
	_, err = ts.Issue(context.Background(), nil, 6)
	require.NoError(t, err)
	last, err := ts.Issue(context.Background(), nil, 5)
	require.NoError(t, err)

	require.Len(t, s.tokens, 2)
	for _, tok := range s.tokens {
		if tok.UserID == 5 {
			assert.Equal(t, last.Token, tok.Token)
		}
	}
}

func TestTokenService_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.SingleActiveToken = true
	s := newMemStore()
	ts := newTestTokenService(s, cfg)

	s.fail["tokens.DeleteByUser"] = errBoom{}
	_, err := ts.Issue(context.Background(), nil, 5)
	assert.ErrorIs(t, err, errBoom{})
	assert.NotContains(t, s.calls, "tokens.Create")

	delete(s.fail, "tokens.DeleteByUser")
	s.fail["tokens.Create"] = errBoom{}
	_, err = ts.Issue(context.Background(), nil, 5)
	assert.ErrorIs(t, err, errBoom{})
}

func TestTokenService_DefaultGenerator(t *testing.T) {
	s := newMemStore()
	ts := NewTokenService(&fakeRepoManager{s}, testConfig())

	tok, err := ts.Issue(context.Background(), nil, 1)

	require.NoError(t, err)
	assert.Len(t, tok.Token, 36)
	assert.True(t, tok.Valid(time.Now()))
}
