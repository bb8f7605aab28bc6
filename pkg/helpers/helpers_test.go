package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tok, exp, err := m.GenerateAccessToken("staff1", "careProvider")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "staff1", claims.CallerID())
	assert.Equal(t, "careProvider", claims.Role)

	_, err = NewJWTManager("other", time.Hour).ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	tok, _, err := m.GenerateAccessToken("staff1", "nurse")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestCallerIDFallsBackToSubject(t *testing.T) {
	c := &Claims{}
	c.RegisteredClaims.Subject = "family3"
	assert.Equal(t, "family3", c.CallerID())
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, "password123"))
	assert.False(t, CheckPassword(h, "password124"))
	assert.False(t, CheckPassword("", ""))
}

func TestRedisCacheWithoutClient(t *testing.T) {
	c := RedisCache{}
	var dest map[string]int
	ok, err := c.GetJSON(context.Background(), "k", &dest)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.SetJSON(context.Background(), "k", 1, time.Second))
	assert.NoError(t, c.Del(context.Background(), "k"))
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "production")
	LogError(l, "seed failed", errors.New("boom"), logrus.Fields{"step": "rooms"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "seed failed", line["msg"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "rooms", line["step"])
	assert.Equal(t, "error", line["level"])
}
