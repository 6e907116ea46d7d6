package token

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/storefront-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueAt(t *testing.T, c *Codec, p models.Principal, at time.Time, ttl time.Duration) models.Token {
	t.Helper()
	tok, err := NewIssuer(c, WithClock(fixedClock(at)), WithIDGenerator(staticIDs("jti-"+p.Username))).Issue(p, ttl)
	require.NoError(t, err)
	return tok
}

func TestValidator_AdminLifecycle(t *testing.T) {
	c := newTestCodec(t)
	tok := issueAt(t, c, models.Principal{ID: 1, Username: "admin", Role: models.RoleAdmin}, testNow, 24*time.Hour)

	v := NewValidator(c, WithClock(fixedClock(testNow)))
	claims, err := v.Validate(context.Background(), tok.SignedString)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	later := NewValidator(c, WithClock(fixedClock(testNow.Add(25*time.Hour))))
	_, err = later.Validate(context.Background(), tok.SignedString)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidator_Validate(t *testing.T) {
	c := newTestCodec(t)
	admin := issueAt(t, c, adminPrincipal(), testNow, time.Hour)
	customer := issueAt(t, c, customerPrincipal(), testNow, time.Hour)
	noRole := issueAt(t, c, models.Principal{ID: 9, Username: "ghost"}, testNow, time.Hour)

	foreignCodec, err := NewCodec("another-secret-another-secret-123", testIssuer, testAudience)
	require.NoError(t, err)
	foreign := issueAt(t, foreignCodec, adminPrincipal(), testNow, time.Hour)

	otherAudCodec, err := NewCodec(testKey, testIssuer, "back-office")
	require.NoError(t, err)
	otherAud := issueAt(t, otherAudCodec, adminPrincipal(), testNow, time.Hour)

	otherIssCodec, err := NewCodec(testKey, "someone-else", testAudience)
	require.NoError(t, err)
	otherIss := issueAt(t, otherIssCodec, adminPrincipal(), testNow, time.Hour)

	tests := []struct {
		name    string
		now     time.Time
		token   string
		roles   []models.Role
		wantErr error
	}{
		{name: "valid admin", now: testNow, token: admin.SignedString},
		{name: "valid admin for admin route", now: testNow, token: admin.SignedString, roles: []models.Role{models.RoleAdmin}},
		{name: "customer on admin route", now: testNow, token: customer.SignedString, roles: []models.Role{models.RoleAdmin}, wantErr: ErrForbidden},
		{name: "customer on shared route", now: testNow, token: customer.SignedString, roles: []models.Role{models.RoleAdmin, models.RoleCustomer}},
		{name: "missing role", now: testNow, token: noRole.SignedString, wantErr: ErrForbidden},
		{name: "foreign secret", now: testNow, token: foreign.SignedString, wantErr: ErrInvalidToken},
		{name: "other audience", now: testNow, token: otherAud.SignedString, wantErr: ErrInvalidToken},
		{name: "other issuer", now: testNow, token: otherIss.SignedString, wantErr: ErrInvalidToken},
		{name: "exactly at expiry", now: testNow.Add(time.Hour), token: admin.SignedString, wantErr: ErrExpired},
		{name: "one second before expiry", now: testNow.Add(time.Hour - time.Second), token: admin.SignedString},
		{name: "empty", now: testNow, token: "", wantErr: ErrInvalidToken},
		{name: "garbage", now: testNow, token: "not-a-token", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(c, WithClock(fixedClock(tt.now)))
			claims, err := v.Validate(context.Background(), tt.token, tt.roles...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, models.Claims{}, claims)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, claims.Role)
		})
	}
}

func TestValidator_ForeignSecretIsNotExpired(t *testing.T) {
	// A forged token must never be reported as merely expired.
	c := newTestCodec(t)
	foreignCodec, err := NewCodec("another-secret-another-secret-123", testIssuer, testAudience)
	require.NoError(t, err)
	forged := issueAt(t, foreignCodec, adminPrincipal(), testNow.Add(-48*time.Hour), time.Hour)

	_, err = NewValidator(c, WithClock(fixedClock(testNow))).Validate(context.Background(), forged.SignedString)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrBadSignature)
	assert.NotErrorIs(t, err, ErrExpired)
}

func TestValidator_Legacy(t *testing.T) {
	c := newTestCodec(t)
	past := legacyToken(fmt.Sprintf(`{"role":"admin","exp":%d}`, testNow.Add(-time.Hour).Unix()), base64.StdEncoding)
	future := legacyToken(fmt.Sprintf(`{"id":5,"role":"admin","exp":%d}`, testNow.Add(time.Hour).Unix()), base64.StdEncoding)

	tests := []struct {
		name        string
		legacyUntil time.Time
		token       string
		wantErr     error
	}{
		{name: "shim off, past exp", token: past, wantErr: ErrInvalidToken},
		{name: "shim off, future exp", token: future, wantErr: ErrInvalidToken},
		{name: "shim on, past exp", legacyUntil: testNow.Add(time.Hour), token: past, wantErr: ErrExpired},
		{name: "shim on, future exp", legacyUntil: testNow.Add(time.Hour), token: future},
		{name: "shim deadline passed", legacyUntil: testNow, token: future, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(c, WithClock(fixedClock(testNow)), WithLegacyUntil(tt.legacyUntil))
			claims, err := v.Validate(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.TokenShapeLegacyUnsigned, claims.Shape)
			assert.Equal(t, int64(5), claims.ID)
		})
	}
}

func TestValidator_Legacy_ShimOffReason(t *testing.T) {
	c := newTestCodec(t)
	tok := legacyToken(fmt.Sprintf(`{"role":"admin","exp":%d}`, testNow.Add(-time.Hour).Unix()), base64.StdEncoding)

	_, err := NewValidator(c, WithClock(fixedClock(testNow))).Validate(context.Background(), tok)
	assert.ErrorIs(t, err, ErrLegacyRejected)
	assert.NotErrorIs(t, err, ErrExpired)
}

func TestValidator_Revocation(t *testing.T) {
	c := newTestCodec(t)
	tok := issueAt(t, c, adminPrincipal(), testNow, time.Hour)

	t.Run("revoked", func(t *testing.T) {
		rc := &fakeRevocations{revoked: map[string]bool{tok.Claims.TokenID: true}}
		v := NewValidator(c, WithClock(fixedClock(testNow)), WithRevocationChecker(rc))

		_, err := v.Validate(context.Background(), tok.SignedString)
		assert.ErrorIs(t, err, ErrRevoked)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("not revoked", func(t *testing.T) {
		rc := &fakeRevocations{revoked: map[string]bool{"other": true}}
		v := NewValidator(c, WithClock(fixedClock(testNow)), WithRevocationChecker(rc))

		_, err := v.Validate(context.Background(), tok.SignedString)
		assert.NoError(t, err)
	})

	t.Run("checker unavailable", func(t *testing.T) {
		rc := &fakeRevocations{err: errors.New("connection refused")}
		v := NewValidator(c, WithClock(fixedClock(testNow)), WithRevocationChecker(rc))

		_, err := v.Validate(context.Background(), tok.SignedString)
		assert.ErrorIs(t, err, ErrRevocationUnavailable)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expiry checked before deny-list", func(t *testing.T) {
		rc := &fakeRevocations{err: errors.New("must not be called")}
		v := NewValidator(c, WithClock(fixedClock(testNow.Add(2*time.Hour))), WithRevocationChecker(rc))

		_, err := v.Validate(context.Background(), tok.SignedString)
		assert.ErrorIs(t, err, ErrExpired)
	})
}

func TestCheckRole(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		allowed []models.Role
		wantErr bool
	}{
		{name: "any role", role: models.RoleCustomer},
		{name: "allowed", role: models.RoleAdmin, allowed: []models.Role{models.RoleAdmin}},
		{name: "not allowed", role: models.RoleCustomer, allowed: []models.Role{models.RoleAdmin}, wantErr: true},
		{name: "empty role", role: "", wantErr: true},
		{name: "empty role with allowed", role: "", allowed: []models.Role{models.RoleAdmin}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRole(models.Claims{Role: tt.role}, tt.allowed...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrForbidden)
				return
			}
			assert.NoError(t, err)
		})
	}
}
