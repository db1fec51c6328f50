package mdauth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/repo/rpcustomer"
	"freightrate/internal/app/infra/persistence/redis"
	"freightrate/pkg/testutil"
)

type captureNotifier struct {
	codes map[string]string
}

func (n *captureNotifier) SendOTP(_ context.Context, email, purpose, code string) error {
	if n.codes == nil {
		n.codes = make(map[string]string)
	}
	n.codes[purpose+":"+email] = code
	return nil
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("0123456789abcdef", "freightrate", time.Hour)

	token, expiresAt, err := m.Issue(7, etprimitive.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	p, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.CustomerID)
	assert.True(t, p.IsAdmin())
}

func TestTokenRejected(t *testing.T) {
	m := NewTokenManager("0123456789abcdef", "freightrate", time.Hour)
	token, _, err := m.Issue(7, etprimitive.RoleCustomer)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("fedcba9876543210", "freightrate", time.Hour)
		_, err := other.Parse(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenManager("0123456789abcdef", "someone-else", time.Hour)
		_, err := other.Parse(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("0123456789abcdef", "freightrate", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		old, _, err := past.Issue(7, etprimitive.RoleCustomer)
		require.NoError(t, err)
		_, err = m.Parse(old)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestGenerateOTP(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
	}
}

func newAuthModule(t *testing.T) (*AuthModule, *captureNotifier) {
	t.Helper()
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	notifier := &captureNotifier{}
	m := NewAuthModule(
		rpcustomer.NewCustomerRepository(db),
		redis.NewOTPStore(rdb),
		notifier,
		NewTokenManager("0123456789abcdef", "freightrate", time.Hour),
		time.Minute,
	)
	return m, notifier
}

func TestOTPFlow(t *testing.T) {
	m, notifier := newAuthModule(t)
	ctx := context.Background()

	type pending struct {
		Name string `json:"name"`
	}
	require.NoError(t, m.IssueOTP(ctx, PurposeSignup, "a@b.com", pending{Name: "Asha"}))
	code := notifier.codes["signup:a@b.com"]
	require.Len(t, code, 6)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	require.ErrorIs(t, m.VerifyOTP(ctx, PurposeSignup, "a@b.com", wrong, nil), ErrOTPMismatch)

	var got pending
	require.NoError(t, m.VerifyOTP(ctx, PurposeSignup, "a@b.com", code, &got))
	assert.Equal(t, "Asha", got.Name)

	// 验证码只能使用一次
	require.ErrorIs(t, m.VerifyOTP(ctx, PurposeSignup, "a@b.com", code, nil), ErrOTPExpired)
}

func TestOTPTooManyAttempts(t *testing.T) {
	m, notifier := newAuthModule(t)
	ctx := context.Background()

	require.NoError(t, m.IssueOTP(ctx, PurposeReset, "a@b.com", nil))
	code := notifier.codes["reset:a@b.com"]
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	for i := 1; i < maxOTPAttempts; i++ {
		require.ErrorIs(t, m.VerifyOTP(ctx, PurposeReset, "a@b.com", wrong, nil), ErrOTPMismatch)
	}
	require.ErrorIs(t, m.VerifyOTP(ctx, PurposeReset, "a@b.com", wrong, nil), ErrTooManyAttempts)
	// 超过次数后原验证码失效
	require.ErrorIs(t, m.VerifyOTP(ctx, PurposeReset, "a@b.com", code, nil), ErrOTPExpired)
}
