package svauth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/modules/mdauth"
	"freightrate/internal/app/domains/repo/rpcustomer"
	"freightrate/internal/app/infra/persistence/redis"
	"freightrate/internal/app/pkg/errorx"
	"freightrate/pkg/logger"
	"freightrate/pkg/testutil"
)

type seqIDs struct{ n int64 }

func (s *seqIDs) NextID() int64 {
	s.n++
	return s.n
}

type inbox struct{ codes map[string]string }

func (i *inbox) SendOTP(_ context.Context, email, purpose, code string) error {
	i.codes[purpose+":"+email] = code
	return nil
}

func newService(t *testing.T) (*AuthService, *inbox) {
	t.Helper()
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	box := &inbox{codes: map[string]string{}}
	module := mdauth.NewAuthModule(
		rpcustomer.NewCustomerRepository(db),
		redis.NewOTPStore(rdb),
		box,
		mdauth.NewTokenManager("0123456789abcdef", "freightrate", time.Hour),
		10*time.Minute,
	)
	return NewAuthService(module, &seqIDs{n: 1000}, logger.NewNop()), box
}

func signupInput() SignupInput {
	return SignupInput{
		FirstName:   "Asha",
		LastName:    "Rao",
		CompanyName: "Rao Traders",
		Phone:       "9876543210",
		Email:       "Asha@Example.com",
		Password:    "correct-horse",
		Pincode:     "560001",
	}
}

func requireCode(t *testing.T, err error, code int) {
	t.Helper()
	var be *errorx.BusinessError
	require.True(t, errors.As(err, &be), "expected business error, got %v", err)
	assert.Equal(t, code, be.Code)
}

func signup(t *testing.T, s *AuthService, box *inbox) *Session {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.InitiateSignup(ctx, signupInput()))
	session, err := s.VerifySignup(ctx, "asha@example.com", box.codes["signup:asha@example.com"])
	require.NoError(t, err)
	return session
}

func TestSignupFlow(t *testing.T) {
	s, box := newService(t)

	session := signup(t, s, box)
	assert.Equal(t, int64(1001), session.Customer.ID)
	assert.Equal(t, "Asha Rao", session.Customer.Name)
	assert.Equal(t, etprimitive.PlanFree, session.Customer.Plan)
	assert.NotEmpty(t, session.Token)

	principal, err := s.Authenticate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), principal.CustomerID)

	// 重复注册
	requireCode(t, s.InitiateSignup(context.Background(), signupInput()), http.StatusConflict)
}

func TestSignupValidation(t *testing.T) {
	s, box := newService(t)
	ctx := context.Background()

	in := signupInput()
	in.Password = "short"
	requireCode(t, s.InitiateSignup(ctx, in), http.StatusBadRequest)

	in = signupInput()
	in.Pincode = "12"
	requireCode(t, s.InitiateSignup(ctx, in), http.StatusBadRequest)
	assert.Empty(t, box.codes)

	require.NoError(t, s.InitiateSignup(ctx, signupInput()))
	_, err := s.VerifySignup(ctx, "asha@example.com", "not-it")
	requireCode(t, err, http.StatusBadRequest)
}

func TestLogin(t *testing.T) {
	s, box := newService(t)
	signup(t, s, box)
	ctx := context.Background()

	session, err := s.Login(ctx, " ASHA@example.com ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), session.Customer.ID)

	_, err = s.Login(ctx, "asha@example.com", "wrong-password")
	requireCode(t, err, http.StatusUnauthorized)

	_, err = s.Login(ctx, "nobody@example.com", "correct-horse")
	requireCode(t, err, http.StatusUnauthorized)
}

func TestPasswordReset(t *testing.T) {
	s, box := newService(t)
	signup(t, s, box)
	ctx := context.Background()

	require.NoError(t, s.ForgotPassword(ctx, "nobody@example.com"))
	assert.NotContains(t, box.codes, "reset:nobody@example.com")

	require.NoError(t, s.ForgotPassword(ctx, "asha@example.com"))
	code := box.codes["reset:asha@example.com"]
	require.NotEmpty(t, code)

	requireCode(t, s.ResetPassword(ctx, "asha@example.com", code, "short"), http.StatusBadRequest)
	require.NoError(t, s.ResetPassword(ctx, "asha@example.com", code, "new-password-1"))

	_, err := s.Login(ctx, "asha@example.com", "new-password-1")
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	s, box := newService(t)
	session := signup(t, s, box)
	ctx := context.Background()

	requireCode(t, s.ChangePassword(ctx, session.Customer.ID, "wrong", "new-password-1"), http.StatusUnauthorized)
	require.NoError(t, s.ChangePassword(ctx, session.Customer.ID, "correct-horse", "new-password-1"))

	_, err := s.Login(ctx, "asha@example.com", "correct-horse")
	requireCode(t, err, http.StatusUnauthorized)
}

func TestSetPlan(t *testing.T) {
	s, box := newService(t)
	session := signup(t, s, box)
	ctx := context.Background()

	customer, err := s.SetPlan(ctx, session.Customer.ID, "Premium")
	require.NoError(t, err)
	assert.True(t, customer.CanViewCompanyQuotes())

	me, err := s.Me(ctx, session.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, etprimitive.PlanPremium, me.Plan)

	_, err = s.SetPlan(ctx, session.Customer.ID, "gold")
	requireCode(t, err, http.StatusBadRequest)

	_, err = s.SetPlan(ctx, 42, "free")
	requireCode(t, err, http.StatusNotFound)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	s, _ := newService(t)
	_, err := s.Authenticate("garbage")
	requireCode(t, err, http.StatusUnauthorized)
}
