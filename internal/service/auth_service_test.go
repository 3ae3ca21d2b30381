package service

import (
	"testing"

	"journal/internal/auth"
	"journal/internal/domain/entity"
	"journal/internal/utils"
	"journal/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newAuthService(repo *fakeUserRepo, mailer *fakeMailer) *AuthService {
	return NewAuthService(repo, newValidate(), mailer, testSecret)
}

func registered(t *testing.T, s *AuthService, repo *fakeUserRepo, username, email, password string) *entity.User {
	t.Helper()

	_, apierr := s.Register(&RegisterRequest{Username: username, Email: email, Password: password})
	require.Nil(t, apierr)

	user, err := repo.FindByEmail(email)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func TestRegister_CreatesUnverifiedUser(t *testing.T) {
	repo := &fakeUserRepo{}
	mailer := &fakeMailer{}
	s := newAuthService(repo, mailer)

	resp, apierr := s.Register(&RegisterRequest{
		Username: "alice123",
		Email:    "a@b.com",
		Password: "password1",
	})
	require.Nil(t, apierr)
	assert.NotEmpty(t, resp.UserID)
	assert.Equal(t, "Account created. Please check your email for verification code.", resp.Message)

	user := repo.users[0]
	assert.False(t, user.IsVerified)
	require.NotNil(t, user.VerificationCode)
	assert.Len(t, *user.VerificationCode, 6)
	require.NotNil(t, user.VerificationExpires)
	assert.Greater(t, *user.VerificationExpires, utils.NowUTC())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.NotEqual(t, "password1", user.PasswordHash)

	require.Len(t, mailer.sentTo, 1)
	assert.Equal(t, "a@b.com", mailer.sentTo[0])
	assert.Equal(t, *user.VerificationCode, mailer.sentCodes[0])
}

func TestRegister_TrimsAndLowercasesEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	s := newAuthService(repo, &fakeMailer{})

	_, apierr := s.Register(&RegisterRequest{
		Username: "  alice123  ",
		Email:    "  Alice@Example.COM ",
		Password: "password1",
	})
	require.Nil(t, apierr)

	user := repo.users[0]
	assert.Equal(t, "alice123", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestRegister_ValidationPriority(t *testing.T) {
	s := newAuthService(&fakeUserRepo{}, &fakeMailer{})

	tests := []struct {
		name    string
		req     *RegisterRequest
		message string
	}{
		{"short username first", &RegisterRequest{Username: "ab", Email: "bad", Password: "short"},
			"Username must be at least 3 characters"},
		{"bad email second", &RegisterRequest{Username: "alice123", Email: "no-at-sign", Password: "short"},
			"Valid email is required"},
		{"missing email", &RegisterRequest{Username: "alice123", Email: "   ", Password: "password1"},
			"Valid email is required"},
		{"short password last", &RegisterRequest{Username: "alice123", Email: "a@b.com", Password: "short"},
			"Password must be at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, apierr := s.Register(tt.req)
			require.NotNil(t, apierr)
			assert.Equal(t, 400, apierr.Code())
			assert.Equal(t, tt.message, apierr.(*apierror.APIError).Message)
		})
	}
}

func TestRegister_UsernameConflictTakesPriority(t *testing.T) {
	repo := &fakeUserRepo{}
	s := newAuthService(repo, &fakeMailer{})
	registered(t, s, repo, "alice123", "a@b.com", "password1")

	// Same username AND same email: the username check wins.
	_, apierr := s.Register(&RegisterRequest{Username: "alice123", Email: "a@b.com", Password: "password1"})
	require.NotNil(t, apierr)
	assert.Equal(t, apierror.UsernameTakenError, apierr)

	_, apierr = s.Register(&RegisterRequest{Username: "alice456", Email: "a@b.com", Password: "password1"})
	require.NotNil(t, apierr)
	assert.Equal(t, apierror.EmailRegisteredError, apierr)

	// Failed attempts never mutate the existing record.
	assert.Len(t, repo.users, 1)
}

func TestRegister_UsernameCaseSensitive(t *testing.T) {
	repo := &fakeUserRepo{}
	s := newAuthService(repo, &fakeMailer{})
	registered(t, s, repo, "alice123", "a@b.com", "password1")

	_, apierr := s.Register(&RegisterRequest{Username: "Alice123", Email: "c@d.com", Password: "password1"})
	assert.Nil(t, apierr)
}

func TestRegister_MailerFailureStillSucceeds(t *testing.T) {
	repo := &fakeUserRepo{}
	mailer := &fakeMailer{err: errStoreDown}
	s := newAuthService(repo, mailer)

	resp, apierr := s.Register(&RegisterRequest{Username: "alice123", Email: "a@b.com", Password: "password1"})
	require.Nil(t, apierr)
	assert.NotEmpty(t, resp.UserID)
}

func TestVerifyEmail_Flow(t *testing.T) {
	repo := &fakeUserRepo{}
	s := newAuthService(repo, &fakeMailer{})
	user := registered(t, s, repo, "alice123", "a@b.com", "password1")
	code := *user.VerificationCode

	apierr := s.VerifyEmail(&VerifyEmailRequest{Email: "a@b.com", Code: "000000"})
	assert.Equal(t, apierror.CodeMismatchError, apierr)

	apierr = s.VerifyEmail(&VerifyEmailRequest{Email: "a@b.com", Code: code})
	require.Nil(t, apierr)
	assert.True(t, user.IsVerified)
	assert.Nil(t, user.VerificationCode)
	assert.Nil(t, user.VerificationExpires)

	// A second attempt finds the account already verified.
	apierr = s.VerifyEmail(&VerifyEmailRequest{Email: "a@b.com", Code: code})
	assert.Equal(t, apierror.AlreadyVerifiedError, apierr)
}

func TestVerifyEmail_Expired(t *testing.T) {
	repo := &fakeUserRepo{}
	s := newAuthService(repo, &fakeMailer{})
	user := registered(t, s, repo, "alice123", "a@b.com", "password1")
	code := *user.VerificationCode

	past := utils.NowUTC() - 1000
	user.VerificationExpires = &past

	apierr := s.VerifyEmail(&VerifyEmailRequest{Email: "a@b.com", Code: code})
	assert.Equal(t, apierror.CodeExpiredError, apierr)
	assert.False(t, user.IsVerified)

	// Still inside the window: succeeds.
	future := utils.NowUTC() + 1000
	user.VerificationExpires = &future
	apierr = s.VerifyEmail(&VerifyEmailRequest{Email: "a@b.com", Code: code})
	assert.Nil(t, apierr)
}

func TestVerifyEmail_Errors(t *testing.T) {
	repo := &fakeUserRepo{}
	s := newAuthService(repo, &fakeMailer{})

	apierr := s.VerifyEmail(&VerifyEmailRequest{Email: "a@b.com"})
	require.NotNil(t, apierr)
	assert.Equal(t, "Email and verification code required", apierr.(*apierror.APIError).Message)

	apierr = s.VerifyEmail(&VerifyEmailRequest{Email: "ghost@b.com", Code: "123456"})
	assert.Equal(t, apierror.UserNotFoundError, apierr)
}

func TestResendVerification_SupersedesCode(t *testing.T) {
	repo := &fakeUserRepo{}
	mailer := &fakeMailer{}
	s := newAuthService(repo, mailer)
	user := registered(t, s, repo, "alice123", "a@b.com", "password1")
	oldCode := *user.VerificationCode

	// Force a new code even if the generator collides once.
	var apierr apierror.ErrorResponse
	for i := 0; i < 10 && *user.VerificationCode == oldCode; i++ {
		apierr = s.ResendVerification(&ResendVerificationRequest{Email: "a@b.com"})
		require.Nil(t, apierr)
	}

	assert.NotEqual(t, oldCode, *user.VerificationCode)
	assert.Equal(t, *user.VerificationCode, mailer.sentCodes[len(mailer.sentCodes)-1])

	// The old code no longer verifies.
	assert.Equal(t, apierror.CodeMismatchError,
		s.VerifyEmail(&VerifyEmailRequest{Email: "a@b.com", Code: oldCode}))
}

func TestResendVerification_Errors(t *testing.T) {
	repo := &fakeUserRepo{}
	s := newAuthService(repo, &fakeMailer{})
	user := registered(t, s, repo, "alice123", "a@b.com", "password1")

	apierr := s.ResendVerification(&ResendVerificationRequest{Email: ""})
	require.NotNil(t, apierr)
	assert.Equal(t, "Email required", apierr.(*apierror.APIError).Message)

	apierr = s.ResendVerification(&ResendVerificationRequest{Email: "ghost@b.com"})
	assert.Equal(t, apierror.UserNotFoundError, apierr)

	user.IsVerified = true
	apierr = s.ResendVerification(&ResendVerificationRequest{Email: "a@b.com"})
	assert.Equal(t, apierror.AlreadyVerifiedError, apierr)
}

func TestLogin_BeforeVerification(t *testing.T) {
	repo := &fakeUserRepo{}
	s := newAuthService(repo, &fakeMailer{})
	registered(t, s, repo, "alice123", "a@b.com", "password1")

	_, apierr := s.Login(&LoginRequest{Username: "alice123", Password: "password1"})
	assert.Equal(t, apierror.VerifyEmailFirstError, apierr)
}

func TestLogin_GenericErrorHidesWhichPartFailed(t *testing.T) {
	repo := &fakeUserRepo{}
	s := newAuthService(repo, &fakeMailer{})
	user := registered(t, s, repo, "alice123", "a@b.com", "password1")
	user.IsVerified = true

	_, unknownUser := s.Login(&LoginRequest{Username: "ghost", Password: "password1"})
	_, wrongPassword := s.Login(&LoginRequest{Username: "alice123", Password: "wrong-password"})

	assert.Equal(t, apierror.InvalidCredentialsError, unknownUser)
	assert.Equal(t, apierror.InvalidCredentialsError, wrongPassword)
}

func TestLogin_Success(t *testing.T) {
	repo := &fakeUserRepo{}
	s := newAuthService(repo, &fakeMailer{})
	user := registered(t, s, repo, "alice123", "a@b.com", "password1")
	user.IsVerified = true

	resp, apierr := s.Login(&LoginRequest{Username: "alice123", Password: "password1"})
	require.Nil(t, apierr)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "alice123", resp.User.Username)
	assert.Equal(t, "a@b.com", resp.User.Email)

	data, err := auth.ParseToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, data.UserID)
	assert.Equal(t, "alice123", data.Username)
}

func TestLogin_MissingFields(t *testing.T) {
	s := newAuthService(&fakeUserRepo{}, &fakeMailer{})

	_, apierr := s.Login(&LoginRequest{Username: "alice123"})
	require.NotNil(t, apierr)
	assert.Equal(t, "Username and password required", apierr.(*apierror.APIError).Message)
}

func TestAuthService_StoreFailureIsGeneric(t *testing.T) {
	repo := &fakeUserRepo{fail: true}
	s := newAuthService(repo, &fakeMailer{})

	_, apierr := s.Register(&RegisterRequest{Username: "alice123", Email: "a@b.com", Password: "password1"})
	assert.Equal(t, apierror.RegistrationFailedError, apierr)

	_, apierr = s.Login(&LoginRequest{Username: "alice123", Password: "password1"})
	assert.Equal(t, apierror.LoginFailedError, apierr)
}
