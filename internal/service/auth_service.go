package service

import (
	"context"
	"strings"
	"time"

	"journal/internal/auth"
	"journal/internal/domain/entity"
	"journal/internal/utils"
	"journal/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindByUsername(username string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Insert(user *entity.User) error
	Save(user *entity.User) error
}

// Mailer is the notification sink. Send failures are logged and swallowed;
// they never surface as request failures.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,contains=@"`
	Password string `json:"password" validate:"required,min=8"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type LoginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

type AuthService struct {
	UserRepo UserRepository
	Validate *validator.Validate
	Mailer   Mailer

	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewAuthService(userRepo UserRepository, validate *validator.Validate, mailer Mailer, jwtSecret []byte) *AuthService {
	return &AuthService{
		UserRepo:      userRepo,
		Validate:      validate,
		Mailer:        mailer,
		jwtSecret:     jwtSecret,
		tokenValidity: auth.TokenValidity,
	}
}

// Register creates an unverified account and fires the verification email.
// A failed send does not fail the registration.
func (s *AuthService) Register(req *RegisterRequest) (*RegisterResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Email = strings.ToLower(req.Email)

	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	existing, err := s.UserRepo.FindByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to check username uniqueness: %v", err)
		return nil, apierror.RegistrationFailedError
	}
	if existing != nil {
		return nil, apierror.UsernameTakenError
	}

	existing, err = s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check email uniqueness: %v", err)
		return nil, apierror.RegistrationFailedError
	}
	if existing != nil {
		return nil, apierror.EmailRegisteredError
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.RegistrationFailedError
	}

	code := auth.GenerateVerificationCode()
	expires := utils.NowUTC() + auth.CodeValidity.Milliseconds()
	now := utils.NowUTC()

	user := &entity.User{
		Username:            req.Username,
		Email:               req.Email,
		PasswordHash:        digest,
		IsVerified:          false,
		VerificationCode:    &code,
		VerificationExpires: &expires,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err = s.UserRepo.Insert(user); err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.RegistrationFailedError
	}

	s.sendCode(user.Email, code)

	return &RegisterResponse{
		Message: "Account created. Please check your email for verification code.",
		UserID:  user.ID,
	}, nil
}

// VerifyEmail flips the account to verified when the code matches and has
// not expired, clearing the pending verification state.
func (s *AuthService) VerifyEmail(req *VerifyEmailRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	req.Email = strings.ToLower(req.Email)

	if err := s.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	user, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user by email: %v", err)
		return apierror.VerificationFailedError
	}

	if user == nil {
		return apierror.UserNotFoundError
	}
	if user.IsVerified {
		return apierror.AlreadyVerifiedError
	}
	if user.VerificationCode == nil || *user.VerificationCode != req.Code {
		return apierror.CodeMismatchError
	}
	if user.VerificationExpires == nil || utils.NowUTC() > *user.VerificationExpires {
		return apierror.CodeExpiredError
	}

	user.IsVerified = true
	user.VerificationCode = nil
	user.VerificationExpires = nil
	user.UpdatedAt = utils.NowUTC()

	if err = s.UserRepo.Save(user); err != nil {
		log.Errorf("failed to update user (%s) verified status: %v", user.ID, err)
		return apierror.VerificationFailedError
	}
	return nil
}

// ResendVerification supersedes any previous code with a fresh one.
func (s *AuthService) ResendVerification(req *ResendVerificationRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	req.Email = strings.ToLower(req.Email)

	if err := s.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	user, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user by email: %v", err)
		return apierror.ResendFailedError
	}

	if user == nil {
		return apierror.UserNotFoundError
	}
	if user.IsVerified {
		return apierror.AlreadyVerifiedError
	}

	code := auth.GenerateVerificationCode()
	expires := utils.NowUTC() + auth.CodeValidity.Milliseconds()
	user.VerificationCode = &code
	user.VerificationExpires = &expires

	if err = s.UserRepo.Save(user); err != nil {
		log.Errorf("failed to store new verification code for %s: %v", user.ID, err)
		return apierror.ResendFailedError
	}

	s.sendCode(user.Email, code)
	return nil
}

// Login authenticates by username. Unknown usernames and wrong passwords
// produce the same generic error to prevent enumeration.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)

	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := s.UserRepo.FindByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.LoginFailedError
	}

	if user == nil {
		return nil, apierror.InvalidCredentialsError
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, apierror.InvalidCredentialsError
	}
	if !user.IsVerified {
		return nil, apierror.VerifyEmailFirstError
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidity)
	if err != nil {
		log.Errorf("failed to sign session token for %s: %v", user.ID, err)
		return nil, apierror.LoginFailedError
	}

	return &LoginResponse{
		Message: "Login successful",
		Token:   token,
		User: LoginUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

// sendCode is best-effort delivery, detached from the request lifetime.
func (s *AuthService) sendCode(email, code string) {
	if err := s.Mailer.SendVerificationCode(context.Background(), email, code); err != nil {
		log.Errorf("failed to send verification email to %s: %v", email, err)
	}
}
