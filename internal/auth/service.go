package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"pushauth/internal/constants"
	"pushauth/internal/db"
	"pushauth/internal/models"
	"pushauth/internal/validation"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type DeviceTokenRepository interface {
	CreateDeviceToken(ctx context.Context, token *models.DeviceToken) error
	UpsertDeviceToken(ctx context.Context, token *models.DeviceToken) error
	DeleteDeviceToken(ctx context.Context, deviceToken, userID string) (int64, error)
}

type TokenIssuer interface {
	Issue(user *models.User) (string, error)
	Invalidate(ctx context.Context, id Identity) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type RegisterInput struct {
	Name        validation.Field `json:"name"`
	Email       validation.Field `json:"email"`
	Password    validation.Field `json:"password"`
	DeviceToken validation.Field `json:"device_token"`
	DeviceType  validation.Field `json:"device_type"`
}

type LoginInput struct {
	Email       validation.Field `json:"email"`
	Password    validation.Field `json:"password"`
	DeviceToken validation.Field `json:"device_token"`
	DeviceType  validation.Field `json:"device_type"`
}

type LogoutInput struct {
	DeviceToken validation.Field `json:"device_token"`
	DeviceType  validation.Field `json:"device_type"`
}

// Session is the result of a successful register or login.
type Session struct {
	Token string
	User  *models.User
}

// Service implements the register, login and logout flows.
type Service struct {
	users   UserRepository
	devices DeviceTokenRepository
	tokens  TokenIssuer
	hasher  PasswordHasher

	registerSchema validation.Schema
	loginSchema    validation.Schema
	logoutSchema   validation.Schema
}

func NewService(users UserRepository, devices DeviceTokenRepository, tokens TokenIssuer, hasher PasswordHasher) *Service {
	s := &Service{
		users:   users,
		devices: devices,
		tokens:  tokens,
		hasher:  hasher,
	}

	s.registerSchema = validation.Schema{
		validation.Required("name", constants.MsgNameRequired),
		validation.Tag("name", "min=2,max=100", constants.MsgNameBetween),
		validation.Required("email", constants.MsgEmailRequired),
		validation.Tag("email", "email", constants.MsgEmailFormat),
		validation.Check("email", constants.MsgEmailTaken, s.emailAvailable),
		validation.Tag("email", "max=50", constants.MsgEmailMax),
		validation.Required("password", constants.MsgPasswordRequired),
		validation.IsString("password", constants.MsgPasswordString),
		validation.Tag("password", "min=6", constants.MsgPasswordMin),
		validation.EmailAddress("email", constants.MsgEmailInvalid),
	}
	s.loginSchema = validation.Schema{
		validation.Required("email", constants.MsgEmailRequired),
		validation.Tag("email", "email", constants.MsgEmailFormat),
		validation.Required("password", constants.MsgPasswordRequired),
		validation.Required("device_token", constants.MsgDeviceTokenRequired),
		validation.Required("device_type", constants.MsgDeviceTypeRequired),
		validation.Tag("device_type", "oneof=1 2", constants.MsgDeviceTypeInvalid),
		validation.EmailAddress("email", constants.MsgEmailInvalid),
	}
	s.logoutSchema = validation.Schema{
		validation.Required("device_token", constants.MsgDeviceTokenRequired),
		validation.Required("device_type", constants.MsgDeviceTypeRequired),
		validation.Tag("device_type", "oneof=1 2", constants.MsgDeviceTypeInvalid),
	}

	return s
}

// Register creates the account, issues a token and, when a valid device is
// supplied, binds it to the new user. The user row is not rolled back if the
// device binding fails.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = trimField(in.Name)
	in.Email = trimField(in.Email)
	in.DeviceToken = trimField(in.DeviceToken)
	in.DeviceType = trimField(in.DeviceType)

	if err := s.validate(ctx, s.registerSchema, map[string]validation.Field{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
	}); err != nil {
		return nil, err
	}

	name := storedName(in.Name.Value)
	if name == "" {
		// Markup-only names have nothing left to store.
		return nil, &ValidationError{Field: "name", Message: constants.MsgNameRequired}
	}

	hash, err := s.hasher.Hash(in.Password.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	user := &models.User{
		Name:         name,
		Email:        in.Email.Value,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, &ValidationError{Field: "email", Message: constants.MsgEmailTaken}
		}
		return nil, fmt.Errorf("%w: creating user: %w", ErrPersistence, err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing token: %w", ErrPersistence, err)
	}

	if deviceType, ok := optionalDeviceType(in.DeviceToken, in.DeviceType); ok {
		device := &models.DeviceToken{
			UserID:      user.ID,
			DeviceToken: in.DeviceToken.Value,
			DeviceType:  deviceType,
		}
		if err := s.devices.CreateDeviceToken(ctx, device); err != nil {
			slog.Error("error saving device token on register", "error", err, "user_id", user.ID)
			return nil, fmt.Errorf("%w: %w", ErrDeviceTokenSave, err)
		}
	}

	return &Session{Token: token, User: user}, nil
}

// Login verifies credentials, moves the device binding to the user and
// issues a fresh token. Existence and block checks run before the password
// comparison.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = trimField(in.Email)
	in.DeviceToken = trimField(in.DeviceToken)
	in.DeviceType = trimField(in.DeviceType)

	if err := s.validate(ctx, s.loginSchema, map[string]validation.Field{
		"email":        in.Email,
		"password":     in.Password,
		"device_token": in.DeviceToken,
		"device_type":  in.DeviceType,
	}); err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByEmail(ctx, in.Email.Value)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrCredentialsMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("%w: finding user: %w", ErrPersistence, err)
	}

	if user.Blocked {
		return nil, ErrAccountBlocked
	}

	match, err := s.hasher.Compare(user.PasswordHash, in.Password.Value)
	if err != nil {
		slog.Error("error comparing password hash", "error", err, "user_id", user.ID)
	}
	if !match {
		return nil, ErrPasswordMismatch
	}

	deviceType, _ := parseDeviceType(in.DeviceType)
	device := &models.DeviceToken{
		UserID:      user.ID,
		DeviceToken: in.DeviceToken.Value,
		DeviceType:  deviceType,
	}
	if err := s.devices.UpsertDeviceToken(ctx, device); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceTokenSave, err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing token: %w", ErrPersistence, err)
	}

	return &Session{Token: token, User: user}, nil
}

// Logout invalidates the caller's token and drops the caller's binding for
// the device. Store failures past validation are logged, not returned.
func (s *Service) Logout(ctx context.Context, caller Identity, in LogoutInput) error {
	in.DeviceToken = trimField(in.DeviceToken)
	in.DeviceType = trimField(in.DeviceType)

	if err := s.validate(ctx, s.logoutSchema, map[string]validation.Field{
		"device_token": in.DeviceToken,
		"device_type":  in.DeviceType,
	}); err != nil {
		return err
	}

	if caller.UserID == "" {
		return ErrUnauthenticated
	}

	if err := s.tokens.Invalidate(ctx, caller); err != nil {
		slog.Error("error invalidating token on logout", "error", err, "user_id", caller.UserID)
	}

	deleted, err := s.devices.DeleteDeviceToken(ctx, in.DeviceToken.Value, caller.UserID)
	if err != nil {
		slog.Error("error deleting device token on logout", "error", err, "user_id", caller.UserID)
	} else if deleted > 0 {
		slog.Info("device token unbound", "user_id", caller.UserID, "count", deleted)
	}

	return nil
}

func (s *Service) emailAvailable(ctx context.Context, f validation.Field) (bool, error) {
	exists, err := s.users.EmailExists(ctx, f.Value)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *Service) validate(ctx context.Context, schema validation.Schema, values map[string]validation.Field) error {
	err := schema.Validate(ctx, values)
	if err == nil {
		return nil
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// optionalDeviceType reports whether a register request carries a usable
// device binding. Anything else is silently ignored.
func optionalDeviceType(token, deviceType validation.Field) (models.DeviceType, bool) {
	if token.Blank() || deviceType.Blank() {
		return 0, false
	}
	return parseDeviceType(deviceType)
}

func parseDeviceType(f validation.Field) (models.DeviceType, bool) {
	n, err := strconv.Atoi(f.Trimmed())
	if err != nil {
		return 0, false
	}
	t := models.DeviceType(n)
	return t, t.Valid()
}
