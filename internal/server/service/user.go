package service

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/newsdeskhq/newsdesk/internal/nderror"
	"github.com/newsdeskhq/newsdesk/internal/server/serializer"
	"github.com/pkg/errors"
)

type (
	// CreateUserParams are used to create a user.
	CreateUserParams struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
	}

	// UpdateUserParams are used to partially update a user.
	// Nil fields are left untouched.
	UpdateUserParams struct {
		FirstName *string `json:"first_name"`
		Password  *string `json:"password"`
	}

	// LoginParams are used to authenticate a user.
	LoginParams struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// A UserService handles the users resource workflows.
	UserService struct {
		db         database.Client
		signingKey []byte
		tokenTTL   time.Duration
	}
)

// NewUser returns a new UserService.
func NewUser(db database.Client, signingKey []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		db:         db,
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
	}
}

// Create registers a new user. The username becomes the resource key
// and cannot be changed afterwards.
func (s *UserService) Create(params CreateUserParams) (Render, error) {
	// Check if the username is free to use.
	u, err := s.db.FindUserByUsername(params.Username)
	if err != nil && !s.db.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not get access to database")
	}
	if u != nil {
		return nil, nderror.Conflict("unique-username", "This username is already registered.")
	}

	user := model.NewUser()
	user.Username = params.Username
	user.FirstName = params.FirstName

	user.Password, err = argon2.GenerateFromPasswordString(params.Password, argon2.Default)
	if err != nil {
		return nil, errors.Wrap(err, "could not store user password safe")
	}
	user.PasswordUpdatedAt = time.Now().Unix()

	if err := s.db.Save(user); err != nil {
		return nil, errors.Wrap(err, "could not persist user")
	}

	return serializer.User(user), nil
}

// Update applies a partial update on the given user.
func (s *UserService) Update(user *model.User, params UpdateUserParams) (Render, error) {
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}

	if params.Password != nil {
		pw, err := argon2.GenerateFromPasswordString(*params.Password, argon2.Default)
		if err != nil {
			return nil, errors.Wrap(err, "could not store user password safe")
		}
		user.Password = pw
		user.PasswordUpdatedAt = time.Now().Unix()
	}

	if err := s.db.Save(user); err != nil {
		return nil, errors.Wrap(err, "could not persist user")
	}

	return serializer.User(user), nil
}

// Login authenticates a user and returns a JWT with its render.
func (s *UserService) Login(params LoginParams) (Render, error) {
	user, err := s.db.FindUserByUsername(params.Username)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, nderror.NewWithTagCode(http.StatusUnauthorized, "invalid-auth", "Invalid username or password.")
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return nil, nderror.NewWithTagCode(http.StatusUnauthorized, "invalid-auth", "Invalid username or password.")
		}
		return nil, errors.Wrap(err, "could not validate password")
	}

	token, err := s.TokenFromUser(user)
	if err != nil {
		return nil, err
	}

	return M{
		"token": token,
		"user":  serializer.User(user),
	}, nil
}

// TokenFromUser generates a JWT for the given user.
func (s *UserService) TokenFromUser(u *model.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_uuid": u.ID,
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.signingKey)
	return signed, errors.Wrap(err, "could not sign token")
}
