package usecases

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"seaboo-server/config"
	"seaboo-server/internal/module/user/models/entity"
	"seaboo-server/internal/module/user/models/request"
	"seaboo-server/internal/module/user/models/response"
	"seaboo-server/internal/module/user/repositories"
	"seaboo-server/internal/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12

	demoEmail    = "demo@seaboo.it"
	demoPassword = "SeaBooDemo2025!"

	appleIssuer = "https://appleid.apple.com"
)

type usecase struct {
	repo       repositories.Repositories
	log        *otelzap.Logger
	cfgApple   *config.AppleConfig
	cfgSession *config.SessionConfig
}

type Usecase interface {
	Register(ctx context.Context, payload *request.Register) (response.Auth, error)
	Login(ctx context.Context, payload *request.Login) (response.Auth, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID int64) (response.User, error)
	AppleSignIn(ctx context.Context, payload *request.AppleSignIn) (response.Auth, error)
	CreateDemoAccount(ctx context.Context) (response.DemoAccount, error)
}

func New(repo repositories.Repositories, log *otelzap.Logger, cfgApple *config.AppleConfig, cfgSession *config.SessionConfig) Usecase {
	return &usecase{
		repo:       repo,
		log:        log,
		cfgApple:   cfgApple,
		cfgSession: cfgSession,
	}
}

func (u *usecase) Register(ctx context.Context, payload *request.Register) (response.Auth, error) {
	existing, err := u.repo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return response.Auth{}, err
	}
	if existing.ID != 0 {
		return response.Auth{}, errors.BadRequest("Email già registrata")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		return response.Auth{}, errors.InternalServerError("error hash password")
	}

	role := payload.Role
	if role == "" {
		role = entity.RoleUser
	}

	user := entity.User{
		Email:        payload.Email,
		Password:     string(hash),
		FirstName:    nullString(payload.FirstName),
		LastName:     nullString(payload.LastName),
		Role:         role,
		BusinessName: nullString(payload.BusinessName),
	}

	user, err = u.repo.InsertUser(ctx, user)
	if err != nil {
		return response.Auth{}, err
	}

	token, err := u.openSession(ctx, user)
	if err != nil {
		return response.Auth{}, err
	}

	redirectTo := "/home"
	if role == entity.RoleOwner {
		redirectTo = "/owner/dashboard"
	}

	return response.Auth{
		User:       toUserResponse(user),
		Token:      token,
		RedirectTo: redirectTo,
	}, nil
}

func (u *usecase) Login(ctx context.Context, payload *request.Login) (response.Auth, error) {
	user, err := u.repo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return response.Auth{}, err
	}
	if user.ID == 0 {
		return response.Auth{}, errors.UnauthorizedError("Email o password non validi")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return response.Auth{}, errors.UnauthorizedError("Email o password non validi")
	}

	token, err := u.openSession(ctx, user)
	if err != nil {
		return response.Auth{}, err
	}

	return response.Auth{
		User:  toUserResponse(user),
		Token: token,
	}, nil
}

func (u *usecase) Logout(ctx context.Context, token string) error {
	return u.repo.DeleteSession(ctx, token)
}

func (u *usecase) Profile(ctx context.Context, userID int64) (response.User, error) {
	user, err := u.repo.FindUserByID(ctx, userID)
	if err != nil {
		return response.User{}, err
	}
	if user.ID == 0 {
		return response.User{}, errors.NotFound("Utente non trovato")
	}
	return toUserResponse(user), nil
}

// AppleSignIn verifies a Sign in with Apple identity token against Apple's
// published keys and provisions a local account on first sign-in.
func (u *usecase) AppleSignIn(ctx context.Context, payload *request.AppleSignIn) (response.Auth, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(payload.IdentityToken, claims, u.appleKeyFunc(ctx),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(u.cfgApple.BundleID),
		jwt.WithIssuer(appleIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("apple identity token rejected: %v", err))
		return response.Auth{}, errors.UnauthorizedError("Token Apple non valido")
	}

	if payload.Nonce != "" {
		nonce, _ := claims["nonce"].(string)
		if nonce != payload.Nonce {
			return response.Auth{}, errors.UnauthorizedError("Token Apple non valido")
		}
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if email == "" && payload.User != nil {
		email = payload.User.Email
	}
	if email == "" {
		return response.Auth{}, errors.BadRequest("Email Apple non disponibile")
	}

	user, err := u.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return response.Auth{}, err
	}

	if user.ID == 0 {
		// Apple users never log in with a password; store a random one.
		password, err := randomPassword()
		if err != nil {
			return response.Auth{}, errors.InternalServerError("error generate password")
		}
		hash, err := bcrypt.GenerateFromPassword(password, bcryptCost)
		if err != nil {
			return response.Auth{}, errors.InternalServerError("error hash password")
		}

		var firstName, lastName string
		if payload.User != nil && payload.User.Name != nil {
			firstName = payload.User.Name.FirstName
			lastName = payload.User.Name.LastName
		}

		username := "apple_" + sub
		if len(sub) > 10 {
			username = "apple_" + sub[:10]
		}

		user, err = u.repo.InsertUser(ctx, entity.User{
			Email:     email,
			Password:  string(hash),
			FirstName: nullString(firstName),
			LastName:  nullString(lastName),
			Username:  nullString(username),
			Role:      entity.RoleUser,
		})
		if err != nil {
			return response.Auth{}, err
		}
	}

	token, err := u.openSession(ctx, user)
	if err != nil {
		return response.Auth{}, err
	}

	return response.Auth{
		User:  toUserResponse(user),
		Token: token,
	}, nil
}

func (u *usecase) CreateDemoAccount(ctx context.Context) (response.DemoAccount, error) {
	credentials := response.DemoCredentials{Email: demoEmail, Password: demoPassword}

	existing, err := u.repo.FindUserByEmail(ctx, demoEmail)
	if err != nil {
		return response.DemoAccount{}, err
	}
	if existing.ID != 0 {
		return response.DemoAccount{Message: "Account demo già esistente", Credentials: credentials}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcryptCost)
	if err != nil {
		return response.DemoAccount{}, errors.InternalServerError("error hash password")
	}

	_, err = u.repo.InsertUser(ctx, entity.User{
		Email:     demoEmail,
		Password:  string(hash),
		FirstName: nullString("Demo"),
		LastName:  nullString("User"),
		Role:      entity.RoleUser,
	})
	if err != nil {
		return response.DemoAccount{}, err
	}

	return response.DemoAccount{Message: "Account demo creato", Credentials: credentials}, nil
}

func (u *usecase) openSession(ctx context.Context, user entity.User) (string, error) {
	ttl := time.Duration(u.cfgSession.TTLHours) * time.Hour
	session := entity.Session{
		Token:        uuid.NewString(),
		UserID:       user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName.String,
		LastName:     user.LastName.String,
		Role:         user.Role,
		BusinessName: user.BusinessName.String,
		ExpiresAt:    time.Now().Add(ttl),
	}
	if err := u.repo.StoreSession(ctx, session, ttl); err != nil {
		return "", err
	}
	return session.Token, nil
}

func (u *usecase) appleKeyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)

		jwks, err := u.repo.FetchAppleJWKS(ctx)
		if err != nil {
			return nil, err
		}

		for _, key := range jwks.Keys {
			if key.Kid != kid {
				continue
			}
			n, err := base64.RawURLEncoding.DecodeString(key.N)
			if err != nil {
				return nil, fmt.Errorf("invalid jwk modulus: %w", err)
			}
			e, err := base64.RawURLEncoding.DecodeString(key.E)
			if err != nil {
				return nil, fmt.Errorf("invalid jwk exponent: %w", err)
			}
			return &rsa.PublicKey{
				N: new(big.Int).SetBytes(n),
				E: int(new(big.Int).SetBytes(e).Int64()),
			}, nil
		}

		return nil, fmt.Errorf("no apple key matches kid %q", kid)
	}
}

func toUserResponse(user entity.User) response.User {
	return response.User{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName.String,
		LastName:     user.LastName.String,
		Role:         user.Role,
		UserType:     user.UserType(),
		BusinessName: user.BusinessName.String,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func randomPassword() ([]byte, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return []byte(hex.EncodeToString(buf)), nil
}
