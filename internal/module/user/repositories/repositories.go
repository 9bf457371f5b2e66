package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"seaboo-server/config"
	"seaboo-server/internal/module/user/models/entity"
	"seaboo-server/internal/module/user/models/response"
	"seaboo-server/internal/pkg/errors"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type repositories struct {
	db          *sqlx.DB
	log         *otelzap.Logger
	httpClient  *circuit.HTTPClient
	redisClient *redis.Client
	cfgApple    *config.AppleConfig
}

type Repositories interface {
	// db
	FindUserByEmail(ctx context.Context, email string) (entity.User, error)
	FindUserByID(ctx context.Context, id int64) (entity.User, error)
	InsertUser(ctx context.Context, user entity.User) (entity.User, error)
	// redis
	StoreSession(ctx context.Context, session entity.Session, ttl time.Duration) error
	FindSessionByToken(ctx context.Context, token string) (entity.Session, error)
	DeleteSession(ctx context.Context, token string) error
	// http
	FetchAppleJWKS(ctx context.Context) (response.AppleJWKS, error)
}

func New(db *sqlx.DB, log *otelzap.Logger, httpClient *circuit.HTTPClient, redisClient *redis.Client, cfgApple *config.AppleConfig) Repositories {
	return &repositories{
		db:          db,
		log:         log,
		httpClient:  httpClient,
		redisClient: redisClient,
		cfgApple:    cfgApple,
	}
}

// FindUserByEmail implements Repositories. A missing user is not an error:
// the zero-value User (ID == 0) is returned instead.
func (r *repositories) FindUserByEmail(ctx context.Context, email string) (entity.User, error) {
	query := `SELECT * FROM users WHERE email = $1`
	var user entity.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err == sql.ErrNoRows {
		return entity.User{}, nil
	}
	if err != nil {
		return entity.User{}, errors.InternalServerError("error find user by email")
	}
	return user, nil
}

// FindUserByID implements Repositories.
func (r *repositories) FindUserByID(ctx context.Context, id int64) (entity.User, error) {
	query := `SELECT * FROM users WHERE id = $1`
	var user entity.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return entity.User{}, nil
	}
	if err != nil {
		return entity.User{}, errors.InternalServerError("error find user by id")
	}
	return user, nil
}

// InsertUser implements Repositories.
func (r *repositories) InsertUser(ctx context.Context, user entity.User) (entity.User, error) {
	query := `
		INSERT INTO users (email, password, first_name, last_name, username, role, business_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName, user.Username, user.Role, user.BusinessName,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return entity.User{}, errors.InternalServerError("error insert user")
	}
	return user, nil
}

// StoreSession implements Repositories.
func (r *repositories) StoreSession(ctx context.Context, session entity.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return errors.InternalServerError("error marshal session")
	}
	if err := r.redisClient.Set(ctx, sessionKey(session.Token), payload, ttl).Err(); err != nil {
		return errors.InternalServerError("error store session")
	}
	return nil
}

// FindSessionByToken implements Repositories.
func (r *repositories) FindSessionByToken(ctx context.Context, token string) (entity.Session, error) {
	data, err := r.redisClient.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return entity.Session{}, errors.UnauthorizedError("Non autenticato")
	}
	if err != nil {
		return entity.Session{}, errors.InternalServerError("error find session")
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return entity.Session{}, errors.InternalServerError("error unmarshal session")
	}
	return session, nil
}

// DeleteSession implements Repositories.
func (r *repositories) DeleteSession(ctx context.Context, token string) error {
	if err := r.redisClient.Del(ctx, sessionKey(token)).Err(); err != nil {
		return errors.InternalServerError("error delete session")
	}
	return nil
}

// FetchAppleJWKS implements Repositories.
func (r *repositories) FetchAppleJWKS(ctx context.Context) (response.AppleJWKS, error) {
	resp, err := r.httpClient.Get(r.cfgApple.JWKSURL)
	if err != nil {
		return response.AppleJWKS{}, errors.InternalServerError("error fetch apple jwks")
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		r.log.Ctx(ctx).Error(fmt.Sprintf("apple jwks endpoint returned status %d", resp.StatusCode))
		return response.AppleJWKS{}, errors.InternalServerError("error fetch apple jwks")
	}

	var jwks response.AppleJWKS
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&jwks); err != nil {
		return response.AppleJWKS{}, errors.InternalServerError("error decode apple jwks")
	}
	return jwks, nil
}

func sessionKey(token string) string {
	return "session:" + token
}
