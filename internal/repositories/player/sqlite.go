package player

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/sqlite"
)

const errBadCredentials = "invalid username or password"

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
	cost  int
}

// SQLiteConfig contains configuration for the SQLite player repository
type SQLiteConfig struct {
	DB    *sql.DB
	Clock clock.Clock
	// BcryptCost defaults to bcrypt.DefaultCost when zero
	BcryptCost int
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.DB == nil {
		vb.RequiredField("DB")
	}
	if cfg.BcryptCost != 0 && (cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost) {
		vb.Fieldf("BcryptCost", "must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return vb.Build()
}

// NewSQLite creates a new SQLite-backed player repository
func NewSQLite(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &sqliteRepository{db: cfg.DB, clock: c, cost: cost}, nil
}

func storageError(err error, message string) error {
	return errors.WrapWithCode(err, errors.CodeInternal, message).WithReason(errors.ReasonStorage)
}

func (r *sqliteRepository) Register(ctx context.Context, input RegisterInput) (_ *RegisterOutput, err error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("username", username, vb)
	errors.ValidateRequired("email", email, vb)
	if email != "" && !strings.Contains(email, "@") {
		vb.Field("email", "must be an email address")
	}
	errors.ValidateMinLength("password", input.Password, MinPasswordLength, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), r.cost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	createdAt := r.clock.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO players (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		username, email, string(hash), createdAt.UnixMilli(),
	)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			err = errors.AlreadyExists("username or email is already registered").
				WithMeta("username", username)
			return nil, err
		}
		return nil, storageError(err, "failed to insert player")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, storageError(err, "failed to read player ID")
	}

	if err = sqlite.LogAction(ctx, tx, id, ActionRegister, username); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, storageError(err, "failed to commit player")
	}

	slog.Info("Player registered", "player_id", id)

	return &RegisterOutput{Player: &entities.Player{
		ID:        id,
		Username:  username,
		Email:     email,
		CreatedAt: createdAt,
	}}, nil
}

func (r *sqliteRepository) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, errors.Unauthenticated(errBadCredentials)
	}

	p, hash, err := r.load(ctx, `WHERE username = ?`, username)
	if errors.IsNotFound(err) {
		return nil, errors.Unauthenticated(errBadCredentials)
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)) != nil {
		slog.Warn("Login rejected", "player_id", p.ID)
		return nil, errors.Unauthenticated(errBadCredentials)
	}

	if err := sqlite.LogAction(ctx, r.db, p.ID, ActionLogin, username); err != nil {
		return nil, err
	}
	slog.Info("Player logged in", "player_id", p.ID)

	return &LoginOutput{Player: p}, nil
}

func (r *sqliteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument("player ID is required")
	}

	p, _, err := r.load(ctx, `WHERE id = ?`, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Player: p}, nil
}

func (r *sqliteRepository) load(ctx context.Context, where string, arg any) (*entities.Player, string, error) {
	var p entities.Player
	var hash string
	var createdAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM players `+where, arg,
	).Scan(&p.ID, &p.Username, &p.Email, &hash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, "", errors.NotFound("player not found")
	}
	if err != nil {
		return nil, "", storageError(err, "failed to load player")
	}
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &p, hash, nil
}
