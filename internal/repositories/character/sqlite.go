package character

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/attributes"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/sqlite"
)

const characterColumns = `id, player_id, name, class, level, experience, experience_to_next, gold,
	strength, dexterity, constitution, intelligence, health, max_health, mana, max_mana,
	weakness, primary_ability`

type sqliteRepository struct {
	db     *sql.DB
	roller attributes.Service
	clock  clock.Clock
}

// SQLiteConfig contains configuration for the SQLite character repository
type SQLiteConfig struct {
	DB     *sql.DB
	Roller attributes.Service
	Clock  clock.Clock
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
	if cfg.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

// NewSQLite creates a new SQLite-backed character repository
func NewSQLite(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &sqliteRepository{
		db:     cfg.DB,
		roller: cfg.Roller,
		clock:  c,
	}, nil
}

// storageError classifies a failed statement. Constraint failures are
// integrity errors; everything else is a generic storage error.
func storageError(err error, message string) error {
	if sqlite.IsConstraintViolation(err) {
		return errors.WrapWithCode(err, errors.CodeAborted, message).WithReason(errors.ReasonIntegrity)
	}
	return errors.WrapWithCode(err, errors.CodeInternal, message).WithReason(errors.ReasonStorage)
}

func (r *sqliteRepository) CreateCharacter(ctx context.Context, input CreateInput) (_ *CreateOutput, err error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.InvalidArgument("character name is required").WithReason(errors.ReasonEmptyName)
	}
	spec, ok := entities.LookupClass(input.Class)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown class %q", input.Class).WithReason(errors.ReasonInvalidClass)
	}
	if input.PlayerID <= 0 {
		return nil, errors.InvalidArgument("player ID is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("Rollback failed", "player_id", input.PlayerID, "error", rbErr)
			}
		}
	}()

	var existing int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM characters WHERE player_id = ? AND name = ?`, input.PlayerID, name,
	).Scan(&existing)
	switch {
	case err == nil:
		err = duplicateName(input.PlayerID, name)
		return nil, err
	case err != sql.ErrNoRows:
		return nil, storageError(err, "failed to check character name")
	}

	stats, err := r.roller.Roll(spec.Class)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll attributes")
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO characters (player_id, name, class, level, experience, experience_to_next, gold,
		   strength, dexterity, constitution, intelligence, health, max_health, mana, max_mana,
		   weakness, primary_ability, created_at)
		 VALUES (?, ?, ?, ?, 0, ?, 0, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.PlayerID, name, string(spec.Class), entities.StartingLevel, entities.StartingExperienceToNext,
		stats.Strength, stats.Dexterity, stats.Constitution, stats.Intelligence,
		stats.Health, stats.MaxHealth, stats.Mana, stats.MaxMana,
		stats.Weakness, spec.PrimaryAbility, r.clock.Now().UTC().UnixMilli(),
	)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			err = duplicateName(input.PlayerID, name)
			return nil, err
		}
		return nil, storageError(err, "failed to insert character")
	}
	characterID, err := res.LastInsertId()
	if err != nil {
		return nil, storageError(err, "failed to read character ID")
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO inventories (character_id, capacity) VALUES (?, ?)`,
		characterID, entities.DefaultInventoryCapacity,
	)
	if err != nil {
		return nil, storageError(err, "failed to insert inventory")
	}
	inventoryID, err := res.LastInsertId()
	if err != nil {
		return nil, storageError(err, "failed to read inventory ID")
	}

	if err = r.attachAbilities(ctx, tx, characterID, spec); err != nil {
		return nil, err
	}
	if err = r.attachStartingItems(ctx, tx, inventoryID, spec); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, storageError(err, "failed to commit character")
	}

	slog.Info("Character created",
		"player_id", input.PlayerID,
		"character_id", characterID,
		"class", string(spec.Class),
	)

	return &CreateOutput{CharacterID: characterID, Stats: *stats}, nil
}

func duplicateName(playerID int64, name string) error {
	return errors.AlreadyExistsf("a character named %q already exists", name).
		WithReason(errors.ReasonDuplicateName).
		WithMeta("player_id", playerID)
}

func (r *sqliteRepository) attachAbilities(ctx context.Context, tx *sql.Tx, characterID int64, spec *entities.ClassSpec) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM abilities WHERE class = ? ORDER BY position`, string(spec.Class))
	if err != nil {
		return storageError(err, "failed to look up class abilities")
	}
	var abilityIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return storageError(err, "failed to scan ability")
		}
		abilityIDs = append(abilityIDs, id)
	}
	if err := rows.Close(); err != nil {
		return storageError(err, "failed to read class abilities")
	}
	if err := rows.Err(); err != nil {
		return storageError(err, "failed to read class abilities")
	}
	if len(abilityIDs) == 0 {
		return errors.Newf(errors.CodeAborted, "no abilities are registered for %s", spec.Class).
			WithReason(errors.ReasonIntegrity)
	}

	for _, id := range abilityIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO character_abilities (character_id, ability_id, remaining_cooldown_ms) VALUES (?, ?, 0)`,
			characterID, id,
		); err != nil {
			return storageError(err, "failed to attach ability")
		}
	}
	return nil
}

func (r *sqliteRepository) attachStartingItems(ctx context.Context, tx *sql.Tx, inventoryID int64, spec *entities.ClassSpec) error {
	for _, name := range spec.StartingItems {
		var itemID int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM items WHERE name = ?`, name).Scan(&itemID)
		if err == sql.ErrNoRows {
			return errors.Newf(errors.CodeAborted, "starting item %q is not in the catalog", name).
				WithReason(errors.ReasonIntegrity)
		}
		if err != nil {
			return storageError(err, "failed to look up starting item")
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_items (inventory_id, item_id, quantity) VALUES (?, ?, 1)`,
			inventoryID, itemID,
		); err != nil {
			return storageError(err, "failed to attach starting item")
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (*entities.Character, error) {
	var c entities.Character
	var class string
	err := row.Scan(
		&c.ID, &c.PlayerID, &c.Name, &class, &c.Level, &c.Experience, &c.ExperienceToNext, &c.Gold,
		&c.Stats.Strength, &c.Stats.Dexterity, &c.Stats.Constitution, &c.Stats.Intelligence,
		&c.Stats.Health, &c.Stats.MaxHealth, &c.Stats.Mana, &c.Stats.MaxMana,
		&c.Stats.Weakness, &c.PrimaryAbility,
	)
	if err != nil {
		return nil, err
	}
	c.Class = entities.Class(class)
	return &c, nil
}

func (r *sqliteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument("character ID is required")
	}

	c, err := scanCharacter(r.db.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = ?`, input.ID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("character %d not found", input.ID)
	}
	if err != nil {
		return nil, storageError(err, "failed to get character")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		abilities, err := r.loadAbilities(gctx, c.ID)
		if err != nil {
			return err
		}
		c.Abilities = abilities
		return nil
	})
	g.Go(func() error {
		inventory, err := r.loadInventory(gctx, c.ID)
		if err != nil {
			return err
		}
		c.Inventory = inventory
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GetOutput{Character: c}, nil
}

func (r *sqliteRepository) loadAbilities(ctx context.Context, characterID int64) ([]*entities.Ability, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.name, a.description, a.kind, a.power, a.cooldown_ms, a.mana_cost, ca.remaining_cooldown_ms
		 FROM character_abilities ca
		 JOIN abilities a ON a.id = ca.ability_id
		 WHERE ca.character_id = ?
		 ORDER BY a.position`, characterID)
	if err != nil {
		return nil, storageError(err, "failed to load abilities")
	}
	defer rows.Close()

	var out []*entities.Ability
	for rows.Next() {
		var a entities.Ability
		var kind string
		var cooldownMS, remainingMS int64
		if err := rows.Scan(&a.Name, &a.Description, &kind, &a.Power, &cooldownMS, &a.ManaCost, &remainingMS); err != nil {
			return nil, storageError(err, "failed to scan ability")
		}
		a.Kind = entities.AbilityKind(kind)
		a.Cooldown = millis(cooldownMS)
		a.Remaining = millis(remainingMS)
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to load abilities")
	}
	return out, nil
}

func (r *sqliteRepository) loadInventory(ctx context.Context, characterID int64) (*entities.Inventory, error) {
	inv := &entities.Inventory{Items: make(map[string]int)}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, capacity FROM inventories WHERE character_id = ?`, characterID,
	).Scan(&inv.ID, &inv.Capacity)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.CodeDataLoss, "character has no inventory").
			WithReason(errors.ReasonIntegrity).
			WithMeta("character_id", characterID)
	}
	if err != nil {
		return nil, storageError(err, "failed to load inventory")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT i.name, ii.quantity
		 FROM inventory_items ii
		 JOIN items i ON i.id = ii.item_id
		 WHERE ii.inventory_id = ?`, inv.ID)
	if err != nil {
		return nil, storageError(err, "failed to load inventory items")
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var qty int
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, storageError(err, "failed to scan inventory item")
		}
		inv.Items[name] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to load inventory items")
	}
	return inv, nil
}

func (r *sqliteRepository) ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input.PlayerID <= 0 {
		return nil, errors.InvalidArgument("player ID is required")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE player_id = ? ORDER BY id`, input.PlayerID)
	if err != nil {
		return nil, storageError(err, "failed to list characters")
	}
	defer rows.Close()

	characters := make([]*entities.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, storageError(err, "failed to scan character")
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to list characters")
	}

	return &ListByPlayerOutput{Characters: characters}, nil
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
