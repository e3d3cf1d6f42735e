package sqlite

import (
	"context"
	"database/sql"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// SeedCatalog inserts the item catalog and every registered class's abilities.
// Rows that already exist are left untouched.
func SeedCatalog(ctx context.Context, db *sql.DB) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to begin catalog seed").
			WithReason(errors.ReasonStorage)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, item := range entities.Catalog() {
		if _, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO items (name, type, description, value) VALUES (?, ?, ?, ?)`,
			item.Name, item.Type, item.Description, item.Value,
		); err != nil {
			return errors.WrapWithCode(err, errors.CodeInternal, "failed to seed items").
				WithReason(errors.ReasonStorage).
				WithMeta("item", item.Name)
		}
	}

	for _, class := range entities.Classes() {
		for pos, ability := range entities.ClassAbilities(class) {
			if _, err = tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO abilities (name, class, kind, power, cooldown_ms, mana_cost, description, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				ability.Name, string(class), string(ability.Kind), ability.Power,
				ability.Cooldown.Milliseconds(), ability.ManaCost, ability.Description, pos,
			); err != nil {
				return errors.WrapWithCode(err, errors.CodeInternal, "failed to seed abilities").
					WithReason(errors.ReasonStorage).
					WithMeta("ability", ability.Name)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to commit catalog seed").
			WithReason(errors.ReasonStorage)
	}
	return nil
}
