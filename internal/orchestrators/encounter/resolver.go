// Package encounter implements the turn-based combat state machine
package encounter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/abilities"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/quest"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/random"
)

// Speakers used for narration
const (
	SpeakerBattle = "Battle System"
	SpeakerDice   = "Dice System"
	SpeakerSystem = "System"
)

// Narrator receives narration lines. *dialogue.Queue satisfies it.
type Narrator interface {
	Push(text, speaker string)
}

// Config holds the dependencies for the resolver
type Config struct {
	Player      *entities.Character
	Roller      dice.Roller
	IDGenerator idgen.Generator

	// Quests is optional; a victory completes a step of its active quest
	Quests *quest.Tracker

	// Narrator is optional
	Narrator Narrator

	// EnemyTurnDelay defaults to DefaultEnemyTurnDelay when zero
	EnemyTurnDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Player == nil {
		vb.RequiredField("Player")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EnemyTurnDelay < 0 {
		vb.Field("EnemyTurnDelay", "must not be negative")
	}

	return vb.Build()
}

// Resolver runs one encounter at a time and is reusable from Exploring. It is
// driven by a single control loop; the enemy reply is a single-shot timer
// fired from Tick.
type Resolver struct {
	player    *entities.Character
	abilities *abilities.Registry
	roller    dice.Roller
	idGen     idgen.Generator
	quests    *quest.Tracker
	narrator  Narrator
	scheduler *clock.Scheduler

	enemyTurnDelay time.Duration

	state       State
	turn        Turn
	enemy       *entities.Enemy
	encounterID string
	generation  uint64
	enemyTimer  clock.TimerID
	combatLog   []string
	lastEnemy   *EnemyAction
}

// NewResolver creates a resolver in the Exploring state
func NewResolver(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	registry, err := abilities.NewRegistry(cfg.Player)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ability registry")
	}

	delay := cfg.EnemyTurnDelay
	if delay == 0 {
		delay = DefaultEnemyTurnDelay
	}

	return &Resolver{
		player:         cfg.Player,
		abilities:      registry,
		roller:         cfg.Roller,
		idGen:          cfg.IDGenerator,
		quests:         cfg.Quests,
		narrator:       cfg.Narrator,
		scheduler:      clock.NewScheduler(),
		enemyTurnDelay: delay,
		state:          StateExploring,
		turn:           TurnNone,
	}, nil
}

func (r *Resolver) narrate(speaker, format string, args ...interface{}) {
	if r.narrator != nil {
		r.narrator.Push(fmt.Sprintf(format, args...), speaker)
	}
}

func (r *Resolver) logLine(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	r.combatLog = append([]string{line}, r.combatLog...)
	if len(r.combatLog) > CombatLogCapacity {
		r.combatLog = r.combatLog[:CombatLogCapacity]
	}
}

func (r *Resolver) overError() error {
	return errors.FailedPreconditionf("encounter already ended in %s", r.state).
		WithReason(errors.ReasonEncounterOver).
		WithMeta("encounter_state", string(r.state))
}

func (r *Resolver) rollD20() (int, error) {
	v, err := r.roller.Roll(DieSides)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll d20")
	}
	return v, nil
}

// StartCombat begins an encounter against a copy of enemy. Only valid from
// Exploring.
func (r *Resolver) StartCombat(enemy *entities.Enemy) (string, error) {
	switch r.state {
	case StateCombat:
		return "", errors.FailedPrecondition("combat already in progress").
			WithReason(errors.ReasonWrongPhase)
	case StateVictory, StateDefeat:
		return "", r.overError()
	}
	if enemy == nil {
		return "", errors.InvalidArgument("enemy is required")
	}
	if enemy.MaxHealth <= 0 {
		return "", errors.InvalidArgumentf("enemy %q needs positive max health", enemy.Name)
	}

	e := enemy.Clone()
	if e.Health <= 0 || e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}

	r.generation++
	r.encounterID = r.idGen.Generate()
	r.enemy = e
	r.combatLog = nil
	r.lastEnemy = nil
	r.state = StateCombat
	r.turn = TurnPlayer

	slog.Info("Combat started",
		"encounter_id", r.encounterID,
		"enemy", e.Name,
		"enemy_health", e.Health,
	)
	r.narrate(SpeakerBattle, "COMBAT STARTED! %s advances!", e.Name)
	r.narrate(SpeakerBattle, "Type: %s | Weakness: %s", e.Type, e.Weakness)

	return r.encounterID, nil
}

// UseAbility performs the player's action with the ability at idx. In
// Exploring, heals apply to the caster and other abilities are spent with no
// target.
func (r *Resolver) UseAbility(idx int) (*ActionResult, error) {
	switch r.state {
	case StateVictory, StateDefeat:
		return nil, r.overError()
	case StateExploring:
		return r.useOutsideCombat(idx)
	}

	if r.turn != TurnPlayer {
		return nil, errors.FailedPrecondition("it is not your turn").
			WithReason(errors.ReasonNotYourTurn)
	}

	// Dice are rolled before Use so a roller failure spends nothing
	if err := r.abilities.Check(idx); err != nil {
		return nil, err
	}
	ability, _ := r.abilities.Get(idx)

	var roll, secondary int
	if ability.IsDamage() {
		var err error
		if roll, err = r.rollD20(); err != nil {
			return nil, err
		}
		if secondary, err = r.rollD20(); err != nil {
			return nil, err
		}
	}

	effect, err := r.abilities.Use(idx)
	if err != nil {
		return nil, err
	}

	result := &ActionResult{Ability: effect.Ability}
	switch {
	case effect.IsHeal():
		result.Healed = r.player.Heal(-effect.Magnitude)
		r.logLine("%s restores %d health", effect.Ability, result.Healed)
	case effect.IsDamage():
		r.resolveAttack(effect, roll, secondary, result)
	default:
		r.logLine("%s takes effect", effect.Ability)
	}
	result.EnemyHealth = r.enemy.Health

	if !r.enemy.Alive() {
		reward, err := r.victory()
		result.Victory = true
		result.Reward = reward
		return result, err
	}

	r.turn = TurnEnemy
	gen := r.generation
	r.enemyTimer = r.scheduler.After(r.enemyTurnDelay, func() {
		r.enemyTurn(gen)
	})

	return result, nil
}

func (r *Resolver) resolveAttack(effect *abilities.Effect, roll, secondary int, result *ActionResult) {
	result.Roll = roll
	result.Secondary = secondary
	result.Critical = roll == CriticalRoll
	result.Fumble = roll == FumbleRoll
	result.Hit = roll+r.player.Level >= HitThreshold

	if result.Critical {
		r.narrate(SpeakerDice, "CRITICAL! The gods smile upon you!")
	} else if result.Fumble {
		r.narrate(SpeakerDice, "CRITICAL FAILURE! Fate turns against you!")
	}

	if !result.Hit {
		r.logLine("%s misses! (%d+%d)", effect.Ability, roll, r.player.Level)
		return
	}

	dmg := effect.Magnitude + r.player.Level/2 + secondary/VarianceDivisor
	result.Damage = r.enemy.TakeDamage(dmg)
	r.logLine("%s hits! %d damage to %s", effect.Ability, result.Damage, r.enemy.Name)
}

func (r *Resolver) useOutsideCombat(idx int) (*ActionResult, error) {
	effect, err := r.abilities.Use(idx)
	if err != nil {
		return nil, err
	}

	result := &ActionResult{Ability: effect.Ability}
	if effect.IsHeal() {
		result.Healed = r.player.Heal(-effect.Magnitude)
		r.narrate(r.player.Name, "%s restores %d health!", effect.Ability, result.Healed)
	}
	return result, nil
}

func (r *Resolver) victory() (*Reward, error) {
	enemy := r.enemy
	r.state = StateVictory
	r.turn = TurnNone
	r.enemy = nil

	reward := &Reward{
		Enemy:      enemy.Name,
		Experience: enemy.MaxHealth / 3,
	}
	reward.LevelsGained = r.player.GainExperience(reward.Experience)

	gold, err := random.Between(r.roller, GoldRewardMin, GoldRewardMax)
	if err != nil {
		return reward, errors.Wrap(err, "failed to roll gold reward")
	}
	reward.Gold = gold
	r.player.Gold += gold

	slog.Info("Encounter resolved",
		"encounter_id", r.encounterID,
		"encounter_state", string(r.state),
		"experience", reward.Experience,
		"gold", reward.Gold,
		"levels_gained", reward.LevelsGained,
	)
	r.narrate(SpeakerBattle, "Victory! %s was defeated!", enemy.Name)
	r.narrate(SpeakerBattle, "+%d EXP | +%d Gold", reward.Experience, reward.Gold)
	if reward.LevelsGained > 0 {
		r.narrate(SpeakerSystem, "%s reached level %d!", r.player.Name, r.player.Level)
	}

	if r.quests != nil {
		if active := r.quests.Current(); active != nil {
			step, err := r.quests.CompleteStep(active.Title)
			if err != nil {
				return reward, errors.Wrap(err, "failed to advance quest")
			}
			reward.QuestTitle = step.Title
			reward.QuestProgress = step.Progress
			reward.QuestReward = step.Reward
		}
	}

	return reward, nil
}

// enemyTurn is the timer callback. A callback from an earlier encounter, or
// one that fires after the encounter left Combat, does nothing.
func (r *Resolver) enemyTurn(gen uint64) {
	if gen != r.generation || r.state != StateCombat || r.turn != TurnEnemy || r.enemy == nil {
		return
	}

	roll, err := r.rollD20()
	if err != nil {
		slog.Error("Enemy turn failed, returning turn to player",
			"encounter_id", r.encounterID,
			"error", err,
		)
		r.turn = TurnPlayer
		return
	}

	dmg := r.enemy.Attack + roll/EnemyVarianceDivisor
	if dmg < 1 {
		dmg = 1
	}
	applied := r.player.TakeDamage(dmg)
	r.logLine("%s attacks! %d damage!", r.enemy.Name, applied)

	action := &EnemyAction{
		Enemy:    r.enemy.Name,
		Roll:     roll,
		Damage:   applied,
		PlayerHP: r.player.Stats.Health,
	}

	if !r.player.Alive() {
		action.Defeat = true
		r.state = StateDefeat
		r.turn = TurnNone
		r.enemy = nil
		slog.Info("Encounter resolved",
			"encounter_id", r.encounterID,
			"encounter_state", string(r.state),
		)
		r.narrate(SpeakerBattle, "You have been defeated... darkness consumes your spirit.")
	} else {
		r.turn = TurnPlayer
	}
	r.lastEnemy = action
}

// Tick advances ability cooldowns and fires due timers
func (r *Resolver) Tick(elapsed time.Duration) {
	r.abilities.Tick(elapsed)
	r.scheduler.Advance(elapsed)
}

// Flee abandons the current combat and discards the enemy
func (r *Resolver) Flee() error {
	if r.state != StateCombat {
		return errors.FailedPreconditionf("cannot flee while %s", r.state).
			WithReason(errors.ReasonNotInCombat)
	}

	r.scheduler.Cancel(r.enemyTimer)
	r.generation++
	r.state = StateExploring
	r.turn = TurnNone
	r.enemy = nil

	slog.Info("Fled combat", "encounter_id", r.encounterID)
	r.narrate(SpeakerBattle, "You escape the fight.")
	return nil
}

// Reset returns a finished encounter to Exploring. After a defeat the player
// is restored to full health and mana.
func (r *Resolver) Reset() error {
	switch r.state {
	case StateExploring:
		return nil
	case StateCombat:
		return errors.FailedPrecondition("combat in progress, flee first").
			WithReason(errors.ReasonWrongPhase)
	case StateDefeat:
		r.player.Heal(r.player.Stats.MaxHealth)
		r.player.RestoreMana(r.player.Stats.MaxMana)
	}

	r.generation++
	r.state = StateExploring
	r.turn = TurnNone
	r.enemy = nil
	return nil
}

// SkillCheck rolls a d20 against difficulty. A non-positive difficulty uses
// DefaultSkillDifficulty. Criticals and fumbles only change narration.
func (r *Resolver) SkillCheck(difficulty int) (*SkillCheckResult, error) {
	if difficulty <= 0 {
		difficulty = DefaultSkillDifficulty
	}
	roll, err := r.rollD20()
	if err != nil {
		return nil, err
	}

	result := &SkillCheckResult{
		Roll:       roll,
		Difficulty: difficulty,
		Success:    roll >= difficulty,
		Critical:   roll == CriticalRoll,
		Fumble:     roll == FumbleRoll,
	}

	switch {
	case result.Critical:
		r.narrate(SpeakerDice, "CRITICAL! The gods smile upon you!")
	case result.Success:
		r.narrate(SpeakerDice, "Success! %d beats difficulty %d", roll, difficulty)
	case result.Fumble:
		r.narrate(SpeakerDice, "CRITICAL FAILURE! Fate turns against you!")
	default:
		r.narrate(SpeakerDice, "Failure... %d is not enough", roll)
	}

	return result, nil
}

// UsePotion drinks a health or mana potion from the player's inventory. It
// does not use up the player's turn.
func (r *Resolver) UsePotion(item string) (*PotionResult, error) {
	if r.state == StateDefeat || r.state == StateVictory {
		return nil, r.overError()
	}

	var restore func(int) int
	var amount int
	switch item {
	case entities.ItemHealthPotion:
		restore, amount = r.player.Heal, HealthPotionRestore
	case entities.ItemManaPotion:
		restore, amount = r.player.RestoreMana, ManaPotionRestore
	default:
		return nil, errors.InvalidArgumentf("%q is not a potion", item)
	}

	if r.player.Inventory == nil || !r.player.Inventory.Remove(item) {
		r.narrate(SpeakerSystem, "No %s in the inventory!", item)
		return nil, errors.FailedPreconditionf("no %s left", item).
			WithReason(errors.ReasonNoPotion)
	}

	result := &PotionResult{
		Item:      item,
		Restored:  restore(amount),
		Remaining: r.player.Inventory.Quantity(item),
	}
	r.narrate(r.player.Name, "%s restores %d!", item, result.Restored)
	return result, nil
}

// State returns the current state
func (r *Resolver) State() State {
	return r.state
}

// Turn returns whose turn it is
func (r *Resolver) Turn() Turn {
	return r.turn
}

// EncounterID returns the ID of the latest encounter
func (r *Resolver) EncounterID() string {
	return r.encounterID
}

// Enemy returns a copy of the current enemy, or nil outside combat
func (r *Resolver) Enemy() *entities.Enemy {
	return r.enemy.Clone()
}

// LastEnemyAction returns the most recent enemy reply of this encounter
func (r *Resolver) LastEnemyAction() *EnemyAction {
	if r.lastEnemy == nil {
		return nil
	}
	cp := *r.lastEnemy
	return &cp
}

// CombatLog returns the bounded combat log, newest first
func (r *Resolver) CombatLog() []string {
	out := make([]string, len(r.combatLog))
	copy(out, r.combatLog)
	return out
}

// Abilities returns the ability states for display
func (r *Resolver) Abilities() []abilities.Status {
	return r.abilities.Snapshot()
}

// PendingTimers returns the number of queued timer callbacks
func (r *Resolver) PendingTimers() int {
	return r.scheduler.Pending()
}
