package encounter

import "time"

// State is the encounter state machine position
type State string

// Encounter states
const (
	StateExploring State = "exploring"
	StateCombat    State = "combat"
	StateVictory   State = "victory"
	StateDefeat    State = "defeat"
)

// Turn identifies who acts next in combat
type Turn string

// Turns
const (
	TurnNone   Turn = "none"
	TurnPlayer Turn = "player"
	TurnEnemy  Turn = "enemy"
)

// Resolution constants. A natural 20 or 1 only adds narration.
const (
	DieSides             = 20
	HitThreshold         = 10
	VarianceDivisor      = 12
	EnemyVarianceDivisor = 10
	CriticalRoll         = 20
	FumbleRoll           = 1

	DefaultSkillDifficulty = 15
	CombatLogCapacity      = 8
	DefaultEnemyTurnDelay  = 1200 * time.Millisecond

	GoldRewardMin       = 20
	GoldRewardMax       = 60
	HealthPotionRestore = 35
	ManaPotionRestore   = 25
)

// ActionResult describes one player action
type ActionResult struct {
	Ability     string
	Roll        int
	Secondary   int
	Hit         bool
	Critical    bool
	Fumble      bool
	Damage      int
	Healed      int
	EnemyHealth int
	Victory     bool
	Reward      *Reward
}

// Reward is granted once per victory
type Reward struct {
	Enemy         string
	Experience    int
	Gold          int
	LevelsGained  int
	QuestTitle    string
	QuestProgress string
	QuestReward   string
}

// EnemyAction describes the enemy's reply
type EnemyAction struct {
	Enemy    string
	Roll     int
	Damage   int
	Defeat   bool
	PlayerHP int
}

// SkillCheckResult is a generic d20 check
type SkillCheckResult struct {
	Roll       int
	Difficulty int
	Success    bool
	Critical   bool
	Fumble     bool
}

// PotionResult describes a consumed potion
type PotionResult struct {
	Item      string
	Restored  int
	Remaining int
}
