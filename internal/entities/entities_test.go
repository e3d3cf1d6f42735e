package entities_test

import (
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
)

func newWarrior() *entities.Character {
	return entities.NewCharacter("Aldric", entities.ClassWarrior, entities.StatBlock{
		Strength:  20,
		Health:    100,
		MaxHealth: 140,
		Mana:      10,
		MaxMana:   30,
	})
}

func TestCharacterImplementsEntity(t *testing.T) {
	var e core.Entity = &entities.Character{ID: 7}
	assert.Equal(t, "character_7", e.GetID())
	assert.Equal(t, "character", e.GetType())

	var enemy core.Entity = entities.Roster()[0]
	assert.Equal(t, "enemy_bandit_leader", enemy.GetID())
}

func TestNewCharacter(t *testing.T) {
	c := newWarrior()
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 100, c.ExperienceToNext)
	assert.Equal(t, "Precise Cut", c.PrimaryAbility)
	require.Len(t, c.Abilities, 4)
	assert.Equal(t, entities.DefaultInventoryCapacity, c.Inventory.Capacity)
}

func TestHealthAndManaClamp(t *testing.T) {
	c := newWarrior()

	assert.Equal(t, 40, c.Heal(1000))
	assert.Equal(t, 140, c.Stats.Health)

	assert.Equal(t, 140, c.TakeDamage(500))
	assert.Equal(t, 0, c.Stats.Health)
	assert.False(t, c.Alive())
	assert.Equal(t, 0, c.TakeDamage(-5))

	assert.False(t, c.SpendMana(11))
	assert.Equal(t, 10, c.Stats.Mana)
	assert.True(t, c.SpendMana(10))
	assert.Equal(t, 30, c.RestoreMana(99))
	assert.Equal(t, 30, c.Stats.Mana)
}

func TestGainExperience(t *testing.T) {
	c := newWarrior()

	assert.Equal(t, 0, c.GainExperience(99))
	assert.Equal(t, 1, c.Level)

	assert.Equal(t, 1, c.GainExperience(1))
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 0, c.Experience)
	assert.Equal(t, 150, c.ExperienceToNext)
	assert.Equal(t, 160, c.Stats.MaxHealth)
	assert.Equal(t, 160, c.Stats.Health)
	assert.Equal(t, 40, c.Stats.MaxMana)
	assert.Equal(t, 40, c.Stats.Mana)
	assert.Equal(t, 22, c.Stats.Strength)

	// 150 + 225 crosses two thresholds at once
	assert.Equal(t, 2, c.GainExperience(380))
	assert.Equal(t, 4, c.Level)
	assert.Equal(t, 5, c.Experience)
	assert.Equal(t, 337, c.ExperienceToNext)
}

func TestClassTable(t *testing.T) {
	spec, ok := entities.LookupClass(entities.ClassMage)
	require.True(t, ok)
	assert.Equal(t, entities.Range{Min: 18, Max: 25}, spec.Intelligence)
	assert.ElementsMatch(t, []string{"Physical", "Shadow", "Ice"}, spec.Weaknesses)
	assert.Equal(t, []string{entities.ItemArcaneStaff, entities.ItemManaPotion}, spec.StartingItems)

	_, ok = entities.LookupClass("Bard")
	assert.False(t, ok)
	assert.Nil(t, entities.ClassAbilities("Bard"))
}

func TestRegisterClass(t *testing.T) {
	err := entities.RegisterClass(&entities.ClassSpec{
		Class:      "Ranger",
		Strength:   entities.Range{Min: 12, Max: 18},
		Weaknesses: []string{entities.WeaknessShadow},
	})
	require.NoError(t, err)
	assert.Contains(t, entities.Classes(), entities.Class("Ranger"))

	assert.Error(t, entities.RegisterClass(&entities.ClassSpec{Class: entities.ClassWarrior, Weaknesses: []string{"x"}}))
	assert.Error(t, entities.RegisterClass(&entities.ClassSpec{Class: "Monk"}))
	assert.Error(t, entities.RegisterClass(nil))
}

func TestClassAbilitiesAreCopies(t *testing.T) {
	a := entities.ClassAbilities(entities.ClassMage)
	a[0].Remaining = 99
	b := entities.ClassAbilities(entities.ClassMage)
	assert.Zero(t, b[0].Remaining)
	assert.True(t, b[2].IsHeal())
	assert.False(t, b[3].IsDamage())
}

func TestInventory(t *testing.T) {
	inv := entities.NewInventory(2)
	require.NoError(t, inv.Add(entities.ItemHealthPotion, 3))
	require.NoError(t, inv.Add(entities.ItemManaPotion, 1))
	require.NoError(t, inv.Add(entities.ItemHealthPotion, 1), "existing stack needs no slot")
	assert.Error(t, inv.Add(entities.ItemLongSword, 1))
	assert.Error(t, inv.Add(entities.ItemManaPotion, 0))

	assert.Equal(t, 4, inv.Quantity(entities.ItemHealthPotion))
	assert.True(t, inv.Remove(entities.ItemManaPotion))
	assert.False(t, inv.Remove(entities.ItemManaPotion))
	assert.Zero(t, inv.Quantity(entities.ItemManaPotion))
}

func TestEnemyDamageFloorsAtZero(t *testing.T) {
	e := entities.NewEnemy("Council Spy", 45, 10, "Humanoid", "Truth")
	assert.Equal(t, 45, e.TakeDamage(100))
	assert.Equal(t, 0, e.Health)
	assert.False(t, e.Alive())

	cp := e.Clone()
	cp.Health = 10
	assert.Equal(t, 0, e.Health)
}

func TestQuestProgress(t *testing.T) {
	q := &entities.Quest{Title: "Protect the Village", TotalSteps: 3, StepsCompleted: 1}
	assert.Equal(t, "1/3", q.Progress())
}
