package abilities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/abilities"
)

type RegistryTestSuite struct {
	suite.Suite
	mage     *entities.Character
	registry *abilities.Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.mage = entities.NewCharacter("Lyra", entities.ClassMage, entities.StatBlock{
		Health: 60, MaxHealth: 100, Mana: 30, MaxMana: 100,
	})
	registry, err := abilities.NewRegistry(s.mage)
	s.Require().NoError(err)
	s.registry = registry
}

func (s *RegistryTestSuite) TestNewRegistryRequiresCaster() {
	_, err := abilities.NewRegistry(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RegistryTestSuite) TestUseStartsCooldownAndSpendsMana() {
	effect, err := s.registry.Use(0)
	s.Require().NoError(err)

	s.Equal("Fireball", effect.Ability)
	s.Equal(22, effect.Magnitude)
	s.True(effect.IsDamage())
	s.Equal(18, s.mage.Stats.Mana)
	s.False(s.registry.Ready(0))

	a, err := s.registry.Get(0)
	s.Require().NoError(err)
	s.Equal(3*time.Second, a.Remaining)
}

func (s *RegistryTestSuite) TestCooldownCycle() {
	_, err := s.registry.Use(1)
	s.Require().NoError(err)

	s.registry.Tick(time.Second)
	s.False(s.registry.Ready(1))
	s.registry.Tick(1500 * time.Millisecond)
	s.True(s.registry.Ready(1), "2.5s cooldown elapsed cumulatively")

	s.registry.Tick(time.Hour)
	a, _ := s.registry.Get(1)
	s.Zero(a.Remaining, "never below zero")
}

func (s *RegistryTestSuite) TestOnCooldownMutatesNothing() {
	_, err := s.registry.Use(0)
	s.Require().NoError(err)
	manaBefore := s.mage.Stats.Mana
	remainingBefore, _ := s.registry.Get(0)

	_, err = s.registry.Use(0)
	s.True(errors.Is(err, errors.ErrOnCooldown))
	s.Equal(manaBefore, s.mage.Stats.Mana)
	after, _ := s.registry.Get(0)
	s.Equal(remainingBefore.Remaining, after.Remaining)
}

func (s *RegistryTestSuite) TestInsufficientManaMutatesNothing() {
	s.mage.Stats.Mana = 5

	_, err := s.registry.Use(2)
	s.True(errors.Is(err, errors.ErrInsufficientMana))
	s.Equal(5, s.mage.Stats.Mana)
	s.True(s.registry.Ready(2))
}

func (s *RegistryTestSuite) TestIndexOutOfRange() {
	for _, idx := range []int{-1, 4, 99} {
		_, err := s.registry.Use(idx)
		s.True(errors.Is(err, errors.ErrIndexOutOfRange), "idx %d", idx)
		s.Equal(errors.CategoryState, errors.GetCategory(err))
		s.False(s.registry.Ready(idx))
	}
}

func (s *RegistryTestSuite) TestHealEffect() {
	effect, err := s.registry.Use(2)
	s.Require().NoError(err)
	s.True(effect.IsHeal())
	s.Equal(-35, effect.Magnitude)
	s.Equal(15, effect.ManaSpent)
}

func (s *RegistryTestSuite) TestSnapshot() {
	_, err := s.registry.Use(0)
	s.Require().NoError(err)

	snap := s.registry.Snapshot()
	s.Require().Len(snap, s.registry.Len())
	s.False(snap[0].Ready)
	s.True(snap[1].Ready)
	s.True(snap[1].Affordable)
	s.True(snap[2].Affordable)

	s.mage.Stats.Mana = 10
	s.False(s.registry.Snapshot()[2].Affordable, "heal costs 15")
}
