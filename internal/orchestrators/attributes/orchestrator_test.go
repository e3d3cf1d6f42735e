package attributes_test

import (
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/attributes"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/random"
)

type AttributesTestSuite struct {
	suite.Suite
	service attributes.Service
}

func TestAttributesSuite(t *testing.T) {
	suite.Run(t, new(AttributesTestSuite))
}

func (s *AttributesTestSuite) SetupTest() {
	svc, err := attributes.NewOrchestrator(&attributes.Config{Roller: random.NewSeeded(1234)})
	s.Require().NoError(err)
	s.service = svc
}

func (s *AttributesTestSuite) TestNewOrchestratorValidation() {
	_, err := attributes.NewOrchestrator(&attributes.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Roller")

	_, err = attributes.NewOrchestrator(nil)
	s.Error(err)
}

func (s *AttributesTestSuite) TestRollWithinBounds() {
	for _, class := range []entities.Class{entities.ClassWarrior, entities.ClassMage} {
		spec, ok := entities.LookupClass(class)
		s.Require().True(ok)

		for i := 0; i < 1000; i++ {
			stats, err := s.service.Roll(class)
			s.Require().NoError(err)

			s.True(spec.Strength.Contains(stats.Strength), "strength %d", stats.Strength)
			s.True(spec.Dexterity.Contains(stats.Dexterity))
			s.True(spec.Constitution.Contains(stats.Constitution))
			s.True(spec.Intelligence.Contains(stats.Intelligence))
			s.True(spec.Health.Contains(stats.Health))
			s.True(spec.Mana.Contains(stats.Mana))
			s.Contains(spec.Weaknesses, stats.Weakness)
			s.Equal(stats.Health, stats.MaxHealth)
			s.Equal(stats.Mana, stats.MaxMana)
		}
	}
}

func (s *AttributesTestSuite) TestWarriorStrengthScenario() {
	outside := 0
	for i := 0; i < 1000; i++ {
		stats, err := s.service.Roll(entities.ClassWarrior)
		s.Require().NoError(err)
		if stats.Strength < 18 || stats.Strength > 25 {
			outside++
		}
	}
	s.Zero(outside)
}

func (s *AttributesTestSuite) TestRollScripted() {
	// one draw per attribute then the weakness pick
	roller := random.NewScripted(1, 6, 6, 5, 41, 1, 3)
	svc, err := attributes.NewOrchestrator(&attributes.Config{Roller: roller})
	s.Require().NoError(err)

	stats, err := svc.Roll(entities.ClassWarrior)
	s.Require().NoError(err)
	s.Equal(&entities.StatBlock{
		Strength:     18,
		Dexterity:    15,
		Constitution: 20,
		Intelligence: 12,
		Health:       160,
		MaxHealth:    160,
		Mana:         20,
		MaxMana:      20,
		Weakness:     entities.WeaknessFire,
	}, stats)
	s.Zero(roller.Remaining())
}

func (s *AttributesTestSuite) TestRollUnknownClass() {
	stats, err := s.service.Roll("Necromancer")
	s.Nil(stats)
	s.Require().Error(err)
	s.True(errors.Is(err, errors.ErrInvalidClass))
	s.Equal(errors.CategoryValidation, errors.GetCategory(err))
}

func (s *AttributesTestSuite) TestRollPropagatesRollerFailure() {
	svc, err := attributes.NewOrchestrator(&attributes.Config{Roller: random.NewScripted()})
	s.Require().NoError(err)

	_, err = svc.Roll(entities.ClassMage)
	s.Error(err)
}

func (s *AttributesTestSuite) TestFinalRoll() {
	stats := &entities.StatBlock{Strength: 10, Dexterity: 12, Health: 90, MaxHealth: 90, Mana: 100, MaxMana: 100}

	s.Require().NoError(s.service.FinalRoll(entities.ClassMage, stats))
	s.GreaterOrEqual(stats.Strength, 18)
	s.LessOrEqual(stats.Strength, 30)
	s.GreaterOrEqual(stats.Health, 120)
	s.LessOrEqual(stats.Health, 180)
	s.Equal(stats.Health, stats.MaxHealth)
	s.Equal(12, stats.Dexterity, "only strength and health are re-rolled")
	s.Equal(100, stats.Mana)
}

func (s *AttributesTestSuite) TestFinalRollErrors() {
	s.True(errors.IsInvalidArgument(s.service.FinalRoll(entities.ClassMage, nil)))
	s.True(errors.Is(s.service.FinalRoll("Bard", &entities.StatBlock{}), errors.ErrInvalidClass))
}

func (s *AttributesTestSuite) TestToolkitDefaultRoller() {
	svc, err := attributes.NewOrchestrator(&attributes.Config{Roller: dice.DefaultRoller})
	s.Require().NoError(err)

	stats, err := svc.Roll(entities.ClassWarrior)
	s.Require().NoError(err)
	s.GreaterOrEqual(stats.Strength, 18)
}
