package character_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	attributesmock "github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/attributes/mock"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/character"
	characterrepo "github.com/KirkDiggler/rpg-tabletop/internal/repositories/character"
	charactermock "github.com/KirkDiggler/rpg-tabletop/internal/repositories/character/mock"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/preview"
	previewmock "github.com/KirkDiggler/rpg-tabletop/internal/repositories/preview/mock"
	"github.com/KirkDiggler/rpg-tabletop/internal/testutils"
	"github.com/KirkDiggler/rpg-tabletop/internal/testutils/mocks"
)

const testPlayerID int64 = 5

type FlowTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockRoller  *attributesmock.MockService
	mockRepo    *charactermock.MockRepository
	mockPreview *previewmock.MockRepository
	ctx         context.Context
	flow        *character.Flow
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowTestSuite))
}

func (s *FlowTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRoller = attributesmock.NewMockService(s.ctrl)
	s.mockRepo = charactermock.NewMockRepository(s.ctrl)
	s.mockPreview = previewmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	mocks.ExpectRoll(s.mockRoller, entities.ClassWarrior, testutils.WarriorStats())
	mocks.ExpectRoll(s.mockRoller, entities.ClassMage, testutils.MageStats())
	s.mockPreview.EXPECT().Save(s.ctx, gomock.Any()).Return(&preview.SaveOutput{}, nil).Times(2)

	flow, err := character.NewFlow(s.ctx, &character.Config{
		PlayerID:      testPlayerID,
		Attributes:    s.mockRoller,
		CharacterRepo: s.mockRepo,
		PreviewRepo:   s.mockPreview,
		Classes:       []entities.Class{entities.ClassWarrior, entities.ClassMage},
	})
	s.Require().NoError(err)
	s.flow = flow
}

func (s *FlowTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *FlowTestSuite) toFinal(name string) {
	s.Require().NoError(s.flow.SelectClass(entities.ClassWarrior))
	mocks.ExpectFinalRoll(s.mockRoller, entities.ClassWarrior, 28, 170)
	s.mockPreview.EXPECT().Save(s.ctx, gomock.Any()).Return(&preview.SaveOutput{}, nil)
	s.Require().NoError(s.flow.EnterName(s.ctx, name))
	s.Require().Equal(character.PhaseFinal, s.flow.Phase())
}

func (s *FlowTestSuite) TestNewFlowRollsEveryClass() {
	s.Equal(character.PhaseSelect, s.flow.Phase())
	s.Equal([]entities.Class{entities.ClassWarrior, entities.ClassMage}, s.flow.Classes())

	mage, ok := s.flow.Candidate(entities.ClassMage)
	s.Require().True(ok)
	s.Equal(22, mage.Stats.Intelligence)

	_, ok = s.flow.Chosen()
	s.False(ok)
}

func (s *FlowTestSuite) TestNewFlowValidation() {
	_, err := character.NewFlow(s.ctx, &character.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "PlayerID")
	s.Contains(err.Error(), "Attributes")
	s.Contains(err.Error(), "CharacterRepo")
}

func (s *FlowTestSuite) TestNewFlowRollFailure() {
	s.mockRoller.EXPECT().Roll(entities.ClassWarrior).Return(nil, stderrors.New("no dice"))

	_, err := character.NewFlow(s.ctx, &character.Config{
		PlayerID:      testPlayerID,
		Attributes:    s.mockRoller,
		CharacterRepo: s.mockRepo,
		Classes:       []entities.Class{entities.ClassWarrior},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "no dice")
}

func (s *FlowTestSuite) TestHappyPath() {
	s.toFinal("  Aldric ")

	chosen, ok := s.flow.Chosen()
	s.Require().True(ok)
	s.Equal("Aldric", chosen.Name)
	s.Equal(28, chosen.Stats.Strength)
	s.Equal(170, chosen.Stats.MaxHealth)
	s.Equal(16, chosen.Stats.Constitution, "final roll leaves the rest alone")

	stored := *testutils.WarriorStats()
	stored.Strength = 21
	s.mockRepo.EXPECT().
		CreateCharacter(s.ctx, characterrepo.CreateInput{PlayerID: testPlayerID, Name: "Aldric", Class: entities.ClassWarrior}).
		Return(&characterrepo.CreateOutput{CharacterID: 11, Stats: stored}, nil)
	s.mockPreview.EXPECT().Delete(s.ctx, gomock.Any()).Return(&preview.DeleteOutput{Deleted: true}, nil).Times(2)

	result, err := s.flow.Confirm(s.ctx)
	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal(int64(11), result.CharacterID)
	s.Equal(character.PhaseSaving, s.flow.Phase())

	chosen, _ = s.flow.Chosen()
	s.Equal(21, chosen.Stats.Strength, "screen shows the stored roll")

	s.Error(s.flow.Back(), "a successful save cannot be undone")

	done, err := s.flow.Acknowledge()
	s.Require().NoError(err)
	s.False(done)
	s.Equal(character.PhaseSaved, s.flow.Phase())

	done, err = s.flow.Acknowledge()
	s.Require().NoError(err)
	s.True(done)
}

func (s *FlowTestSuite) TestSaveFailureReturnsToFinal() {
	s.toFinal("Aldric")

	dup := errors.AlreadyExists("duplicate").WithReason(errors.ReasonDuplicateName)
	s.mockRepo.EXPECT().CreateCharacter(s.ctx, gomock.Any()).Return(nil, dup)

	result, err := s.flow.Confirm(s.ctx)
	s.Require().NoError(err)
	s.False(result.Success)
	s.True(errors.Is(result.Err, errors.ErrDuplicateName))
	s.Equal("You already have a character with that name.", result.Message)

	done, err := s.flow.Acknowledge()
	s.Require().NoError(err)
	s.False(done)
	s.Equal(character.PhaseFinal, s.flow.Phase())
	s.Nil(s.flow.Result())
}

func (s *FlowTestSuite) TestStorageFailureMessage() {
	s.toFinal("Aldric")
	s.mockRepo.EXPECT().CreateCharacter(s.ctx, gomock.Any()).Return(nil, errors.ErrStorage)

	result, err := s.flow.Confirm(s.ctx)
	s.Require().NoError(err)
	s.Equal("The character could not be saved. Please try again.", result.Message)

	s.Require().NoError(s.flow.Back())
	s.Equal(character.PhaseFinal, s.flow.Phase())
}

func (s *FlowTestSuite) TestNameValidation() {
	s.Require().NoError(s.flow.SelectClass(entities.ClassMage))

	err := s.flow.EnterName(s.ctx, "   ")
	s.True(errors.Is(err, errors.ErrEmptyName))

	err = s.flow.EnterName(s.ctx, "Abcdefghijklmnopqrs")
	s.True(errors.IsInvalidArgument(err))
	s.Equal(character.PhaseNameInput, s.flow.Phase())
}

func (s *FlowTestSuite) TestBackNavigation() {
	s.True(errors.Is(s.flow.Back(), errors.ErrWrongPhase))

	s.Require().NoError(s.flow.SelectClass(entities.ClassMage))
	s.Require().NoError(s.flow.Back())
	s.Equal(character.PhaseSelect, s.flow.Phase())

	s.toFinal("Aldric")
	s.Require().NoError(s.flow.Back())
	s.Equal(character.PhaseSelect, s.flow.Phase())
	_, ok := s.flow.Chosen()
	s.False(ok)
}

func (s *FlowTestSuite) TestWrongPhase() {
	_, err := s.flow.Confirm(s.ctx)
	s.True(errors.Is(err, errors.ErrWrongPhase))

	s.True(errors.Is(s.flow.EnterName(s.ctx, "Aldric"), errors.ErrWrongPhase))

	_, err = s.flow.Acknowledge()
	s.True(errors.Is(err, errors.ErrWrongPhase))

	s.Require().NoError(s.flow.SelectClass(entities.ClassWarrior))
	s.True(errors.Is(s.flow.SelectClass(entities.ClassMage), errors.ErrWrongPhase))
}

func (s *FlowTestSuite) TestUnknownClass() {
	err := s.flow.SelectClass("Rogue")
	s.True(errors.Is(err, errors.ErrInvalidClass))

	_, err = s.flow.StatList("Rogue")
	s.True(errors.Is(err, errors.ErrInvalidClass))
}

func (s *FlowTestSuite) TestStatList() {
	rows, err := s.flow.StatList(entities.ClassWarrior)
	s.Require().NoError(err)

	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
	}
	s.Equal([]string{
		"Name", "Class", "Level", "Strength", "Dexterity", "Constitution",
		"Intelligence", "Health", "Mana", "Weakness", "Ability",
	}, labels)
	s.Equal("-", rows[0].Value)
	s.Equal("140/140", rows[7].Value)
	s.Equal("Precise Cut", rows[10].Value)
}

func (s *FlowTestSuite) TestPreviewFailureIsNotFatal() {
	s.Require().NoError(s.flow.SelectClass(entities.ClassMage))
	mocks.ExpectFinalRoll(s.mockRoller, entities.ClassMage, 20, 130)
	s.mockPreview.EXPECT().Save(s.ctx, gomock.Any()).Return(nil, errors.ErrConnection)

	s.Require().NoError(s.flow.EnterName(s.ctx, "Lyra"))
	s.Equal(character.PhaseFinal, s.flow.Phase())
}
