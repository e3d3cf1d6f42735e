package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/random"
	characterrepo "github.com/KirkDiggler/rpg-tabletop/internal/repositories/character"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/preview"
	"github.com/KirkDiggler/rpg-tabletop/internal/testutils"
)

func newTestFlow(t *testing.T) (*character.Flow, characterrepo.Repository, int64) {
	t.Helper()
	ctx := context.Background()

	db := testutils.CreateTestDB(t)
	playerID := testutils.CreateTestPlayer(t, db, testutils.TestUsername)

	repo, attrs, err := newCharacterRepo(db, random.NewSeeded(7))
	require.NoError(t, err)

	flow, err := character.NewFlow(ctx, &character.Config{
		PlayerID:      playerID,
		Attributes:    attrs,
		CharacterRepo: repo,
		PreviewRepo:   preview.NewInMemory(clock.New()),
	})
	require.NoError(t, err)
	return flow, repo, playerID
}

func TestDriveFlowSavesCharacter(t *testing.T) {
	flow, repo, playerID := newTestFlow(t)

	input := strings.Join([]string{"Rogue", "2", "back", "1", "   ", "Lyra", "y", ""}, "\n") + "\n"
	var out bytes.Buffer

	done, err := driveFlow(context.Background(), newConsole(strings.NewReader(input), &out), flow)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, character.PhaseSaved, flow.Phase())

	text := out.String()
	assert.Contains(t, text, `unknown class "Rogue"`)
	assert.Contains(t, text, "name is required")
	assert.Contains(t, text, "Lyra the Mage has been created!")

	list, err := repo.ListByPlayer(context.Background(), characterrepo.ListByPlayerInput{PlayerID: playerID})
	require.NoError(t, err)
	require.Len(t, list.Characters, 1)
	assert.Equal(t, "Lyra", list.Characters[0].Name)
	assert.Equal(t, entities.ClassMage, list.Characters[0].Class)
}

func TestDriveFlowStopsOnClosedInput(t *testing.T) {
	flow, _, _ := newTestFlow(t)
	var out bytes.Buffer

	done, err := driveFlow(context.Background(), newConsole(strings.NewReader("1\n"), &out), flow)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, character.PhaseNameInput, flow.Phase())
}

func TestDriveFlowDuplicateName(t *testing.T) {
	flow, repo, playerID := newTestFlow(t)
	_, err := repo.CreateCharacter(context.Background(), characterrepo.CreateInput{
		PlayerID: playerID,
		Name:     "Lyra",
		Class:    entities.ClassWarrior,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	input := "1\nLyra\ny\n\n"
	done, err := driveFlow(context.Background(), newConsole(strings.NewReader(input), &out), flow)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Contains(t, out.String(), "You already have a character with that name.")
	assert.Equal(t, character.PhaseFinal, flow.Phase())
}
