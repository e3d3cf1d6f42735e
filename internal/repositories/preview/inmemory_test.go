package preview_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	mockclock "github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock/mock"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/preview"
	"github.com/KirkDiggler/rpg-tabletop/internal/testutils"
)

func TestInMemoryRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	clk := mockclock.NewMockClock(ctrl)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	repo := preview.NewInMemory(clk)

	clk.EXPECT().Now().Return(now)
	saved, err := repo.Save(ctx, preview.SaveInput{PlayerID: 3, Class: entities.ClassMage, Stats: *testutils.MageStats(), TTL: time.Minute})
	require.NoError(t, err)
	saved.Preview.Stats.Health = 1

	clk.EXPECT().Now().Return(now.Add(30 * time.Second))
	got, err := repo.Get(ctx, preview.GetInput{PlayerID: 3, Class: entities.ClassMage})
	require.NoError(t, err)
	assert.Equal(t, 100, got.Preview.Stats.Health, "stored copy is not shared with the caller")

	clk.EXPECT().Now().Return(now.Add(2 * time.Minute))
	_, err = repo.Get(ctx, preview.GetInput{PlayerID: 3, Class: entities.ClassMage})
	assert.True(t, errors.IsNotFound(err))

	out, err := repo.Delete(ctx, preview.DeleteInput{PlayerID: 3, Class: entities.ClassMage})
	require.NoError(t, err)
	assert.False(t, out.Deleted, "expired preview was already dropped")
}
