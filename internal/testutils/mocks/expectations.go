// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	attributesmock "github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/attributes/mock"
)

// ExpectRoll makes the attribute roller return a copy of stats for class
func ExpectRoll(roller *attributesmock.MockService, class entities.Class, stats *entities.StatBlock) *gomock.Call {
	return roller.EXPECT().
		Roll(class).
		DoAndReturn(func(entities.Class) (*entities.StatBlock, error) {
			cp := *stats
			return &cp, nil
		})
}

// ExpectFinalRoll makes the final roll set strength and health
func ExpectFinalRoll(roller *attributesmock.MockService, class entities.Class, strength, health int) *gomock.Call {
	return roller.EXPECT().
		FinalRoll(class, gomock.Any()).
		DoAndReturn(func(_ entities.Class, stats *entities.StatBlock) error {
			stats.Strength = strength
			stats.Health = health
			stats.MaxHealth = health
			return nil
		})
}
