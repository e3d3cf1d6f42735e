package player_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/player"
	"github.com/KirkDiggler/rpg-tabletop/internal/testutils"
)

type SQLiteRepositoryTestSuite struct {
	suite.Suite
	db   *sql.DB
	repo player.Repository
	ctx  context.Context
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.db = testutils.CreateTestDB(s.T())
	s.ctx = context.Background()

	repo, err := player.NewSQLite(&player.SQLiteConfig{DB: s.db, BcryptCost: bcrypt.MinCost})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *SQLiteRepositoryTestSuite) register() *player.RegisterOutput {
	out, err := s.repo.Register(s.ctx, player.RegisterInput{
		Username: testutils.TestUsername,
		Email:    testutils.TestEmail,
		Password: "hunter22",
	})
	s.Require().NoError(err)
	return out
}

func (s *SQLiteRepositoryTestSuite) TestRegisterAndLogin() {
	reg := s.register()
	s.Positive(reg.Player.ID)

	var hash string
	s.Require().NoError(s.db.QueryRow(`SELECT password_hash FROM players WHERE id = ?`, reg.Player.ID).Scan(&hash))
	s.NotEqual("hunter22", hash)

	out, err := s.repo.Login(s.ctx, player.LoginInput{Username: testutils.TestUsername, Password: "hunter22"})
	s.Require().NoError(err)
	s.Equal(reg.Player.ID, out.Player.ID)
	s.Equal(testutils.TestEmail, out.Player.Email)

	rows, err := s.db.Query(`SELECT action FROM system_log WHERE player_id = ? ORDER BY id`, reg.Player.ID)
	s.Require().NoError(err)
	defer rows.Close()
	var actions []string
	for rows.Next() {
		var a string
		s.Require().NoError(rows.Scan(&a))
		actions = append(actions, a)
	}
	s.Equal([]string{player.ActionRegister, player.ActionLogin}, actions)
}

func (s *SQLiteRepositoryTestSuite) TestRegisterValidation() {
	_, err := s.repo.Register(s.ctx, player.RegisterInput{Username: " ", Email: "nope", Password: "123"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	s.Contains(fields, "username")
	s.Contains(fields, "email")
	s.Contains(fields, "password")
	s.Zero(testutils.CountRows(s.T(), s.db, "players"))
}

func (s *SQLiteRepositoryTestSuite) TestRegisterDuplicate() {
	s.register()

	_, err := s.repo.Register(s.ctx, player.RegisterInput{
		Username: "someone-else",
		Email:    testutils.TestEmail,
		Password: "hunter22",
	})
	s.True(errors.IsAlreadyExists(err))
	s.Equal(1, testutils.CountRows(s.T(), s.db, "players"))
	s.Equal(1, testutils.CountRows(s.T(), s.db, "system_log"))
}

func (s *SQLiteRepositoryTestSuite) TestLoginFailuresLookAlike() {
	s.register()

	_, wrongPassword := s.repo.Login(s.ctx, player.LoginInput{Username: testutils.TestUsername, Password: "hunter23"})
	_, unknownUser := s.repo.Login(s.ctx, player.LoginInput{Username: "nobody", Password: "hunter22"})
	_, blank := s.repo.Login(s.ctx, player.LoginInput{})

	for _, err := range []error{wrongPassword, unknownUser, blank} {
		s.True(errors.IsUnauthenticated(err))
		s.Equal(errors.GetMessage(wrongPassword), errors.GetMessage(err))
	}
}

func (s *SQLiteRepositoryTestSuite) TestGet() {
	reg := s.register()

	out, err := s.repo.Get(s.ctx, player.GetInput{ID: reg.Player.ID})
	s.Require().NoError(err)
	s.Equal(testutils.TestUsername, out.Player.Username)
	s.Equal("player", out.Player.GetType())

	_, err = s.repo.Get(s.ctx, player.GetInput{ID: reg.Player.ID + 1})
	s.True(errors.IsNotFound(err))
}

func (s *SQLiteRepositoryTestSuite) TestConfigValidation() {
	_, err := player.NewSQLite(&player.SQLiteConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = player.NewSQLite(&player.SQLiteConfig{DB: s.db, BcryptCost: 99})
	s.True(errors.IsInvalidArgument(err))
}
