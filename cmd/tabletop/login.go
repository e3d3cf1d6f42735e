package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/handoff"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/player"
)

var (
	loginUsername string
	loginEmail    string
	loginPassword string
	loginRegister bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in or register a player",
	Long:  `Authenticate a player and hand the player ID to the next screen.`,
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "player username")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email, used with --register")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when empty)")
	loginCmd.Flags().BoolVar(&loginRegister, "register", false, "create a new player")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	con := newConsole(cmd.InOrStdin(), cmd.OutOrStdout())

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	repo, err := player.NewSQLite(&player.SQLiteConfig{DB: db, Clock: clock.New()})
	if err != nil {
		return err
	}

	p, err := authenticate(ctx, repo, con)
	if err != nil {
		return err
	}

	if err := handoff.Write(cfg.Handoff, p.ID); err != nil {
		return err
	}
	slog.Info("Player logged in", "player_id", p.ID, "registered", loginRegister)
	return nil
}

// authenticate registers or logs in from the flags, prompting for anything
// missing
func authenticate(ctx context.Context, repo player.Repository, con *console) (*entities.Player, error) {
	if err := promptMissing(con); err != nil {
		return nil, err
	}

	if loginRegister {
		out, err := repo.Register(ctx, player.RegisterInput{
			Username: loginUsername,
			Email:    loginEmail,
			Password: loginPassword,
		})
		if err != nil {
			con.report(err)
			return nil, err
		}
		con.printf("Welcome, %s! Your account has been created.\n", out.Player.Username)
		return out.Player, nil
	}

	out, err := repo.Login(ctx, player.LoginInput{
		Username: loginUsername,
		Password: loginPassword,
	})
	if err != nil {
		con.report(err)
		return nil, err
	}
	con.printf("Welcome back, %s.\n", out.Player.Username)
	return out.Player, nil
}

func promptMissing(con *console) error {
	var err error
	if loginUsername == "" {
		if loginUsername, err = con.ask("Username: "); err != nil {
			return err
		}
	}
	if loginRegister && loginEmail == "" {
		if loginEmail, err = con.ask("Email: "); err != nil {
			return err
		}
	}
	if loginPassword == "" {
		if loginPassword, err = con.ask("Password: "); err != nil {
			return err
		}
	}
	return nil
}
