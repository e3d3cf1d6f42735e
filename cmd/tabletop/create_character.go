package main

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/handoff"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/character"
)

var createCharacterCmd = &cobra.Command{
	Use:   "create-character",
	Short: "Roll, name and save a new character",
	Long: `Shows a rolled candidate for every class. Pick one by number, name it,
then confirm the final roll to save. Type "back" to step out of a screen.`,
	RunE: runCreateCharacter,
}

func runCreateCharacter(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	con := newConsole(cmd.InOrStdin(), cmd.OutOrStdout())

	playerID, fromFile, err := handoff.Consume(cfg.Handoff)
	if err != nil {
		slog.Warn("Handoff file not removed", "path", cfg.Handoff, "error", err)
	}
	if !fromFile {
		con.printf("No login found, playing as player %d.\n", playerID)
	}

	roller, err := newRoller()
	if err != nil {
		return err
	}
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	characterRepo, attrs, err := newCharacterRepo(db, roller)
	if err != nil {
		return err
	}
	previewRepo, closePreview, err := newPreviewRepo(ctx)
	if err != nil {
		return err
	}
	defer closePreview()

	flow, err := character.NewFlow(ctx, &character.Config{
		PlayerID:      playerID,
		Attributes:    attrs,
		CharacterRepo: characterRepo,
		PreviewRepo:   previewRepo,
		PreviewTTL:    cfg.Redis.PreviewTTL,
	})
	if err != nil {
		return err
	}

	done, err := driveFlow(ctx, con, flow)
	if err != nil || !done {
		return err
	}

	// play picks the player up from the same handoff file
	return handoff.Write(cfg.Handoff, playerID)
}

// driveFlow runs the selection screen until a save is acknowledged or the
// input closes
func driveFlow(ctx context.Context, con *console, flow *character.Flow) (bool, error) {
	for {
		var (
			line string
			err  error
		)

		switch flow.Phase() {
		case character.PhaseSelect:
			showCandidates(con, flow)
			line, err = con.ask("Choose a class: ")
		case character.PhaseNameInput:
			line, err = con.ask("Name your hero: ")
		case character.PhaseFinal:
			chosen, _ := flow.Chosen()
			showStats(con, flow, chosen.Class)
			line, err = con.ask("Confirm? [y/back]: ")
		case character.PhaseSaving:
			con.printf("%s\n", flow.Result().Message)
			line, err = con.ask("Press enter to continue ")
		case character.PhaseSaved:
			return flow.Acknowledge()
		}
		if err != nil {
			return false, ignoreEOF(err)
		}

		if strings.EqualFold(line, "back") {
			if err := flow.Back(); err != nil {
				con.report(err)
			}
			continue
		}

		if err := step(ctx, flow, line); err != nil {
			con.report(err)
		}
	}
}

func step(ctx context.Context, flow *character.Flow, line string) error {
	switch flow.Phase() {
	case character.PhaseSelect:
		classes := flow.Classes()
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(classes) {
			return flow.SelectClass(entities.Class(line))
		}
		return flow.SelectClass(classes[n-1])
	case character.PhaseNameInput:
		return flow.EnterName(ctx, line)
	case character.PhaseFinal:
		if !strings.EqualFold(line, "y") {
			return nil
		}
		_, err := flow.Confirm(ctx)
		return err
	case character.PhaseSaving:
		_, err := flow.Acknowledge()
		return err
	}
	return nil
}

func showCandidates(con *console, flow *character.Flow) {
	for i, class := range flow.Classes() {
		con.printf("\n[%d] %s\n", i+1, class)
		showStats(con, flow, class)
	}
}

func showStats(con *console, flow *character.Flow, class entities.Class) {
	rows, err := flow.StatList(class)
	if err != nil {
		con.report(err)
		return
	}
	for _, r := range rows {
		con.printf("  %-13s %s\n", r.Label, r.Value)
	}
}
