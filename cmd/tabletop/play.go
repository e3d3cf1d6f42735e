package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/handoff"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/dialogue"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/encounter"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/quest"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/random"
	characterrepo "github.com/KirkDiggler/rpg-tabletop/internal/repositories/character"
)

const frameInterval = 50 * time.Millisecond

var playCharacter string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Explore, take quests and fight",
	Long: `Loads the logged in player's character and starts the game loop.
Type "help" for the list of commands.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playCharacter, "character", "c", "", "character name (defaults to the newest)")
}

// game is the state of one play session
type game struct {
	con      *console
	roller   *random.Seeded
	resolver *encounter.Resolver
	quests   *quest.Tracker
	dialogue *dialogue.Queue
	hero     *entities.Character
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	con := newConsole(cmd.InOrStdin(), cmd.OutOrStdout())

	playerID, _, err := handoff.Consume(cfg.Handoff)
	if err != nil {
		slog.Warn("Handoff file not removed", "path", cfg.Handoff, "error", err)
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

	repo, _, err := newCharacterRepo(db, roller)
	if err != nil {
		return err
	}
	hero, err := loadHero(ctx, repo, playerID)
	if err != nil {
		return err
	}

	queue := dialogue.NewQueue(cfg.Game.DialogueRuneDelay)
	tracker := quest.NewTracker(queue)
	resolver, err := encounter.NewResolver(&encounter.Config{
		Player:         hero,
		Roller:         roller,
		IDGenerator:    idgen.NewUUID("enc"),
		Quests:         tracker,
		Narrator:       queue,
		EnemyTurnDelay: cfg.Game.EnemyTurnDelay,
	})
	if err != nil {
		return err
	}

	g := &game{
		con:      con,
		roller:   roller,
		resolver: resolver,
		quests:   tracker,
		dialogue: queue,
		hero:     hero,
	}
	slog.Info("Game started",
		"player_id", playerID,
		"character_id", hero.ID,
	)
	queue.Push("Welcome to Eldoria, "+hero.Name+". Type help to see what you can do.", "")

	return g.run(ctx)
}

func loadHero(ctx context.Context, repo characterrepo.Repository, playerID int64) (*entities.Character, error) {
	list, err := repo.ListByPlayer(ctx, characterrepo.ListByPlayerInput{PlayerID: playerID})
	if err != nil {
		return nil, err
	}
	if len(list.Characters) == 0 {
		return nil, errors.NotFoundf("player %d has no characters; run create-character first", playerID)
	}

	pick := list.Characters[len(list.Characters)-1]
	if playCharacter != "" {
		pick = nil
		for _, c := range list.Characters {
			if strings.EqualFold(c.Name, playCharacter) {
				pick = c
				break
			}
		}
		if pick == nil {
			return nil, errors.NotFoundf("no character named %q", playCharacter)
		}
	}

	out, err := repo.Get(ctx, characterrepo.GetInput{ID: pick.ID})
	if err != nil {
		return nil, err
	}
	return out.Character, nil
}

// run drives the resolver and the dialogue box from one loop. Input is read
// on its own goroutine and handed over on a channel.
func (g *game) run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := g.con.ask("")
			if err != nil {
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			g.resolver.Tick(elapsed)
			g.dialogue.Tick(elapsed)
			g.flushDialogue()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := g.handle(line); quit {
				return nil
			}
		}
	}
}

// flushDialogue prints fully revealed lines and moves to the next one
func (g *game) flushDialogue() {
	for {
		snap := g.dialogue.Current()
		if !snap.Visible || !snap.Complete {
			return
		}
		g.con.printf("[%s] %s\n", snap.Speaker, snap.Text)
		if err := g.dialogue.Advance(); err != nil {
			return
		}
	}
}

func (g *game) handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		g.dialogue.Skip()
		return false
	}
	cmd, rest := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		g.help()
	case "status":
		g.status()
	case "quests":
		g.quests.Summarize()
	case "quest":
		err = g.acceptQuest(strings.Join(rest, " "))
	case "fight":
		err = g.fight(rest)
	case "use":
		err = g.use(rest)
	case "potion":
		err = g.potion(rest)
	case "check":
		err = g.check(rest)
	case "flee":
		err = g.resolver.Flee()
	case "reset":
		err = g.resolver.Reset()
	default:
		g.con.printf("Unknown command %q. Type help.\n", cmd)
	}
	if err != nil {
		g.con.report(err)
	}
	return false
}

func (g *game) help() {
	g.con.printf(`Commands:
  status              show health, mana and abilities
  quest <area>        accept the quest offered in an area (%s, %s)
  quests              read your journal
  fight [n]           fight enemy n of the roster
  use <n>             use ability n
  potion health|mana  drink a potion
  check [dc]          roll a skill check
  flee                leave combat
  reset               start over after a fight ends
  quit                leave the game
Press enter to skip the dialogue reveal.
`, quest.AreaEldoriaVillage, quest.AreaLakeShore)
}

func (g *game) status() {
	s := g.hero.Stats
	g.con.printf("%s the %s, level %d (%d/%d exp, %d gold)\n",
		g.hero.Name, g.hero.Class, g.hero.Level, g.hero.Experience, g.hero.ExperienceToNext, g.hero.Gold)
	g.con.printf("HP %d/%d  MP %d/%d  state %s  turn %s\n",
		s.Health, s.MaxHealth, s.Mana, s.MaxMana, g.resolver.State(), g.resolver.Turn())
	if e := g.resolver.Enemy(); e != nil {
		g.con.printf("Enemy: %s %d/%d\n", e.Name, e.Health, e.MaxHealth)
	}
	for i, a := range g.resolver.Abilities() {
		ready := "ready"
		if !a.Ready {
			ready = a.Remaining.Round(100 * time.Millisecond).String()
		}
		g.con.printf("  [%d] %-14s %-8s %3d MP  %s\n", i+1, a.Name, a.Kind, a.ManaCost, ready)
	}
	for _, line := range g.resolver.CombatLog() {
		g.con.printf("  > %s\n", line)
	}
}

func (g *game) acceptQuest(area string) error {
	if area == "" {
		area = quest.AreaEldoriaVillage
	}
	q, err := g.quests.Accept(g.roller, area)
	if err != nil {
		return err
	}
	g.dialogue.Push(q.StoryHook, "")
	g.dialogue.Push("Quest accepted: "+q.Title+" ["+q.Progress()+"]", "")
	return nil
}

func (g *game) fight(args []string) error {
	roster := entities.Roster()
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 || v > len(roster) {
			return errors.OutOfRangef("pick an enemy between 1 and %d", len(roster))
		}
		n = v
	}
	_, err := g.resolver.StartCombat(roster[n-1])
	return err
}

func (g *game) use(args []string) error {
	if len(args) == 0 {
		return errors.InvalidArgument("which ability? use <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.InvalidArgumentf("%q is not an ability number", args[0])
	}

	result, err := g.resolver.UseAbility(n - 1)
	if err != nil {
		return err
	}
	if r := result.Reward; r != nil {
		g.con.printf("Victory over %s: +%d exp, +%d gold\n", r.Enemy, r.Experience, r.Gold)
	}
	return nil
}

func (g *game) potion(args []string) error {
	item := entities.ItemHealthPotion
	if len(args) > 0 && strings.EqualFold(args[0], "mana") {
		item = entities.ItemManaPotion
	}
	result, err := g.resolver.UsePotion(item)
	if err != nil {
		return err
	}
	g.con.printf("%s restored %d (%d left)\n", result.Item, result.Restored, result.Remaining)
	return nil
}

func (g *game) check(args []string) error {
	dc := encounter.DefaultSkillDifficulty
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.InvalidArgumentf("%q is not a difficulty", args[0])
		}
		dc = v
	}
	_, err := g.resolver.SkillCheck(dc)
	return err
}
