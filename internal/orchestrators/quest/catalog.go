package quest

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/random"
)

// Step bounds for catalog quests
const (
	MinSteps = 2
	MaxSteps = 4
)

// Offer is a quest template. Steps are rolled when the quest is issued.
type Offer struct {
	Title       string
	Description string
	Location    string
	Reward      string
	StoryHook   string
}

// Area names
const (
	AreaEldoriaVillage = "Eldoria Village"
	AreaLakeShore      = "Lake Shore"
)

var areaOffers = map[string]Offer{
	AreaEldoriaVillage: {
		Title:       "Protect the Village",
		Description: "Defeat the bandits threatening the village's peace",
		Location:    AreaEldoriaVillage,
		Reward:      "100 gold coins and reputation",
		StoryHook:   "Bandits have been terrorizing the merchants. The village needs a hero to restore the peace.",
	},
	AreaLakeShore: {
		Title:       "Beast of the Lake",
		Description: "Reach the marked shore and face what lurks beneath",
		Location:    AreaLakeShore,
		Reward:      "A relic from the lake bed",
		StoryHook:   "Fishermen whisper of a beast rising from the lake at dusk.",
	},
}

// OfferFor returns the quest template offered in an area
func OfferFor(area string) (Offer, bool) {
	o, ok := areaOffers[area]
	return o, ok
}

// Issue turns an offer into a quest with 2 to 4 steps
func Issue(roller dice.Roller, offer Offer) (*entities.Quest, error) {
	steps, err := random.Between(roller, MinSteps, MaxSteps)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll quest steps")
	}
	return &entities.Quest{
		Title:       offer.Title,
		Description: offer.Description,
		Location:    offer.Location,
		Reward:      offer.Reward,
		StoryHook:   offer.StoryHook,
		TotalSteps:  steps,
	}, nil
}

// Accept issues the area's quest into the tracker. Accepting a quest already in
// the journal is not an error.
func (t *Tracker) Accept(roller dice.Roller, area string) (*entities.Quest, error) {
	offer, ok := OfferFor(area)
	if !ok {
		return nil, errors.NotFoundf("no quest offered in %q", area).
			WithReason(errors.ReasonQuestNotFound)
	}
	if existing, err := t.Get(offer.Title); err == nil {
		return existing, nil
	}

	q, err := Issue(roller, offer)
	if err != nil {
		return nil, err
	}
	if err := t.Add(q); err != nil {
		return nil, err
	}
	return t.Get(q.Title)
}
