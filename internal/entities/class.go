package entities

import (
	"fmt"
	"sort"
	"sync"
)

// Class is a character class tag
type Class string

// Built-in classes
const (
	ClassWarrior Class = "Warrior"
	ClassMage    Class = "Mage"
)

// String returns the tag
func (c Class) String() string {
	return string(c)
}

// Range is an inclusive integer range
type Range struct {
	Min int
	Max int
}

// Contains reports whether v lies in the range
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// ClassSpec drives everything class specific: stat ranges, weaknesses,
// the final-roll ranges, abilities and starting items.
type ClassSpec struct {
	Class        Class
	Description  string
	Strength     Range
	Dexterity    Range
	Constitution Range
	Intelligence Range
	Health       Range
	Mana         Range
	Weaknesses   []string

	// FinalStrength and FinalHealth are used by the final roll on the
	// selection screen
	FinalStrength Range
	FinalHealth   Range

	PrimaryAbility string
	Abilities      []Ability
	StartingItems  []string
}

var (
	classMu    sync.RWMutex
	classTable = map[Class]*ClassSpec{
		ClassWarrior: {
			Class:          ClassWarrior,
			Description:    "Frontline fighter who trades magic for raw strength and endurance.",
			Strength:       Range{18, 25},
			Dexterity:      Range{10, 15},
			Constitution:   Range{15, 20},
			Intelligence:   Range{8, 12},
			Health:         Range{120, 160},
			Mana:           Range{20, 40},
			Weaknesses:     []string{WeaknessMagic, WeaknessPoison, WeaknessFire},
			FinalStrength:  Range{18, 30},
			FinalHealth:    Range{120, 180},
			PrimaryAbility: "Precise Cut",
			Abilities:      warriorAbilities,
			StartingItems:  []string{ItemLongSword, ItemLeatherArmor},
		},
		ClassMage: {
			Class:          ClassMage,
			Description:    "Arcane caster with a deep mana pool and a fragile body.",
			Strength:       Range{8, 12},
			Dexterity:      Range{12, 16},
			Constitution:   Range{10, 14},
			Intelligence:   Range{18, 25},
			Health:         Range{80, 120},
			Mana:           Range{80, 120},
			Weaknesses:     []string{WeaknessPhysical, WeaknessShadow, WeaknessIce},
			FinalStrength:  Range{18, 30},
			FinalHealth:    Range{120, 180},
			PrimaryAbility: "Fireball",
			Abilities:      mageAbilities,
			StartingItems:  []string{ItemArcaneStaff, ItemManaPotion},
		},
	}
)

// LookupClass returns the spec registered for a class tag
func LookupClass(c Class) (*ClassSpec, bool) {
	classMu.RLock()
	defer classMu.RUnlock()
	spec, ok := classTable[c]
	return spec, ok
}

// RegisterClass adds a class to the table. Existing tags cannot be replaced.
func RegisterClass(spec *ClassSpec) error {
	if spec == nil || spec.Class == "" {
		return fmt.Errorf("class spec requires a class tag")
	}
	if len(spec.Weaknesses) == 0 {
		return fmt.Errorf("class %s requires at least one weakness", spec.Class)
	}

	classMu.Lock()
	defer classMu.Unlock()
	if _, exists := classTable[spec.Class]; exists {
		return fmt.Errorf("class %s already registered", spec.Class)
	}
	classTable[spec.Class] = spec
	return nil
}

// Classes returns every registered class tag in name order
func Classes() []Class {
	classMu.RLock()
	defer classMu.RUnlock()

	out := make([]Class, 0, len(classTable))
	for c := range classTable {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ClassAbilities returns fresh copies of a class's abilities with no cooldown
func ClassAbilities(c Class) []*Ability {
	spec, ok := LookupClass(c)
	if !ok {
		return nil
	}
	out := make([]*Ability, len(spec.Abilities))
	for i := range spec.Abilities {
		a := spec.Abilities[i]
		a.Remaining = 0
		out[i] = &a
	}
	return out
}
