package entities

import "fmt"

// Catalog item names
const (
	ItemLongSword      = "Long Sword"
	ItemLeatherArmor   = "Leather Armor"
	ItemArcaneStaff    = "Arcane Staff"
	ItemManaPotion     = "Mana Potion"
	ItemHealthPotion   = "Health Potion"
	ItemStrengthElixir = "Strength Elixir"
)

// DefaultInventoryCapacity is the number of distinct stacks a new inventory holds
const DefaultInventoryCapacity = 20

// Item is a catalog entry
type Item struct {
	ID          int64
	Name        string
	Type        string
	Description string
	Value       int
}

// Catalog returns the items every store is seeded with
func Catalog() []Item {
	return []Item{
		{Name: ItemLongSword, Type: "Weapon", Description: "A reliable steel blade.", Value: 50},
		{Name: ItemLeatherArmor, Type: "Armor", Description: "Light armor of hardened leather.", Value: 40},
		{Name: ItemArcaneStaff, Type: "Weapon", Description: "A staff humming with arcane power.", Value: 60},
		{Name: ItemManaPotion, Type: "Consumable", Description: "Restores 25 mana.", Value: 20},
		{Name: ItemHealthPotion, Type: "Consumable", Description: "Restores 35 health.", Value: 20},
		{Name: ItemStrengthElixir, Type: "Consumable", Description: "A bitter draught that steels the arm.", Value: 35},
	}
}

// Inventory holds item stacks keyed by item name
type Inventory struct {
	ID       int64
	Capacity int
	Items    map[string]int
}

// NewInventory creates an empty inventory
func NewInventory(capacity int) *Inventory {
	return &Inventory{
		Capacity: capacity,
		Items:    make(map[string]int),
	}
}

// Add puts quantity of an item into the inventory. A new stack needs a free slot.
func (i *Inventory) Add(name string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if i.Items == nil {
		i.Items = make(map[string]int)
	}
	if _, ok := i.Items[name]; !ok && len(i.Items) >= i.Capacity {
		return fmt.Errorf("inventory full (%d slots)", i.Capacity)
	}
	i.Items[name] += quantity
	return nil
}

// Remove takes one of an item out. It reports whether one was available.
func (i *Inventory) Remove(name string) bool {
	if i.Items[name] <= 0 {
		return false
	}
	i.Items[name]--
	if i.Items[name] == 0 {
		delete(i.Items, name)
	}
	return true
}

// Quantity returns how many of an item are held
func (i *Inventory) Quantity(name string) int {
	return i.Items[name]
}
