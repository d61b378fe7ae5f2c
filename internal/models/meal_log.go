package models

import (
	"encoding/json"
	"strings"
)

type MealSlot string

const (
	MealBreakfast    MealSlot = "Breakfast"
	MealMidMorning   MealSlot = "Mid-morning"
	MealLunch        MealSlot = "Lunch"
	MealMidAfternoon MealSlot = "Mid-afternoon"
	MealDinner       MealSlot = "Dinner"
)

const MaxFoodsPerSlot = 5

var mealSlotAliases = map[string]MealSlot{
	"breakfast":         MealBreakfast,
	"desayuno":          MealBreakfast,
	"mid-morning":       MealMidMorning,
	"intermedio-mañana": MealMidMorning,
	"lunch":             MealLunch,
	"comida":            MealLunch,
	"mid-afternoon":     MealMidAfternoon,
	"intermedio-tarde":  MealMidAfternoon,
	"dinner":            MealDinner,
	"cena":              MealDinner,
}

func MealSlots() []MealSlot {
	return []MealSlot{MealBreakfast, MealMidMorning, MealLunch, MealMidAfternoon, MealDinner}
}

// ParseMealSlot resolves English and legacy Spanish slot names.
func ParseMealSlot(raw string) (MealSlot, bool) {
	slot, ok := mealSlotAliases[strings.ToLower(strings.TrimSpace(raw))]
	return slot, ok
}

// MealLog maps a slot to the foods eaten in it, in entry order.
type MealLog map[MealSlot][]string

// NewMealLog drops blank food names. Every slot passed in stays present,
// possibly with an empty list.
func NewMealLog(entries map[MealSlot][]string) MealLog {
	log := make(MealLog, len(entries))
	for slot, foods := range entries {
		kept := make([]string, 0, len(foods))
		for _, food := range foods {
			if strings.TrimSpace(food) == "" {
				continue
			}
			kept = append(kept, food)
		}
		log[slot] = kept
	}
	return log
}

// Foods returns every food in the log in slot order.
func (log MealLog) Foods() []string {
	foods := make([]string, 0)
	seen := make(map[MealSlot]struct{}, len(log))
	for _, slot := range MealSlots() {
		foods = append(foods, log[slot]...)
		seen[slot] = struct{}{}
	}
	for slot, entries := range log {
		if _, ok := seen[slot]; ok {
			continue
		}
		foods = append(foods, entries...)
	}
	return foods
}

// MealLogCodec turns a meal log into a single storage cell and back.
// Decode(Encode(log)) must reproduce log.
type MealLogCodec interface {
	Encode(log MealLog) string
	Decode(cell string) MealLog
}

// JSONMealLogCodec stores the log as a JSON object of string arrays.
type JSONMealLogCodec struct{}

func (JSONMealLogCodec) Encode(log MealLog) string {
	payload := make(map[string][]string, len(log))
	for slot, foods := range NewMealLog(log) {
		payload[string(slot)] = foods
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

// Decode never fails: an empty or malformed cell yields an empty log.
func (JSONMealLogCodec) Decode(cell string) MealLog {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return MealLog{}
	}

	payload := map[string][]string{}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		legacy, ok := decodeDictLiteral(trimmed)
		if !ok {
			return MealLog{}
		}
		payload = legacy
	}

	log := make(MealLog, len(payload))
	for rawSlot, foods := range payload {
		slot, ok := ParseMealSlot(rawSlot)
		if !ok {
			slot = MealSlot(rawSlot)
		}
		if foods == nil {
			foods = []string{}
		}
		log[slot] = foods
	}
	return log
}
