package economy

import (
	"time"

	"github.com/multiplexcombo/highroller/internal/models"
)

// Default periodic reward amounts
const (
	DefaultDailyReward   int64 = 100_000
	DefaultWeeklyReward  int64 = 700_000
	DefaultMonthlyReward int64 = 3_000_000
	DefaultYearlyReward  int64 = 36_000_000
)

// Vote rewards scale with cumulative vote count
const voteBaseReward int64 = 100_000

// voteTier maps an inclusive vote-count range to a reward multiplier.
// Tiers are scanned in order and the first match wins; every 21st vote is
// a bonus spike.
type voteTier struct {
	low        int64
	high       int64
	multiplier int64
}

var voteTiers = []voteTier{
	{1, 20, 1},
	{21, 21, 3},
	{22, 41, 2},
	{42, 42, 6},
	{43, 62, 3},
	{63, 63, 9},
	{64, 83, 4},
	{84, 84, 12},
}

// voteMultiplier returns the multiplier for a vote count, defaulting to 1
// when no tier matches.
func voteMultiplier(count int64) int64 {
	for _, tier := range voteTiers {
		if count >= tier.low && count <= tier.high {
			return tier.multiplier
		}
	}
	return 1
}

// job is a work assignment with a uniform pay range
type job struct {
	name   string
	emoji  string
	minPay int64
	maxPay int64
}

var workJobs = []job{
	{"Delivery Driver", "\U0001F69A", 50_000, 150_000},
	{"Casino Dealer", "\U0001F3B0", 75_000, 200_000},
	{"Security Guard", "\U0001F6E1️", 60_000, 180_000},
	{"Bartender", "\U0001F37A", 40_000, 120_000},
	{"Chef", "\U0001F468‍\U0001F373", 70_000, 220_000},
	{"Mechanic", "\U0001F527", 80_000, 250_000},
	{"Programmer", "\U0001F4BB", 100_000, 300_000},
	{"Doctor", "⚕️", 200_000, 500_000},
}

// Overtime pays more on a longer cooldown
var overtimeJobs = []job{
	{"Casino Manager", "\U0001F3A9", 200_000, 500_000},
	{"Investment Banker", "\U0001F4B0", 300_000, 700_000},
	{"Cryptocurrency Trader", "₿", 250_000, 800_000},
	{"High Stakes Dealer", "\U0001F0CF", 400_000, 900_000},
	{"CEO", "\U0001F454", 500_000, 1_000_000},
}

// workBoostMultiplier is how much an active work boost raises pay
const workBoostMultiplier = 1.5

// Shop item kinds
const (
	ItemKindBoost      = "boost"
	ItemKindConsumable = "consumable"
)

// ShopItem is a purchasable boost or consumable
type ShopItem struct {
	ID          string
	Name        string
	Description string
	Emoji       string
	Price       int64
	Kind        string

	// Boost fields, set when Kind is ItemKindBoost
	BoostKind string
	Effect    float64
	Duration  time.Duration
}

// Loot box reward bounds
const (
	lootBoxMinReward int64 = 10_000
	lootBoxMaxReward int64 = 1_000_000
)

// ShopItems is the fixed shop catalog, in display order
var ShopItems = []ShopItem{
	{
		ID:          "multiplier_2x",
		Name:        "2x Multiplier",
		Description: "Double your winnings for 1 hour",
		Emoji:       "⚡",
		Price:       500_000,
		Kind:        ItemKindBoost,
		BoostKind:   models.BoostMultiplier2x,
		Effect:      2,
		Duration:    time.Hour,
	},
	{
		ID:          "multiplier_3x",
		Name:        "3x Multiplier",
		Description: "Triple your winnings for 30 minutes",
		Emoji:       "\U0001F525",
		Price:       1_000_000,
		Kind:        ItemKindBoost,
		BoostKind:   models.BoostMultiplier3x,
		Effect:      3,
		Duration:    30 * time.Minute,
	},
	{
		ID:          "lucky_charm",
		Name:        "Lucky Charm",
		Description: "Increase win chance by 10% for 2 hours",
		Emoji:       "\U0001F340",
		Price:       750_000,
		Kind:        ItemKindBoost,
		BoostKind:   models.BoostLuckyCharm,
		Effect:      1.1,
		Duration:    2 * time.Hour,
	},
	{
		ID:          "work_boost",
		Name:        "Work Boost",
		Description: "Increase work rewards by 50% for 4 hours",
		Emoji:       "\U0001F4BC",
		Price:       300_000,
		Kind:        ItemKindBoost,
		BoostKind:   models.BoostWork,
		Effect:      workBoostMultiplier,
		Duration:    4 * time.Hour,
	},
	{
		ID:          "loot_box",
		Name:        "Mystery Loot Box",
		Description: "Contains random rewards (10k-1M coins)",
		Emoji:       "\U0001F4E6",
		Price:       250_000,
		Kind:        ItemKindConsumable,
	},
}

// FindShopItem looks an item up by its catalog ID
func FindShopItem(id string) (ShopItem, bool) {
	for _, item := range ShopItems {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}
