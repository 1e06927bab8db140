package nft

import (
	"time"

	"github.com/shopspring/decimal"
)

const SeedCreator = "GHOSTART"

// Seed returns the launch catalog. All records are approved, listed and
// held by the marketplace.
func Seed(now time.Time) []*NftRecord {
	mk := func(id int64, name, image, price string, rarity Rarity, traits ...string) *NftRecord {
		return &NftRecord{
			Id:        id,
			Name:      name,
			Creator:   SeedCreator,
			Image:     image,
			Price:     decimal.RequireFromString(price),
			Rarity:    rarity,
			Traits:    traits,
			Approved:  true,
			Listed:    true,
			CreatedAt: now,
		}
	}
	return []*NftRecord{
		mk(1, "Ghost Rider #1", "👻", "2.5", RarityRare, "Red Eyes", "Fire Chain"),
		mk(2, "Flaming Skull #42", "💀", "5.0", RarityEpic, "Glowing", "Ancient"),
		mk(3, "Alien Punk #88", "👽", "10.0", RarityLegendary, "Holographic", "Rare"),
		mk(4, "Glitch Spirit #7", "✨", "3.2", RarityRare, "Shimmer", "Ethereal"),
	}
}
