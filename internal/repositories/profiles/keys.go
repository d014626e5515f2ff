package profiles

const (
	profileKeyPrefix = "profile:"

	fieldGold         = "gold"
	fieldBonusMaxSand = "bonus_max_sand"
	fieldUpdatedAt    = "updated_at"
)

func profileKey(id string) string {
	return profileKeyPrefix + id
}

func cardsKey(id string) string {
	return profileKeyPrefix + id + ":cards"
}
