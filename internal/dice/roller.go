package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller is the single source of randomness in combat: deck shuffles, enemy
// intent picks and discover choices all go through it so tests can pin them.
type Roller interface {
	// Roll returns a value in [1, sides]
	Roll(sides int) (int, error)
}
