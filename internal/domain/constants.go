package domain

// Боевые константы
const (
	// DefaultStatValue подставляется вместо отсутствующего стата в формулах урона
	DefaultStatValue = 10

	// MaxCritChance - потолок шанса крита (50%)
	MaxCritChance = 0.5

	// CritMultiplier - множитель урона при крите
	CritMultiplier = 2.0

	// InvincibilityMs - окно неуязвимости после пропущенного удара
	InvincibilityMs = 500

	// BreakDurationMs - длительность состояния "break" после обнуления стойкости
	BreakDurationMs = 5000

	// StabilityRegenGraceMs - пауза после последнего удара, до которой стойкость не регенит
	StabilityRegenGraceMs = 1000

	// ObstacleContactDamage - фиксированный урон от столкновения с препятствием
	ObstacleContactDamage = 5
)

// Прогрессия
const (
	MaxLevel          = 30
	StatPointsPerXpUp = 3

	// LevelLoopGuard - предохранитель цикла мульти-левелапа.
	// Битые данные не должны подвешивать кадр.
	LevelLoopGuard = 100
)

// Репутация
const (
	ReputationMin     = 0
	ReputationMax     = 100
	ReputationNeutral = 50
)

// Фракции Нео-Токио: две академии-соперницы.
// Список расширяем - трекер репутации не знает их количества заранее.
const (
	FactionSeiran   FactionID = "seiran"
	FactionKurogane FactionID = "kurogane"
)

// DefaultFactions - фракции, которые заводятся игроку при создании
var DefaultFactions = []FactionID{FactionSeiran, FactionKurogane}

// Награды за зачистку
const (
	ScorePerEnemyKill = 100
	XpPerEnemyKill    = 25
	XpPerBossKill     = 150
)
