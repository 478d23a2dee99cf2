// Package config defines the single immutable configuration value
// threaded through newGame/validate/resolveTurn (spec.md section 9:
// "Global mutable config... replaced by a single immutable
// configuration value"). Grounded on the teacher's declarative catalogs
// (ships.ShipBlueprints, ships.AbilitiesCatalog, ships.RoleModesCatalog,
// ships.EconomicCap, buildings.BaseEnergyOutput) which are themselves
// plain Go value tables with no behavior attached — the same shape,
// generalized to the fields spec.md names.
package config

import "github.com/greenm01/ec4x/internal/state"

// ShipStats is the baseline, tech-gate-free stat block for a ShipClass.
// Frozen onto each Ship at construction time per spec.md section 3.
type ShipStats struct {
	AS, DS        int
	CommandCost   int
	CargoCapacity int
	RequiredCST   int // tech gate: house.Tech[TechCST] must be >= this
	MetalCost     int // base PP cost
}

// FacilityStats is the baseline stat block for a NeoriaClass/Kastra.
type FacilityStats struct {
	RequiredCST       int
	RequiresShipyardAssist bool
	BaseCost          int
}

// GroundUnitStats is the baseline stat block for a GroundUnitClass,
// frozen onto each GroundUnit at construction time.
type GroundUnitStats struct {
	AS, DS   int
	BaseCost int
}

// CEROutcome is the result of a single combat-effect-resolution lookup.
type CEROutcome int

const (
	CERMiss CEROutcome = iota
	CERCripple
	CERDestroy
)

// CERRow is one row of a CER table, keyed by the single
// (attacker WEP - defender DS) bucket; it gives the outcome distribution
// as cumulative thresholds in [0,100) against a d100 roll: roll <
// missUpto -> Miss, roll < crippleUpto -> Cripple, else Destroy.
type CERRow struct {
	MissUpto    int
	CrippleUpto int
}

// TaxTier maps a tax-rate bracket to its prestige effect per turn.
type TaxTier struct {
	MaxRate        int
	PrestigeDelta  int
}

// MoraleTier maps a House's prestige tier to a combat die-roll modifier
// and the set of targets it applies to.
type MoraleTarget int

const (
	MoraleTargetNone MoraleTarget = iota
	MoraleTargetRandom
	MoraleTargetAll
)

type MoraleTier struct {
	DRM    int
	Target MoraleTarget
}

// Rules is the full immutable configuration value.
type Rules struct {
	Ships      map[state.ShipClass]ShipStats
	Facilities map[state.NeoriaClass]FacilityStats
	GroundUnits map[state.GroundUnitClass]GroundUnitStats

	// CSTDockMultiplier maps a CST tech level to the effectiveDocks
	// multiplier applied to every Neoria of an advancing house
	// (spec.md section 4.3 Maintenance: "effectiveDocks = baseDocks x
	// cstMultiplier(newLevel)").
	CSTDockMultiplier map[int]float64

	// CER is keyed by a coarse (attackerWEP - defenderDS) bucket; see
	// combat.CERBucket for the bucketing function.
	CER map[int]CERRow
	GroundCER map[int]CERRow

	TaxTiers []TaxTier

	Morale map[string]MoraleTier // keyed by prestige-tier name: Collapsing/VeryLow/Low/Normal/High/VeryHigh

	EspionagePointCostPP int // 40 PP per EBP/CIP, per spec.md section 4.2

	TerraformBaseCost map[state.PlanetClass]int

	ResearchUpgradeMonths [2]int // {1, 7}

	ShieldBlockChancePct int // ground-hit shield block roll threshold

	VictoryPrestigeThreshold int

	// PlanetClassIncomeFactor and ResourceIncomeFactor scale a colony's
	// per-PU income (spec.md section 4.3 Income phase), the same
	// per-planet-class-or-rating suitability-table shape as
	// buildings.PlanetSuitability/ResourceSuitability, re-keyed onto
	// spec.md's PlanetClass/ResourceRating enums instead of named planets.
	PlanetClassIncomeFactor  map[state.PlanetClass]float64
	ResourceIncomeFactor     map[state.ResourceRating]float64

	// PopulationGrowthRate and IndustrialGrowthRate are per-planet-class
	// natural growth rates applied once per turn to PopulationUnits/
	// IndustrialUnits, the same shape as buildings.GrowthRate.
	PopulationGrowthRate map[state.PlanetClass]float64
	IndustrialGrowthRate map[state.PlanetClass]float64

	BlockadePenaltyPct int // income reduction while Colony.Blockade.Active

	// ColonizationScanRange is the hex-distance radius a losing
	// colonization claim searches for a fallback system (spec.md
	// section 4.3 Command phase "Colonization").
	ColonizationScanRange int

	// ColonyFoundationPU is the population-unit floor a new colony
	// starts with regardless of deposited colonist cargo (spec.md
	// section 2 Colony lifecycle: "foundation of 3 PU").
	ColonyFoundationPU int

	// FighterColonyCapacity is the maximum number of Fighter-class
	// ships a single colony may station (spec.md section 4.1 Capacity
	// gate: "fighter colony capacity").
	FighterColonyCapacity int

	// HouseSquadronCapacity is the maximum number of non-Scout ships a
	// house may field across all fleets (spec.md section 4.1 Capacity
	// gate: "house squadron capacity, excluding scouts").
	HouseSquadronCapacity int

	// SalvageValuePP is the flat treasury credit a fleet's Salvage order
	// recovers from an uncolonized system's wreckage (spec.md section
	// 4.1 fleet command list).
	SalvageValuePP int
}

// Default returns the built-in baseline Rules, in the same spirit as
// the teacher's ships.ShipBlueprints/EconomicCap package-level vars:
// a single literal table, hand-tuned, loaded without any file I/O.
func Default() Rules {
	r := Rules{
		Ships:      defaultShipStats(),
		Facilities: defaultFacilityStats(),
		GroundUnits: defaultGroundUnitStats(),
		CSTDockMultiplier: map[int]float64{
			1: 1.0, 2: 1.0, 3: 1.25, 4: 1.5, 5: 1.75, 6: 2.0, 7: 2.25, 8: 2.5,
		},
		CER:       defaultCER(),
		GroundCER: defaultGroundCER(),
		TaxTiers: []TaxTier{
			{MaxRate: 20, PrestigeDelta: 2},
			{MaxRate: 40, PrestigeDelta: 1},
			{MaxRate: 60, PrestigeDelta: 0},
			{MaxRate: 80, PrestigeDelta: -1},
			{MaxRate: 100, PrestigeDelta: -2},
		},
		Morale: map[string]MoraleTier{
			"Collapsing": {DRM: -3, Target: MoraleTargetAll},
			"VeryLow":    {DRM: -2, Target: MoraleTargetRandom},
			"Low":        {DRM: -1, Target: MoraleTargetRandom},
			"Normal":     {DRM: 0, Target: MoraleTargetNone},
			"High":       {DRM: 1, Target: MoraleTargetRandom},
			"VeryHigh":   {DRM: 2, Target: MoraleTargetAll},
		},
		EspionagePointCostPP: 40,
		TerraformBaseCost: map[state.PlanetClass]int{
			state.Eden: 2000, state.Lush: 1500, state.Benign: 1000,
			state.Harsh: 600, state.Hostile: 400, state.Desolate: 120, state.Extreme: 60,
		},
		ResearchUpgradeMonths:    [2]int{1, 7},
		ShieldBlockChancePct:     35,
		VictoryPrestigeThreshold: 2500,
		PlanetClassIncomeFactor: map[state.PlanetClass]float64{
			state.Eden: 1.5, state.Lush: 1.3, state.Benign: 1.1,
			state.Harsh: 0.9, state.Hostile: 0.7, state.Desolate: 0.5, state.Extreme: 0.3,
		},
		ResourceIncomeFactor: map[state.ResourceRating]float64{
			state.VeryPoor: 0.6, state.Poor: 0.8, state.Abundant: 1.0,
			state.Rich: 1.25, state.VeryRich: 1.5,
		},
		PopulationGrowthRate: map[state.PlanetClass]float64{
			state.Eden: 0.08, state.Lush: 0.06, state.Benign: 0.05,
			state.Harsh: 0.03, state.Hostile: 0.02, state.Desolate: 0.01, state.Extreme: 0.005,
		},
		IndustrialGrowthRate: map[state.PlanetClass]float64{
			state.Eden: 0.05, state.Lush: 0.045, state.Benign: 0.04,
			state.Harsh: 0.03, state.Hostile: 0.02, state.Desolate: 0.015, state.Extreme: 0.01,
		},
		BlockadePenaltyPct:       50,
		ColonizationScanRange:    4,
		ColonyFoundationPU:       3,
		FighterColonyCapacity:    30,
		HouseSquadronCapacity:    150,
		SalvageValuePP:           40,
	}
	return r
}

func defaultShipStats() map[state.ShipClass]ShipStats {
	return map[state.ShipClass]ShipStats{
		state.ShipFighter:          {AS: 1, DS: 1, CommandCost: 1, RequiredCST: 1, MetalCost: 10},
		state.ShipCorvette:         {AS: 2, DS: 2, CommandCost: 1, RequiredCST: 1, MetalCost: 20},
		state.ShipFrigate:          {AS: 3, DS: 3, CommandCost: 2, RequiredCST: 1, MetalCost: 40},
		state.ShipScout:            {AS: 0, DS: 1, CommandCost: 1, RequiredCST: 1, MetalCost: 30},
		state.ShipRaider:           {AS: 4, DS: 2, CommandCost: 2, RequiredCST: 2, MetalCost: 60},
		state.ShipDestroyer:        {AS: 5, DS: 4, CommandCost: 3, RequiredCST: 2, MetalCost: 90},
		state.ShipCruiser:          {AS: 7, DS: 6, CommandCost: 4, RequiredCST: 3, MetalCost: 140},
		state.ShipLightCruiser:     {AS: 6, DS: 5, CommandCost: 3, RequiredCST: 3, MetalCost: 120},
		state.ShipHeavyCruiser:     {AS: 9, DS: 8, CommandCost: 5, RequiredCST: 4, MetalCost: 200},
		state.ShipBattlecruiser:    {AS: 11, DS: 9, CommandCost: 6, RequiredCST: 4, MetalCost: 260},
		state.ShipBattleship:       {AS: 14, DS: 13, CommandCost: 7, RequiredCST: 5, MetalCost: 340},
		state.ShipDreadnought:      {AS: 18, DS: 17, CommandCost: 9, RequiredCST: 6, MetalCost: 460},
		state.ShipSuperDreadnought: {AS: 24, DS: 22, CommandCost: 11, RequiredCST: 7, MetalCost: 620},
		state.ShipCarrier:          {AS: 4, DS: 10, CommandCost: 6, CargoCapacity: 6, RequiredCST: 5, MetalCost: 380},
		state.ShipSuperCarrier:     {AS: 6, DS: 16, CommandCost: 9, CargoCapacity: 12, RequiredCST: 7, MetalCost: 560},
		state.ShipETAC:             {AS: 0, DS: 2, CommandCost: 2, CargoCapacity: 3, RequiredCST: 1, MetalCost: 70},
		state.ShipTroopTransport:   {AS: 0, DS: 3, CommandCost: 3, CargoCapacity: 5, RequiredCST: 2, MetalCost: 90},
		state.ShipPlanetBreaker:    {AS: 40, DS: 30, CommandCost: 20, RequiredCST: 8, MetalCost: 2000},
	}
}

func defaultGroundUnitStats() map[state.GroundUnitClass]GroundUnitStats {
	return map[state.GroundUnitClass]GroundUnitStats{
		state.GroundArmy:           {AS: 3, DS: 4, BaseCost: 50},
		state.GroundMarine:        {AS: 4, DS: 2, BaseCost: 60},
		state.GroundBattery:       {AS: 6, DS: 3, BaseCost: 80},
		state.GroundPlanetaryShield: {AS: 0, DS: 8, BaseCost: 150},
	}
}

func defaultFacilityStats() map[state.NeoriaClass]FacilityStats {
	return map[state.NeoriaClass]FacilityStats{
		state.Spaceport: {RequiredCST: 1, BaseCost: 200},
		state.Shipyard:  {RequiredCST: 3, RequiresShipyardAssist: true, BaseCost: 500},
		state.Drydock:   {RequiredCST: 2, BaseCost: 250},
	}
}

// defaultCER buckets (attackerWEP - defenderDS) into coarse outcome
// rows; more favorable buckets shift probability mass toward Destroy.
func defaultCER() map[int]CERRow {
	return map[int]CERRow{
		-4: {MissUpto: 70, CrippleUpto: 95},
		-3: {MissUpto: 60, CrippleUpto: 92},
		-2: {MissUpto: 50, CrippleUpto: 88},
		-1: {MissUpto: 40, CrippleUpto: 82},
		0:  {MissUpto: 30, CrippleUpto: 75},
		1:  {MissUpto: 22, CrippleUpto: 68},
		2:  {MissUpto: 15, CrippleUpto: 60},
		3:  {MissUpto: 10, CrippleUpto: 50},
		4:  {MissUpto: 5, CrippleUpto: 40},
	}
}

func defaultGroundCER() map[int]CERRow {
	return map[int]CERRow{
		-4: {MissUpto: 75, CrippleUpto: 97},
		-2: {MissUpto: 55, CrippleUpto: 90},
		0:  {MissUpto: 35, CrippleUpto: 80},
		2:  {MissUpto: 18, CrippleUpto: 65},
		4:  {MissUpto: 8, CrippleUpto: 45},
	}
}
