package fantasy

import (
	"math"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/team"
)

const (
	pointsTeamWin       = 10.0
	pointsPerRoshan     = 20.0
	pointsPerBarracks   = 10.0
	pointsPerTower      = 10.0
	totalBarracksBySide = 6
	totalTowersBySide   = 11
)

type roleWeights struct {
	kill     float64
	death    float64
	assist   float64
	goldPerK float64
}

var weightsByRole = map[team.Role]roleWeights{
	team.RoleCarry:       {kill: 2.5, death: -2.5, goldPerK: 1},
	team.RoleMid:         {kill: 2.5, death: -1.5, assist: 1.5},
	team.RoleOfflane:     {kill: 2.5, death: -1.5, assist: 2.5},
	team.RoleSoftSupport: {kill: 1, death: -2.5, assist: 3},
	team.RoleHardSupport: {kill: 1, death: -2.5, assist: 5},
}

// PointsInput is everything one player's ingest-time score depends on.
type PointsInput struct {
	Role    team.Role
	Kills   int
	Deaths  int
	Assists int
	// Gold is unspent gold at the end of the game.
	Gold              int
	TeamWon           bool
	TeamRoshanKills   int
	EnemyBarracksBits int
	EnemyTowerBits    int
	HasStructureData  bool
}

// Points scores a player once, at ingest. Structure points count the
// opponent's buildings this player's side destroyed; players without a
// known role only receive the team components.
func Points(in PointsInput) float64 {
	points := 0.0
	if in.TeamWon {
		points += pointsTeamWin
	}
	points += float64(in.TeamRoshanKills) * pointsPerRoshan
	if in.HasStructureData {
		points += float64(DestroyedStructures(in.EnemyBarracksBits, totalBarracksBySide)) * pointsPerBarracks
		points += float64(DestroyedStructures(in.EnemyTowerBits, totalTowersBySide)) * pointsPerTower
	}

	if w, ok := weightsByRole[in.Role]; ok {
		points += float64(in.Kills) * w.kill
		points += float64(in.Deaths) * w.death
		points += float64(in.Assists) * w.assist
		points += float64(in.Gold) / 1000 * w.goldPerK
	}
	return Round2(points)
}

// DestroyedStructures counts cleared bits of a status bitmask of the given width.
func DestroyedStructures(statusBits, total int) int {
	if statusBits < 0 {
		statusBits = 0
	}
	standing := 0
	for i := 0; i < total; i++ {
		if statusBits&(1<<i) != 0 {
			standing++
		}
	}
	return total - standing
}

func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
