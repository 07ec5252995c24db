package opendota

import (
	"strings"

	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

type matchPayload struct {
	MatchID               int64            `json:"match_id"`
	RadiantWin            bool             `json:"radiant_win"`
	Duration              int              `json:"duration"`
	StartTime             int64            `json:"start_time"`
	FirstBloodTime        int              `json:"first_blood_time"`
	RadiantName           string           `json:"radiant_name"`
	DireName              string           `json:"dire_name"`
	RadiantTeam           *teamPayload     `json:"radiant_team"`
	DireTeam              *teamPayload     `json:"dire_team"`
	RadiantTowerStatus    *int             `json:"tower_status_radiant"`
	DireTowerStatus       *int             `json:"tower_status_dire"`
	RadiantBarracksStatus *int             `json:"barracks_status_radiant"`
	DireBarracksStatus    *int             `json:"barracks_status_dire"`
	Version               *int             `json:"version"`
	PicksBans             []pickBanPayload `json:"picks_bans"`
	Players               []playerPayload  `json:"players"`
}

type teamPayload struct {
	TeamID int64  `json:"team_id"`
	Name   string `json:"name"`
	Tag    string `json:"tag"`
}

type pickBanPayload struct {
	IsPick bool `json:"is_pick"`
	HeroID int  `json:"hero_id"`
	Team   int  `json:"team"`
	Order  int  `json:"order"`
}

type playerPayload struct {
	AccountID         *int64         `json:"account_id"`
	PlayerSlot        int            `json:"player_slot"`
	HeroID            int            `json:"hero_id"`
	Kills             int            `json:"kills"`
	Deaths            int            `json:"deaths"`
	Assists           int            `json:"assists"`
	GoldPerMin        int            `json:"gold_per_min"`
	XPPerMin          int            `json:"xp_per_min"`
	LastHits          int            `json:"last_hits"`
	Denies            int            `json:"denies"`
	NetWorth          int            `json:"net_worth"`
	HeroDamage        int            `json:"hero_damage"`
	TowerDamage       int            `json:"tower_damage"`
	HeroHealing       int            `json:"hero_healing"`
	Gold              int            `json:"gold"`
	GoldSpent         int            `json:"gold_spent"`
	TotalGold         int            `json:"total_gold"`
	ObsPlaced         int            `json:"obs_placed"`
	SenPlaced         int            `json:"sen_placed"`
	ObserverKills     int            `json:"observer_kills"`
	SentryKills       int            `json:"sentry_kills"`
	CourierKills      int            `json:"courier_kills"`
	CampsStacked      int            `json:"camps_stacked"`
	RunePickups       int            `json:"rune_pickups"`
	RoshanKills       int            `json:"roshan_kills"`
	BuybackCount      int            `json:"buyback_count"`
	FirstBloodClaimed int            `json:"firstblood_claimed"`
	KillStreaks       map[string]int `json:"kill_streaks"`
	MultiKills        map[string]int `json:"multi_kills"`
	LanePos           any            `json:"lane_pos"`
	ObsLog            any            `json:"obs_log"`
	PurchaseLog       any            `json:"purchase_log"`
}

func (m matchPayload) toExternal() usecase.ExternalMatch {
	out := usecase.ExternalMatch{
		MatchID:               m.MatchID,
		RadiantWin:            m.RadiantWin,
		Duration:              m.Duration,
		StartTime:             m.StartTime,
		FirstBloodTime:        m.FirstBloodTime,
		RadiantName:           teamName(m.RadiantName, m.RadiantTeam),
		DireName:              teamName(m.DireName, m.DireTeam),
		RadiantTowerStatus:    m.RadiantTowerStatus,
		DireTowerStatus:       m.DireTowerStatus,
		RadiantBarracksStatus: m.RadiantBarracksStatus,
		DireBarracksStatus:    m.DireBarracksStatus,
		Version:               m.Version,
		PicksBans:             make([]usecase.ExternalPickBan, 0, len(m.PicksBans)),
		Players:               make([]usecase.ExternalPlayer, 0, len(m.Players)),
	}
	for _, pb := range m.PicksBans {
		out.PicksBans = append(out.PicksBans, usecase.ExternalPickBan{
			IsPick: pb.IsPick,
			HeroID: pb.HeroID,
			Team:   pb.Team,
			Order:  pb.Order,
		})
	}
	for _, p := range m.Players {
		out.Players = append(out.Players, p.toExternal())
	}
	return out
}

func (p playerPayload) toExternal() usecase.ExternalPlayer {
	var accountID int64
	if p.AccountID != nil {
		accountID = *p.AccountID
	}
	return usecase.ExternalPlayer{
		AccountID:         accountID,
		PlayerSlot:        p.PlayerSlot,
		HeroID:            p.HeroID,
		Kills:             p.Kills,
		Deaths:            p.Deaths,
		Assists:           p.Assists,
		GoldPerMin:        p.GoldPerMin,
		XPPerMin:          p.XPPerMin,
		LastHits:          p.LastHits,
		Denies:            p.Denies,
		NetWorth:          p.NetWorth,
		HeroDamage:        p.HeroDamage,
		TowerDamage:       p.TowerDamage,
		HeroHealing:       p.HeroHealing,
		Gold:              p.Gold,
		GoldSpent:         p.GoldSpent,
		TotalGold:         p.TotalGold,
		ObsPlaced:         p.ObsPlaced,
		SenPlaced:         p.SenPlaced,
		ObserverKills:     p.ObserverKills,
		SentryKills:       p.SentryKills,
		CourierKills:      p.CourierKills,
		CampsStacked:      p.CampsStacked,
		RunePickups:       p.RunePickups,
		RoshanKills:       p.RoshanKills,
		BuybackCount:      p.BuybackCount,
		FirstBloodClaimed: p.FirstBloodClaimed > 0,
		KillStreaks:       p.KillStreaks,
		MultiKills:        p.MultiKills,
		HasParsedLogs:     present(p.LanePos) || present(p.ObsLog) || present(p.PurchaseLog),
	}
}

func teamName(name string, team *teamPayload) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if team != nil {
		return strings.TrimSpace(team.Name)
	}
	return ""
}

func present(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case []any:
		return len(value) > 0
	case map[string]any:
		return len(value) > 0
	default:
		return true
	}
}
