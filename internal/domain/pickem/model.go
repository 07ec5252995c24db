package pickem

import (
	"fmt"
	"time"
)

// Predictions is a user's placement of tournament teams, by team id.
type Predictions struct {
	Champion              string
	RunnerUp              string
	ThirdPlace            string
	FourthPlace           string
	FifthToSixth          []string
	SeventhToEighth       []string
	NinthToTwelfth        []string
	ThirteenthToSixteenth []string
	Pool                  []string
}

type Pickem struct {
	UserID      string
	Predictions Predictions
	LastUpdated time.Time
}

type UserProfile struct {
	UserID          string
	DisplayName     string
	DiscordUsername string
}

// Bucket capacities of a full prediction. Pool has no fixed size.
const (
	FifthToSixthSize          = 2
	SeventhToEighthSize       = 2
	NinthToTwelfthSize        = 4
	ThirteenthToSixteenthSize = 4
)

// Problems reports overfilled buckets, teams placed twice and, when known is
// non-nil, ids that are not registered teams.
func (p Predictions) Problems(known map[string]bool) []string {
	var problems []string
	seen := make(map[string]string)
	check := func(bucket string, ids []string, capacity int) {
		if capacity > 0 && len(ids) > capacity {
			problems = append(problems, fmt.Sprintf("%s holds at most %d teams, got %d", bucket, capacity, len(ids)))
		}
		for _, id := range ids {
			if id == "" {
				continue
			}
			if known != nil && !known[id] {
				problems = append(problems, fmt.Sprintf("%s: unknown team %s", bucket, id))
			}
			if prev, ok := seen[id]; ok {
				problems = append(problems, fmt.Sprintf("team %s is placed in both %s and %s", id, prev, bucket))
				continue
			}
			seen[id] = bucket
		}
	}
	check("champion", []string{p.Champion}, 1)
	check("runnerUp", []string{p.RunnerUp}, 1)
	check("thirdPlace", []string{p.ThirdPlace}, 1)
	check("fourthPlace", []string{p.FourthPlace}, 1)
	check("fifthToSixth", p.FifthToSixth, FifthToSixthSize)
	check("seventhToEighth", p.SeventhToEighth, SeventhToEighthSize)
	check("ninthToTwelfth", p.NinthToTwelfth, NinthToTwelfthSize)
	check("thirteenthToSixteenth", p.ThirteenthToSixteenth, ThirteenthToSixteenthSize)
	check("pool", p.Pool, 0)
	return problems
}
