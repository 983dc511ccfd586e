package loadtest

import "github.com/okian/arcadeboard/internal/domain/model"

// Request bodies mirror the /v1/evaluate contract.
type recordBody struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	Status       string `json:"status,omitempty"`
	SkillBadges  int    `json:"skill_badges"`
	ArcadeGames  int    `json:"arcade_games"`
	TriviaGames  int    `json:"trivia_games"`
	SpecialGames int    `json:"special_games,omitempty"`
}

type evaluateBody struct {
	Records []recordBody `json:"records"`
	Policy  string       `json:"policy"`
	TopN    int          `json:"top_n,omitempty"`
}

func toBody(records []model.Record, topN int) evaluateBody {
	body := evaluateBody{Records: make([]recordBody, len(records)), Policy: "fail", TopN: topN}
	for i, r := range records {
		body.Records[i] = recordBody{
			ID:           r.ID,
			Name:         r.Name,
			Status:       r.Status,
			SkillBadges:  r.Counts.SkillBadges,
			ArcadeGames:  r.Counts.ArcadeGames,
			TriviaGames:  r.Counts.TriviaGames,
			SpecialGames: r.Counts.SpecialGames,
		}
	}
	return body
}
