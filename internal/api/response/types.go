package response

import (
	"time"

	"github.com/duelgrid/duelgrid/internal/model"
)

// Player represents a session participant in API responses
type Player struct {
	Username     string `json:"username"`
	SkillLevel   int    `json:"skill_level"`
	Region       string `json:"region"`
	ConnectionID string `json:"connection_id"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		Username:     p.Username,
		SkillLevel:   p.SkillLevel,
		Region:       p.Region,
		ConnectionID: string(p.ConnectionID),
	}
}

// QueueJoinedResponse is the response for a successful queue join
type QueueJoinedResponse struct {
	Queued       bool   `json:"queued"`
	ConnectionID string `json:"connection_id"`
}

// Move represents a single logged move
type Move struct {
	Seat string `json:"seat"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// Session represents a session's full visible state
type Session struct {
	ID             string     `json:"id"`
	Players        [2]Player  `json:"players"`
	Board          [][]string `json:"board"`
	Turn           string     `json:"turn"`
	Moves          []Move     `json:"moves"`
	CreatedAt      time.Time  `json:"created_at"`
	LastActivityAt time.Time  `json:"last_activity_at"`
}

// SessionFromModel converts a model.Session to a response Session
func SessionFromModel(s *model.Session) Session {
	resp := Session{
		ID:             string(s.ID),
		Turn:           string(s.Turn),
		Board:          BoardFromModel(s.Board),
		Moves:          make([]Move, len(s.MoveLog)),
		CreatedAt:      s.CreatedAt,
		LastActivityAt: s.LastActivityAt,
	}
	for i, p := range s.Players {
		resp.Players[i] = PlayerFromModel(p)
	}
	for i, rec := range s.MoveLog {
		resp.Moves[i] = Move{
			Seat: string(rec.Seat),
			Row:  rec.Move.Row,
			Col:  rec.Move.Col,
		}
	}
	return resp
}

// BoardFromModel converts a model.Board into string cells
func BoardFromModel(b model.Board) [][]string {
	out := make([][]string, len(b))
	for r, row := range b {
		out[r] = make([]string, len(row))
		for c, mark := range row {
			out[r][c] = string(mark)
		}
	}
	return out
}

// MoveResponse is the response for an accepted move
type MoveResponse struct {
	Session  Session `json:"session"`
	Terminal bool    `json:"terminal"`
	Draw     bool    `json:"draw,omitempty"`
	Winner   string  `json:"winner,omitempty"`
}

// Stats is a player's accumulated results
type Stats struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
}

// StatsFromModel converts model.PlayerStats
func StatsFromModel(s model.PlayerStats) Stats {
	return Stats{
		Username: s.Username,
		Wins:     s.Wins,
		Losses:   s.Losses,
		Draws:    s.Draws,
	}
}

// MatchRecord is one entry of a player's match history
type MatchRecord struct {
	Players    [2]string `json:"players"`
	Result     string    `json:"result"`
	Winner     string    `json:"winner,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// HistoryResponse is a player's match history, newest first
type HistoryResponse struct {
	Username string        `json:"username"`
	Matches  []MatchRecord `json:"matches"`
}

// HistoryFromModel converts a slice of model.MatchRecord
func HistoryFromModel(username string, records []*model.MatchRecord) HistoryResponse {
	resp := HistoryResponse{
		Username: username,
		Matches:  make([]MatchRecord, len(records)),
	}
	for i, r := range records {
		resp.Matches[i] = MatchRecord{
			Players:    r.Players,
			Result:     string(r.Result),
			Winner:     r.Winner,
			FinishedAt: r.FinishedAt,
		}
	}
	return resp
}
