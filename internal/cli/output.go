package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case QueueJoinResult:
		o.printQueueJoinResult(v)
	case Session:
		o.printSession(v)
	case MoveResult:
		o.printMoveResult(v)
	case Stats:
		o.printStats(v)
	case History:
		o.printHistory(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// QueueJoinResult response type (matches API)
type QueueJoinResult struct {
	Queued       bool   `json:"queued"`
	ConnectionID string `json:"connection_id"`
}

// SessionPlayer response type
type SessionPlayer struct {
	Username     string `json:"username"`
	SkillLevel   int    `json:"skill_level"`
	Region       string `json:"region"`
	ConnectionID string `json:"connection_id"`
}

// SessionMove response type
type SessionMove struct {
	Seat string `json:"seat"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// Session response type
type Session struct {
	ID             string           `json:"id"`
	Players        [2]SessionPlayer `json:"players"`
	Board          [][]string       `json:"board"`
	Turn           string           `json:"turn"`
	Moves          []SessionMove    `json:"moves"`
	CreatedAt      time.Time        `json:"created_at"`
	LastActivityAt time.Time        `json:"last_activity_at"`
}

// MoveResult response type
type MoveResult struct {
	Session  Session `json:"session"`
	Terminal bool    `json:"terminal"`
	Draw     bool    `json:"draw,omitempty"`
	Winner   string  `json:"winner,omitempty"`
}

// Stats response type
type Stats struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
}

// HistoryMatch response type
type HistoryMatch struct {
	Players    [2]string `json:"players"`
	Result     string    `json:"result"`
	Winner     string    `json:"winner,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// History response type
type History struct {
	Username string         `json:"username"`
	Matches  []HistoryMatch `json:"matches"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printQueueJoinResult(q QueueJoinResult) {
	fmt.Printf("Queued: connection %s\n", q.ConnectionID)
	fmt.Println("Waiting for a match... (use 'duelctl events' to watch)")
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Turn: %s\n", s.Turn)
	fmt.Printf("Players:\n")
	for i, p := range s.Players {
		mark := "X"
		if i == 1 {
			mark = "O"
		}
		fmt.Printf("  %s: %s (skill %d, %s)\n", mark, p.Username, p.SkillLevel, p.Region)
	}
	fmt.Println()
	o.printBoard(s.Board)
}

func (o *Output) printBoard(board [][]string) {
	if len(board) == 0 {
		return
	}

	size := len(board)

	// Print column headers
	fmt.Print("    ")
	for col := 0; col < size; col++ {
		fmt.Printf(" %d ", col)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Printf(" %d |", row)
		for col := 0; col < size; col++ {
			cell := board[row][col]
			if cell == "-" || cell == "" {
				fmt.Print(" . ")
			} else {
				fmt.Printf(" %s ", cell)
			}
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printMoveResult(m MoveResult) {
	o.printBoard(m.Session.Board)

	switch {
	case m.Draw:
		fmt.Println("\nGame over: draw")
	case m.Terminal:
		fmt.Printf("\nGame over: %s wins\n", m.Winner)
	default:
		fmt.Printf("\nNext turn: %s\n", m.Session.Turn)
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Player: %s\n", s.Username)
	fmt.Printf("Wins:   %d\n", s.Wins)
	fmt.Printf("Losses: %d\n", s.Losses)
	fmt.Printf("Draws:  %d\n", s.Draws)
}

func (o *Output) printHistory(h History) {
	fmt.Printf("History for %s (%d matches):\n", h.Username, len(h.Matches))
	for _, m := range h.Matches {
		when := m.FinishedAt.Format("2006-01-02 15:04:05")
		if m.Winner == "" {
			fmt.Printf("  [%s] %s vs %s - draw\n", when, m.Players[0], m.Players[1])
		} else {
			fmt.Printf("  [%s] %s vs %s - %s won\n", when, m.Players[0], m.Players[1], m.Winner)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
