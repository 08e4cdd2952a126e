package edgegame

import "fmt"

// Player identifies who wins a solved game.
type Player int8

const (
	Tie          Player = 0
	FirstPlayer  Player = 1
	SecondPlayer Player = 2
)

func (p Player) String() string {
	return [...]string{"tie", "P1", "P2"}[p]
}

// Outcome is the result of solving a starting position under optimal play.
type Outcome struct {
	NumVertices int // vertex count of the starting position
	NetScore    int // first mover's points minus second mover's points
	P1Score     int
	P2Score     int
}

// NewOutcome recovers each player's score from a starting vertex count and net score.
func NewOutcome(numVertices, netScore int) Outcome {
	return Outcome{
		NumVertices: numVertices,
		NetScore:    netScore,
		P1Score:     (numVertices + netScore) / 2,
		P2Score:     (numVertices - netScore) / 2,
	}
}

func (out Outcome) Winner() Player {
	switch {
	case out.NetScore > 0:
		return FirstPlayer
	case out.NetScore < 0:
		return SecondPlayer
	}
	return Tie
}

// String returns the one line result report, e.g. "P2 wins with a score of (0 - 3)"
func (out Outcome) String() string {
	winner := out.Winner()
	if winner == Tie {
		return "Tie game."
	}
	return fmt.Sprintf("%v wins with a score of (%d - %d)", winner, out.P1Score, out.P2Score)
}
