package entity

import (
	"fmt"
	"math"
	"strings"
)

// Statistics is the ledger record of one player name.
type Statistics struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
	Moves  int    `json:"moves"`
}

func NewStatistics(name string) (*Statistics, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyPlayerName
	}

	return &Statistics{Name: name}, nil
}

func (that *Statistics) GamesPlayed() int {
	return that.Wins + that.Losses + that.Draws
}

// WinRate is a percentage in [0, 100].
func (that *Statistics) WinRate() float64 {
	played := that.GamesPlayed()
	if played == 0 {
		return 0
	}

	return float64(that.Wins) * 100 / float64(played)
}

// WinLossRatio is +Inf for a player who has won but never lost.
func (that *Statistics) WinLossRatio() float64 {
	if that.Losses == 0 {
		if that.Wins > 0 {
			return math.Inf(1)
		}
		return 0
	}

	return float64(that.Wins) / float64(that.Losses)
}

func (that *Statistics) AverageMoves() float64 {
	played := that.GamesPlayed()
	if played == 0 {
		return 0
	}

	return float64(that.Moves) / float64(played)
}

func (that *Statistics) HasPositiveRecord() bool {
	return that.Wins > that.Losses
}

func (that *Statistics) String() string {
	return fmt.Sprintf(
		"Statistiques de %s:\n"+
			"  Parties jouées: %d\n"+
			"  Victoires: %d\n"+
			"  Défaites: %d\n"+
			"  Matchs nuls: %d\n"+
			"  Taux de victoire: %.1f%%\n"+
			"  Coups joués: %d\n"+
			"  Moyenne coups/partie: %.1f",
		that.Name, that.GamesPlayed(), that.Wins, that.Losses, that.Draws,
		that.WinRate(), that.Moves, that.AverageMoves(),
	)
}
