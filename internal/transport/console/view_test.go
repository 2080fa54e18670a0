package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/onitama/internal/entity"
)

func TestView_Board(t *testing.T) {
	var out bytes.Buffer
	view := NewPlainView(&out)

	view.Board(entity.Grid{
		{entity.X, entity.Empty, entity.O},
		{entity.Empty, entity.X, entity.Empty},
		{entity.Empty, entity.Empty, entity.Empty},
	})

	want := strings.Join([]string{
		"",
		"     0   1   2",
		"   +---+---+---+",
		" 0 | X |   | O |",
		"   +---+---+---+",
		" 1 |   | X |   |",
		"   +---+---+---+",
		" 2 |   |   |   |",
		"   +---+---+---+",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestView_PlainOutputHasNoEscapes(t *testing.T) {
	var out bytes.Buffer
	view := NewPlainView(&out)

	player, err := entity.NewHumanPlayer("Alice", entity.X, NewPrompter(strings.NewReader(""), view))
	require.NoError(t, err)

	view.Title()
	view.Turn(player)
	view.Victory("Alice")
	view.Draw()
	view.Error("oops")
	view.Info("note")
	view.Menu("Mode de jeu", "Joueur vs Joueur", "Joueur vs IA")
	view.Clear()

	text := out.String()
	assert.NotContains(t, text, "\x1b[")
	assert.Contains(t, text, "==== MORPION - TIC TAC TOE ====")
	assert.Contains(t, text, "C'est au tour de Alice (X)")
	assert.Contains(t, text, "ALICE A GAGNÉ !")
	assert.Contains(t, text, "MATCH NUL !")
	assert.Contains(t, text, "[!] oops")
	assert.Contains(t, text, "1. Joueur vs Joueur\n2. Joueur vs IA")
}

func TestView_Ranking(t *testing.T) {
	var out bytes.Buffer
	view := NewPlainView(&out)

	t.Run("Empty ranking prints nothing", func(t *testing.T) {
		view.Ranking(nil)

		assert.Empty(t, out.String())
	})

	t.Run("Players are numbered in order", func(t *testing.T) {
		view.Ranking([]*entity.Statistics{
			{Name: "Alice", Wins: 2},
			{Name: "Bob", Losses: 2},
		})

		text := out.String()
		assert.Contains(t, text, "Classement")
		assert.Less(t, strings.Index(text, "1. Alice"), strings.Index(text, "2. Bob"))
		assert.Contains(t, text, "100.0%")
	})
}
