package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/onitama/internal/apperror"
	"github.com/rocketscienceinc/onitama/internal/entity"
	"github.com/rocketscienceinc/onitama/internal/strategy"
)

type Mode int

const (
	HumanVsHuman Mode = iota + 1
	HumanVsAI
)

type line struct {
	text string
	err  error
}

// Prompter reads answers line by line. Lines are read on a dedicated
// goroutine so that a cancelled context unblocks a pending prompt.
type Prompter struct {
	view  *View
	in    io.Reader
	once  sync.Once
	lines chan line
}

func NewPrompter(in io.Reader, view *View) *Prompter {
	return &Prompter{
		view:  view,
		in:    in,
		lines: make(chan line),
	}
}

func (that *Prompter) scan() {
	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		that.lines <- line{text: scanner.Text()}
	}

	err := scanner.Err()
	if err == nil {
		err = apperror.ErrInputClosed
	}

	for {
		that.lines <- line{err: err}
	}
}

func (that *Prompter) readLine(ctx context.Context) (string, error) {
	that.once.Do(func() {
		go that.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case next := <-that.lines:
		if next.err != nil {
			return "", next.err
		}
		return strings.TrimSpace(next.text), nil
	}
}

// readInt asks label until the answer is a number.
func (that *Prompter) readInt(ctx context.Context, label, invalid string) (int, error) {
	for {
		that.view.Prompt(label)

		text, err := that.readLine(ctx)
		if err != nil {
			return 0, err
		}

		value, err := strconv.Atoi(text)
		if err == nil {
			return value, nil
		}

		that.view.Error(invalid)
	}
}

func (that *Prompter) ChooseMode(ctx context.Context) (Mode, error) {
	that.view.Menu("Mode de jeu", "Joueur vs Joueur", "Joueur vs IA")

	for {
		choice, err := that.readInt(ctx, "Votre choix: ", "Veuillez entrer un nombre valide.")
		if err != nil {
			return 0, err
		}

		switch mode := Mode(choice); mode {
		case HumanVsHuman, HumanVsAI:
			return mode, nil
		}

		that.view.Error("Choix invalide. Veuillez entrer 1 ou 2.")
	}
}

// AskName returns fallback when the answer is blank.
func (that *Prompter) AskName(ctx context.Context, label, fallback string) (string, error) {
	that.view.Prompt(label)

	name, err := that.readLine(ctx)
	if err != nil {
		return "", err
	}

	if name == "" {
		return fallback, nil
	}

	return name, nil
}

// ChooseDifficulty re-prompts on non-numeric answers; an unknown level number
// selects the easy strategy.
func (that *Prompter) ChooseDifficulty(ctx context.Context) (strategy.Difficulty, error) {
	that.view.Menu("Niveau de difficulté de l'IA", "Facile", "Moyen", "Difficile")

	choice, err := that.readInt(ctx, "Votre choix: ", "Veuillez entrer un nombre valide.")
	if err != nil {
		return 0, err
	}

	difficulty, err := strategy.ParseDifficulty(strconv.Itoa(choice))
	if err != nil {
		that.view.Info(fmt.Sprintf("Niveau %d inconnu, niveau Facile sélectionné.", choice))
	}

	return difficulty, nil
}

// ReadMove asks for a row then a column. Range and occupancy are checked by the board.
func (that *Prompter) ReadMove(ctx context.Context, _ entity.Player) (entity.Move, error) {
	const invalid = "Veuillez entrer des nombres valides."

	row, err := that.readInt(ctx, fmt.Sprintf("Entrez la ligne (0-%d): ", entity.Size-1), invalid)
	if err != nil {
		return entity.Move{}, err
	}

	col, err := that.readInt(ctx, fmt.Sprintf("Entrez la colonne (0-%d): ", entity.Size-1), invalid)
	if err != nil {
		return entity.Move{}, err
	}

	return entity.Move{Row: row, Col: col}, nil
}

func (that *Prompter) AskRematch(ctx context.Context) (bool, error) {
	that.view.Message("Voulez-vous rejouer ? (O/N)")

	answer, err := that.readLine(ctx)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(answer, "o"), nil
}
