package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/rocketscienceinc/onitama/internal/entity"
)

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiBlue    = "\x1b[34m"
	ansiCyan    = "\x1b[36m"
	ansiClear   = "\x1b[H\x1b[2J"
	clearBlanks = 50
)

const gameTitle = "MORPION - TIC TAC TOE"

// View renders the game for a human. Write errors are ignored: a broken
// terminal never stops a game.
type View struct {
	out     io.Writer
	color   bool
	unicode bool
}

// NewView enables colour and box drawing only when file is a terminal.
func NewView(file *os.File) *View {
	tty := isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	color := tty && os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"

	if !color {
		return &View{out: colorable.NewNonColorable(file)}
	}

	return &View{
		out:     colorable.NewColorable(file),
		color:   true,
		unicode: supportsUnicode(),
	}
}

// NewPlainView writes uncoloured ASCII output to w.
func NewPlainView(w io.Writer) *View {
	return &View{out: w}
}

func supportsUnicode() bool {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if value := os.Getenv(key); value != "" {
			upper := strings.ToUpper(value)
			return strings.Contains(upper, "UTF-8") || strings.Contains(upper, "UTF8")
		}
	}

	// Windows consoles rarely set a locale; colorable handles the rest.
	return os.Getenv("WT_SESSION") != ""
}

func (that *View) style(text string, codes ...string) string {
	if !that.color {
		return text
	}

	return strings.Join(codes, "") + text + ansiReset
}

func (that *View) mark(mark entity.Mark) string {
	switch mark {
	case entity.X:
		return that.style("X", ansiRed, ansiBold)
	case entity.O:
		return that.style("O", ansiBlue, ansiBold)
	default:
		return " "
	}
}

func (that *View) println(text string) {
	_, _ = fmt.Fprintln(that.out, text)
}

func (that *View) Title() {
	if !that.unicode {
		that.println(that.style("\n==== "+gameTitle+" ====\n", ansiCyan, ansiBold))
		return
	}

	line := strings.Repeat("═", len(gameTitle)+4)
	that.println(that.style("\n╔"+line+"╗", ansiCyan, ansiBold))
	that.println(that.style("║  "+gameTitle+"  ║", ansiCyan, ansiBold))
	that.println(that.style("╚"+line+"╝\n", ansiCyan, ansiBold))
}

func (that *View) Board(grid entity.Grid) {
	header := "    "
	for col := 0; col < entity.Size; col++ {
		header += fmt.Sprintf(" %d  ", col)
	}

	separator := "   +" + strings.Repeat("---+", entity.Size)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(that.style(strings.TrimRight(header, " "), ansiCyan) + "\n")
	b.WriteString(that.style(separator, ansiCyan) + "\n")

	for row := 0; row < entity.Size; row++ {
		b.WriteString(that.style(fmt.Sprintf(" %d |", row), ansiCyan))
		for col := 0; col < entity.Size; col++ {
			b.WriteString(" " + that.mark(grid[row][col]) + " ")
			b.WriteString(that.style("|", ansiCyan))
		}
		b.WriteString("\n")
		b.WriteString(that.style(separator, ansiCyan) + "\n")
	}

	_, _ = fmt.Fprintln(that.out, b.String())
}

func (that *View) Turn(player entity.Player) {
	prefix := ">"
	if that.unicode {
		prefix = "▶️ "
	}

	that.println(fmt.Sprintf("\n%s C'est au tour de %s (%s)", prefix, that.style(player.Name(), ansiBold), that.mark(player.Mark())))
}

func (that *View) Thinking(name, strategy string) {
	that.println(fmt.Sprintf("%s (%s) réfléchit...", name, strategy))
}

func (that *View) Victory(name string) {
	that.banner(fmt.Sprintf("%s A GAGNÉ !", strings.ToUpper(name)), "🎉", ansiGreen)
}

func (that *View) Draw() {
	that.banner("MATCH NUL !", "🤝", ansiYellow)
}

func (that *View) banner(message, emoji, color string) {
	stars := "*** ================================ ***"
	if that.unicode {
		stars = "✨ ════════════════════════════════ ✨"
		message = emoji + "  " + message + "  " + emoji
	}

	that.println("")
	that.println(that.style(stars, ansiCyan))
	that.println(that.style(message, color, ansiBold))
	that.println(that.style(stars, ansiCyan))
	that.println("")
}

func (that *View) Error(message string) {
	prefix := "[!] "
	if that.unicode {
		prefix = "❌ "
	}

	that.println(that.style(prefix+message, ansiRed, ansiBold))
}

func (that *View) Info(message string) {
	prefix := "[i] "
	if that.unicode {
		prefix = "ℹ️  "
	}

	that.println(that.style(prefix+message, ansiCyan))
}

func (that *View) Message(message string) {
	that.println(message)
}

func (that *View) Prompt(label string) {
	_, _ = fmt.Fprint(that.out, label)
}

func (that *View) Menu(title string, options ...string) {
	that.println("\n" + that.style(title, ansiCyan, ansiBold))
	for i, option := range options {
		that.println(that.style(fmt.Sprintf("%d. ", i+1), ansiYellow) + option)
	}
	that.println("")
}

func (that *View) Stats(stats *entity.Statistics) {
	that.Info("\n" + stats.String())
}

func (that *View) Ranking(ranking []*entity.Statistics) {
	if len(ranking) == 0 {
		return
	}

	that.println("\n" + that.style("Classement", ansiCyan, ansiBold))
	for i, stats := range ranking {
		that.println(fmt.Sprintf("%d. %-12s %3d V  %3d D  %3d N  %5.1f%%",
			i+1, stats.Name, stats.Wins, stats.Losses, stats.Draws, stats.WinRate()))
	}
}

// Clear uses ANSI on a terminal and scrolls with blank lines otherwise.
func (that *View) Clear() {
	if that.color {
		_, _ = fmt.Fprint(that.out, ansiClear)
		return
	}

	_, _ = fmt.Fprint(that.out, strings.Repeat("\n", clearBlanks))
}
