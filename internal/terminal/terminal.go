package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"snake-highscore/internal/domain/game"
	"snake-highscore/internal/domain/highscores"
	"snake-highscore/internal/leaderboard"
	"snake-highscore/internal/logging"
	"snake-highscore/internal/session"
)

// PromptText asks the player for a leaderboard name.
const PromptText = "Please enter your name for the highscore table"

const (
	cellWidth   = 2
	boardLeft   = 0
	boardTop    = 0
	panelGap    = 3
	tableRows   = highscores.TopTenLimit + 2
	maxNameRune = 24
)

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSnake   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleApple   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleTitle   = tcell.StyleDefault.Bold(true)
)

type prompt struct {
	name []rune
	done chan string
}

// Terminal draws the arena, the status bar and both leaderboards on a tcell
// screen, and turns key presses into the key names session.Translate expects.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	arena  game.Arena
	logger *slog.Logger
	keys   chan string
	prompt *prompt
}

// Open initialises the real terminal.
func Open(arena game.Arena, logger *slog.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return New(screen, arena, logger), nil
}

// New wraps an initialised screen.
func New(screen tcell.Screen, arena game.Arena, logger *slog.Logger) *Terminal {
	screen.SetStyle(styleDefault)
	screen.HideCursor()
	t := &Terminal{
		screen: screen,
		arena:  arena,
		logger: logger,
		keys:   make(chan string, 16),
	}
	t.mu.Lock()
	t.drawBorder()
	t.screen.Show()
	t.mu.Unlock()
	return t
}

// Close restores the terminal. Poll returns once the screen is finalised.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// Keys delivers translated key names until Poll returns.
func (t *Terminal) Keys() <-chan string {
	return t.keys
}

// Poll reads screen events until the player quits, the screen is closed or ctx
// is done. Keys is closed on return.
func (t *Terminal) Poll(ctx context.Context) {
	defer close(t.keys)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			key, quit := t.handleKey(ev)
			if quit {
				logging.Info(t.logger, "player quit")
				return
			}
			if key == "" {
				continue
			}
			select {
			case t.keys <- key:
			case <-ctx.Done():
				return
			}
		case *tcell.EventResize:
			t.mu.Lock()
			t.screen.Sync()
			t.mu.Unlock()
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// handleKey feeds the prompt while one is open, otherwise returns the key name
// to forward. quit is set for Esc and Ctrl-C outside a prompt.
func (t *Terminal) handleKey(ev *tcell.EventKey) (key string, quit bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.prompt != nil {
		t.editPrompt(ev)
		return "", false
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "", true
	case tcell.KeyLeft:
		return session.KeyArrowLeft, false
	case tcell.KeyDown:
		return session.KeyArrowDown, false
	case tcell.KeyUp:
		return session.KeyArrowUp, false
	case tcell.KeyRight:
		return session.KeyArrowRight, false
	case tcell.KeyRune:
		return string(ev.Rune()), false
	}
	return "", false
}

func (t *Terminal) editPrompt(ev *tcell.EventKey) {
	p := t.prompt
	switch ev.Key() {
	case tcell.KeyEnter:
		t.finishPrompt(string(p.name))
		return
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.finishPrompt("")
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.name) > 0 {
			p.name = p.name[:len(p.name)-1]
		}
	case tcell.KeyRune:
		if len(p.name) < maxNameRune {
			p.name = append(p.name, ev.Rune())
		}
	}
	t.drawPrompt()
	t.screen.Show()
}

// finishPrompt closes the open prompt. Callers hold t.mu.
func (t *Terminal) finishPrompt(name string) {
	p := t.prompt
	t.prompt = nil
	t.clearLine(t.promptRow())
	t.clearLine(t.promptRow() + 1)
	t.screen.Show()
	p.done <- name
}

// AskName shows the name prompt and waits for Enter. Esc, an empty name or a
// cancelled ctx decline.
func (t *Terminal) AskName(ctx context.Context) (string, bool) {
	done := make(chan string, 1)
	t.mu.Lock()
	if t.prompt != nil {
		t.mu.Unlock()
		return "", false
	}
	t.prompt = &prompt{done: done}
	t.drawPrompt()
	t.screen.Show()
	t.mu.Unlock()

	select {
	case name := <-done:
		name = strings.TrimSpace(name)
		return name, name != ""
	case <-ctx.Done():
		t.mu.Lock()
		if t.prompt != nil && t.prompt.done == done {
			t.finishPrompt("")
		}
		t.mu.Unlock()
		return "", false
	}
}

// Prompting reports whether a name prompt is open.
func (t *Terminal) Prompting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prompt != nil
}

// ShowError writes msg on the message line below the status bar.
func (t *Terminal) ShowError(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row := t.messageRow()
	t.clearLine(row)
	t.drawString(boardLeft, row, msg, styleError)
	t.screen.Show()
}

// ShowTopTen implements leaderboard.Display.
func (t *Terminal) ShowTopTen(board leaderboard.Board, entries []highscores.Entry, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	x, y := t.panelLeft(), boardTop
	if board == leaderboard.AllTime {
		y += tableRows + 1
	}
	for row := 0; row < tableRows; row++ {
		t.clearRange(x, y+row, t.panelWidth())
	}

	t.drawString(x, y, "Top ten "+board.String(), styleTitle)
	if err != nil {
		t.drawString(x, y+1, board.FailureText(), styleError)
		t.screen.Show()
		return
	}
	for i, e := range entries {
		if i >= highscores.TopTenLimit {
			break
		}
		t.drawString(x, y+1+i, formatEntry(i+1, e), styleDefault)
	}
	t.screen.Show()
}

func formatEntry(rank int, e highscores.Entry) string {
	return fmt.Sprintf("%2d. %-*s %3d", rank, maxNameRune, e.UserName, e.Score)
}

// Snake implements session.Renderer.
func (t *Terminal) Snake(s game.State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, p := range s.Body {
		style := styleSnake
		if i == len(s.Body)-1 {
			style = styleHead
		}
		t.fillCell(p, '█', style)
	}
	t.screen.Show()
}

// Apple implements session.Renderer.
func (t *Terminal) Apple(p game.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fillCell(p, '●', styleApple)
	t.screen.Show()
}

// ClearCell implements session.Renderer.
func (t *Terminal) ClearCell(p game.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fillCell(p, ' ', styleDefault)
	t.screen.Show()
}

// ClearBoard implements session.Renderer.
func (t *Terminal) ClearBoard() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for row := 0; row < t.arena.Rows(); row++ {
		t.clearRange(boardLeft+1, boardTop+1+row, t.innerWidth())
	}
	t.screen.Show()
}

// Text implements session.Renderer. Each line is centred on the board,
// starting at the given arena row.
func (t *Terminal) Text(msg string, row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	width := t.innerWidth()
	for i, line := range strings.Split(msg, "\n") {
		if row+i >= t.arena.Rows() {
			break
		}
		runes := []rune(line)
		if len(runes) > width {
			runes = runes[:width]
		}
		x := boardLeft + 1 + (width-len(runes))/2
		t.drawString(x, boardTop+1+row+i, string(runes), styleDefault)
	}
	t.screen.Show()
}

// StatusBar implements session.Renderer.
func (t *Terminal) StatusBar(status session.Status, apples int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row := t.statusRow()
	t.clearRange(boardLeft, row, t.panelLeft()-boardLeft)
	t.drawString(boardLeft, row, fmt.Sprintf("%s | apples: %d", status, apples), styleStatus)
	t.screen.Show()
}

func (t *Terminal) innerWidth() int {
	return t.arena.Columns() * cellWidth
}

func (t *Terminal) statusRow() int {
	return boardTop + t.arena.Rows() + 2
}

// messageRow is the first line below both the board and the leaderboard tables.
func (t *Terminal) messageRow() int {
	return max(t.statusRow(), boardTop+2*tableRows+1) + 1
}

func (t *Terminal) promptRow() int {
	return t.messageRow() + 1
}

func (t *Terminal) panelLeft() int {
	return boardLeft + t.innerWidth() + 2 + panelGap
}

func (t *Terminal) panelWidth() int {
	return len(formatEntry(highscores.TopTenLimit, highscores.Entry{}))
}

func (t *Terminal) drawPrompt() {
	row := t.promptRow()
	t.clearLine(row)
	t.clearLine(row + 1)
	t.drawString(boardLeft, row, PromptText, styleTitle)
	t.drawString(boardLeft, row+1, "> "+string(t.prompt.name)+"_", styleDefault)
}

func (t *Terminal) drawBorder() {
	w, h := t.innerWidth()+2, t.arena.Rows()+2
	for x := 0; x < w; x++ {
		t.screen.SetContent(boardLeft+x, boardTop, '─', nil, styleBorder)
		t.screen.SetContent(boardLeft+x, boardTop+h-1, '─', nil, styleBorder)
	}
	for y := 0; y < h; y++ {
		t.screen.SetContent(boardLeft, boardTop+y, '│', nil, styleBorder)
		t.screen.SetContent(boardLeft+w-1, boardTop+y, '│', nil, styleBorder)
	}
	t.screen.SetContent(boardLeft, boardTop, '┌', nil, styleBorder)
	t.screen.SetContent(boardLeft+w-1, boardTop, '┐', nil, styleBorder)
	t.screen.SetContent(boardLeft, boardTop+h-1, '└', nil, styleBorder)
	t.screen.SetContent(boardLeft+w-1, boardTop+h-1, '┘', nil, styleBorder)
}

// cellOrigin maps an arena position to the left screen column of its cell.
func (t *Terminal) cellOrigin(p game.Position) (int, int) {
	col := p.X / t.arena.Thickness
	row := p.Y / t.arena.Thickness
	return boardLeft + 1 + col*cellWidth, boardTop + 1 + row
}

func (t *Terminal) fillCell(p game.Position, r rune, style tcell.Style) {
	if !t.arena.Contains(p) {
		return
	}
	x, y := t.cellOrigin(p)
	for i := 0; i < cellWidth; i++ {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Terminal) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (t *Terminal) clearRange(x, y, width int) {
	for i := 0; i < width; i++ {
		t.screen.SetContent(x+i, y, ' ', nil, styleDefault)
	}
}

func (t *Terminal) clearLine(y int) {
	w, _ := t.screen.Size()
	t.clearRange(0, y, w)
}
