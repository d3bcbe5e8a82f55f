// Package window shows a live preview of a program's output.
package window

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/logger"
	"github.com/josephg/hyperlines/pkg/render"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 800

	margin      = 40
	strokeWidth = 1.5
	helpText    = "[Space] mutate  [R] reset  [Esc] quit"
)

var (
	backgroundColor = color.RGBA{0xFA, 0xF8, 0xF2, 0xFF}
	lineColor       = color.RGBA{0x20, 0x20, 0x28, 0xFF}
	textColor       = color.RGBA{0x60, 0x60, 0x68, 0xFF}
	errorColor      = color.RGBA{0xC0, 0x20, 0x20, 0xFF}
	defaultFace     = text.NewGoXFace(basicfont.Face7x13)
)

// Session is the program state the preview drives.
type Session interface {
	// Lines returns the segments of the current program's last run.
	Lines() []ast.Segment
	// Mutate replaces the current program with a mutation of it and runs it.
	Mutate() error
	// Reset restores the original program and runs it.
	Reset() error
	// Status describes the current program in one line.
	Status() string
}

// Options configures the preview window.
type Options struct {
	Width   int
	Height  int
	Title   string
	Timeout time.Duration // 0 disables auto-close
}

// Game はEbitengineのゲームインターフェースを実装する
type Game struct {
	session   Session
	width     int
	height    int
	timeout   time.Duration
	startTime time.Time
	lastErr   error

	// keyJustPressed is inpututil.IsKeyJustPressed outside tests.
	keyJustPressed func(ebiten.Key) bool
}

// NewGame Gameを作成
func NewGame(session Session, opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	return &Game{
		session:        session,
		width:          opts.Width,
		height:         opts.Height,
		timeout:        opts.Timeout,
		startTime:      time.Now(),
		keyJustPressed: inpututil.IsKeyJustPressed,
	}
}

// Update ゲームロジックの更新（Ebitengineが毎フレーム呼び出す）
func (g *Game) Update() error {
	if g.timeout > 0 && time.Since(g.startTime) >= g.timeout {
		return ebiten.Termination
	}

	if g.keyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.keyJustPressed(ebiten.KeySpace) {
		g.apply("mutate", g.session.Mutate)
	}
	if g.keyJustPressed(ebiten.KeyR) {
		g.apply("reset", g.session.Reset)
	}
	return nil
}

// apply runs a session action. A failure is shown in the caption and the
// previous picture stays up.
func (g *Game) apply(action string, fn func() error) {
	g.lastErr = fn()
	if g.lastErr != nil {
		logger.GetLogger().Error("Preview action failed", "action", action, "error", g.lastErr)
	}
}

// Draw 画面描画（Ebitengineが毎フレーム呼び出す）
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	lines := g.session.Lines()
	vp := render.Fit(lines, g.width, g.height, margin)
	for _, s := range lines {
		x1, y1 := vp.Map(s.From)
		x2, y2 := vp.Map(s.To)
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), strokeWidth, lineColor, true)
	}

	caption, clr := g.caption()
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, caption, defaultFace, op)

	helpOp := &text.DrawOptions{}
	helpOp.GeoM.Translate(8, float64(g.height-20))
	helpOp.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, helpText, defaultFace, helpOp)
}

func (g *Game) caption() (string, color.Color) {
	if g.lastErr != nil {
		return "error: " + g.lastErr.Error(), errorColor
	}
	return g.session.Status(), textColor
}

// Layout 画面サイズを返す
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the preview window and blocks until it is closed.
func Run(session Session, opts Options) error {
	game := NewGame(session, opts)

	title := opts.Title
	if title == "" {
		title = "hyperlines"
	}
	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("failed to run preview: %w", err)
	}
	return nil
}

// RunHeadless writes the session's status and segments to w instead of
// opening a window.
func RunHeadless(session Session, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(session.Status())
	sb.WriteByte('\n')
	for _, s := range session.Lines() {
		fmt.Fprintf(&sb, "%g,%g -> %g,%g\n", s.From.X, s.From.Y, s.To.X, s.To.Y)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
