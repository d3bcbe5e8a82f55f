package window

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/josephg/hyperlines/pkg/ast"
)

type fakeSession struct {
	lines     []ast.Segment
	mutations int
	resets    int
	mutateErr error
}

func (s *fakeSession) Lines() []ast.Segment { return s.lines }
func (s *fakeSession) Status() string       { return "fake: 1 segment" }

func (s *fakeSession) Mutate() error {
	s.mutations++
	return s.mutateErr
}

func (s *fakeSession) Reset() error {
	s.resets++
	return nil
}

// pressing returns a key reader reporting keys as just pressed.
func pressing(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, want := range keys {
			if k == want {
				return true
			}
		}
		return false
	}
}

func TestNewGame(t *testing.T) {
	game := NewGame(&fakeSession{}, Options{Timeout: 10 * time.Second})

	if game == nil {
		t.Fatal("NewGame returned nil")
	}
	if game.width != DefaultWidth || game.height != DefaultHeight {
		t.Errorf("expected default size, got %dx%d", game.width, game.height)
	}
	if game.timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", game.timeout)
	}
}

func TestLayout(t *testing.T) {
	game := NewGame(&fakeSession{}, Options{Width: 640, Height: 480})

	width, height := game.Layout(1920, 1080)
	if width != 640 || height != 480 {
		t.Errorf("expected 640x480, got %dx%d", width, height)
	}
}

func TestUpdate_Timeout(t *testing.T) {
	game := NewGame(&fakeSession{}, Options{Timeout: time.Nanosecond})
	game.keyJustPressed = pressing()

	time.Sleep(10 * time.Millisecond)

	if err := game.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("expected ebiten.Termination, got %v", err)
	}
}

func TestUpdate_Keys(t *testing.T) {
	tests := []struct {
		name          string
		keys          []ebiten.Key
		wantMutations int
		wantResets    int
		wantTerminate bool
	}{
		{"idle", nil, 0, 0, false},
		{"space mutates", []ebiten.Key{ebiten.KeySpace}, 1, 0, false},
		{"r resets", []ebiten.Key{ebiten.KeyR}, 0, 1, false},
		{"escape quits first", []ebiten.Key{ebiten.KeyEscape, ebiten.KeySpace}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &fakeSession{}
			game := NewGame(session, Options{})
			game.keyJustPressed = pressing(tt.keys...)

			err := game.Update()
			if tt.wantTerminate != errors.Is(err, ebiten.Termination) {
				t.Errorf("Update() = %v, terminate want %v", err, tt.wantTerminate)
			}
			if session.mutations != tt.wantMutations || session.resets != tt.wantResets {
				t.Errorf("mutations=%d resets=%d, want %d and %d",
					session.mutations, session.resets, tt.wantMutations, tt.wantResets)
			}
		})
	}
}

func TestUpdate_MutationErrorShownInCaption(t *testing.T) {
	session := &fakeSession{mutateErr: errors.New("boom")}
	game := NewGame(session, Options{})
	game.keyJustPressed = pressing(ebiten.KeySpace)

	if err := game.Update(); err != nil {
		t.Fatalf("a failed mutation should not stop the preview: %v", err)
	}
	caption, clr := game.caption()
	if caption != "error: boom" || clr != errorColor {
		t.Errorf("unexpected caption %q", caption)
	}

	session.mutateErr = nil
	game.keyJustPressed = pressing(ebiten.KeySpace)
	game.Update()
	if caption, _ := game.caption(); caption != "fake: 1 segment" {
		t.Errorf("caption should recover, got %q", caption)
	}
}

func TestRunHeadless(t *testing.T) {
	session := &fakeSession{lines: []ast.Segment{
		{From: ast.Point{X: 0, Y: 0}, To: ast.Point{X: 0.5, Y: 1.25}},
	}}
	var buf bytes.Buffer
	if err := RunHeadless(session, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "fake: 1 segment\n0,0 -> 0.5,1.25\n"
	if buf.String() != want {
		t.Errorf("RunHeadless() wrote %q, want %q", buf.String(), want)
	}
}
