// Package app wires the hyperlines components together.
package app

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/catalog"
	"github.com/josephg/hyperlines/pkg/cli"
	"github.com/josephg/hyperlines/pkg/compiler"
	"github.com/josephg/hyperlines/pkg/generator"
	"github.com/josephg/hyperlines/pkg/logger"
	"github.com/josephg/hyperlines/pkg/printer"
	"github.com/josephg/hyperlines/pkg/render"
	"github.com/josephg/hyperlines/pkg/vm"
	"github.com/josephg/hyperlines/pkg/window"
)

// ProgramDir is the directory of built-in programs inside the embedded FS.
const ProgramDir = "programs"

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config   *cli.Config
	log      *slog.Logger
	programs *catalog.Catalog
	registry *vm.Registry
	fsys     fs.FS
	stdout   io.Writer
}

// New Applicationを作成
func New(fsys fs.FS) *Application {
	return &Application{
		fsys:     fsys,
		registry: vm.DefaultRegistry(),
		stdout:   os.Stdout,
	}
}

// Run アプリケーションを実行
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.programs = catalog.New(app.fsys, ProgramDir, app.config.Encoding)
	if app.config.List {
		return app.listPrograms()
	}

	// 3. プログラムの読み込みとコンパイル
	selected, program, err := app.loadProgram()
	if err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}

	// 4. 初回実行と変異
	session, err := app.newSession(selected, program)
	if err != nil {
		return err
	}
	if err := session.MutateN(app.config.Mutations); err != nil {
		return err
	}

	// 5. 結果の出力
	if err := app.writeOutputs(session); err != nil {
		return err
	}

	// 6. プレビュー
	if err := app.preview(session, selected); err != nil {
		return err
	}

	app.log.Info("Application terminated normally")
	return nil
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger ロガーを初期化
func (app *Application) initLogger() error {
	if err := logger.InitLogger(app.config.LogLevel); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

func (app *Application) listPrograms() error {
	for _, p := range app.programs.Programs() {
		if _, err := fmt.Fprintf(app.stdout, "%-12s %s\n", p.Name, p.DisplayName()); err != nil {
			return err
		}
	}
	return nil
}

// loadProgram resolves, reads, and compiles the selected program.
func (app *Application) loadProgram() (*catalog.Program, *ast.Block, error) {
	selected, err := app.programs.Resolve(app.config.ProgramPath)
	if err != nil {
		return nil, nil, err
	}
	app.log.Info("Program selected", "name", selected.Name, "path", selected.Path, "embedded", selected.IsEmbedded)

	s, err := app.programs.Load(selected)
	if err != nil {
		return nil, nil, err
	}
	app.log.Debug("Program source", "file", s.FileName, "size", s.Size)

	program, err := compiler.CompileScript(app.registry, s)
	if err != nil {
		return nil, nil, err
	}
	app.log.Info("Program compiled", "file", s.FileName)
	return selected, program, nil
}

func (app *Application) newSession(selected *catalog.Program, program *ast.Block) (*Session, error) {
	seed := app.config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	// logged so a run can be repeated with --seed
	app.log.Info("Mutation seed", "seed", seed)

	rng := rand.New(rand.NewPCG(seed, seed))
	gen := generator.New(app.registry, rng, generator.WithLogger(app.log))
	machine := vm.New(app.registry, vm.WithMaxSteps(app.config.MaxSteps), vm.WithLogger(app.log))

	return NewSession(selected.DisplayName(), program, machine, gen, app.log)
}

// writeOutputs writes the requested program text and pictures.
func (app *Application) writeOutputs(session *Session) error {
	if app.config.Print {
		if _, err := io.WriteString(app.stdout, printer.Block(app.registry, session.Program())); err != nil {
			return fmt.Errorf("failed to print program: %w", err)
		}
	}
	if app.config.SVGPath != "" {
		if err := writeFile(app.config.SVGPath, func(w io.Writer) error {
			return render.WriteSVG(w, session.Lines(), render.DefaultOptions())
		}); err != nil {
			return fmt.Errorf("failed to write SVG: %w", err)
		}
		app.log.Info("SVG written", "path", app.config.SVGPath)
	}
	if app.config.PNGPath != "" {
		if err := writeFile(app.config.PNGPath, func(w io.Writer) error {
			return render.RasterizePNG(w, session.Lines(), render.DefaultOptions())
		}); err != nil {
			return fmt.Errorf("failed to write PNG: %w", err)
		}
		app.log.Info("PNG written", "path", app.config.PNGPath)
	}
	return nil
}

func (app *Application) preview(session *Session, selected *catalog.Program) error {
	if app.config.Headless {
		// --print alone is a complete headless run
		if app.config.Print {
			return nil
		}
		return window.RunHeadless(session, app.stdout)
	}

	return window.Run(session, window.Options{
		Title:   "hyperlines - " + selected.DisplayName(),
		Timeout: app.config.Timeout,
	})
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
