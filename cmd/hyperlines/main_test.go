package main

import (
	"testing"

	"github.com/josephg/hyperlines/pkg/app"
	"github.com/josephg/hyperlines/pkg/catalog"
	"github.com/josephg/hyperlines/pkg/compiler"
	"github.com/josephg/hyperlines/pkg/logger"
	"github.com/josephg/hyperlines/pkg/script"
	"github.com/josephg/hyperlines/pkg/vm"
)

func TestEmbeddedPrograms(t *testing.T) {
	programs := catalog.New(embeddedPrograms, app.ProgramDir, script.EncodingAuto)
	if _, ok := programs.Find(catalog.DefaultProgram); !ok {
		t.Fatalf("default program %q is not embedded", catalog.DefaultProgram)
	}

	reg := vm.DefaultRegistry()
	for _, p := range programs.Programs() {
		t.Run(p.Name, func(t *testing.T) {
			if p.Metadata == nil || p.Metadata.Title == "" {
				t.Error("built-in programs need a title comment")
			}
			s, err := programs.Load(&p)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			program, err := compiler.CompileScript(reg, s)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			res, err := vm.New(reg, vm.WithLogger(logger.Discard())).Run(program)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if len(res.Lines) == 0 {
				t.Error("program draws nothing")
			}
		})
	}
}
