package appshell

import (
	"context"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

type (
	Shell struct {
		modules *tengo.ModuleMap
	}

	// Program is a compiled script which can be run many times,
	// each run works on its own copy of the globals.
	Program struct {
		compiled *tengo.Compiled
	}
)

func New(withStdlib bool) *Shell {
	s := &Shell{
		modules: tengo.NewModuleMap(),
	}
	if withStdlib {
		s.modules.AddMap(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	}
	return s
}

func (s *Shell) AddModules(m ...*Module) {
	for _, v := range m {
		s.modules.Add(v.name, v.tengoModule)
	}
}

func (s *Shell) Eval(ctx context.Context, code string) (any, error) {
	p, err := s.Compile(code)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, nil)
}

// Compile wraps code in a function body, its return value is the program output.
// Every name in globals can be assigned on each Run.
func (s *Shell) Compile(code string, globals ...string) (*Program, error) {
	wrapCode := fmt.Sprintf(`output := (func() { %v })()`, code)
	sc := tengo.NewScript([]byte(wrapCode))
	sc.EnableFileImport(false)
	sc.SetImports(s.modules)
	for _, name := range globals {
		if err := sc.Add(name, nil); err != nil {
			return nil, err
		}
	}
	compiled, err := sc.Compile()
	if err != nil {
		return nil, err
	}
	return &Program{compiled: compiled}, nil
}

func (p *Program) Run(ctx context.Context, globals map[string]any) (any, error) {
	c := p.compiled.Clone()
	for k, v := range globals {
		if err := c.Set(k, v); err != nil {
			return nil, err
		}
	}
	if err := c.RunContext(ctx); err != nil {
		return nil, err
	}
	output := c.Get("output")
	if output.IsUndefined() {
		return nil, nil
	}
	return tengo.ToInterface(output.Object()), nil
}
