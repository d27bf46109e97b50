package spy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andrebq/jdwpspy/internal/appshell"
	"github.com/andrebq/jdwpspy/jdwp"
)

type (
	// Filter decides whether a packet is printed to the trace. Packets are
	// relayed and tracked no matter what it decides.
	Filter interface {
		Keep(ctx context.Context, p jdwp.Packet, cmd jdwp.Command, fromVM bool) (bool, error)
	}

	// ScriptFilter runs a tengo script for every packet, the script returns
	// true to print the packet. A script without a return prints everything.
	ScriptFilter struct {
		prog *appshell.Program
	}
)

var filterGlobals = []string{"id", "reply", "from_vm", "command_set", "command", "error_code", "length"}

func NewScriptFilter(code string, logger *slog.Logger) (*ScriptFilter, error) {
	shell := appshell.New(false)
	shell.AddModules(appshell.LogModule(logger, "log"), jdwpModule())
	prog, err := shell.Compile(code, filterGlobals...)
	if err != nil {
		return nil, fmt.Errorf("spy: compiling filter: %w", err)
	}
	return &ScriptFilter{prog: prog}, nil
}

func (f *ScriptFilter) Keep(ctx context.Context, p jdwp.Packet, cmd jdwp.Command, fromVM bool) (bool, error) {
	globals := map[string]any{
		"id":          int64(p.ID()),
		"reply":       p.IsReply(),
		"from_vm":     fromVM,
		"command_set": int64(cmd.Set()),
		"command":     int64(cmd.Code()),
		"error_code":  int64(0),
		"length":      int64(p.Length()),
	}
	if r, ok := p.(*jdwp.ReplyPacket); ok {
		globals["error_code"] = int64(r.ErrorCode)
	}
	out, err := f.prog.Run(ctx, globals)
	if err != nil {
		return true, err
	}
	switch out := out.(type) {
	case nil:
		return true, nil
	case bool:
		return out, nil
	default:
		return true, fmt.Errorf("%w, got %T", ErrNotBoolean, out)
	}
}

// jdwpModule gives scripts the name tables and the command set numbers.
func jdwpModule() *appshell.Module {
	mod := appshell.NewModule("jdwp")
	mod.AddFuncRaw("command_name", appshell.FuncNR1(func(args ...int64) (string, error) {
		if len(args) != 2 {
			return "", fmt.Errorf("command_name expects set and command, got %d arguments", len(args))
		}
		return jdwp.NewCommand(jdwp.CommandSet(args[0]), uint8(args[1])).String(), nil
	}))
	mod.AddFuncRaw("error_name", appshell.FuncNR1(func(args ...int64) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("error_name expects one argument, got %d", len(args))
		}
		return jdwp.ErrorCode(args[0]).String(), nil
	}))
	for i := 0; i < 256; i++ {
		if set := jdwp.CommandSet(i); set.Known() {
			mod.AddValue(set.String(), int64(i))
		}
	}
	return mod
}
