package appshell_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/andrebq/jdwpspy/internal/appshell"
	"github.com/d5/tengo/v2"
)

func TestSimple(t *testing.T) {

	shell := appshell.New(false)
	logMod := appshell.NewModule("log")
	var msg string
	logMod.AddFuncRaw("info", appshell.DynFuncNR0(func(args ...any) error {
		msg = fmt.Sprint(args...)
		return nil
	}))
	appMod := appshell.NewModule("salute")
	appMod.AddValue("name", "alice")
	appMod.AddFuncRaw("salute", func(args ...tengo.Object) (tengo.Object, error) {
		return tengo.FromInterface(fmt.Sprintf("Hello: %v", tengo.ToInterface(args[0])))
	})
	shell.AddModules(logMod, appMod)
	output, err := shell.Eval(context.Background(), `
		log := import("log")
		salute := import("salute")
		log.info(salute.salute(salute.name))

		return salute.salute("bob")
	`)
	if err != nil {
		t.Fatal(err)
	} else if output, ok := output.(string); !ok {
		t.Fatalf("output should be a string but got: %#v", output)
	} else if output != "Hello: bob" {
		t.Fatal("Output does not match expected outcome", output)
	}

	if msg != "Hello: alice" {
		t.Fatal("msg does not match expected outcome")
	}
}

func TestCompiledProgram(t *testing.T) {
	shell := appshell.New(false)
	prog, err := shell.Compile(`return reply && length > 11`, "reply", "length")
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		reply  bool
		length int64
		keep   bool
	}{
		{true, 20, true},
		{true, 11, false},
		{false, 20, false},
	} {
		out, err := prog.Run(context.Background(), map[string]any{"reply": tc.reply, "length": tc.length})
		if err != nil {
			t.Fatal(err)
		} else if out != tc.keep {
			t.Fatalf("Expecting %v got %#v for %+v", tc.keep, out, tc)
		}
	}
	if _, err := prog.Run(context.Background(), map[string]any{"missing": 1}); err == nil {
		t.Fatal("Unknown globals should be rejected")
	}
}

func TestLogModule(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	shell := appshell.New(false)
	shell.AddModules(appshell.LogModule(logger, ""))
	if _, err := shell.Eval(context.Background(), `
		log := import("log")
		log.warn("from script", "id", 7)
	`); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, `msg="from script" id=7`) {
		t.Fatal("Unexpected log output", out)
	}
}
