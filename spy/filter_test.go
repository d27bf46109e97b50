package spy_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/andrebq/jdwpspy/jdwp"
	"github.com/andrebq/jdwpspy/spy"
)

func TestScriptFilter(t *testing.T) {
	filter, err := spy.NewScriptFilter(`
		jdwp := import("jdwp")
		if reply {
			return error_code != 0
		}
		return command_set == jdwp.VIRTUAL_MACHINE && jdwp.command_name(command_set, command) == "VIRTUAL_MACHINE - VERSION"
	`, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, tc := range []struct {
		name   string
		packet jdwp.Packet
		cmd    jdwp.Command
		keep   bool
	}{
		{"version", jdwp.NewCommandPacket(1, 0, jdwp.VMVersion, nil), jdwp.VMVersion, true},
		{"threads", jdwp.NewCommandPacket(2, 0, jdwp.VMAllThreads, nil), jdwp.VMAllThreads, false},
		{"ok reply", jdwp.NewReply(1, jdwp.ErrNone, nil), jdwp.VMVersion, false},
		{"failed reply", jdwp.NewReply(1, jdwp.ErrInvalidThread, nil), jdwp.TRName, true},
	} {
		keep, err := filter.Keep(ctx, tc.packet, tc.cmd, false)
		if err != nil {
			t.Fatal(tc.name, err)
		} else if keep != tc.keep {
			t.Fatalf("%v: expecting %v got %v", tc.name, tc.keep, keep)
		}
	}
}

func TestScriptFilterOutput(t *testing.T) {
	ctx := context.Background()
	p := jdwp.NewCommandPacket(1, 0, jdwp.VMVersion, nil)

	filter, err := spy.NewScriptFilter(`x := id`, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if keep, err := filter.Keep(ctx, p, jdwp.VMVersion, false); err != nil || !keep {
		t.Fatal("Script without output keeps every packet", keep, err)
	}

	filter, err = spy.NewScriptFilter(`return "yes"`, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if keep, err := filter.Keep(ctx, p, jdwp.VMVersion, false); !errors.Is(err, spy.ErrNotBoolean) || !keep {
		t.Fatal("Non boolean output should fail and keep the packet", keep, err)
	}

	if _, err := spy.NewScriptFilter(`return (`, slog.Default()); err == nil {
		t.Fatal("Invalid scripts should not compile")
	}
}
