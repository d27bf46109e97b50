package spy

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestParseArgs(t *testing.T) {
	args, err := parseArgs([]string{"5005", "localhost", "8000"})
	if err != nil {
		t.Fatal(err)
	}
	if args.listen != ":5005" || args.target != "localhost:8000" || args.output != "" {
		t.Fatalf("Unexpected args: %+v", args)
	}
	args, err = parseArgs([]string{"5005", "::1", "8000", "trace.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if args.target != "[::1]:8000" || args.output != "trace.txt" {
		t.Fatalf("Unexpected args: %+v", args)
	}
	for _, invalid := range [][]string{
		nil,
		{"5005", "localhost"},
		{"5005", "localhost", "8000", "out", "extra"},
		{"abc", "localhost", "8000"},
		{"5005", "localhost", "70000"},
		{"0", "localhost", "8000"},
	} {
		if _, err := parseArgs(invalid); err == nil {
			t.Fatal("Arguments should be rejected", invalid)
		}
	}
}

func TestOpenOutput(t *testing.T) {
	var stdout bytes.Buffer
	out, closeOutput := openOutput(&stdout, "")
	if out != &stdout {
		t.Fatal("No file means stdout")
	}
	closeOutput()

	name := filepath.Join(t.TempDir(), "trace.txt")
	out, closeOutput = openOutput(&stdout, name)
	if _, err := out.Write([]byte("From VM\n")); err != nil {
		t.Fatal(err)
	}
	if err := closeOutput(); err != nil {
		t.Fatal(err)
	}
	if buf, err := os.ReadFile(name); err != nil || string(buf) != "From VM\n" {
		t.Fatal("Trace should be written to the file", string(buf), err)
	}

	out, _ = openOutput(&stdout, filepath.Join(t.TempDir(), "missing", "trace.txt"))
	if out != &stdout {
		t.Fatal("Unwritable files fall back to stdout")
	}
}
