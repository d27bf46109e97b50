package store_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/andrebq/jdwpspy/internal/store"
)

func TestBasicKV(t *testing.T) {
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	ops := st.Ops(false)
	kv := ops.KV()
	world := []byte("world")
	kv.SetBytes(context.Background(), "hello", world)

	if buf := kv.GetBytes(context.Background(), nil, "hello"); !bytes.Equal(world, buf) {
		t.Fatal("Invalid data", kv.Err(), ops.Err())
	}
	ops.Close()

	ops = st.Ops(true)
	kv = ops.KV()
	if buf := kv.GetBytes(context.Background(), nil, "hello"); bytes.Equal(world, buf) {
		t.Fatal("Previous transaction should have been rolledback, but wasn't")
	}

	kv.SetBytes(context.Background(), "hello", world)
	if err := ops.Close(); err != nil {
		t.Fatal(err)
	}

	ops = st.Ops(false)
	kv = ops.KV()
	if buf := kv.GetBytes(context.Background(), nil, "hello"); !bytes.Equal(world, buf) {
		t.Fatal("Invalid data after commit", kv.Err())
	}
	ops.Close()
}

func TestJSON(t *testing.T) {
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	type meta struct {
		Target string
	}
	ops := st.Ops(true)
	if err := store.PutJSON(context.Background(), ops.KV(), "session/a/meta", meta{Target: "localhost:8000"}); err != nil {
		t.Fatal(err)
	}
	ops.Close()

	ops = st.Ops(false)
	defer ops.Close()
	var out meta
	if err := store.GetJSON(context.Background(), &out, ops.KV(), "session/a/meta"); err != nil {
		t.Fatal(err)
	} else if out.Target != "localhost:8000" {
		t.Fatal("Unexpected value", out)
	}
	if err := store.GetJSON(context.Background(), &out, ops.KV(), "session/b/meta"); !store.IsNotFound(err) {
		t.Fatal("Missing key should be reported as not found", err)
	}
}
