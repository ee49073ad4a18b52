package cache

import (
	"testing"

	"atomica/internal/atomics"
	"atomica/internal/target"
)

func openTestCache(t *testing.T) *Disk {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := Open("atomica-test")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return c
}

func TestPutGetRoundtrip(t *testing.T) {
	c := openTestCache(t)

	tr, err := target.Parse("riscv32imac-unknown-none-elf")
	if err != nil {
		t.Fatal(err)
	}
	set := atomics.Probe(tr)
	artifact := []byte("package atomiccfg\n")

	payload, err := NewPayload(tr.Raw, set, artifact)
	if err != nil {
		t.Fatalf("NewPayload failed: %v", err)
	}
	key := Key(tr.Raw, atomics.BuiltinRules(), "atomiccfg")

	if err := c.Put(key, payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got Payload
	ok, err := c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Get missed a stored entry")
	}
	if got.Target != tr.Raw {
		t.Errorf("Target = %q, want %q", got.Target, tr.Raw)
	}
	if len(got.Missing) != 1 || atomics.Width(got.Missing[0]) != atomics.W64 {
		t.Errorf("Missing = %v, want [W64]", got.Missing)
	}
	if !got.Matches(artifact) {
		t.Error("roundtripped payload does not match its artifact")
	}
	if got.Matches([]byte("something else")) {
		t.Error("payload matched a different artifact")
	}
}

func TestGet_Miss(t *testing.T) {
	c := openTestCache(t)
	var out Payload
	ok, err := c.Get(Key("x86_64-unknown-linux-gnu", nil, "atomiccfg"), &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Get hit on an empty cache")
	}
}

func TestKey_SensitiveToInputs(t *testing.T) {
	rules := atomics.BuiltinRules()
	base := Key("mips-unknown-linux-gnu", rules, "atomiccfg")
	if Key("mipsel-unknown-linux-gnu", rules, "atomiccfg") == base {
		t.Error("key ignores the target")
	}
	if Key("mips-unknown-linux-gnu", rules, "otherpkg") == base {
		t.Error("key ignores the package name")
	}
	if Key("mips-unknown-linux-gnu", rules[:len(rules)-1], "atomiccfg") == base {
		t.Error("key ignores the rule table")
	}
	if Key("mips-unknown-linux-gnu", rules, "atomiccfg") != base {
		t.Error("key is not deterministic")
	}
}

func TestNilDiskIsSafe(t *testing.T) {
	var c *Disk
	if err := c.Put(Digest{}, &Payload{}); err != nil {
		t.Errorf("nil Put returned %v", err)
	}
	ok, err := c.Get(Digest{}, &Payload{})
	if err != nil || ok {
		t.Errorf("nil Get = (%t, %v), want (false, nil)", ok, err)
	}
}
