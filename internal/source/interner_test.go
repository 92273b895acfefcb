package source

import "testing"

func TestInterner(t *testing.T) {
	in := NewInterner()

	a := in.Intern("init")
	b := in.Intern("teardown")
	if a == b {
		t.Fatalf("distinct strings share an ID")
	}
	if again := in.Intern("init"); again != a {
		t.Errorf("re-interning changed ID: %d != %d", again, a)
	}
	if got := in.MustLookup(a); got != "init" {
		t.Errorf("MustLookup = %q, want %q", got, "init")
	}
	if id := in.Intern(""); id != NoStringID {
		t.Errorf("empty string ID = %d, want %d", id, NoStringID)
	}
	if in.Len() != 3 {
		t.Errorf("Len = %d, want 3", in.Len())
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Errorf("unexpected lookup hit for invalid ID")
	}
}
