package deepcopy

import "testing"

type nested struct {
	Values []string
	Lookup map[string]int
}

type sample struct {
	Name   string
	Inner  *nested
	Labels map[string]string
}

func TestCopy_Nil(t *testing.T) {
	out, err := Copy[sample](nil)
	if err != nil {
		t.Fatalf("Copy(nil) failed: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil copy of nil source, got %+v", out)
	}
}

func TestCopy_Isolation(t *testing.T) {
	src := &sample{
		Name:   "original",
		Inner:  &nested{Values: []string{"a", "b"}, Lookup: map[string]int{"a": 1}},
		Labels: map[string]string{"k": "v"},
	}

	dst, err := Copy(src)
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	dst.Name = "mutated"
	dst.Inner.Values[0] = "mutated"
	dst.Inner.Lookup["a"] = 99
	dst.Labels["k"] = "mutated"

	if src.Name != "original" ||
		src.Inner.Values[0] != "a" ||
		src.Inner.Lookup["a"] != 1 ||
		src.Labels["k"] != "v" {
		t.Errorf("mutating the copy leaked into the source: %+v", src)
	}
}
