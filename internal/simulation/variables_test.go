package simulation

import "testing"

func TestYVariables_Catalog(t *testing.T) {
	all := YVariables()
	if len(all) != 51 {
		t.Fatalf("catalog size = %d, want 51", len(all))
	}
	seen := map[string]bool{}
	for _, v := range all {
		if seen[v] {
			t.Fatalf("duplicate entry %q", v)
		}
		seen[v] = true
		if !IsYVariable(v) {
			t.Fatalf("%q listed but not accepted", v)
		}
	}
}

func TestIsYVariable_Rejects(t *testing.T) {
	for _, v := range []string{"", "Time [s]", "voltage [V]", "Voltage [V] "} {
		if IsYVariable(v) {
			t.Fatalf("%q should be rejected", v)
		}
	}
}

func TestYVariables_ReturnsCopy(t *testing.T) {
	a := YVariables()
	a[0] = "tampered"
	if !IsYVariable(YVariables()[0]) || YVariables()[0] == "tampered" {
		t.Fatalf("catalog was mutated through returned slice")
	}
}

func TestSortedYVariables(t *testing.T) {
	s := SortedYVariables()
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			t.Fatalf("not sorted at %d: %q > %q", i, s[i-1], s[i])
		}
	}
}
