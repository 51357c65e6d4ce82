package simulation

import "sort"

// yVariables is the catalog of time-dependent output series accepted as the
// y-axis of a simulation. It is built once and never mutated.
var yVariables = newCatalog(
	"Voltage [V]",
	"Terminal voltage [V]",
	"Current [A]",
	"Current variable [A]",
	"C-rate",
	"Discharge capacity [A.h]",
	"Throughput capacity [A.h]",
	"Discharge energy [W.h]",
	"Throughput energy [W.h]",
	"X-averaged cell temperature [K]",
	"Volume-averaged cell temperature [K]",
	"X-averaged electrolyte concentration [mol.m-3]",
	"X-averaged battery solid phase ohmic losses [V]",
	"X-averaged battery electrolyte ohmic losses [V]",
	"Resistance [Ohm]",
	"Power [W]",
	"Terminal power [W]",
	"Loss of capacity to positive SEI [A.h]",
	"Loss of capacity to negative SEI [A.h]",
	"Loss of capacity to positive SEI on cracks [A.h]",
	"Loss of capacity to positive lithium plating [A.h]",
	"Loss of capacity to negative lithium plating [A.h]",
	"LLI [%]",
	"LAM_ne [%]",
	"LAM_pe [%]",
	"X-averaged positive electrode temperature [K]",
	"X-averaged negative electrode temperature [K]",
	"X-averaged separator temperature [K]",
	"Volume-averaged reversible heating [W.m-3]",
	"Volume-averaged irreversible electrochemical heating [W.m-3]",
	"Volume-averaged Ohmic heating [W.m-3]",
	"X-averaged reaction overpotential [V]",
	"X-averaged SEI film overpotential [V]",
	"X-averaged electrolyte potential [V]",
	"X-averaged electrolyte ohmic losses [V]",
	"X-averaged total heating [W.m-3]",
	"X-averaged positive particle surface concentration [mol.m-3]",
	"X-averaged positive electrode interfacial current density [A.m-2]",
	"X-averaged positive electrode exchange current density [A.m-2]",
	"X-averaged negative electrode exchange current density [A.m-2]",
	"X-averaged negative electrode interfacial current density [A.m-2]",
	"X-averaged negative particle surface concentration [mol.m-3]",
	"X-averaged positive electrode reaction overpotential [V]",
	"X-averaged negative electrode reaction overpotential [V]",
	"X-averaged positive electrode potential [V]",
	"X-averaged negative electrode potential [V]",
	"X-averaged solid phase ohmic losses [V]",
	"X-averaged positive electrode ohmic losses [V]",
	"X-averaged negative electrode ohmic losses [V]",
	"X-averaged positive electrode active material volume fraction",
	"X-averaged negative electrode active material volume fraction",
)

type catalog struct {
	ordered []string
	set     map[string]struct{}
}

func newCatalog(names ...string) catalog {
	c := catalog{
		ordered: names,
		set:     make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		c.set[n] = struct{}{}
	}
	return c
}

// IsYVariable reports whether name may be requested as the y-axis series.
func IsYVariable(name string) bool {
	_, ok := yVariables.set[name]
	return ok
}

// YVariables returns a copy of the catalog in its canonical order.
func YVariables() []string {
	out := make([]string, len(yVariables.ordered))
	copy(out, yVariables.ordered)
	return out
}

// SortedYVariables returns the catalog sorted alphabetically.
func SortedYVariables() []string {
	out := YVariables()
	sort.Strings(out)
	return out
}
