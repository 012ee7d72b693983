package symbolic

import (
	"fmt"

	"github.com/jacobbriones1/DynoDiff/internal/lake"
)

// Symbol names used throughout the derivation.
const (
	SymFlow   = "v" // volumetric flow rate
	SymVolume = "V" // lake volume
	SymInput  = "m" // solute mass input rate
	SymTime   = "t"
	symConst  = "C" // constant of integration
)

// Derivation holds the symbolic solution of
//
//	dσ/dt + (v/V)σ = m/V, σ(0) = 0
//
// with v, V, m, t left symbolic.
type Derivation struct {
	// General is the one-parameter family the integrating factor
	// exp((v/V)t) produces: σ(t) = m/v + C·exp(−(v/V)t).
	General Expr

	// Constant is the value of C fixed by σ(0) = 0.
	Constant Expr

	// ClosedForm is the particular solution m/v·(1 − exp(−(v/V)t)),
	// in canonical expanded form.
	ClosedForm Expr
}

// Derive produces the closed form. Multiplying the equation by the
// integrating factor J(t) = exp((v/V)t) turns the left side into
// d(Jσ)/dt, integrating gives Jσ = (m/v)J + C, hence the general
// solution; the constant of integration then follows from the zero
// initial condition.
func Derive() *Derivation {
	v, V, m, t := S(SymFlow), S(SymVolume), S(SymInput), S(SymTime)

	decay := ExpOf(Neg(MulOf(Div(v, V), t)))
	general := AddOf(Div(m, v), MulOf(S(symConst), decay))

	// σ(0) = m/v + C, so C = −m/v.
	atZero := general.Sub(SymTime, N(0))
	c := solveLinear(atZero, symConst)

	return &Derivation{
		General:    general,
		Constant:   c,
		ClosedForm: general.Sub(symConst, c),
	}
}

// solveLinear solves expr = 0 for a symbol that appears linearly with
// unit coefficient, returning the negated sum of the remaining terms.
func solveLinear(expr Expr, name string) Expr {
	target := S(name)
	terms := []Expr{expr}
	if a, ok := expr.(*Add); ok {
		terms = a.terms
	}
	rest := make([]Expr, 0, len(terms))
	found := false
	for _, t := range terms {
		if t.Equal(target) {
			found = true
			continue
		}
		rest = append(rest, t)
	}
	if !found {
		panic(fmt.Sprintf("symbolic: %s does not appear linearly in %s", name, expr))
	}
	return Neg(AddOf(rest...))
}

// Residual substitutes the closed form back into the equation and
// returns σ' + (v/V)σ − m/V, which must simplify to zero.
func (d *Derivation) Residual() Expr {
	v, V, m := S(SymFlow), S(SymVolume), S(SymInput)
	return AddOf(
		d.ClosedForm.Diff(SymTime),
		MulOf(Div(v, V), d.ClosedForm),
		Neg(Div(m, V)),
	)
}

// At substitutes a concrete time, leaving v, V, m symbolic.
func (d *Derivation) At(t *Num) Expr {
	return d.ClosedForm.Sub(SymTime, t)
}

// Instantiate binds the symbols to concrete parameters and returns a
// numeric σ(t). The returned function must agree with lake.Solve; it is
// the slow, derivation-backed path used for cross-checking.
func (d *Derivation) Instantiate(p lake.Parameters) (func(t float64) (float64, error), error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	bound := d.ClosedForm.
		Sub(SymFlow, NFloat(p.FlowRate)).
		Sub(SymVolume, NFloat(p.Volume)).
		Sub(SymInput, NFloat(p.InputRate))
	return func(t float64) (float64, error) {
		return bound.EvalFloat(map[string]float64{SymTime: t})
	}, nil
}

// Steps returns the derivation as display lines for the CLI.
func (d *Derivation) Steps() []string {
	return []string{
		"equation:        dσ/dt + (v/V)σ = m/V",
		"integrating factor: J(t) = exp((v/V)t)",
		"d(Jσ)/dt = (m/V)J  ⇒  Jσ = (m/v)J + C",
		fmt.Sprintf("general solution:   σ(t) = %s", d.General),
		fmt.Sprintf("σ(0) = 0  ⇒  C = %s", d.Constant),
		fmt.Sprintf("closed form:        σ(t) = %s", d.ClosedForm),
	}
}
