package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
)

// Expr is a simplified, immutable expression node.
type Expr interface {
	Simplify() Expr
	String() string
	Sub(name string, value Expr) Expr
	Diff(name string) Expr
	EvalFloat(env map[string]float64) (float64, error)
	Equal(other Expr) bool
}

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func NFloat(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }

func numFromRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(one) == 0 }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }

func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

func (n *Num) EvalFloat(map[string]float64) (float64, error) { return n.Float64(), nil }

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

var one = new(big.Rat).SetInt64(1)

// Sym is a free variable.
type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }

func (s *Sym) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

func (s *Sym) EvalFloat(env map[string]float64) (float64, error) {
	v, ok := env[s.name]
	if !ok {
		return 0, fmt.Errorf("symbolic: unbound symbol %q", s.name)
	}
	return v, nil
}

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

// Pow is base^exp with a rational exponent.
type Pow struct {
	base Expr
	exp  *big.Rat
}

func PowOf(base Expr, exp *Num) Expr {
	return (&Pow{base: base.Simplify(), exp: exp.Rat()}).Simplify()
}

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	if p.exp.Sign() == 0 {
		return N(1)
	}
	if p.exp.Cmp(one) == 0 {
		return base
	}
	if b, ok := base.(*Pow); ok {
		return (&Pow{base: b.base, exp: new(big.Rat).Mul(b.exp, p.exp)}).Simplify()
	}
	if n, ok := base.(*Num); ok && p.exp.IsInt() {
		return numIntPow(n, p.exp.Num().Int64())
	}
	return &Pow{base: base, exp: p.exp}
}

func numIntPow(n *Num, k int64) Expr {
	if n.IsZero() && k < 0 {
		panic("symbolic: zero to a negative power")
	}
	r := new(big.Rat).SetInt64(1)
	b := n.Rat()
	neg := k < 0
	if neg {
		k = -k
	}
	for i := int64(0); i < k; i++ {
		r.Mul(r, b)
	}
	if neg {
		r.Inv(r)
	}
	return numFromRat(r)
}

func (p *Pow) String() string {
	base := p.base.String()
	if _, ok := p.base.(*Sym); !ok {
		if _, isExp := p.base.(*ExpFn); !isExp {
			base = "(" + base + ")"
		}
	}
	if p.exp.IsInt() {
		return fmt.Sprintf("%s^%s", base, p.exp.Num().String())
	}
	return fmt.Sprintf("%s^(%s)", base, p.exp.RatString())
}

func (p *Pow) Sub(name string, value Expr) Expr {
	return (&Pow{base: p.base.Sub(name, value), exp: p.exp}).Simplify()
}

func (p *Pow) Diff(name string) Expr {
	// d(u^n) = n·u^(n-1)·u'
	nm1 := new(big.Rat).Sub(p.exp, one)
	return MulOf(
		numFromRat(p.exp),
		(&Pow{base: p.base, exp: nm1}).Simplify(),
		p.base.Diff(name),
	)
}

func (p *Pow) EvalFloat(env map[string]float64) (float64, error) {
	b, err := p.base.EvalFloat(env)
	if err != nil {
		return 0, err
	}
	e, _ := p.exp.Float64()
	return math.Pow(b, e), nil
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.exp.Cmp(o.exp) == 0 && p.base.Equal(o.base)
}

// ExpFn is exp(arg).
type ExpFn struct{ arg Expr }

func ExpOf(arg Expr) Expr { return (&ExpFn{arg: arg}).Simplify() }

func (e *ExpFn) Simplify() Expr {
	arg := e.arg.Simplify()
	if n, ok := arg.(*Num); ok && n.IsZero() {
		return N(1)
	}
	return &ExpFn{arg: arg}
}

func (e *ExpFn) String() string { return "exp(" + e.arg.String() + ")" }

func (e *ExpFn) Sub(name string, value Expr) Expr {
	return ExpOf(e.arg.Sub(name, value))
}

func (e *ExpFn) Diff(name string) Expr {
	return MulOf(e.arg.Diff(name), &ExpFn{arg: e.arg})
}

func (e *ExpFn) EvalFloat(env map[string]float64) (float64, error) {
	a, err := e.arg.EvalFloat(env)
	if err != nil {
		return 0, err
	}
	return math.Exp(a), nil
}

func (e *ExpFn) Equal(other Expr) bool {
	o, ok := other.(*ExpFn)
	return ok && e.arg.Equal(o.arg)
}

// Mul is an n-ary product. Canonical form: optional leading rational
// coefficient, remaining factors sorted, like bases merged into powers.
type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		f = f.Simplify()
		if inner, ok := f.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, f)
		}
	}

	// Distribute products over sums so the canonical form is expanded;
	// like terms can then cancel in Add.
	for i, f := range flat {
		sum, ok := f.(*Add)
		if !ok {
			continue
		}
		out := make([]Expr, 0, len(sum.terms))
		for _, term := range sum.terms {
			rest := make([]Expr, 0, len(flat))
			rest = append(rest, flat[:i]...)
			rest = append(rest, term)
			rest = append(rest, flat[i+1:]...)
			out = append(out, MulOf(rest...))
		}
		return AddOf(out...)
	}

	coeff := new(big.Rat).SetInt64(1)
	type entry struct {
		base Expr
		exp  *big.Rat
	}
	merged := make(map[string]*entry)
	keys := make([]string, 0, len(flat))

	for _, f := range flat {
		switch v := f.(type) {
		case *Num:
			if v.IsZero() {
				return N(0)
			}
			coeff.Mul(coeff, v.val)
		case *Pow:
			k := v.base.String()
			if e, ok := merged[k]; ok {
				e.exp.Add(e.exp, v.exp)
			} else {
				merged[k] = &entry{base: v.base, exp: new(big.Rat).Set(v.exp)}
				keys = append(keys, k)
			}
		default:
			k := f.String()
			if e, ok := merged[k]; ok {
				e.exp.Add(e.exp, one)
			} else {
				merged[k] = &entry{base: f, exp: new(big.Rat).SetInt64(1)}
				keys = append(keys, k)
			}
		}
	}

	sort.Strings(keys)
	out := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		e := merged[k]
		f := (&Pow{base: e.base, exp: e.exp}).Simplify()
		if n, ok := f.(*Num); ok {
			if n.IsZero() {
				return N(0)
			}
			coeff.Mul(coeff, n.val)
			continue
		}
		out = append(out, f)
	}

	if len(out) == 0 {
		return numFromRat(coeff)
	}
	if coeff.Sign() == 0 {
		return N(0)
	}
	if coeff.Cmp(one) != 0 {
		out = append([]Expr{numFromRat(coeff)}, out...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Mul{factors: out}
}

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		s := f.String()
		if _, ok := f.(*Add); ok {
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	return strings.Join(parts, "*")
}

func (m *Mul) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(name, value)
	}
	return MulOf(out...)
}

func (m *Mul) Diff(name string) Expr {
	// Product rule over canonical factors.
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		part := make([]Expr, 0, len(m.factors))
		for j, f := range m.factors {
			if i == j {
				part = append(part, f.Diff(name))
			} else {
				part = append(part, f)
			}
		}
		terms = append(terms, MulOf(part...))
	}
	return AddOf(terms...)
}

func (m *Mul) EvalFloat(env map[string]float64) (float64, error) {
	prod := 1.0
	for _, f := range m.factors {
		v, err := f.EvalFloat(env)
		if err != nil {
			return 0, err
		}
		prod *= v
	}
	return prod, nil
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// Add is an n-ary sum. Canonical form: like terms combined, terms
// sorted, constant folded into a single trailing rational.
type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		t = t.Simplify()
		if inner, ok := t.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, t)
		}
	}

	constant := new(big.Rat)
	type entry struct {
		rest  Expr
		coeff *big.Rat
	}
	merged := make(map[string]*entry)
	keys := make([]string, 0, len(flat))

	addTerm := func(coeff *big.Rat, rest Expr) {
		k := rest.String()
		if e, ok := merged[k]; ok {
			e.coeff.Add(e.coeff, coeff)
		} else {
			merged[k] = &entry{rest: rest, coeff: new(big.Rat).Set(coeff)}
			keys = append(keys, k)
		}
	}

	for _, t := range flat {
		switch v := t.(type) {
		case *Num:
			constant.Add(constant, v.val)
		case *Mul:
			if c, ok := v.factors[0].(*Num); ok {
				rest := &Mul{factors: v.factors[1:]}
				if len(rest.factors) == 1 {
					addTerm(c.val, rest.factors[0])
				} else {
					addTerm(c.val, rest)
				}
			} else {
				addTerm(one, v)
			}
		default:
			addTerm(one, t)
		}
	}

	sort.Strings(keys)
	out := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		e := merged[k]
		if e.coeff.Sign() == 0 {
			continue
		}
		if e.coeff.Cmp(one) == 0 {
			out = append(out, e.rest)
		} else {
			out = append(out, MulOf(numFromRat(e.coeff), e.rest))
		}
	}
	if constant.Sign() != 0 {
		out = append(out, numFromRat(constant))
	}

	if len(out) == 0 {
		return N(0)
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Add{terms: out}
}

func (a *Add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(name, value)
	}
	return AddOf(out...)
}

func (a *Add) Diff(name string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(name)
	}
	return AddOf(out...)
}

func (a *Add) EvalFloat(env map[string]float64) (float64, error) {
	sum := 0.0
	for _, t := range a.terms {
		v, err := t.EvalFloat(env)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// Convenience constructors.

func Neg(e Expr) Expr      { return MulOf(N(-1), e) }
func Minus(a, b Expr) Expr { return AddOf(a, Neg(b)) }
func Div(a, b Expr) Expr   { return MulOf(a, PowOf(b, N(-1))) }
