// Package algebra provides the elementwise arithmetic kernel shared by all
// steppers. Every update of the form x[i] = op(x[i], c1*k1[i], c2*k2[i], ...)
// goes through here so that the stepping algorithms never spell out their
// own index loops.
package algebra

import "math"

// Float covers the element types the steppers operate on.
type Float interface {
	~float32 | ~float64
}

// Term pairs a scale coefficient with the sequence it applies to.
type Term[F Float] struct {
	Coeff F
	Seq   []F
}

// Scaled is a convenience constructor for a Term.
func Scaled[F Float](c F, seq []F) Term[F] {
	return Term[F]{Coeff: c, Seq: seq}
}

// Accumulate overwrites dst elementwise by folding op over the current
// destination value and each scaled term:
//
//	dst[i] = op(...op(op(dst[i], c1*seq1[i]), c2*seq2[i])..., cn*seqn[i])
//
// Every term sequence must have at least len(dst) elements; lengths are not
// checked, matching the caller-guarantees-equal-length contract.
func Accumulate[F Float](dst []F, op func(a, b F) F, terms ...Term[F]) {
	for i := range dst {
		acc := dst[i]
		for _, t := range terms {
			acc = op(acc, t.Coeff*t.Seq[i])
		}
		dst[i] = acc
	}
}

// AccumulateAdd is Accumulate with the additive combine, the only combine
// the shipped steppers use:
//
//	dst[i] += c1*seq1[i] + c2*seq2[i] + ... + cn*seqn[i]
func AccumulateAdd[F Float](dst []F, terms ...Term[F]) {
	for i := range dst {
		acc := dst[i]
		for _, t := range terms {
			acc += t.Coeff * t.Seq[i]
		}
		dst[i] = acc
	}
}

// SumAbs returns the sum of absolute values of seq, accumulated in float64
// regardless of the element type. Used for error norms.
func SumAbs[F Float](seq []F) float64 {
	sum := 0.0
	for _, v := range seq {
		sum += math.Abs(float64(v))
	}
	return sum
}
