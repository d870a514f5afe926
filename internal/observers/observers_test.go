package observers_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kvanta/numint/internal/observers"
	"github.com/kvanta/numint/internal/ode"
)

var _ = Describe("Decimate", func() {
	It("triggers exactly every Nth invocation", func() {
		d := observers.NewDecimate(3)

		var triggered []int
		for i := 1; i <= 9; i++ {
			if d.ShouldObserve() {
				triggered = append(triggered, i)
			}
		}

		Expect(triggered).To(Equal([]int{3, 6, 9}))
	})

	It("triggers on every invocation when N is zero", func() {
		d := observers.NewDecimate(0)

		for i := 0; i < 5; i++ {
			Expect(d.ShouldObserve()).To(BeTrue())
		}
	})

	It("resets its counter on trigger", func() {
		d := observers.NewDecimate(2)

		Expect(d.ShouldObserve()).To(BeFalse())
		Expect(d.ShouldObserve()).To(BeTrue())
		Expect(d.ShouldObserve()).To(BeFalse())
		Expect(d.ShouldObserve()).To(BeTrue())
	})
})

var _ = Describe("Print", func() {
	It("writes one line per trigger in '<time> <state>' form", func() {
		var buf bytes.Buffer
		p := observers.NewPrint(&buf, 0)

		p.Observe(ode.State{1, 2}, 0.5)

		Expect(buf.String()).To(Equal("0.5 [1 2]\n"))
	})

	It("decimates output", func() {
		var buf bytes.Buffer
		p := observers.NewPrint(&buf, 2)

		for i := 0; i < 4; i++ {
			p.Observe(ode.State{float64(i)}, float64(i))
		}

		Expect(buf.String()).To(Equal("1 [1]\n3 [3]\n"))
	})
})

var _ = Describe("History", func() {
	It("records snapshots with copied state", func() {
		h := observers.NewHistory(0)
		x := ode.State{1, 2}

		h.Observe(x, 0.1)
		x[0] = 99

		Expect(h.Len()).To(Equal(1))
		Expect(h.Snapshots()[0].State).To(Equal(ode.State{1, 2}))
		Expect(h.Times()).To(Equal([]float64{0.1}))
	})

	It("drops the oldest snapshot past capacity", func() {
		h := observers.NewHistory(2)

		h.Observe(ode.State{1}, 1)
		h.Observe(ode.State{2}, 2)
		h.Observe(ode.State{3}, 3)

		Expect(h.Len()).To(Equal(2))
		Expect(h.Times()).To(Equal([]float64{2, 3}))
	})

	It("extracts a component trace", func() {
		h := observers.NewHistory(0)
		h.Observe(ode.State{1, 10}, 0)
		h.Observe(ode.State{2, 20}, 1)

		Expect(h.Component(1)).To(Equal([]float64{10, 20}))
	})
})

var _ = Describe("Nop", func() {
	It("does nothing", func() {
		var o observers.Observer = observers.Nop{}
		o.Observe(ode.State{1}, 0)
	})
})
