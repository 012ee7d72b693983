package lake_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jacobbriones1/DynoDiff/internal/lake"
)

var _ = Describe("closed-form solution", func() {
	var cases = []lake.Parameters{
		{FlowRate: 2, Volume: 100, InputRate: 1},
		{FlowRate: 0.5, Volume: 10000, InputRate: 2},
		{FlowRate: 50, Volume: 100, InputRate: 1},
		{FlowRate: 1, Volume: 1, InputRate: 3},
	}

	It("starts at exactly zero", func() {
		for _, p := range cases {
			sol, err := lake.Solve(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.Concentration(0)).To(BeZero())
		}
	})

	It("stays below the steady state and approaches it", func() {
		for _, p := range cases {
			sol, err := lake.Solve(p)
			Expect(err).NotTo(HaveOccurred())

			steady := sol.SteadyState()
			horizon := 20 / sol.TurnoverRate()
			for i := 0; i <= 100; i++ {
				t := horizon * float64(i) / 100
				Expect(sol.Concentration(t)).To(BeNumerically("<", steady))
			}
			Expect(sol.Concentration(horizon)).To(BeNumerically("~", steady, 1e-8*steady+1e-15))
		}
	})

	It("is monotone non-decreasing", func() {
		for _, p := range cases {
			sol, err := lake.Solve(p)
			Expect(err).NotTo(HaveOccurred())

			horizon := 10 / sol.TurnoverRate()
			prev := -1.0
			for i := 0; i <= 200; i++ {
				t := horizon * float64(i) / 200
				c := sol.Concentration(t)
				Expect(c).To(BeNumerically(">=", prev))
				prev = c
			}
		}
	})

	It("satisfies the governing equation", func() {
		for _, p := range cases {
			sol, err := lake.Solve(p)
			Expect(err).NotTo(HaveOccurred())

			scale := p.InputRate/p.Volume + 1e-15
			for _, t := range []float64{0, 0.1, 1, 10, 1000} {
				Expect(sol.Residual(t)).To(BeNumerically("~", 0, 1e-12*scale+1e-15))
			}
		}
	})

	It("rejects ill-posed parameters before evaluation", func() {
		_, err := lake.Solve(lake.Parameters{FlowRate: 0, Volume: 100, InputRate: 1})
		Expect(err).To(MatchError(lake.ErrInvalidParameter))

		_, err = lake.Solve(lake.Parameters{FlowRate: 2, Volume: 0, InputRate: 1})
		Expect(err).To(MatchError(lake.ErrInvalidParameter))
	})
})
