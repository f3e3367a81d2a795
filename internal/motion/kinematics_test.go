package motion_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gearsim/internal/motion"
)

var _ = Describe("Dampen", func() {
	DescribeTable("converges monotonically to the base magnitude without changing sign",
		func(start, base float64) {
			speed := start
			prevGap := math.Abs(math.Abs(speed) - math.Abs(base))
			for i := 0; i < 500; i++ {
				speed = motion.Dampen(speed, base, 0.05)
				Expect(math.Signbit(speed)).To(Equal(math.Signbit(start)))
				gap := math.Abs(math.Abs(speed) - math.Abs(base))
				Expect(gap).To(BeNumerically("<=", prevGap))
				prevGap = gap
			}
			Expect(math.Abs(speed)).To(BeNumerically("~", math.Abs(base), 1e-6))
		},
		Entry("fast forward", 40.0, 0.3),
		Entry("slow forward", 0.01, 0.3),
		Entry("fast reverse", -25.0, 0.3),
		Entry("slow reverse", -0.001, 0.3),
		Entry("negative base", 3.0, -0.3),
	)

	It("snaps to the base magnitude with a full factor", func() {
		Expect(motion.Dampen(-12, 1, 1)).To(Equal(-1.0))
	})

	It("leaves speed alone with a zero factor", func() {
		Expect(motion.Dampen(7.5, 0.3, 0)).To(Equal(7.5))
	})

	It("keeps a stopped assembly stopped", func() {
		Expect(motion.Dampen(0, 0.3, 0.5)).To(Equal(0.0))
	})
})

var _ = Describe("UnwrapDelta", func() {
	It("keeps small deltas as they are", func() {
		Expect(motion.UnwrapDelta(0.5, 0.7)).To(BeNumerically("~", 0.2, 1e-12))
		Expect(motion.UnwrapDelta(0.7, 0.5)).To(BeNumerically("~", -0.2, 1e-12))
	})

	It("takes the short way across the seam going counter-clockwise", func() {
		d := motion.UnwrapDelta(3.0, -3.0)
		Expect(d).To(BeNumerically("~", 2*math.Pi-6, 1e-12))
		Expect(d).To(BeNumerically("~", 0.283, 1e-3))
	})

	It("takes the short way across the seam going clockwise", func() {
		Expect(motion.UnwrapDelta(-3.0, 3.0)).To(BeNumerically("~", 6-2*math.Pi, 1e-12))
	})
})

var _ = Describe("DragInfluence", func() {
	It("scales the pointer angular velocity by the tooth count", func() {
		// quarter turn in 10ms on a 10 tooth gear
		got := motion.DragInfluence(0, math.Pi/2, 10, 10)
		Expect(got).To(BeNumerically("~", 90, 1e-9))
	})

	It("flips with the tooth sign", func() {
		Expect(motion.DragInfluence(0, 0.1, 1, -8)).To(Equal(-motion.DragInfluence(0, 0.1, 1, 8)))
	})
})

var _ = Describe("Params", func() {
	It("defaults to the documented values", func() {
		p := motion.DefaultParams()
		Expect(p.BaseSpeed).To(Equal(0.3))
		Expect(p.DampenFactor).To(Equal(0.05))
		Expect(p.MouseInfluenceFactor).To(Equal(0.005))
		Expect(p.Validate()).To(Succeed())
	})

	DescribeTable("rejects out of range values",
		func(p motion.Params) {
			Expect(p.Validate()).To(MatchError(motion.ErrParameterBounds))
		},
		Entry("dampen above one", motion.Params{BaseSpeed: 0.3, DampenFactor: 1.5}),
		Entry("dampen below zero", motion.Params{BaseSpeed: 0.3, DampenFactor: -0.1}),
		Entry("influence above one", motion.Params{BaseSpeed: 0.3, MouseInfluenceFactor: 2}),
		Entry("NaN influence", motion.Params{BaseSpeed: 0.3, MouseInfluenceFactor: math.NaN()}),
		Entry("infinite base speed", motion.Params{BaseSpeed: math.Inf(1)}),
	)

	It("accepts the closed unit interval bounds", func() {
		Expect(motion.Params{BaseSpeed: -2, DampenFactor: 1, MouseInfluenceFactor: 0}.Validate()).To(Succeed())
	})
})
