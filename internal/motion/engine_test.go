package motion_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gearsim/internal/gear"
	"github.com/san-kum/gearsim/internal/motion"
)

type sink struct {
	box      gear.Box
	rotation float64
	writes   int
}

func (s *sink) BBox() gear.Box { return s.box }

func (s *sink) Rotate(deg float64) {
	s.rotation = deg
	s.writes++
}

// disc registers a gear of radius 50 centered on (cx, cy).
func disc(set *gear.Set, cx, cy float64, teeth int) *sink {
	s := &sink{box: gear.Box{X: cx - 50, Y: cy - 50, Width: 100, Height: 100}}
	_, err := set.Register(s, teeth)
	Expect(err).NotTo(HaveOccurred())
	return s
}

// onCircle returns the point at angle rad, 40 units from (cx, cy).
func onCircle(cx, cy, rad float64) gear.Point {
	return gear.Point{X: cx + 40*math.Cos(rad), Y: cy + 40*math.Sin(rad)}
}

var _ = Describe("Engine", func() {
	var (
		set *gear.Set
		eng *motion.Engine
	)

	newEngine := func(p motion.Params) *motion.Engine {
		e, err := motion.New(set, p)
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	BeforeEach(func() {
		set = gear.NewSet()
	})

	It("refuses invalid parameters", func() {
		_, err := motion.New(set, motion.Params{BaseSpeed: 0.3, DampenFactor: 3})
		Expect(err).To(MatchError(motion.ErrParameterBounds))
	})

	It("starts at base speed with a zero angle", func() {
		eng = newEngine(motion.DefaultParams())
		Expect(eng.Speed()).To(Equal(0.3))
		Expect(eng.Angle()).To(Equal(0.0))
		Expect(eng.Hovered()).To(Equal(gear.NoGear))
	})

	Describe("OnClockTick", func() {
		It("snaps speed and renders the geared angle", func() {
			g := disc(set, 50, 50, 10)
			eng = newEngine(motion.Params{BaseSpeed: 1, DampenFactor: 1})

			eng.OnClockTick(0)
			Expect(eng.Angle()).To(Equal(0.0))

			eng.OnClockTick(1000)
			Expect(eng.Speed()).To(Equal(1.0))
			Expect(eng.Angle()).To(BeNumerically("~", 1000, 1e-9))
			Expect(g.rotation).To(BeNumerically("~", 100, 1e-9))
		})

		It("only seeds the clock on the first tick", func() {
			disc(set, 50, 50, 8)
			eng = newEngine(motion.DefaultParams())
			eng.OnClockTick(123456)
			Expect(eng.Angle()).To(Equal(0.0))
			Expect(eng.Speed()).To(Equal(0.3))
		})

		It("turns meshed gears in opposite directions", func() {
			a := disc(set, 50, 50, 8)
			b := disc(set, 150, 50, -8)
			eng = newEngine(motion.DefaultParams())
			eng.OnClockTick(0)
			eng.OnClockTick(16)
			eng.OnClockTick(40)
			Expect(a.rotation).To(BeNumerically(">", 0))
			Expect(b.rotation).To(Equal(-a.rotation))
		})

		It("writes every gear on every tick", func() {
			a := disc(set, 50, 50, 8)
			b := disc(set, 150, 50, -8)
			eng = newEngine(motion.DefaultParams())
			for t := 0.0; t < 100; t += 16 {
				eng.OnClockTick(t)
			}
			Expect(a.writes).To(Equal(7))
			Expect(b.writes).To(Equal(7))
		})

		It("handles irregular intervals", func() {
			disc(set, 50, 50, 8)
			eng = newEngine(motion.Params{BaseSpeed: 0.5, DampenFactor: 1})
			eng.OnClockTick(0)
			eng.OnClockTick(3)
			eng.OnClockTick(50)
			eng.OnClockTick(51.5)
			Expect(eng.Angle()).To(BeNumerically("~", 0.5*51.5, 1e-9))
		})

		It("skips integration for repeated or backwards timestamps", func() {
			eng = newEngine(motion.Params{BaseSpeed: 1, DampenFactor: 1})
			eng.OnClockTick(100)
			eng.OnClockTick(200)
			Expect(eng.Angle()).To(BeNumerically("~", 100, 1e-9))

			eng.OnClockTick(200)
			eng.OnClockTick(150)
			Expect(eng.Angle()).To(BeNumerically("~", 100, 1e-9))

			eng.OnClockTick(160)
			Expect(eng.Angle()).To(BeNumerically("~", 110, 1e-9))
		})

		It("runs without any pointer input", func() {
			disc(set, 50, 50, 8)
			eng = newEngine(motion.DefaultParams())
			for t := 0.0; t <= 1000; t += 10 {
				eng.OnClockTick(t)
			}
			Expect(eng.Angle()).To(BeNumerically("~", 300, 1e-6))
		})
	})

	Describe("OnPointerSample", func() {
		fullInfluence := motion.Params{BaseSpeed: 0.3, DampenFactor: 0.5, MouseInfluenceFactor: 1}

		It("never changes speed on a single sample", func() {
			disc(set, 50, 50, 10)
			eng = newEngine(fullInfluence)
			eng.OnPointerSample(onCircle(50, 50, 0), 10)
			Expect(eng.Speed()).To(Equal(0.3))
			Expect(eng.Hovered()).To(Equal(gear.Handle(0)))
			Expect(eng.Snapshot().Engaged).To(BeFalse())
		})

		It("infers speed from two samples on the same gear", func() {
			disc(set, 50, 50, 10)
			eng = newEngine(fullInfluence)
			eng.OnPointerSample(onCircle(50, 50, 0), 0)
			eng.OnPointerSample(onCircle(50, 50, math.Pi/2), 10)
			Expect(eng.Speed()).To(BeNumerically("~", 90, 1e-9))
			Expect(eng.Snapshot().Engaged).To(BeTrue())
		})

		It("blends by the influence factor", func() {
			disc(set, 50, 50, 10)
			eng = newEngine(motion.Params{BaseSpeed: 0.3, MouseInfluenceFactor: 0.5})
			eng.OnPointerSample(onCircle(50, 50, 0), 0)
			eng.OnPointerSample(onCircle(50, 50, math.Pi/2), 10)
			Expect(eng.Speed()).To(BeNumerically("~", 0.3*0.5+90*0.5, 1e-9))
		})

		It("can reverse the direction, which dampening then keeps", func() {
			disc(set, 50, 50, 10)
			eng = newEngine(fullInfluence)
			eng.OnPointerSample(onCircle(50, 50, math.Pi/2), 0)
			eng.OnPointerSample(onCircle(50, 50, 0), 10)
			Expect(eng.Speed()).To(BeNumerically("~", -90, 1e-9))

			eng.OnClockTick(0)
			prev := math.Abs(eng.Speed())
			for t := 16.0; t < 2000; t += 16 {
				eng.OnClockTick(t)
				Expect(eng.Speed()).To(BeNumerically("<", 0))
				Expect(math.Abs(eng.Speed())).To(BeNumerically("<=", prev))
				prev = math.Abs(eng.Speed())
			}
			Expect(eng.Speed()).To(BeNumerically("~", -0.3, 1e-6))
		})

		It("uses the short way round when the drag crosses the seam", func() {
			disc(set, 0, 0, 1)
			eng = newEngine(fullInfluence)
			eng.OnPointerSample(onCircle(0, 0, 3.0), 0)
			eng.OnPointerSample(onCircle(0, 0, -3.0), 1)
			Expect(eng.Speed()).To(BeNumerically("~", motion.RadToDeg(2*math.Pi-6), 1e-9))
		})

		It("resets engagement when the hovered gear changes", func() {
			disc(set, 50, 50, 10)
			disc(set, 150, 50, -10)
			eng = newEngine(fullInfluence)

			eng.OnPointerSample(onCircle(50, 50, 0), 0)
			eng.OnPointerSample(onCircle(150, 50, math.Pi/2), 10)
			Expect(eng.Speed()).To(Equal(0.3))
			Expect(eng.Hovered()).To(Equal(gear.Handle(1)))

			eng.OnPointerSample(onCircle(150, 50, math.Pi), 20)
			Expect(eng.Speed()).To(BeNumerically("~", -90, 1e-9))
		})

		It("resets engagement when the pointer leaves every gear", func() {
			disc(set, 50, 50, 10)
			eng = newEngine(fullInfluence)
			eng.OnPointerSample(onCircle(50, 50, 0), 0)
			eng.OnPointerSample(gear.Point{X: 500, Y: 500}, 10)
			Expect(eng.Snapshot().Engaged).To(BeFalse())
			eng.OnPointerSample(onCircle(50, 50, math.Pi/2), 20)
			Expect(eng.Speed()).To(Equal(0.3))
		})

		It("ignores samples without elapsed time but keeps tracking", func() {
			disc(set, 50, 50, 10)
			eng = newEngine(fullInfluence)
			eng.OnPointerSample(onCircle(50, 50, 0), 10)
			eng.OnPointerSample(onCircle(50, 50, 0.5), 10)
			eng.OnPointerSample(onCircle(50, 50, 1.0), 5)
			Expect(eng.Speed()).To(Equal(0.3))

			eng.OnPointerSample(onCircle(50, 50, 1.0+math.Pi/2), 15)
			Expect(eng.Speed()).To(BeNumerically("~", 90, 1e-9))
		})

		It("renders drag effects only on the next tick", func() {
			g := disc(set, 50, 50, 10)
			eng = newEngine(fullInfluence)
			eng.OnClockTick(0)
			writes := g.writes
			eng.OnPointerSample(onCircle(50, 50, 0), 0)
			eng.OnPointerSample(onCircle(50, 50, 1), 10)
			Expect(g.writes).To(Equal(writes))
		})
	})
})
