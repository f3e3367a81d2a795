package gear_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gearsim/internal/gear"
)

type fakeItem struct {
	box      gear.Box
	pivot    *gear.Point
	rotation float64
}

func (f *fakeItem) BBox() gear.Box        { return f.box }
func (f *fakeItem) Rotate(deg float64)    { f.rotation = deg }
func (f *fakeItem) SetPivot(p gear.Point) { f.pivot = &p }

func square(x, y, size float64) *fakeItem {
	return &fakeItem{box: gear.Box{X: x, Y: y, Width: size, Height: size}}
}

var _ = Describe("Set", func() {
	var set *gear.Set

	BeforeEach(func() {
		set = gear.NewSet()
	})

	Describe("Register", func() {
		It("derives center and radius from the bounding box", func() {
			h, err := set.Register(square(10, 20, 40), 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(h).To(Equal(gear.Handle(0)))

			g, ok := set.Get(h)
			Expect(ok).To(BeTrue())
			Expect(g.Teeth).To(Equal(8))
			Expect(g.Radius).To(Equal(20.0))
			Expect(g.RadiusSquared).To(Equal(400.0))
			Expect(g.Center).To(Equal(gear.Point{X: 30, Y: 40}))
		})

		It("offsets the center by the width radius on both axes", func() {
			item := &fakeItem{box: gear.Box{X: 0, Y: 0, Width: 10, Height: 30}}
			h, err := set.Register(item, -12)
			Expect(err).NotTo(HaveOccurred())
			g, _ := set.Get(h)
			Expect(g.Center).To(Equal(gear.Point{X: 5, Y: 5}))
		})

		It("moves the pivot of pivotable items to the gear center", func() {
			item := square(0, 0, 50)
			_, err := set.Register(item, 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(item.pivot).NotTo(BeNil())
			Expect(*item.pivot).To(Equal(gear.Point{X: 25, Y: 25}))
		})

		It("hands out handles in registration order", func() {
			for i := 0; i < 3; i++ {
				h, err := set.Register(square(float64(i)*100, 0, 50), 8)
				Expect(err).NotTo(HaveOccurred())
				Expect(h).To(Equal(gear.Handle(i)))
			}
			Expect(set.Count()).To(Equal(3))
		})

		It("rejects a zero tooth count and leaves the set unchanged", func() {
			_, err := set.Register(square(0, 0, 50), 8)
			Expect(err).NotTo(HaveOccurred())

			h, err := set.Register(square(100, 0, 50), 0)
			Expect(err).To(MatchError(gear.ErrInvalidToothCount))
			Expect(h).To(Equal(gear.NoGear))
			Expect(set.Count()).To(Equal(1))
		})

		DescribeTable("rejects degenerate geometry",
			func(width float64) {
				item := &fakeItem{box: gear.Box{X: 0, Y: 0, Width: width, Height: 10}}
				_, err := set.Register(item, 8)
				Expect(err).To(MatchError(gear.ErrInvalidGeometry))
				Expect(set.Count()).To(Equal(0))
				Expect(item.pivot).To(BeNil())
			},
			Entry("zero width", 0.0),
			Entry("negative width", -4.0),
		)

		It("rejects a nil renderable", func() {
			_, err := set.Register(nil, 8)
			Expect(errors.Is(err, gear.ErrInvalidGeometry)).To(BeTrue())
		})

		It("wraps failures in a RegistrationError", func() {
			_, err := set.Register(square(0, 0, 10), 0)
			var regErr *gear.RegistrationError
			Expect(errors.As(err, &regErr)).To(BeTrue())
			Expect(regErr.Teeth).To(Equal(0))
		})
	})

	Describe("HitTest", func() {
		BeforeEach(func() {
			_, _ = set.Register(square(0, 0, 100), 8)    // center (50,50) r=50
			_, _ = set.Register(square(100, 0, 100), -8) // center (150,50) r=50
		})

		It("finds the gear containing the point", func() {
			Expect(set.HitTest(gear.Point{X: 50, Y: 50})).To(Equal(gear.Handle(0)))
			Expect(set.HitTest(gear.Point{X: 160, Y: 40})).To(Equal(gear.Handle(1)))
		})

		It("excludes points on the rim", func() {
			Expect(set.HitTest(gear.Point{X: 50, Y: 0})).To(Equal(gear.NoGear))
		})

		It("reports no gear outside every circle", func() {
			Expect(set.HitTest(gear.Point{X: 2, Y: 2})).To(Equal(gear.NoGear))
			Expect(set.HitTest(gear.Point{X: 500, Y: 500})).To(Equal(gear.NoGear))
		})

		It("prefers the first registered gear when circles overlap", func() {
			_, _ = set.Register(square(25, 25, 50), 20) // inside gear 0
			Expect(set.HitTest(gear.Point{X: 50, Y: 50})).To(Equal(gear.Handle(0)))
		})
	})

	Describe("Get", func() {
		It("rejects unknown handles", func() {
			_, ok := set.Get(gear.NoGear)
			Expect(ok).To(BeFalse())
			_, ok = set.Get(gear.Handle(3))
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("RenderedAngle", func() {
	It("divides by the tooth count", func() {
		Expect(gear.RenderedAngle(1000, 10)).To(BeNumerically("~", 100, 1e-9))
	})

	It("stays strictly within one turn", func() {
		for _, teeth := range []int{1, -1, 3, -7, 8, -8, 40} {
			for _, acc := range []float64{0, 359, 360, 721.5, -1e6, 1e9, 123456.789} {
				a := gear.RenderedAngle(acc, teeth)
				Expect(a).To(BeNumerically(">", -360))
				Expect(a).To(BeNumerically("<", 360))
			}
		}
	})

	It("mirrors gears with opposite tooth signs", func() {
		for _, acc := range []float64{0, 17, 2900, -5000.25} {
			Expect(gear.RenderedAngle(acc, 8)).To(Equal(-gear.RenderedAngle(acc, -8)))
		}
	})
})
