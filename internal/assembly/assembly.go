package assembly

import (
	"errors"
	"log/slog"

	"github.com/san-kum/gearsim/internal/gear"
	"github.com/san-kum/gearsim/internal/motion"
	"github.com/san-kum/gearsim/internal/scene"
)

// Mounted is a gear that made it into the set, with the element it drives.
type Mounted struct {
	ID      string
	Handle  gear.Handle
	Teeth   int
	Element *scene.Element
}

type Options struct {
	Params motion.Params
	Prefix string
	Teeth  []int
	Logger *slog.Logger
}

type Assembly struct {
	Scene  *scene.Scene
	Set    *gear.Set
	Engine *motion.Engine
	Gears  []Mounted

	logger *slog.Logger
}

// Build resolves the scene's gears and registers them. A missing element or a
// gear that fails registration is logged and skipped; only invalid motion
// parameters fail the build.
func Build(sc *scene.Scene, opts Options) (*Assembly, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if sc == nil {
		sc = scene.New("empty")
	}

	bindings, err := sc.Resolve(opts.Prefix, opts.Teeth)
	if err != nil {
		if !errors.Is(err, scene.ErrElementNotFound) {
			return nil, err
		}
		logger.Warn("gear discovery stopped", "err", err, "resolved", len(bindings))
	}

	set := gear.NewSet()
	mounted := make([]Mounted, 0, len(bindings))
	for _, b := range bindings {
		h, err := set.Register(b.Element, b.Teeth)
		if err != nil {
			var regErr *gear.RegistrationError
			if errors.As(err, &regErr) {
				regErr.ID = b.Element.ID
			}
			logger.Warn("skipping gear", "id", b.Element.ID, "err", err)
			continue
		}
		mounted = append(mounted, Mounted{ID: b.Element.ID, Handle: h, Teeth: b.Teeth, Element: b.Element})
	}

	eng, err := motion.New(set, opts.Params)
	if err != nil {
		return nil, err
	}

	logger.Debug("assembly built", "scene", sc.Name, "gears", len(mounted))

	return &Assembly{
		Scene:  sc,
		Set:    set,
		Engine: eng,
		Gears:  mounted,
		logger: logger,
	}, nil
}

func (a *Assembly) Lookup(id string) (Mounted, bool) {
	for _, m := range a.Gears {
		if m.ID == id {
			return m, true
		}
	}
	return Mounted{}, false
}

func (a *Assembly) Tick(ms float64) { a.Engine.OnClockTick(ms) }

func (a *Assembly) Pointer(p gear.Point, ms float64) { a.Engine.OnPointerSample(p, ms) }

// Frame is the observable state after a clock tick.
type Frame struct {
	Time    float64
	Speed   float64
	Angle   float64
	Hovered gear.Handle
	Angles  []float64
}

func (a *Assembly) Frame(ms float64) Frame {
	snap := a.Engine.Snapshot()
	angles := make([]float64, len(a.Gears))
	for i, m := range a.Gears {
		angles[i] = m.Element.Rotation()
	}
	return Frame{
		Time:    ms,
		Speed:   snap.Speed,
		Angle:   snap.Angle,
		Hovered: snap.Hovered,
		Angles:  angles,
	}
}

// HoveredID returns the id of the gear under the pointer, if any.
func (a *Assembly) HoveredID() string {
	h := a.Engine.Hovered()
	for _, m := range a.Gears {
		if m.Handle == h {
			return m.ID
		}
	}
	return ""
}
