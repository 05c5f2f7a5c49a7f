package rules_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/snrlab/snrsim/internal/notify"
	"github.com/snrlab/snrsim/internal/params"
	"github.com/snrlab/snrsim/internal/rules"
	"github.com/snrlab/snrsim/internal/snr"
)

type fakeWidget struct {
	visible, enabled bool
	value            float64
}

func (w *fakeWidget) SetVisible(v bool)  { w.visible = v }
func (w *fakeWidget) SetEnabled(v bool)  { w.enabled = v }
func (w *fakeWidget) SetValue(v float64) { w.value = v }

type fakeTimes struct {
	core, pds float64
}

func (f *fakeTimes) CoolingTime() float64        { return f.core }
func (f *fakeTimes) PressureDrivenTime() float64 { return f.pds }

func newRegistry() *params.Registry {
	reg := params.New()
	reg.Add(params.Param{ID: "n", Default: 0, Enabled: true, Visible: true})
	reg.Add(params.Param{ID: "s", Default: 0, Enabled: false, Visible: true})
	reg.Add(params.Param{ID: "m_w", Default: 1e-7, Valid: params.GreaterThanZero, Enabled: true, Visible: true})
	reg.Add(params.Param{ID: "v_w", Default: 30, Valid: params.GreaterThanZero, Enabled: true, Visible: true})
	reg.Add(params.Param{ID: "t_lk", Default: 5000, Valid: params.GreaterThanZero, Enabled: true, Visible: false})
	reg.Add(params.Param{ID: "gamma_0", Default: 1.667, Enabled: true, Visible: false})
	reg.Add(params.Param{ID: "eps", Default: 0.7, Enabled: true, Visible: false})
	reg.Add(params.Param{ID: "t_tw", Default: 4e5, Valid: params.GreaterThanZero, Enabled: true, Visible: false})
	reg.Add(params.Param{ID: "c_tau", Default: 2, Enabled: true, Visible: false})
	return reg
}

var _ = Describe("Engine", func() {
	var (
		reg        *params.Registry
		times      *fakeTimes
		engine     *rules.Engine
		recomputes int
	)

	BeforeEach(func() {
		reg = newRegistry()
		times = &fakeTimes{core: 5e4, pds: 9e3}
		recomputes = 0
		trigger := notify.New(func() { recomputes++ })
		engine = rules.NewEngine(reg, times, trigger)
		engine.Init(rules.AmbientUniform, snr.Standard)
		recomputes = 0
	})

	Describe("ambient-index transitions", func() {
		It("hides wind parameters on the uniform ISM", func() {
			Expect(reg.Param("m_w").Visible).To(BeFalse())
			Expect(reg.Param("v_w").Visible).To(BeFalse())
		})

		It("restores wind parameters on the wind profile", func() {
			engine.SetAmbient(rules.AmbientWind, true)
			Expect(reg.Param("m_w").Visible).To(BeTrue())
			Expect(reg.Param("v_w").Visible).To(BeTrue())
			Expect(recomputes).To(Equal(1))
		})

		It("expands and contracts the variant set", func() {
			Expect(engine.Allowed(snr.FractionalLoss)).To(BeTrue())
			Expect(engine.Allowed(snr.CloudyISM)).To(BeTrue())

			engine.SetAmbient(rules.AmbientWind, true)
			Expect(engine.Allowed(snr.FractionalLoss)).To(BeFalse())
			Expect(engine.Allowed(snr.CloudyISM)).To(BeFalse())
			Expect(engine.Allowed(snr.HotLowDensity)).To(BeFalse())
			Expect(engine.Allowed(snr.Standard)).To(BeTrue())
		})

		It("gates the hot low-density variant on the transition times", func() {
			Expect(engine.Allowed(snr.HotLowDensity)).To(BeTrue())

			times.core = 1e6 // 0.1*t_c now exceeds t_PDS
			engine.SetAmbient(rules.AmbientUniform, true)
			Expect(engine.Allowed(snr.HotLowDensity)).To(BeFalse())
		})

		It("forces an out-of-domain ejecta index to the domain minimum", func() {
			Expect(engine.SetEjectaIndex(4, true)).To(BeTrue())

			engine.SetAmbient(rules.AmbientWind, true)
			Expect(reg.Get("n")).To(Equal(0.0))
		})

		It("keeps an in-domain ejecta index across the round trip", func() {
			Expect(engine.SetEjectaIndex(7, true)).To(BeTrue())

			engine.SetAmbient(rules.AmbientWind, true)
			Expect(reg.Get("n")).To(Equal(7.0))
			engine.SetAmbient(rules.AmbientUniform, true)
			Expect(reg.Get("n")).To(Equal(7.0))
		})

		It("does not reverse the forced fallback on the round trip", func() {
			engine.SetEjectaIndex(4, true)

			engine.SetAmbient(rules.AmbientWind, true)
			engine.SetAmbient(rules.AmbientUniform, true)
			Expect(reg.Get("n")).To(Equal(0.0), "fallback is not reversible")
		})

		It("resets the ejecta index before requesting a recompute", func() {
			var nAtRecompute float64
			trigger := notify.New(func() { nAtRecompute = reg.Get("n") })
			engine = rules.NewEngine(reg, times, trigger)
			engine.Init(rules.AmbientUniform, snr.Standard)
			engine.SetEjectaIndex(4, false)

			engine.SetAmbient(rules.AmbientWind, true)
			Expect(nAtRecompute).To(Equal(0.0), "recompute must not see the invalid combination")
		})

		It("is idempotent", func() {
			engine.SetAmbient(rules.AmbientWind, true)
			visible := reg.Param("m_w").Visible
			n := reg.Get("n")

			engine.SetAmbient(rules.AmbientWind, true)
			Expect(reg.Param("m_w").Visible).To(Equal(visible))
			Expect(reg.Get("n")).To(Equal(n))
		})

		It("suppresses recomputation when asked", func() {
			engine.SetAmbient(rules.AmbientWind, false)
			Expect(recomputes).To(BeZero())
		})
	})

	Describe("model-variant transitions", func() {
		It("shows exactly one variant group at a time", func() {
			engine.SetVariant(snr.FractionalLoss, true)
			Expect(reg.Param("t_lk").Visible).To(BeTrue())
			Expect(reg.Param("gamma_0").Visible).To(BeTrue())
			Expect(reg.Param("eps").Visible).To(BeTrue())
			Expect(reg.Param("t_tw").Visible).To(BeFalse())
			Expect(reg.Param("c_tau").Visible).To(BeFalse())

			engine.SetVariant(snr.CloudyISM, true)
			Expect(reg.Param("c_tau").Visible).To(BeTrue())
			Expect(reg.Param("t_lk").Visible).To(BeFalse())
			Expect(reg.Param("gamma_0").Visible).To(BeFalse())
			Expect(reg.Param("eps").Visible).To(BeFalse())
		})

		It("keeps the ambient index editable only under the standard model", func() {
			Expect(reg.Param("s").Enabled).To(BeTrue())

			engine.SetVariant(snr.FractionalLoss, true)
			Expect(reg.Param("s").Enabled).To(BeFalse())

			engine.SetVariant(snr.Standard, true)
			Expect(reg.Param("s").Enabled).To(BeTrue())
		})

		It("reads N/A while the hot low-density end time is hidden", func() {
			engine.SetVariant(snr.HotLowDensity, true)
			reg.Set("t_tw", 6e5)

			engine.SetVariant(snr.Standard, true)
			Expect(reg.Get("t_tw")).To(Satisfy(isNaN))
			Expect(reg.Param("t_tw").Enabled).To(BeFalse())
		})

		It("reverts the end time on reveal instead of defaulting", func() {
			engine.SetVariant(snr.HotLowDensity, true)
			Expect(reg.Set("t_tw", 6e5)).To(BeTrue())

			engine.SetVariant(snr.Standard, true)
			engine.SetVariant(snr.HotLowDensity, true)
			Expect(reg.Get("t_tw")).To(Equal(6e5))
		})

		It("keeps other variant values across hide and reveal", func() {
			engine.SetVariant(snr.FractionalLoss, true)
			Expect(reg.Set("eps", 0.4)).To(BeTrue())

			engine.SetVariant(snr.Standard, true)
			engine.SetVariant(snr.FractionalLoss, true)
			Expect(reg.Get("eps")).To(Equal(0.4))
		})

		It("ignores a variant outside the allowed set", func() {
			engine.SetAmbient(rules.AmbientWind, true)
			recomputes = 0

			engine.SetVariant(snr.CloudyISM, true)
			Expect(engine.Variant()).To(Equal(snr.Standard))
			Expect(recomputes).To(BeZero())
		})

		It("requests one recompute per transition", func() {
			engine.SetVariant(snr.CloudyISM, true)
			Expect(recomputes).To(Equal(1))
		})
	})

	Describe("widget propagation", func() {
		It("drives bound widgets through the capability interface", func() {
			w := &fakeWidget{visible: true, enabled: true}
			engine.Bind("m_w", w)

			engine.SetAmbient(rules.AmbientWind, true)
			Expect(w.visible).To(BeTrue())

			engine.SetAmbient(rules.AmbientUniform, true)
			Expect(w.visible).To(BeFalse())
		})

		It("pushes forced values to the widget", func() {
			w := &fakeWidget{visible: true, enabled: true}
			engine.Bind("n", w)
			engine.SetEjectaIndex(4, true)

			engine.SetAmbient(rules.AmbientWind, true)
			Expect(w.value).To(Equal(0.0))
		})
	})
})

func isNaN(v float64) bool { return v != v }
