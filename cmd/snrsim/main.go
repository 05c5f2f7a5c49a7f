package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/snrlab/snrsim/internal/abundance"
	"github.com/snrlab/snrsim/internal/config"
	"github.com/snrlab/snrsim/internal/snr"
	"github.com/snrlab/snrsim/internal/storage"
	"github.com/snrlab/snrsim/internal/tui"
	"github.com/snrlab/snrsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	modelName  string
	age        float64
	energy     float64
	density    float64
	ejectaIdx  float64
	ambientIdx float64
	save       bool
	samples    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "snrsim",
		Short: "supernova remnant evolution explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg, dataDir)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".snrsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset scenario")

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "evaluate the model once and print the results",
		RunE:  runCompute,
	}
	computeCmd.Flags().StringVar(&modelName, "model", "", "model variant")
	computeCmd.Flags().Float64Var(&age, "age", 0, "remnant age (yr)")
	computeCmd.Flags().Float64Var(&energy, "energy", 0, "explosion energy (1e51 erg)")
	computeCmd.Flags().Float64Var(&density, "density", 0, "ISM number density (cm^-3)")
	computeCmd.Flags().Float64Var(&ejectaIdx, "n", -1, "ejecta power-law index")
	computeCmd.Flags().Float64Var(&ambientIdx, "s", -1, "ambient power-law index (0 or 2)")
	computeCmd.Flags().BoolVar(&save, "save", false, "save the session to the data directory")
	computeCmd.Flags().IntVar(&samples, "samples", 120, "curve sample count")

	plotCmd := &cobra.Command{
		Use:   "plot [radius|velocity]",
		Short: "plot the evolution curve",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&samples, "samples", 120, "curve sample count")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	abundancesCmd := &cobra.Command{
		Use:   "abundances [ism|ejecta]",
		Short: "print the committed abundance table",
		Args:  cobra.ExactArgs(1),
		RunE:  runAbundances,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sessions",
		RunE:  listSessions,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [session_id]",
		Short: "export a saved session's curve as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [session_id]",
		Short: "export a saved session as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	rootCmd.AddCommand(computeCmd, plotCmd, presetsCmd, abundancesCmd, listCmd, exportCSVCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("model") {
		cfg.Model = modelName
	}
	if cmd.Flags().Changed("age") {
		cfg.Physical.Age = age
	}
	if cmd.Flags().Changed("energy") {
		cfg.Physical.Energy = energy
	}
	if cmd.Flags().Changed("density") {
		cfg.Physical.Density = density
	}
	if cmd.Flags().Changed("n") {
		cfg.Physical.EjectaIndex = ejectaIdx
	}
	if cmd.Flags().Changed("s") {
		cfg.Physical.AmbientIndex = ambientIdx
	}
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyOverrides(cmd, cfg)

	in, err := cfg.Inputs()
	if err != nil {
		return err
	}
	in.MuISM = snr.MeanMass(abundance.PresetValues(cfg.Abundances.ISM))
	in.MuEjecta = snr.MeanMass(abundance.PresetValues(cfg.Abundances.Ejecta))

	model := snr.New()
	out, err := model.Recompute(in)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title(in))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "phase\t%s\n", out.Phase)
	fmt.Fprintf(w, "shock radius\t%.4g pc\n", out.ShockRadius)
	fmt.Fprintf(w, "shock velocity\t%.4g km/s\n", out.ShockVelocity)
	fmt.Fprintf(w, "shock temperature\t%.4g K\n", out.ShockTemp)
	fmt.Fprintf(w, "reverse shock radius\t%.4g pc\n", out.RevRadius)
	fmt.Fprintf(w, "reverse shock velocity\t%.4g km/s\n", out.RevVelocity)
	fmt.Fprintf(w, "t_ST\t%s\n", snr.FormatTime(out.Trans.ST))
	fmt.Fprintf(w, "t_PDS\t%s\n", snr.FormatTime(out.Trans.PDS))
	fmt.Fprintf(w, "t_MCS\t%s\n", snr.FormatTime(out.Trans.MCS))
	fmt.Fprintf(w, "merger\t%s\n", snr.FormatTime(out.Trans.Merge))
	if err := w.Flush(); err != nil {
		return err
	}

	if !save {
		return nil
	}

	times, radius, velocity := model.Curve(in, 10, in.Age*2, samples)
	curve := &storage.Curve{Times: times, Radius: radius, Velocity: velocity}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.SessionMetadata{
		Model:        cfg.Model,
		Age:          in.Age,
		AmbientIndex: in.AmbientIndex,
		EjectaIndex:  in.EjectaIndex,
		Phase:        out.Phase,
		ShockRadius:  out.ShockRadius,
		ShockVel:     out.ShockVelocity,
	}
	id, err := st.Save(meta, curve)
	if err != nil {
		return err
	}
	fmt.Printf("\nsession id: %s\n", id)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in, err := cfg.Inputs()
	if err != nil {
		return err
	}

	model := snr.New()
	out, err := model.Recompute(in)
	if err != nil {
		return err
	}

	kind := viz.Radius
	if len(args) > 0 && args[0] == "velocity" {
		kind = viz.Velocity
	}

	_, radius, velocity := model.Curve(in, cfg.Plot.Min, cfg.Plot.Max, samples)
	data := radius
	if kind == viz.Velocity {
		data = velocity
	}

	fmt.Println(viz.Title(in))
	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(kind.Label()),
	)
	fmt.Println(graph)
	fmt.Println()
	fmt.Println(viz.TransitionsLine(out.Trans))
	return nil
}

func runAbundances(cmd *cobra.Command, args []string) error {
	var kind abundance.Kind
	switch args[0] {
	case "ism":
		kind = abundance.ISM
	case "ejecta":
		kind = abundance.Ejecta
	default:
		return fmt.Errorf("unknown table %q (want ism or ejecta)", args[0])
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name := cfg.Abundances.ISM
	if kind == abundance.Ejecta {
		name = cfg.Abundances.Ejecta
	}

	table := abundance.NewTable(kind, name)
	fmt.Printf("%s abundances (%s), log(X/H)+12\n\n", kind, table.Mode())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, el := range abundance.ElementOrder {
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", el, abundance.ElementNames[el], table.Values[el])
	}
	return w.Flush()
}

func listSessions(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	sessions, err := st.List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no saved sessions")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tAGE\tPHASE\tRADIUS")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%.4g yr\t%s\t%.4g pc\n",
			s.ID, s.Model, s.Age, s.Phase, s.ShockRadius)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	curve, err := st.LoadCurve(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, curve)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	curve, err := st.LoadCurve(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, *meta, curve)
}
