package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/adalundhe/sketch/core/projection"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/viterin/vek"
)

// =============================================================================
// Project Command Flags
// =============================================================================

var (
	projectInput      string
	projectOutput     string
	projectConfig     string
	projectComponents string
	projectDensity    string
	projectEps        float64
	projectSeed       int64
	projectVerbose    bool
)

// =============================================================================
// Project Command
// =============================================================================

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a matrix of vectors into a lower-dimensional space",
	Long: `Project dense row vectors from a JSON file (an array of equal-length
float arrays) into a lower-dimensional space with sparse random projection.
Component count and density default to auto-resolution from the input shape.`,
	RunE: runProject,
}

func runProject(cmd *cobra.Command, args []string) error {
	logger := slog.Default().With(slog.String("run_id", uuid.NewString()))

	cfg := DefaultConfig()
	if projectConfig != "" {
		loaded, err := LoadConfig(projectConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	applyFlagOverrides(cmd, &cfg)

	projCfg, err := buildProjectorConfig(cfg, logger)
	if err != nil {
		return err
	}

	data, err := loadDenseJSON(projectInput)
	if err != nil {
		return err
	}
	rows, cols := data.Dims()
	logger.Info("loaded input",
		slog.String("path", projectInput),
		slog.Int("rows", rows),
		slog.Int("features", cols))

	projector := projection.NewSparseRandomProjector(projCfg)
	out, err := projector.FitTransform(data, projection.NewSource(cfg.Seed))
	if err != nil {
		return err
	}

	logger.Info("projected",
		slog.Int("components", projector.NComponents()),
		slog.Float64("density", projector.Density()),
		slog.Int64("seed", cfg.Seed))

	outDense := out.(*projection.Dense)
	if projectVerbose {
		logDistortion(logger, data, outDense)
	}
	return writeDenseJSON(projectOutput, outDense)
}

func applyFlagOverrides(cmd *cobra.Command, cfg *Config) {
	if cmd.Flags().Changed("components") {
		cfg.Components = projectComponents
	}
	if cmd.Flags().Changed("density") {
		cfg.Density = projectDensity
	}
	if cmd.Flags().Changed("eps") {
		cfg.Eps = projectEps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = projectSeed
	}
}

// buildProjectorConfig translates the string-typed CLI settings into the
// core's tagged options.
func buildProjectorConfig(cfg Config, logger *slog.Logger) (projection.Config, error) {
	out := projection.Config{Eps: cfg.Eps, Logger: logger}

	if cfg.Components != AutoSentinel {
		n, err := strconv.Atoi(cfg.Components)
		if err != nil {
			return out, fmt.Errorf("components must be %q or an integer, got %q", AutoSentinel, cfg.Components)
		}
		out.Components = projection.Int(n)
	}
	if cfg.Density != AutoSentinel {
		d, err := strconv.ParseFloat(cfg.Density, 64)
		if err != nil {
			return out, fmt.Errorf("density must be %q or a number, got %q", AutoSentinel, cfg.Density)
		}
		out.Density = projection.Float(d)
	}
	return out, nil
}

// logDistortion reports how well squared row norms survived the projection,
// a cheap proxy for the pairwise distance guarantee.
func logDistortion(logger *slog.Logger, in, out *projection.Dense) {
	rows, _ := in.Dims()
	var worst float64
	for i := 0; i < rows; i++ {
		orig := vek.Dot(in.Row(i), in.Row(i))
		proj := vek.Dot(out.Row(i), out.Row(i))
		if orig == 0 {
			continue
		}
		if ratio := math.Abs(proj/orig - 1); ratio > worst {
			worst = ratio
		}
	}
	logger.Info("squared norm distortion", slog.Float64("worst_row", worst))
}

// =============================================================================
// JSON IO
// =============================================================================

func loadDenseJSON(path string) (*projection.Dense, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	var rows [][]float64
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("input %s holds no data", path)
	}

	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("input row %d has %d values, want %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return projection.NewDense(len(rows), cols, flat)
}

func writeDenseJSON(path string, d *projection.Dense) error {
	rows, _ := d.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = d.Row(i)
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.Flags().StringVarP(&projectInput, "input", "i", "", "Input JSON file of row vectors")
	projectCmd.Flags().StringVarP(&projectOutput, "output", "o", "", "Output JSON file for projected rows")
	projectCmd.Flags().StringVar(&projectConfig, "config", "", "Optional yaml config file")
	projectCmd.Flags().StringVar(&projectComponents, "components", AutoSentinel, "Target dimensionality or 'auto'")
	projectCmd.Flags().StringVar(&projectDensity, "density", AutoSentinel, "Matrix density in (0, 1/3] or 'auto'")
	projectCmd.Flags().Float64VarP(&projectEps, "eps", "e", 0.1, "Distortion tolerance for the auto bound")
	projectCmd.Flags().Int64VarP(&projectSeed, "seed", "s", 0, "Random seed for reproducible projections")
	projectCmd.Flags().BoolVarP(&projectVerbose, "verbose", "v", false, "Log distortion diagnostics")
	_ = projectCmd.MarkFlagRequired("input")
	_ = projectCmd.MarkFlagRequired("output")
}
