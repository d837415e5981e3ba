package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/taigrr/softrender/pkg/render"
	"github.com/taigrr/softrender/pkg/scene"
	"github.com/taigrr/softrender/pkg/status"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// manifest lists the renders of a batch.
type manifest struct {
	Jobs []manifestJob `yaml:"jobs" toml:"jobs"`
}

// manifestJob is one render. Relative paths are resolved against the
// manifest's directory.
type manifestJob struct {
	Input  string            `yaml:"input" toml:"input"`
	Config string            `yaml:"config,omitempty" toml:"config,omitempty"`
	Output string            `yaml:"output" toml:"output"`
	Set    map[string]string `yaml:"set,omitempty" toml:"set,omitempty"`
}

func parseManifest(data []byte, format scene.Format) (manifest, error) {
	var m manifest
	var err error
	switch format {
	case scene.FormatTOML:
		err = toml.Unmarshal(data, &m)
	case scene.FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		return m, fmt.Errorf("manifest must be YAML or TOML: %w", status.ConfigWrongFormat)
	}
	if err != nil {
		return m, fmt.Errorf("decode manifest: %v: %w", err, status.ConfigWrongFormat)
	}
	for i, j := range m.Jobs {
		if j.Input == "" || j.Output == "" {
			return m, fmt.Errorf("job %d: input and output are required: %w", i+1, status.InvalidValue)
		}
	}
	return m, nil
}

func loadManifest(path string) (manifest, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return manifest{}, fmt.Errorf("expand %q: %w", path, status.InvalidValue)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return manifest{}, fmt.Errorf("open manifest: %v: %w", err, status.FileOpenFailed)
	}
	m, err := parseManifest(data, scene.FormatFromPath(expanded))
	if err != nil {
		return m, err
	}

	dir := filepath.Dir(expanded)
	resolve := func(p string) string {
		if p == "" {
			return ""
		}
		if p, err := homedir.Expand(p); err == nil && filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range m.Jobs {
		m.Jobs[i].Input = resolve(m.Jobs[i].Input)
		m.Jobs[i].Config = resolve(m.Jobs[i].Config)
		m.Jobs[i].Output = resolve(m.Jobs[i].Output)
	}
	return m, nil
}

// batchResult is one row of the summary.
type batchResult struct {
	job   manifestJob
	stats render.Stats
	err   error
}

func runBatch(ctx context.Context, m manifest, base sceneOptions, limit int, keepGoing bool) ([]batchResult, error) {
	results := make([]batchResult, len(m.Jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, mj := range m.Jobs {
		results[i].job = mj
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return err
			}
			res := &results[i]
			res.stats, res.err = renderJob(mj, base)
			if res.err != nil && !keepGoing {
				return fmt.Errorf("%s: %w", mj.Input, res.err)
			}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

func renderJob(mj manifestJob, base sceneOptions) (render.Stats, error) {
	opts := base
	if mj.Config != "" {
		opts.configPath = mj.Config
	}
	opts.sets = append([]string(nil), base.sets...)
	for k, v := range mj.Set {
		opts.sets = append(opts.sets, k+"="+v)
	}

	var stats render.Stats
	cfg, err := opts.config(nil)
	if err != nil {
		return stats, err
	}
	mesh, err := opts.model(mj.Input)
	if err != nil {
		return stats, err
	}
	if opts.meshColor {
		if c, ok := mesh.BaseColor(); ok {
			cfg.Material = c
		}
	}

	j := job{tris: render.TrianglesFromMesh(mesh), cfg: cfg}
	target, err := j.renderTo(render.Options{Stats: &stats})
	if err != nil {
		return stats, err
	}
	return stats, target.Save(mj.Output)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = cellStyle.Foreground(lipgloss.Color("#04B575"))
	errStyle    = cellStyle.Foreground(lipgloss.Color("#FF5F87"))
)

func summarize(results []batchResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		state := "ok"
		if r.err != nil {
			state = r.err.Error()
		}
		rows = append(rows, []string{
			filepath.Base(r.job.Input),
			filepath.Base(r.job.Output),
			fmt.Sprint(r.stats.Input),
			fmt.Sprint(r.stats.Clipped),
			fmt.Sprint(r.stats.Covered),
			r.stats.Duration.Round(time.Millisecond).String(),
			state,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("INPUT", "OUTPUT", "TRIS", "DRAWN", "SUBPIXELS", "TIME", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 6 && results[row].err != nil:
				return errStyle
			case col == 6:
				return okStyle
			}
			return cellStyle
		})
	return t.String()
}

func newBatchCmd() *cobra.Command {
	var (
		opts      sceneOptions
		jobs      int
		keepGoing bool
	)

	cmd := &cobra.Command{
		Use:   "batch <manifest>",
		Short: "Render every job in a YAML or TOML manifest",
		Long: `Render jobs concurrently. The manifest looks like:

  jobs:
    - input: teapot.raw
      config: teapot.ini
      output: teapot.png
      set:
        UseZBuffer: "1"

Flags apply to every job; a job's config and set entries take precedence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(args[0])
			if err != nil {
				return err
			}
			if len(m.Jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no jobs")
				return nil
			}

			results, err := runBatch(cmd.Context(), m, opts, jobs, keepGoing)
			fmt.Fprintln(cmd.OutOrStdout(), summarize(results))

			var failed []string
			for _, r := range results {
				if r.err != nil {
					failed = append(failed, filepath.Base(r.job.Input))
				}
			}
			if err == nil && len(failed) > 0 {
				err = fmt.Errorf("%d of %d jobs failed: %s", len(failed), len(results), strings.Join(failed, ", "))
			}
			return err
		},
	}
	opts.bind(cmd.Flags())
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "renders to run at once")
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "render remaining jobs after a failure")
	cmd.AddCommand(newBatchInitCmd())
	return cmd
}

func newBatchInitCmd() *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "init <model-dir> <manifest>",
		Short: "Write a manifest with one job per model in a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, out := args[0], args[1]
			m, err := scaffoldManifest(dir, filepath.Dir(out), ext)
			if err != nil {
				return err
			}
			data, err := writeManifest(m, scene.FormatFromPath(out))
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write manifest: %v: %w", err, status.FileOpenFailed)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d jobs\n", out, len(m.Jobs))
			return nil
		},
	}
	cmd.Flags().StringVar(&ext, "ext", ".png", "output image extension")
	return cmd
}

// scaffoldManifest lists the models in dir, with paths relative to base and
// outputs next to the inputs.
func scaffoldManifest(dir, base, ext string) (manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return manifest{}, fmt.Errorf("read %s: %v: %w", dir, err, status.FileOpenFailed)
	}
	if ext == "" {
		ext = ".png"
	}

	var m manifest
	for _, e := range entries {
		name := e.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".raw", ".txt", ".glb", ".gltf":
		default:
			continue
		}
		if e.IsDir() {
			continue
		}
		in := filepath.Join(dir, name)
		if rel, err := filepath.Rel(base, in); err == nil {
			in = rel
		}
		m.Jobs = append(m.Jobs, manifestJob{
			Input:  in,
			Output: strings.TrimSuffix(in, filepath.Ext(in)) + ext,
		})
	}
	return m, nil
}

// writeManifest encodes m as TOML or YAML.
func writeManifest(m manifest, format scene.Format) ([]byte, error) {
	switch format {
	case scene.FormatTOML:
		return toml.Marshal(m)
	case scene.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("manifest must be YAML or TOML: %w", status.ConfigWrongFormat)
}
