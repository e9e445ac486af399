// Command burl evaluates a solid-modeling script and exports the
// resulting scenes as STL or OBJ meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chazu/burl/pkg/config"
	"github.com/chazu/burl/pkg/csg"
	"github.com/chazu/burl/pkg/engine"
	"github.com/chazu/burl/pkg/graph"
	"github.com/chazu/burl/pkg/kernel"
	"github.com/chazu/burl/pkg/kernel/bsp"
	"github.com/chazu/burl/pkg/kernel/sdfx"
	"github.com/chazu/burl/pkg/logger"
	"github.com/chazu/burl/pkg/mesh"
	"github.com/chazu/burl/pkg/tessellate"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	backend := flag.String("backend", "", "geometry backend: bsp or sdfx (overrides config)")
	outDir := flag.String("out", "", "output directory (overrides config)")
	format := flag.String("format", "", "output format: stl or obj (overrides config)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error (overrides config)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: burl [flags] <script>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *configPath, *backend, *outDir, *format, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "burl: %v\n", err)
		os.Exit(1)
	}
}

func run(scriptPath, configPath, backend, outDir, format, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Kernel.Backend = backend
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	csg.Epsilon = cfg.Geometry.Epsilon

	logger.Sugar.Infow("evaluating script", "path", scriptPath)
	g, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return fmt.Errorf("evaluating %s: %w", scriptPath, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", scriptPath, e.Error())
		}
		return fmt.Errorf("%d evaluation error(s)", len(evalErrs))
	}

	findings := graph.Validate(g)
	for _, f := range findings {
		switch f.Severity {
		case graph.SeverityError:
			logger.Sugar.Errorw("design error", "node", f.NodeID.Short(), "msg", f.Message)
		default:
			logger.Sugar.Warnw("design warning", "node", f.NodeID.Short(), "msg", f.Message)
		}
	}
	if graph.HasErrors(findings) {
		return fmt.Errorf("design graph failed validation")
	}
	if len(g.Roots) == 0 {
		return fmt.Errorf("script defines no scene; nothing to export")
	}

	k, err := pickKernel(cfg)
	if err != nil {
		return err
	}

	logger.Sugar.Infow("tessellating",
		"backend", cfg.Kernel.Backend,
		"nodes", g.NodeCount(),
		"scenes", len(g.Roots))
	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		return fmt.Errorf("tessellating: %w", err)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	for _, m := range meshes {
		if err := exportMesh(m, cfg.Output.Dir, cfg.Output.Format); err != nil {
			return err
		}
	}
	logger.Sugar.Infow("done", "meshes", len(meshes), "dir", cfg.Output.Dir)
	return nil
}

func pickKernel(cfg *config.Config) (kernel.Kernel, error) {
	switch cfg.Kernel.Backend {
	case "bsp":
		return bsp.New(), nil
	case "sdfx":
		return sdfx.NewWithCells(cfg.Kernel.MeshCells), nil
	default:
		return nil, fmt.Errorf("unknown kernel backend %q", cfg.Kernel.Backend)
	}
}

func exportMesh(m *mesh.Mesh, dir, format string) error {
	path := filepath.Join(dir, m.Name+"."+format)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "stl":
		err = mesh.WriteSTL(f, m)
	case "obj":
		err = mesh.WriteOBJ(f, m)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Sugar.Infow("wrote mesh",
		"path", path,
		"triangles", m.TriangleCount(),
		"vertices", m.VertexCount())
	return nil
}
