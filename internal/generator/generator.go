// Package generator runs the router-file to sitemap pipeline: read the router
// file, extract route tokens, render one document per hostname and write it.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rajlabs/route-sitemap/config"
	"github.com/rajlabs/route-sitemap/internal/extractor"
	"github.com/rajlabs/route-sitemap/internal/models"
	"github.com/rajlabs/route-sitemap/internal/sitemap"
	"github.com/rajlabs/route-sitemap/internal/storage"
	"github.com/rajlabs/route-sitemap/internal/utils"
)

// ErrRouterFileNotFound is returned when the router file does not exist.
var ErrRouterFileNotFound = errors.New("router file does not exist")

// Options configures a Generator.
type Options struct {
	RouterFile string
	// OutputFile is the path for the first hostname. Later hostnames are
	// numbered siblings, see OutputPath.
	OutputFile string
	Hostnames  []string
	MaxDepth   int
}

// OptionsFromConfig takes the generator settings from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RouterFile: cfg.Generator.RouterFile,
		OutputFile: cfg.Generator.OutputFile,
		Hostnames:  cfg.Hostnames(),
		MaxDepth:   cfg.Generator.MaxDepth,
	}
}

// Document is one rendered sitemap and where it belongs on disk.
type Document struct {
	Hostname string
	Path     string
	Content  []byte
	URLCount int
}

// Name is the file name the document is written or served under.
func (d Document) Name() string {
	return filepath.Base(d.Path)
}

// Result is what one Build or Run produced.
type Result struct {
	Routes    []string
	Documents []Document
	// Written holds the absolute paths of the files written by Run.
	Written []string
}

// Generator turns a router file into sitemap documents.
type Generator struct {
	opts   Options
	store  storage.Store
	logger *utils.RunLogger
}

// New creates a generator. store may be nil, in which case runs are not
// recorded.
func New(opts Options, store storage.Store, logger *utils.RunLogger) *Generator {
	if logger == nil {
		logger = utils.Discard()
	}
	return &Generator{
		opts:   opts,
		store:  store,
		logger: logger,
	}
}

// OutputPath returns the output file for the hostname at index. Index 0 uses
// base itself; index i uses <stem><i><ext> in the same directory.
func OutputPath(base string, index int) string {
	if index == 0 {
		return base
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(filepath.Base(base), ext)
	return filepath.Join(filepath.Dir(base), stem+strconv.Itoa(index)+ext)
}

// Build reads the router file and renders every document in memory. A result
// with no routes has no documents.
func (g *Generator) Build() (*Result, error) {
	if _, err := os.Stat(g.opts.RouterFile); err != nil {
		if os.IsNotExist(err) {
			g.logger.LogError("The file %s does not exist.", g.opts.RouterFile)
			return nil, fmt.Errorf("%w: %s", ErrRouterFileNotFound, g.opts.RouterFile)
		}
		return nil, fmt.Errorf("failed to stat router file: %w", err)
	}

	g.logger.LogInfo("Reading routes from %s...", g.opts.RouterFile)
	content, err := os.ReadFile(g.opts.RouterFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read router file: %w", err)
	}

	g.logger.LogInfo("Extracting routes from file...")
	routes := extractor.New(g.opts.MaxDepth).Extract(string(content))

	result := &Result{Routes: routes}
	if len(routes) == 0 {
		g.logger.LogInfo("No routes found in the file.")
		return result, nil
	}

	g.logger.LogInfo("Total routes found: %d", len(routes))
	g.logger.LogDebug("Extracted routes:")
	for _, route := range routes {
		g.logger.LogDebug("  - %s", route)
	}

	for i, hostname := range g.opts.Hostnames {
		g.logger.LogInfo("Generating sitemap for domain %s...", hostname)

		sm := sitemap.Build(hostname, routes)
		data, err := sitemap.Marshal(sm)
		if err != nil {
			return nil, err
		}

		result.Documents = append(result.Documents, Document{
			Hostname: hostname,
			Path:     OutputPath(g.opts.OutputFile, i),
			Content:  data,
			URLCount: len(sm.URLs),
		})
	}

	return result, nil
}

// Run builds the documents, writes each to its output path and records the
// run in the store when one is configured.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	result, err := g.Build()
	if err != nil {
		return nil, err
	}

	for _, doc := range result.Documents {
		path, err := g.write(doc)
		if err != nil {
			return nil, err
		}
		result.Written = append(result.Written, path)
	}

	if g.store != nil {
		for _, doc := range result.Documents {
			g.record(ctx, doc, result.Routes)
		}
	}

	return result, nil
}

func (g *Generator) write(doc Document) (string, error) {
	dir := filepath.Dir(doc.Path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		g.logger.LogInfo("Creating directory %s...", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	g.logger.LogInfo("Writing sitemap to %s...", doc.Path)
	if err := os.WriteFile(doc.Path, doc.Content, 0644); err != nil {
		return "", fmt.Errorf("failed to write sitemap: %w", err)
	}

	abs, err := filepath.Abs(doc.Path)
	if err != nil {
		abs = doc.Path
	}
	g.logger.LogInfo("Sitemap generation completed. The file has been saved to: %s", abs)

	return abs, nil
}

func (g *Generator) record(ctx context.Context, doc Document, routes []string) {
	run := models.NewRun()
	run.RouterFile = g.opts.RouterFile
	run.Hostname = doc.Hostname
	run.OutputPath = doc.Path
	run.URLCount = doc.URLCount
	run.Routes = routes

	if err := g.store.CreateRun(ctx, run); err != nil {
		g.logger.LogError("Failed to record run for %s: %v", doc.Hostname, err)
		return
	}
	g.logger.LogDebug("Recorded run %s for %s", run.ID, doc.Hostname)
}
