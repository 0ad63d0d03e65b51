package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/browser"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/paths"
)

type Info struct {
	Verbose bool   `short:"v" desc:"Verbose logging"`
	Details string `short:"d" desc:"Intersection details file"`
	Input   string `index:"0" desc:"Input file"`
}

type Crossings struct {
	Verbose bool   `short:"v" desc:"Verbose logging"`
	Details string `short:"d" desc:"Intersection details file"`
	Input   string `index:"0" desc:"Input file"`
}

type Inclusion struct {
	Verbose   bool    `short:"v" desc:"Verbose logging"`
	Tolerance float64 `short:"t" default:"0" desc:"Fraction of points allowed outside a containing path"`
	Input     string  `index:"0" desc:"Input file"`
}

type Intersect struct {
	Verbose bool   `short:"v" desc:"Verbose logging"`
	Details string `short:"d" desc:"Intersection details file"`
	From    string `short:"f" desc:"Segment start as x,y,z"`
	To      string `short:"t" desc:"Segment end as x,y,z"`
	Input   string `index:"0" desc:"Input file"`
}

type Preview struct {
	Verbose   bool    `short:"v" desc:"Verbose logging"`
	Details   string  `short:"d" desc:"Intersection details file"`
	Tolerance float64 `short:"t" default:"0" desc:"Fraction of points allowed outside a containing path"`
	Output    string  `short:"o" default:"preview.svg" desc:"Output SVG file"`
	Open      bool    `desc:"Open the output in the browser"`
	Input     string  `index:"0" desc:"Input file"`
}

func main() {
	root := argp.NewCmd(&Info{}, "Path intersection and nesting toolkit")
	root.AddCmd(&Crossings{}, "crossings", "List edge crossings between paths")
	root.AddCmd(&Inclusion{}, "inclusion", "Compute nesting depth of closed paths")
	root.AddCmd(&Intersect{}, "intersect", "Find the closest intersection of a segment with the paths")
	root.AddCmd(&Preview{}, "preview", "Draw the paths and their crossings as SVG")
	root.Parse()
	root.PrintHelp()
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (cmd *Info) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	set, _, metas, err := loadPaths(cmd.Input, cmd.Details)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.Verbose)
	logger.Debug("loaded", "file", cmd.Input, "paths", set.Len())

	for i, p := range set.Paths {
		if !p.IsValid() {
			logger.Warn("path has fewer than 2 points", "path", i)
			continue
		}
		fmt.Printf("%3d: points=%d edges=%d closed=%t hole=%t\n", i, p.NumPoints, p.NumEdges, p.ClosedLoop, paths.IsHole(metas[i]))
		fmt.Printf("     length=%g bounds=%v\n", paths.PathLength(p.Positions, p.ClosedLoop), p.Bounds)
		if p.ClosedLoop {
			p.BuildProjection(p.Up)
			fmt.Printf("     convex=%t area=%g\n", p.ComputeConvexity(), p.Projection().Area())
		}
	}
	return nil
}

func (cmd *Crossings) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	set, details, _, err := loadPaths(cmd.Input, cmd.Details)
	if err != nil {
		return err
	}
	set.Logger = newLogger(cmd.Verbose)

	results, err := set.FindCrossings(context.Background(), &details, nil, nil)
	if err != nil {
		return err
	}
	for i, edges := range results {
		for _, crossings := range edges {
			if crossings == nil {
				continue
			}
			for _, c := range crossings.Crossings {
				fmt.Printf("path %d edge %d: crosses path %d edge %d at (%g %g %g) alpha=%.4f point=%t\n",
					i, crossings.Index, c.PathIOIndex(), c.EdgeStart(), c.Location.X, c.Location.Y, c.Location.Z, c.Alpha, c.IsPoint)
			}
		}
	}
	return nil
}

func (cmd *Inclusion) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	set, _, _, err := loadPaths(cmd.Input, "")
	if err != nil {
		return err
	}
	set.Logger = newLogger(cmd.Verbose)

	helper := set.Inclusion(cmd.Tolerance)
	for i, p := range set.Paths {
		if info, ok := helper.Find(p.Idx); ok {
			fmt.Printf("%3d: depth=%d children=%d odd=%t\n", i, info.Depth, info.Children, info.Odd)
		}
	}
	for _, pair := range helper.Ambiguous() {
		set.Logger.Warn("paths contain each other", "a", pair[0], "b", pair[1])
	}
	return nil
}

func (cmd *Intersect) Run() error {
	if cmd.Input == "" || cmd.From == "" || cmd.To == "" {
		return argp.ShowUsage
	}

	from, err := parseVector(cmd.From)
	if err != nil {
		return err
	}
	to, err := parseVector(cmd.To)
	if err != nil {
		return err
	}

	set, details, _, err := loadPaths(cmd.Input, cmd.Details)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.Verbose)
	for _, p := range set.Paths {
		p.BuildEdgeOctree()
	}

	seg := paths.NewSegment(from, to, details.Tolerance)
	hit, approach := set.FindClosestIntersectionWithApproach(&details.IntersectionDetails, seg)
	if !hit.Valid {
		fmt.Println("no intersection")
	} else {
		fmt.Printf("intersection: path %d edge %d at (%g %g %g) distance=%g\n", hit.Path, hit.Index, hit.Location.X, hit.Location.Y, hit.Location.Z, hit.Distance())
	}
	if approach.Valid {
		logger.Debug("closest approach", "path", approach.Path, "edge", approach.Index, "distance", approach.Distance())
	}
	return nil
}

func (cmd *Preview) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	set, details, metas, err := loadPaths(cmd.Input, cmd.Details)
	if err != nil {
		return err
	}
	set.Logger = newLogger(cmd.Verbose)

	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	if err := writePreview(context.Background(), f, set, &details, metas, cmd.Tolerance); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	set.Logger.Info("written", "file", cmd.Output)

	if cmd.Open {
		return browser.OpenFile(cmd.Output)
	}
	return nil
}
