package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/tdewolff/paths"
	"gopkg.in/yaml.v3"
)

// pathFile is the YAML (or JSON) input of all commands.
type pathFile struct {
	Details paths.EdgeIntersectionDetails `yaml:"details"`
	Paths   []pathEntry                   `yaml:"paths"`
}

type pathEntry struct {
	Closed bool         `yaml:"closed"`
	Hole   bool         `yaml:"hole"`
	Points [][3]float64 `yaml:"points"`
}

// loadPaths reads the input file and builds its paths with the tolerance of the details as edge expansion. A separate details file overrides the details of the input.
func loadPaths(filename, detailsFilename string) (*paths.PathSet, paths.EdgeIntersectionDetails, []paths.Metadata, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, paths.EdgeIntersectionDetails{}, nil, err
	}
	defer f.Close()

	in := pathFile{
		Details: paths.DefaultEdgeIntersectionDetails(),
	}
	if err := yaml.NewDecoder(f).Decode(&in); err != nil {
		return nil, in.Details, nil, fmt.Errorf("%s: %w", filename, err)
	}

	details := in.Details
	if detailsFilename != "" {
		fd, err := os.Open(detailsFilename)
		if err != nil {
			return nil, details, nil, err
		}
		defer fd.Close()

		if details, err = paths.LoadEdgeIntersectionDetails(fd); err != nil {
			return nil, details, nil, fmt.Errorf("%s: %w", detailsFilename, err)
		}
	} else if err := details.Validate(); err != nil {
		return nil, details, nil, fmt.Errorf("%s: %w", filename, err)
	}
	details.Init()

	ps := make([]*paths.Path, 0, len(in.Paths))
	metas := make([]paths.Metadata, 0, len(in.Paths))
	for _, entry := range in.Paths {
		meta := paths.Metadata{}
		paths.SetClosedLoop(meta, entry.Closed)
		paths.SetIsHole(meta, entry.Hole)

		locs := make(paths.Locations, len(entry.Points))
		for i, pt := range entry.Points {
			locs[i] = r3.Vector{X: pt[0], Y: pt[1], Z: pt[2]}
		}
		ps = append(ps, paths.MakePath(locs, meta, details.Tolerance*2.0))
		metas = append(metas, meta)
	}
	return paths.NewPathSet(ps...), details, metas, nil
}

// parseVector parses a position written as "x,y,z".
func parseVector(s string) (r3.Vector, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return r3.Vector{}, fmt.Errorf("bad position %q: expected x,y,z", s)
	}
	v := [3]float64{}
	for i, field := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return r3.Vector{}, fmt.Errorf("bad position %q: %w", s, err)
		}
		v[i] = f
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}
