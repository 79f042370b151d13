package main

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

type report struct {
	Atoms         int               `yaml:"atoms"`
	DistinctKeys  int               `yaml:"distinct_keys"`
	ChangesBefore int               `yaml:"changes_before"`
	ChangesAfter  int               `yaml:"changes_after"`
	Tables        []tableReport     `yaml:"tables"`
	PerCategory   []categoryChanges `yaml:"changes_per_category"`
	Pipelines     pipelineReport    `yaml:"pipelines"`
}

type tableReport struct {
	Category string  `yaml:"category"`
	Entries  int     `yaml:"entries"`
	Refs     int64   `yaml:"refs"`
	Interns  uint64  `yaml:"interns"`
	HitRate  float64 `yaml:"hit_rate"`
}

type categoryChanges struct {
	Category string `yaml:"category"`
	Changes  int    `yaml:"changes"`
}

type pipelineReport struct {
	Built     uint64 `yaml:"built"`
	Binds     int    `yaml:"binds"`
	Cached    int    `yaml:"cached"`
	Destroyed int    `yaml:"destroyed"`
}

// saved returns the share of state changes sorting removed, in percent.
func (r *report) saved() float64 {
	if r.ChangesBefore == 0 {
		return 0
	}
	return 100 * float64(r.ChangesBefore-r.ChangesAfter) / float64(r.ChangesBefore)
}

func (r *report) write(w io.Writer, format string) error {
	switch format {
	case "text":
		return r.writeText(w)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func (r *report) writeText(w io.Writer) error {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "atoms:           %d\n", r.Atoms)
	p.Fprintf(w, "distinct keys:   %d\n", r.DistinctKeys)
	p.Fprintf(w, "changes before:  %d\n", r.ChangesBefore)
	p.Fprintf(w, "changes after:   %d\n", r.ChangesAfter)
	p.Fprintf(w, "saved:           %.1f%%\n", r.saved())

	p.Fprintf(w, "\n%-10s %8s %8s %10s %8s\n", "category", "entries", "refs", "interns", "hit rate")
	for _, t := range r.Tables {
		p.Fprintf(w, "%-10s %8d %8d %10d %7.1f%%\n", t.Category, t.Entries, t.Refs, t.Interns, 100*t.HitRate)
	}

	p.Fprintf(w, "\nchanges per category after sorting:\n")
	for _, c := range r.PerCategory {
		p.Fprintf(w, "  %-10s %d\n", c.Category, c.Changes)
	}

	_, err := p.Fprintf(w, "\npipelines:       %d built, %d bound, %d cached, %d destroyed\n",
		r.Pipelines.Built, r.Pipelines.Binds, r.Pipelines.Cached, r.Pipelines.Destroyed)
	return err
}
