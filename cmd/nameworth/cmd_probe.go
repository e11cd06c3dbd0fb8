package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nameworth/nameworth/internal/config"
	"github.com/nameworth/nameworth/internal/probe"
)

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <name>",
		Short: "Check which extensions of a name are still registrable",
		Long:  "Probe registry frontends sequentially for each configured extension. Paced deliberately; expect about a second per extension.",
		Args:  cobra.ExactArgs(1),
		RunE:  runProbe,
	}
}

func runProbe(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	p := probe.New(probe.Config{
		BaseURL:    cfg.Probe.BaseURL,
		Extensions: cfg.Probe.Extensions,
		Delay:      time.Duration(cfg.Probe.DelayMS) * time.Millisecond,
	})

	results, err := p.Probe(context.Background(), args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tSTATUS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\n", r.Domain, r.Status)
	}
	return w.Flush()
}
