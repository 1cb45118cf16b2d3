package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/observability"
)

func newResolveCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve [address1] <address2>",
		Short: "Geocode two addresses and print the distance between them",
		Long: `Geocode two addresses and print the straight-line distance between them.

With a single argument the distance is measured from the default base address
(` + domain.DefaultBaseAddress + `).

Output is human-readable on a terminal and JSON otherwise; --json forces JSON.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg, cmd.ErrOrStderr())
			a := newApp(cfg, logger, prometheus.NewRegistry())

			addressA, addressB := addressPair(args)
			res, err := a.resolver.ResolveDistance(cmd.Context(), addressA, addressB)
			if err != nil {
				return err
			}

			if asJSON || !isatty.IsTerminal(os.Stdout.Fd()) {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			writeHuman(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON even on a terminal")
	return cmd
}

// addressPair maps CLI arguments to origin and destination.
func addressPair(args []string) (string, string) {
	if len(args) == 1 {
		return domain.DefaultBaseAddress, args[0]
	}
	return args[0], args[1]
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeHuman(w io.Writer, res domain.DistanceResult) {
	fmt.Fprintf(w, "%s\t(%s)\n", res.AddressA, res.CoordA)
	fmt.Fprintf(w, "%s\t(%s)\n", res.AddressB, res.CoordB)
	fmt.Fprintf(w, "%.3f km (%.1f m) via %s\n", res.DistanceKm, res.DistanceM, res.Method)
}
