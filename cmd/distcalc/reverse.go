package main

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/observability"
)

func newReverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <lat> <lon>",
		Short: "Print the national service's address lookup for a coordinate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := parseCoordinateArgs(args[0], args[1])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg, cmd.ErrOrStderr())
			a := newApp(cfg, logger, prometheus.NewRegistry())

			raw, err := a.gsiClient.ReverseGeocode(cmd.Context(), coord)
			if err != nil {
				return fmt.Errorf("reverse geocode %s: %w", coord, err)
			}
			return writeJSON(cmd.OutOrStdout(), raw)
		},
	}
}

func parseCoordinateArgs(latStr, lonStr string) (domain.Coordinate, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("parse latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("parse longitude %q: %w", lonStr, err)
	}
	coord := domain.Coordinate{Lat: lat, Lon: lon}
	if err := coord.Validate(); err != nil {
		return domain.Coordinate{}, err
	}
	return coord, nil
}
