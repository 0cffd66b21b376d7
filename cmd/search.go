package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/lead-mapper/leadmapper-cli/internal/export"
	"github.com/lead-mapper/leadmapper-cli/internal/model"
	"github.com/lead-mapper/leadmapper-cli/internal/search"
	"github.com/lead-mapper/leadmapper-cli/internal/table"
	"github.com/lead-mapper/leadmapper-cli/pkg/geoloc"
	"github.com/lead-mapper/leadmapper-cli/pkg/places"
)

var searchFlags struct {
	query    string
	location string
	radius   int
	locate   bool
	demo     bool

	sortField string
	desc      bool
	potential string
	website   string
	email     string
	phone     string
	minRating float64

	format string
	out    string
}

var sortFields = map[string]table.SortField{
	"businessName":      table.SortBusinessName,
	"address":           table.SortAddress,
	"category":          table.SortCategory,
	"phone":             table.SortPhone,
	"website":           table.SortWebsite,
	"email":             table.SortEmail,
	"notes":             table.SortNotes,
	"rating":            table.SortRating,
	"hasWebsite":        table.SortHasWebsite,
	"dateAdded":         table.SortDateAdded,
	"potentialScore":    table.SortPotentialScore,
	"potentialCategory": table.SortPotentialCategory,
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for businesses and export the scored lead list",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		location := searchFlags.location
		if searchFlags.locate {
			fix, err := geoloc.New(geoloc.WithEndpoint(cfg.Geo.Endpoint)).Locate(ctx)
			if err != nil {
				return eris.Wrap(err, "resolve current location")
			}
			location = fmt.Sprintf("%g,%g", fix.Latitude, fix.Longitude)
			zap.L().Info("resolved current location", zap.String("location", location))
		}

		var client places.Client
		if searchFlags.demo {
			client = places.NewDemo(time.Now().UnixNano())
		} else {
			if cfg.Google.APIKey == "" {
				return eris.New("google.api_key is required (set LEADMAPPER_GOOGLE_API_KEY or use --demo)")
			}
			opts := []places.Option{places.WithRateLimit(cfg.Google.RateLimit)}
			if cfg.Google.ProxyURL != "" {
				opts = append(opts, places.WithProxyURL(cfg.Google.ProxyURL))
			}
			client = places.NewClient(cfg.Google.APIKey, opts...)
		}

		orch := search.New(client, search.WithDetailConcurrency(cfg.Search.DetailConcurrency))
		leads, err := orch.Search(ctx, model.SearchParams{
			Query:    searchFlags.query,
			Location: location,
			RadiusKm: searchFlags.radius,
		})
		if err != nil {
			return err
		}

		policy, err := table.ParseEditPolicy(cfg.Table.EditPolicy)
		if err != nil {
			return err
		}
		ctrl := table.New(
			table.WithEditPolicy(policy),
			table.WithLocale(language.Make(cfg.Table.Locale)),
		)
		ctrl.SetLeads(leads)

		filters, err := filtersFromFlags()
		if err != nil {
			return err
		}
		ctrl.SetFilters(filters)

		if searchFlags.sortField != "" {
			field, ok := sortFields[searchFlags.sortField]
			if !ok {
				return eris.Errorf("unknown sort field %q", searchFlags.sortField)
			}
			dir := table.Asc
			if searchFlags.desc {
				dir = table.Desc
			}
			ctrl.SetSort(field, dir)
		}

		view := ctrl.View()

		byPotential := map[model.PotentialCategory]int{}
		for _, l := range view {
			byPotential[l.PotentialCategory]++
		}
		zap.L().Info("lead list assembled",
			zap.Int("total", len(leads)),
			zap.Int("shown", len(view)),
			zap.Int("high", byPotential[model.PotentialHigh]),
			zap.Int("medium", byPotential[model.PotentialMedium]),
			zap.Int("low", byPotential[model.PotentialLow]),
		)

		return writeExport(view)
	},
}

// filtersFromFlags maps the tri-state and numeric filter flags onto table
// filters. An empty flag imposes no constraint.
func filtersFromFlags() (table.Filters, error) {
	var f table.Filters

	if searchFlags.potential != "" {
		switch c := model.PotentialCategory(searchFlags.potential); c {
		case model.PotentialLow, model.PotentialMedium, model.PotentialHigh:
			f.PotentialCategory = c
		default:
			return f, eris.Errorf("unknown potential category %q", searchFlags.potential)
		}
	}

	for _, tri := range []struct {
		raw  string
		name string
		dst  **bool
	}{
		{searchFlags.website, "has-website", &f.HasWebsite},
		{searchFlags.email, "has-email", &f.HasEmail},
		{searchFlags.phone, "has-phone", &f.HasPhone},
	} {
		if tri.raw == "" {
			continue
		}
		b, err := strconv.ParseBool(tri.raw)
		if err != nil {
			return f, eris.Errorf("--%s must be true or false", tri.name)
		}
		v := b
		*tri.dst = &v
	}

	if searchFlags.minRating >= 0 {
		v := searchFlags.minRating
		f.MinRating = &v
	}
	return f, nil
}

func writeExport(leads []model.Lead) error {
	switch searchFlags.format {
	case "csv":
		data, err := export.MarshalCSV(leads)
		if err != nil {
			return err
		}
		return writeOut(data)
	case "xlsx":
		if searchFlags.out == "" {
			return eris.New("--out is required for xlsx export")
		}
		f, err := os.Create(searchFlags.out)
		if err != nil {
			return eris.Wrap(err, "create xlsx file")
		}
		defer f.Close() //nolint:errcheck
		return export.WriteXLSX(leads, f)
	case "text":
		return writeOut([]byte(export.MarshalText(leads) + "\n"))
	default:
		return eris.Errorf("unknown format %q (csv, xlsx, text)", searchFlags.format)
	}
}

func writeOut(data []byte) error {
	if searchFlags.out == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(searchFlags.out, data, 0o644); err != nil {
		return eris.Wrap(err, "write output file")
	}
	zap.L().Info("export written", zap.String("path", searchFlags.out))
	return nil
}

func init() {
	searchCmd.Flags().StringVarP(&searchFlags.query, "query", "q", "", "what to search for (required)")
	searchCmd.Flags().StringVarP(&searchFlags.location, "location", "l", "", "free-text location or \"lat,lng\"")
	searchCmd.Flags().IntVarP(&searchFlags.radius, "radius", "r", 5, "search radius in km (1, 5, 10, 20, 50)")
	searchCmd.Flags().BoolVar(&searchFlags.locate, "locate", false, "use the current position instead of --location")
	searchCmd.Flags().BoolVar(&searchFlags.demo, "demo", false, "use fabricated demo data instead of the live provider")

	searchCmd.Flags().StringVar(&searchFlags.sortField, "sort", "", "sort field (e.g. rating, businessName, potentialScore)")
	searchCmd.Flags().BoolVar(&searchFlags.desc, "desc", false, "sort descending")
	searchCmd.Flags().StringVar(&searchFlags.potential, "potential", "", "filter by potential category (low, medium, high)")
	searchCmd.Flags().StringVar(&searchFlags.website, "has-website", "", "filter by website presence (true/false)")
	searchCmd.Flags().StringVar(&searchFlags.email, "has-email", "", "filter by email presence (true/false)")
	searchCmd.Flags().StringVar(&searchFlags.phone, "has-phone", "", "filter by phone presence (true/false)")
	searchCmd.Flags().Float64Var(&searchFlags.minRating, "min-rating", -1, "minimum rating (0-5); unrated leads always pass")

	searchCmd.Flags().StringVar(&searchFlags.format, "format", "text", "export format: csv, xlsx, text")
	searchCmd.Flags().StringVarP(&searchFlags.out, "out", "o", "", "output path (default stdout; required for xlsx)")

	rootCmd.AddCommand(searchCmd)
}
