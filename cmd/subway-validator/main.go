// Command subway-validator runs the validation engine over an OSM-XML
// extract for one city and prints or writes its report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	subwayvalidator "github.com/theoremus-urban-solutions/subway-validator"
	"github.com/theoremus-urban-solutions/subway-validator/adapter/osmxml"
	"github.com/theoremus-urban-solutions/subway-validator/internal/cityconfig"
	"github.com/theoremus-urban-solutions/subway-validator/internal/recovery"
)

var (
	inputFile     string
	citiesFile    string
	cityName      string
	rapid         bool
	outputFile    string
	outputFormat  string
	recoveryFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "subway-validator",
		Short: "Validates an urban rail/tram network from an OSM-XML extract",
		Long: `subway-validator resolves stations, assembles routes, stitches track
geometry and groups route masters from an OpenStreetMap XML extract,
then reports every anomaly found as a severity-ranked diagnostic.

Example:
  subway-validator -i city.osm --cities cities.yaml --city "Metropolis"`,
		RunE: runValidate,
	}

	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Path to an OSM-XML extract (required)")
	rootCmd.Flags().StringVar(&citiesFile, "cities", "", "Path to a city configuration file (required)")
	rootCmd.Flags().StringVar(&cityName, "city", "", "Name of the city within the config file to validate (required)")
	rootCmd.Flags().BoolVar(&rapid, "rapid", true, "Whether this city's networks default to rapid-transit modes (subway/light_rail) rather than overground ones")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVar(&outputFormat, "format", "console", "Output format: console or json")
	rootCmd.Flags().StringVar(&recoveryFile, "recovery", "", "Optional YAML file of recovery itineraries for ambiguous track ordering")

	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("cities")
	_ = rootCmd.MarkFlagRequired("city")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	cities, err := cityconfig.Load(citiesFile, rapid)
	if err != nil {
		return fmt.Errorf("loading city config: %w", err)
	}
	var city *cityconfig.City
	for i := range cities {
		if cities[i].Name == cityName {
			city = &cities[i]
			break
		}
	}
	if city == nil {
		return fmt.Errorf("city %q not found in %s", cityName, citiesFile)
	}

	f, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	elements, err := osmxml.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing OSM XML: %w", err)
	}

	var opts []subwayvalidator.Option
	if recoveryFile != "" {
		data, err := recovery.Load(recoveryFile)
		if err != nil {
			return fmt.Errorf("loading recovery data: %w", err)
		}
		opts = append(opts, subwayvalidator.WithRecoveryIndex(recovery.NewIndex(data)))
	}

	validator := subwayvalidator.NewValidator(opts...)
	result, err := validator.ValidateCity(*city, elements)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch outputFormat {
	case "json":
		data, err := result.Report.ToJSON()
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "console":
		printConsole(out, result)
	default:
		return fmt.Errorf("unsupported output format: %s (supported: console, json)", outputFormat)
	}

	if !result.Report.IsGood {
		os.Exit(1)
	}
	return nil
}
