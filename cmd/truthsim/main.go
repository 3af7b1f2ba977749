package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Olliwn/truth-engine-sub001/internal/api"
	"github.com/Olliwn/truth-engine-sub001/internal/breakeven"
	"github.com/Olliwn/truth-engine-sub001/internal/calculation"
	"github.com/Olliwn/truth-engine-sub001/internal/compare"
	"github.com/Olliwn/truth-engine-sub001/internal/config"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/output"
	"github.com/Olliwn/truth-engine-sub001/internal/store/sqlite"
	"github.com/Olliwn/truth-engine-sub001/internal/transform"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "truthsim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "truthsim",
	Short: "Population and public finance simulator",
	Long:  "Cohort-based population projection and fiscal sustainability analysis for Finland",
}

// loadConfiguration parses the input file and applies debug logging flags.
func loadConfiguration(cmd *cobra.Command, inputFile string) (*domain.Configuration, *calculation.Engine) {
	parser := config.NewInputParser()
	configData, err := parser.LoadFromFile(inputFile)
	if err != nil {
		log.Fatal(err)
	}

	engine := calculation.NewEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return configData, engine
}

// selectScenario picks the scenario named by --scenario, or the first one.
func selectScenario(cmd *cobra.Command, configData *domain.Configuration) *domain.ScenarioConfig {
	name, _ := cmd.Flags().GetString("scenario")
	if name == "" {
		return &configData.Scenarios[0]
	}
	sc := configData.ScenarioByName(name)
	if sc == nil {
		log.Fatalf("scenario %q not found in configuration", name)
	}
	return sc
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Run a scenario and report the annual fiscal series",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configData, engine := loadConfiguration(cmd, args[0])
		sc := selectScenario(cmd, configData)

		result, err := engine.SimulateRange(context.Background(),
			configData.Simulation.StartYear, configData.Simulation.EndYear, *sc)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if err := output.WriteReport(os.Stdout, result, outputFormat); err != nil {
			log.Fatal(err)
		}

		if dbPath, _ := cmd.Flags().GetString("save"); dbPath != "" {
			store, err := sqlite.New(dbPath)
			if err != nil {
				log.Fatalf("open run store: %v", err)
			}
			defer store.Close()

			saveName, _ := cmd.Flags().GetString("save-name")
			if saveName == "" {
				saveName = fmt.Sprintf("%s %s", sc.Name, time.Now().Format("2006-01-02 15:04"))
			}
			id, err := store.SaveRun(context.Background(), saveName, *sc, result)
			if err != nil {
				log.Fatalf("save run: %v", err)
			}
			fmt.Fprintf(os.Stderr, "saved run %d (%s) to %s\n", id, saveName, dbPath)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		_, err := parser.LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Configuration file %s is valid\n", inputFile)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare every scenario in a configuration against a base",
	Long: `Compare the scenarios of a configuration file side by side.

Examples:
  truthsim compare scenarios.yaml
  truthsim compare scenarios.yaml --base baseline --format csv
  truthsim compare scenarios.yaml --with zero_immigration,strong_growth
  truthsim compare --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Print(transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return
		}
		if len(args) == 0 {
			log.Fatal("input file required for comparison (use --list-templates to see available templates)")
		}

		configData, engine := loadConfiguration(cmd, args[0])

		baseScenarioName, _ := cmd.Flags().GetString("base")
		outputFormat, _ := cmd.Flags().GetString("format")
		templatesStr, _ := cmd.Flags().GetString("with")

		compareEngine := compare.NewCompareEngine(engine)
		comparisonSet, err := compareEngine.Compare(context.Background(), configData, compare.CompareOptions{
			BaseScenarioName: baseScenarioName,
			Templates:        transform.ParseTemplateList(templatesStr),
		})
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}

		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			out, err := formatter.Format(comparisonSet)
			if err != nil {
				log.Fatalf("Failed to format CSV: %v", err)
			}
			fmt.Print(out)

		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			out, err := formatter.Format(comparisonSet)
			if err != nil {
				log.Fatalf("Failed to format JSON: %v", err)
			}
			fmt.Print(out)

		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			fmt.Print(formatter.Format(comparisonSet))

		default:
			log.Fatalf("Unknown output format: %s (valid: table, csv, json)", outputFormat)
		}
	},
}

var pyramidCmd = &cobra.Command{
	Use:   "pyramid [input-file] [year]",
	Short: "Print the age pyramid of a scenario at a given year",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		configData, engine := loadConfiguration(cmd, args[0])
		sc := selectScenario(cmd, configData)

		var year int
		if _, err := fmt.Sscanf(args[1], "%d", &year); err != nil {
			log.Fatalf("invalid year %q", args[1])
		}

		bands, err := engine.Pyramid(context.Background(),
			configData.Simulation.StartYear, configData.Simulation.EndYear, *sc, year)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("AGE PYRAMID: %s, %d\n", sc.Name, year)
		fmt.Println(strings.Repeat("-", 40))
		for i := len(bands) - 1; i >= 0; i-- {
			b := bands[i]
			fmt.Printf("%3d  %10.0f male  %10.0f female\n", b.Age, b.Male, b.Female)
		}
	},
}

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [input-file]",
	Short: "Find the lever value that balances cumulative public finances",
	Long: `Search one scenario lever for the value at which the cumulative
adjusted balance over the simulation window reaches zero.

Examples:
  truthsim break-even scenarios.yaml --target growth_rate
  truthsim break-even scenarios.yaml --target tfr --scenario baseline
  truthsim break-even scenarios.yaml --all
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configData, engine := loadConfiguration(cmd, args[0])
		sc := selectScenario(cmd, configData)

		solver := breakeven.NewDefaultSolver(engine)
		req := breakeven.Request{
			Scenario:  *sc,
			StartYear: configData.Simulation.StartYear,
			EndYear:   configData.Simulation.EndYear,
		}

		if all, _ := cmd.Flags().GetBool("all"); all {
			multi, err := solver.SolveAll(context.Background(), req)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(breakeven.FormatMulti(multi))
			return
		}

		target, _ := cmd.Flags().GetString("target")
		req.Target = breakeven.Target(target)
		result, err := solver.Solve(context.Background(), req)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(breakeven.FormatResult(result))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		dbPath, _ := cmd.Flags().GetString("db")

		engine := calculation.NewEngine()
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			engine.SetLogger(simpleCLILogger{})
		}

		var store *sqlite.Store
		if dbPath != "" {
			var err error
			store, err = sqlite.New(dbPath)
			if err != nil {
				log.Fatalf("open run store: %v", err)
			}
			defer store.Close()
		}

		router := api.NewRouter(api.NewHandler(engine, store))
		log.Printf("listening on %s", addr)
		if err := http.ListenAndServe(addr, router); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	simulateCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	simulateCmd.Flags().String("scenario", "", "Scenario name to run (default: first in file)")
	simulateCmd.Flags().String("save", "", "SQLite database path to save the run to")
	simulateCmd.Flags().String("save-name", "", "Name for the saved run")
	simulateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	compareCmd.Flags().String("base", "", "Base scenario name (default: first in file)")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to derive alternatives from")
	compareCmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	pyramidCmd.Flags().String("scenario", "", "Scenario name to run (default: first in file)")
	pyramidCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	breakEvenCmd.Flags().String("target", string(breakeven.TargetGrowthRate),
		"Lever to search (growth_rate, tfr, immigration)")
	breakEvenCmd.Flags().Bool("all", false, "Solve every lever and summarize")
	breakEvenCmd.Flags().String("scenario", "", "Scenario name to use (default: first in file)")
	breakEvenCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("db", "", "SQLite database path for saved runs")
	serveCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(pyramidCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
