package runner

import (
	"io"
	"os"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"
	updateutils "github.com/projectdiscovery/utils/update"
)

type Options struct {
	Targets            goflags.StringSlice // brand names, domains or urls to scan instead of trends
	List               goflags.StringSlice
	Suffixes           goflags.StringSlice // overrides configured suffixes
	Tier2              bool
	Config             string
	TyposquatConfig    string
	Output             string
	Top                int
	MaxPerBrand        int
	Limit              int
	SkipLLM            bool
	SkipCheck          bool
	GenerateOnly       bool
	DisableUpdateCheck bool
	Verbose            bool
	Silent             bool
}

func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Find available typosquatting domains of trending brands.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringSliceVarP(&opts.Targets, "target", "t", nil, "brand names to scan instead of fetching trends (comma-separated)", goflags.CommaSeparatedStringSliceOptions),
		flagSet.StringSliceVarP(&opts.List, "list", "l", nil, "brand names to scan (stdin, comma-separated, file)", goflags.FileCommaSeparatedStringSliceOptions),
		flagSet.StringSliceVarP(&opts.Suffixes, "suffix", "s", nil, "domain suffixes to generate (comma-separated, file) ex: .com,.io", goflags.FileCommaSeparatedStringSliceOptions),
		flagSet.BoolVar(&opts.Tier2, "tier2", false, "also generate tier2 suffixes from config"),
	)

	flagSet.CreateGroup("pipeline", "Pipeline",
		flagSet.BoolVar(&opts.SkipLLM, "skip-llm", false, "skip LLM steps (algorithmic typos only)"),
		flagSet.BoolVar(&opts.SkipCheck, "skip-check", false, "skip DNS/RDAP checks and treat every candidate as available"),
		flagSet.BoolVarP(&opts.GenerateOnly, "generate-only", "go", false, "print typo candidates of targets and exit"),
		flagSet.IntVarP(&opts.MaxPerBrand, "max-per-brand", "mpb", 0, "max results per brand in the ranking (default from config)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "results", "directory to write the JSON report to"),
		flagSet.IntVar(&opts.Top, "top", 25, "number of top results to display"),
		flagSet.IntVar(&opts.Limit, "limit", 0, "limit the number of generated candidates printed with -generate-only (default 0)"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display typosquat version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", `typosquat cli config file (default '$HOME/.config/typosquat/cli.yaml')`),
		flagSet.StringVar(&opts.TyposquatConfig, "tc", "", `typosquat scan config file (default '$HOME/.config/typosquat/config.yaml')`),
	)

	flagSet.CreateGroup("update", "Update",
		flagSet.CallbackVarP(GetUpdateCallback(), "update", "up", "update typosquat to latest version"),
		flagSet.BoolVarP(&opts.DisableUpdateCheck, "disable-update-check", "duc", false, "disable automatic typosquat update check"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		if err := flagSet.MergeConfigFile(opts.Config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if !opts.DisableUpdateCheck {
		latestVersion, err := updateutils.GetVersionCheckCallback("typosquat")()
		if err != nil {
			if opts.Verbose {
				gologger.Error().Msgf("typosquat version check failed: %v", err.Error())
			}
		} else {
			gologger.Info().Msgf("Current typosquat version %v %v", version, updateutils.GetVersionDescription(version, latestVersion))
		}
	}

	opts.Targets = append(opts.Targets, opts.List...)

	// read from stdin
	if fileutil.HasStdin() {
		bin, err := io.ReadAll(os.Stdin)
		if err != nil {
			gologger.Error().Msgf("failed to read input from stdin got %v", err)
		}
		opts.Targets = append(opts.Targets, splitLines(string(bin))...)
	}

	if opts.GenerateOnly && len(opts.Targets) == 0 {
		gologger.Fatal().Msgf("typosquat: -generate-only needs targets (-t, -l or stdin)")
	}

	return opts
}

// splitLines returns the non empty lines of s. Brand names may contain spaces.
func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
