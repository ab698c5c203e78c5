package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sci/calc"
	"github.com/ardnew/sci/cli/cmd"
	"github.com/ardnew/sci/log"
	"github.com/ardnew/sci/pkg"
	"github.com/ardnew/sci/session"
)

// CLI is the top-level command-line interface for sci.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Mode      session.Mode `default:"${defaultMode}"      enum:"${modeEnum}" help:"Angle unit for trigonometric functions" short:"m"`
	Precision int          `default:"${defaultPrecision}"                    help:"Significant digits of results"          short:"n"`
	Plain     bool         `                                                 help:"Use the line loop even on a terminal"`

	Source []string `help:"Input source file(s) or '-' for stdin" name:"source" short:"s" type:"existingfile"`

	Repl cmd.Repl `cmd:"" default:"1" help:"Start the interactive calculator"`
	Eval cmd.Eval `cmd:""             help:"Evaluate expressions and print the results"`
	Init cmd.Init `cmd:""             help:"Initialize configuration file"`
}

func (*CLI) vars() kong.Vars {
	return kong.Vars{
		"defaultMode":      session.DefaultMode.String(),
		"modeEnum":         strings.Join(session.Modes(), ","),
		"defaultPrecision": strconv.Itoa(calc.DefaultPrecision),
	}
}

// settings returns the values every command builds its session from.
func (c *CLI) settings() cmd.Settings {
	return cmd.Settings{
		Logger:    log.Default(),
		Mode:      c.Mode,
		Precision: c.Precision,
		Plain:     c.Plain,
	}
}

func pprofGroup() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

// Run executes the sci CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)
	ctx = cmd.WithSettings(ctx, cli.settings())

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
