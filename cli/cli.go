package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/menugen/cli/cmd"
	"github.com/ardnew/menugen/menu"
	"github.com/ardnew/menugen/pkg"
)

// CLI is the top-level command-line interface for menugen.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Root string `default:"${rootKey}" help:"Key of the root menu item in the source document." placeholder:"KEY"`
	YAML bool   `                     help:"Read the source as YAML regardless of file extension." name:"yaml"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Gen     cmd.Gen     `cmd:"" default:"withargs" help:"Generate C menu definitions"`
	Fmt     cmd.Fmt     `cmd:""                    help:"Format a menu description"`
	Preview cmd.Preview `cmd:""                    help:"Render the screens of each menu item"`
	Eval    cmd.Eval    `cmd:""                    help:"Evaluate item visibility for a feature set"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the menugen CLI with the given context and arguments.
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

	configFilePath := configPath(baseConfig + configExt)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"rootKey":            menu.DefaultRootKey,
		"version":            pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that errors reported during
	// parsing already honor them.
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
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
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

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithInput(ctx, cmd.Input{Root: cli.Root, YAML: cli.YAML})

	// Time layout and caller are only applied once parsing completes.
	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
