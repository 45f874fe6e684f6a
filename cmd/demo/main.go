package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zclconf/go-cty/cty"

	clix "github.com/marcusfrdk/click-extended-sub002"
	"github.com/marcusfrdk/click-extended-sub002/check"
	"github.com/marcusfrdk/click-extended-sub002/globals"
	"github.com/marcusfrdk/click-extended-sub002/internal/ctxlog"
	"github.com/marcusfrdk/click-extended-sub002/load"
	"github.com/marcusfrdk/click-extended-sub002/random"
	"github.com/marcusfrdk/click-extended-sub002/runtime"
	"github.com/marcusfrdk/click-extended-sub002/transform"
)

// main is the entrypoint for the demo application.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	})))

	os.Exit(run(os.Stdout, os.Args[1:]))
}

func logLevel() slog.Level {
	if os.Getenv("DEMO_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// run builds and executes the demo command, returning the process exit
// code. Separated from main for testing.
func run(outW io.Writer, args []string) int {
	cmd, err := deploy(outW).Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cmd.SetArgs(args)
	cmd.SetOut(outW)

	ctx := ctxlog.WithLogger(context.Background(), slog.Default())
	return clix.ExecuteContext(ctx, cmd, os.Stderr)
}

// deploy declares a small release command exercising options, arguments,
// environment input, loaders, tag groups, relations and globals.
func deploy(outW io.Writer) *clix.Command {
	return clix.New("deploy").
		Short("Deploy a service to an environment.").
		Out(outW).
		Argument("service", clix.Required(), clix.WithHelp("Service to deploy.")).
		With(transform.Strip(), transform.Slugify(), check.NotEmpty()).
		Option("environment",
			clix.WithDefault("staging"),
			clix.WithShort("e"),
			clix.WithHelp("Target environment."),
		).
		With(transform.ToLower(), check.Regex(`^(staging|production)$`)).
		Option("replicas",
			clix.WithType(cty.Number),
			clix.WithDefault(1),
			clix.WithHelp("Desired replica count."),
		).
		With(check.Between(1, 64)).
		Option("config", clix.WithHelp("Path to a deployment manifest.")).
		With(transform.ExpandVars(), transform.AbsPath(), load.YAML()).
		Option("token", clix.WithTags("credentials"), clix.WithHelp("API token.")).
		Option("tokenFile", clix.WithTags("credentials"), clix.WithHelp("File containing the API token.")).
		With(check.Exclusive("credentials")).
		Option("notify", clix.WithHelp("Webhook to notify.")).
		With(check.IsURL(), check.Requires("token")).
		Env("registryUrl", clix.WithDefault("registry.example.com")).
		Value("buildId", random.UUID()).
		Value("startedAt", random.Now()).
		With(globals.Visualize()).
		Run(func(ctx context.Context, inv *runtime.Invocation) error {
			fmt.Fprintf(inv.Out(), "deploying %s to %s (%d replicas)\n",
				inv.String("service"), inv.String("environment"), inv.Int("replicas"))
			fmt.Fprintf(inv.Out(), "build %s started at %s via %s\n",
				inv.String("buildId"), inv.String("startedAt"), inv.String("registryUrl"))
			if inv.Provided("config") {
				fmt.Fprintf(inv.Out(), "manifest: %s\n", inv.Value("config").GoString())
			}
			return nil
		})
}
