package main

import (
	"io"
	"os"

	"github.com/jptrs93/packetgen/internal/cmd"
	"github.com/jptrs93/packetgen/internal/logging"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := cmd.FindUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := cmd.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("packetgen"),
		kong.Description("Generate TypeScript packet classes with binary codecs"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, err := logging.New(cli.Log.Level)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx.Bind(logger)
	ctx.BindTo(os.Stdout, (*io.Writer)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
