package main

import (
	"fmt"
	"livevote/internal/di"
	"livevote/internal/structures"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "config/livevote.yaml", "Path to the YAML config file")
	pflag.StringVar(&flags.EnvFile, "env-file", ".env", "Optional .env file loaded before the config")
	pflag.BoolVarP(&flags.DebugMode, "debug", "d", false, "Log to the console as well")
	pflag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "livevote: %s\n", err)
		os.Exit(1)
	}
}
