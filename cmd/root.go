package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const appName = "classic-comedians"

// NewInterruptSignalChannel returns a channel receiving the os.Signals the application shuts down on.
func NewInterruptSignalChannel() chan os.Signal {
	signalsToListenTo := []os.Signal{
		syscall.SIGINT,                   // Strg + c
		syscall.SIGTERM, syscall.SIGQUIT, // terminate but finish/cleanup first, e.g. kill
		os.Interrupt,
	}

	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, signalsToListenTo...)

	return osSignal
}

// NewComediansCLI returns the root command of the application with all its commands.
// Without a command the web application is served.
func NewComediansCLI(osSignal <-chan os.Signal) *cobra.Command {
	var configFile string

	serve := newServeCmd(osSignal, &configFile)

	rootCmd := &cobra.Command{
		Use:                   appName,
		Short:                 "Classic Comedians keeps track of comedians and the groups they performed in.",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		RunE:                  serve.RunE,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a config file; defaults and COMEDIANS_* environment variables apply")

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(Routes(routesOf(&configFile)))
	rootCmd.AddCommand(Version(appName))

	return rootCmd
}

// Execute runs the cli.
func Execute() {
	if err := NewComediansCLI(NewInterruptSignalChannel()).Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
