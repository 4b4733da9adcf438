package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-catalog-service/pkg/client"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	apiURL  string
	timeout time.Duration
	verbose bool
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Browse the product catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiURL := os.Getenv("CATALOG_API_URL")
	if apiURL == "" {
		apiURL = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", apiURL, "catalog API base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "per-request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log request failures to stderr")

	root.AddCommand(
		newHealthCmd(opts),
		newTypesCmd(opts),
		newProductsCmd(opts),
		newSearchCmd(opts),
		newShowCmd(opts),
	)
	return root
}

func (o *options) client() *client.Client {
	return client.New(client.Config{BaseURL: o.apiURL, Timeout: o.timeout})
}

func (o *options) logger() logger.ZapLogger {
	if !o.verbose {
		return logger.NewNop()
	}
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     true,
		Encoding:          "console",
		Level:             "debug",
		DisableStacktrace: true,
		Stderr:            true,
	})
}
