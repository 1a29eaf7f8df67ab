package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jiaming2012/option-screener/src/cmd/screener/run"
	"github.com/jiaming2012/option-screener/src/eventpubsub"
	"github.com/jiaming2012/option-screener/src/logger"
	"github.com/jiaming2012/option-screener/src/models"
	"github.com/jiaming2012/option-screener/src/router"
	"github.com/jiaming2012/option-screener/src/screener"
	"github.com/jiaming2012/option-screener/src/telemetry"
	"github.com/jiaming2012/option-screener/src/utils"
)

const serviceName = "option-screener"

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Screen option chains for short puts, covered calls, iron butterflies and iron condors",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		envDir, _ := flags.GetString("env-dir")
		goEnv, _ := flags.GetString("go-env")
		if envDir != "" {
			if err := utils.InitEnvironmentVariables(envDir, goEnv); err != nil {
				log.Warnf("error loading environment variables: %v", err)
			}
		}

		level, _ := flags.GetString("log-level")
		if level == "" {
			level = utils.GetEnvOrDefault("LOG_LEVEL", "info")
		}

		return logger.Setup(level, utils.GetEnvOrDefault("LOG_FORMAT", logger.FormatText))
	},
}

// parameterFlags returns a setter for every threshold flag that was set on the command line.
func parameterFlags(flags *pflag.FlagSet) func(*models.ScreeningParameters) {
	return func(p *models.ScreeningParameters) {
		floats := map[string]*float64{
			"delta-high":        &p.DeltaHigh,
			"iv-min":            &p.IVMin,
			"iv-max":            &p.IVMax,
			"max-spread":        &p.MaxSpread,
			"min-annual-return": &p.MinAnnualReturn,
			"risk-free-rate":    &p.RiskFreeRate,
			"min-premium":       &p.MinPremium,
			"min-otm-distance":  &p.MinOTMDistancePct,
			"min-credit":        &p.MinCredit,
			"short-delta-low":   &p.ShortDeltaLow,
			"short-delta-high":  &p.ShortDeltaHigh,
			"strike-offset":     &p.StrikeOffset,
			"max-leg-spread":    &p.MaxLegSpread,
		}

		for name, dst := range floats {
			if flags.Changed(name) {
				*dst, _ = flags.GetFloat64(name)
			}
		}

		ints := map[string]*int{
			"min-volume":     &p.MinVolume,
			"top-k":          &p.TopK,
			"min-leg-volume": &p.MinLegVolume,
		}

		for name, dst := range ints {
			if flags.Changed(name) {
				*dst, _ = flags.GetInt(name)
			}
		}

		if flags.Changed("strict-quotes") {
			p.StrictQuotes, _ = flags.GetBool("strict-quotes")
		}

		if flags.Changed("only-otm") {
			p.OnlyOTM, _ = flags.GetBool("only-otm")
		}

		if flags.Changed("wing-widths") {
			p.WingWidths, _ = flags.GetString("wing-widths")
		}

		if flags.Changed("capital-mode") {
			mode, _ := flags.GetString("capital-mode")
			p.CapitalMode = models.CapitalMode(strings.ToLower(mode))
		}
	}
}

func newProvider(flags *pflag.FlagSet) (*screener.Service, error) {
	providerName, _ := flags.GetString("provider")
	csvFile, _ := flags.GetString("csv-file")

	provider, err := run.NewProvider(providerName, csvFile)
	if err != nil {
		return nil, err
	}

	return screener.NewService(provider, time.Now), nil
}

func newScreenCmd(strategy models.Strategy, short string) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s TICKER", strings.ReplaceAll(string(strategy), "_", "-")),
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			profilesFile, _ := flags.GetString("config")
			profileName, _ := flags.GetString("profile")
			format, _ := flags.GetString("format")
			outDir, _ := flags.GetString("out")
			includeRejected, _ := flags.GetBool("include-rejected")
			expirations, _ := flags.GetStringSlice("expirations")

			profiles, err := run.LoadProfiles(profilesFile)
			if err != nil {
				return err
			}

			params, err := run.ResolveParameters(strategy, profiles, profileName, parameterFlags(flags))
			if err != nil {
				return err
			}

			service, err := newProvider(flags)
			if err != nil {
				return err
			}

			if outDir != "" {
				err := eventpubsub.Subscribe(eventpubsub.ScreeningCompletedEvent, func(event models.ScreeningCompletedEvent) {
					if _, err := utils.ExportScreeningCsv(event.Result, outDir); err != nil {
						log.Errorf("failed to export screening: %v", err)
					}
				})
				if err != nil {
					return fmt.Errorf("failed to subscribe csv exporter: %w", err)
				}
			}

			result, err := service.Screen(cmd.Context(), screener.ScreenRequest{
				Ticker:          args[0],
				Expirations:     expirations,
				Strategy:        strategy,
				Params:          params,
				IncludeRejected: includeRejected,
			})
			if err != nil {
				return err
			}

			eventpubsub.WaitAsync()

			return run.WriteResult(result, format, cmd.OutOrStdout())
		},
	}
}

var expirationsCmd = &cobra.Command{
	Use:   "expirations TICKER",
	Short: "List the option expirations of a ticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newProvider(cmd.Flags())
		if err != nil {
			return err
		}

		expirations, err := service.Expirations(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		for _, exp := range expirations {
			fmt.Fprintln(cmd.OutOrStdout(), exp)
		}

		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the screening API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		otelShutdown, err := telemetry.SetupOTelSDK(ctx, serviceName)
		if err != nil {
			return fmt.Errorf("failed to setup otel sdk: %w", err)
		}

		defer func() {
			err = errors.Join(err, otelShutdown(context.Background()))
		}()

		profilesFile, _ := cmd.Flags().GetString("config")
		profiles, err := run.LoadProfiles(profilesFile)
		if err != nil {
			return err
		}

		service, err := newProvider(cmd.Flags())
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetString("port")
		if !cmd.Flags().Changed("port") {
			port = utils.GetEnvOrDefault("PORT", port)
		}

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			BaseContext:  func(_ net.Listener) context.Context { return ctx },
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 60 * time.Second,
			Handler:      router.NewRouter(router.NewHandler(service, profiles)),
		}

		srvErr := make(chan error, 1)
		go func() {
			log.Infof("listening on %s", srv.Addr)
			srvErr <- srv.ListenAndServe()
		}()

		select {
		case err = <-srvErr:
			return err
		case <-ctx.Done():
			stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	},
}

func main() {
	defaults := models.DefaultScreeningParameters()

	flags := rootCmd.PersistentFlags()
	flags.String("go-env", "development", "The go environment to run the command in.")
	flags.String("env-dir", os.Getenv("PROJECTS_DIR"), "Directory holding the .env files.")
	flags.String("log-level", "", "Log level, defaults to $LOG_LEVEL or info.")
	flags.String("provider", run.ProviderTradier, "Market data provider: tradier, polygon or csv.")
	flags.String("csv-file", "", "Option chain snapshot used by the csv provider.")
	flags.String("config", "", "YAML file with screening profiles.")
	flags.String("profile", "", "Screening profile to start from.")

	screenFlags := pflag.NewFlagSet("screen", pflag.ExitOnError)
	screenFlags.String("format", run.FormatTable, "Output format: table, json or csv.")
	screenFlags.String("out", "", "Also export each result as CSV into this directory.")
	screenFlags.Bool("include-rejected", false, "Return rows that fail the filters too.")
	screenFlags.StringSlice("expirations", []string{screener.AllExpirations}, "Expirations to screen, or all.")
	screenFlags.Float64("delta-high", defaults.DeltaHigh, "Max |delta|.")
	screenFlags.Float64("iv-min", defaults.IVMin, "Min implied volatility.")
	screenFlags.Float64("iv-max", defaults.IVMax, "Max implied volatility.")
	screenFlags.Float64("max-spread", defaults.MaxSpread, "Max bid/ask spread in dollars.")
	screenFlags.Int("min-volume", defaults.MinVolume, "Min contract volume.")
	screenFlags.Float64("min-annual-return", defaults.MinAnnualReturn, "Min annualized return, 0.15 = 15%.")
	screenFlags.String("capital-mode", string(defaults.CapitalMode), "Cash secured capital: conservative or net.")
	screenFlags.Bool("strict-quotes", defaults.StrictQuotes, "Require a market price, no theoretical fallback.")
	screenFlags.Float64("risk-free-rate", defaults.RiskFreeRate, "Annual risk free rate.")
	screenFlags.Bool("only-otm", defaults.OnlyOTM, "Only out of the money strikes.")
	screenFlags.Float64("min-premium", defaults.MinPremium, "Min premium in dollars.")
	screenFlags.Float64("min-otm-distance", defaults.MinOTMDistancePct, "Min strike distance from spot in percent.")
	screenFlags.Float64("min-credit", defaults.MinCredit, "Min net credit for butterflies and condors.")
	screenFlags.String("wing-widths", defaults.WingWidths, "Comma separated wing widths in dollars.")
	screenFlags.Float64("short-delta-low", defaults.ShortDeltaLow, "Condor short leg |delta| lower bound.")
	screenFlags.Float64("short-delta-high", defaults.ShortDeltaHigh, "Condor short leg |delta| upper bound.")
	screenFlags.Int("top-k", defaults.TopK, "Short leg candidates per side for condors.")
	screenFlags.Float64("strike-offset", defaults.StrikeOffset, "Shift of the butterfly body from spot in dollars.")
	screenFlags.Float64("max-leg-spread", defaults.MaxLegSpread, "Liquidity hint: max per leg spread.")
	screenFlags.Int("min-leg-volume", defaults.MinLegVolume, "Liquidity hint: min per leg volume.")

	screenCmds := []*cobra.Command{
		newScreenCmd(models.SellPut, "Screen cash secured puts"),
		newScreenCmd(models.CoveredCall, "Screen covered calls"),
		newScreenCmd(models.IronButterfly, "Build and rank iron butterflies"),
		newScreenCmd(models.IronCondor, "Build and rank iron condors"),
	}

	for _, cmd := range screenCmds {
		cmd.Flags().AddFlagSet(screenFlags)
		rootCmd.AddCommand(cmd)
	}

	serveCmd.Flags().String("port", "8080", "HTTP port, defaults to $PORT.")

	rootCmd.AddCommand(expirationsCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
