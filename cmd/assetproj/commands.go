package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/rpgo/asset-projector/internal/api"
	"github.com/rpgo/asset-projector/internal/calculation"
	"github.com/rpgo/asset-projector/internal/config"
	"github.com/rpgo/asset-projector/internal/output"
	"github.com/spf13/cobra"
)

// errInvalidPortfolio is returned by validate when any entity has errors.
var errInvalidPortfolio = errors.New("portfolio has validation errors")

type cli struct {
	settings config.Settings
	envFile  string
	logLevel string
	debug    bool
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "assetproj",
		Short:         "Project investment and real-estate holdings year by year",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "optional dotenv file with ASSETPROJ_* defaults")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "trace amortization and sale calculations")

	root.AddCommand(c.projectCmd(), c.validateCmd(), c.exampleCmd(), c.serveCmd())
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(c.envFile)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.envFile, err)
	}
	c.settings = settings
	calculation.SetDefaultStartingYear(settings.StartingYear)

	levelName := c.logLevel
	if levelName == "" {
		levelName = settings.LogLevel
	}
	level, ok := calculation.ParseLogLevel(levelName)
	if c.debug {
		level = slog.LevelDebug
	}
	c.logger = calculation.NewHandlerLogger(cmd.ErrOrStderr(), level, cmd.Name() == "serve")
	if !ok {
		c.logger.Warn("unknown log level, using info", "level", levelName)
	}
	return nil
}

func (c *cli) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.Debug = c.debug
	engine.SetLogger(calculation.NewSlogLogger(c.logger))
	return engine
}

func (c *cli) projectCmd() *cobra.Command {
	var format, outPath, selectPath string
	cmd := &cobra.Command{
		Use:   "project <portfolio-file>",
		Short: "Run a portfolio projection and render it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			res, err := c.engine().RunPortfolio(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("projection failed: %w", err)
			}
			for _, msg := range res.ValidationErrors {
				c.logger.Warn(msg)
			}

			if format == "" {
				format = c.settings.Format
			}
			var f output.Formatter
			if selectPath != "" {
				f = output.SelectFormatter(selectPath)
			} else if f, err = output.LookupFormatter(format); err != nil {
				return err
			}

			if outPath != "" {
				written, err := output.WriteFormatted(f, res, outPath)
				if err != nil {
					return err
				}
				c.logger.Info("report written", "path", written, "format", f.Name())
				return nil
			}
			data, err := f.Format(res)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (default from ASSETPROJ_FORMAT or console)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&selectPath, "select", "", "JSONPath expression selecting part of the results, e.g. $.properties[0].summary")
	return cmd
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <portfolio-file>",
		Short: "Check a portfolio file and list advisory messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			v := calculation.ValidatePortfolio(p)
			writeValidation(cmd.OutOrStdout(), v)
			if !v.Valid {
				return errInvalidPortfolio
			}
			return nil
		},
	}
}

func writeValidation(w io.Writer, v calculation.PortfolioValidation) {
	for _, msg := range v.Portfolio {
		fmt.Fprintf(w, "portfolio: %s\n", msg)
	}
	for _, group := range []struct {
		kind string
		msgs map[string][]string
	}{{"investment", v.Investments}, {"property", v.Properties}} {
		ids := make([]string, 0, len(group.msgs))
		for id := range group.msgs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			for _, msg := range group.msgs[id] {
				fmt.Fprintf(w, "%s %s: %s\n", group.kind, id, msg)
			}
		}
	}
	if v.Valid {
		fmt.Fprintln(w, "OK")
	}
}

func (c *cli) exampleCmd() *cobra.Command {
	var outPath string
	var startingYear int
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print or save an example portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year := startingYear
			if year == 0 {
				year = calculation.DefaultStartingYear()
			}
			parser := config.NewInputParser()
			p := parser.CreateExamplePortfolio(year)
			if outPath != "" {
				if err := parser.SaveToFile(outPath, p); err != nil {
					return err
				}
				c.logger.Info("example portfolio written", "path", outPath)
				return nil
			}
			data, err := parser.Marshal(p, "yaml")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to this file (.yaml or .json)")
	cmd.Flags().IntVar(&startingYear, "starting-year", 0, "first calendar year (default ASSETPROJ_STARTING_YEAR or the current year)")
	return cmd
}

func (c *cli) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.settings.Addr
			}
			srv := api.NewServer(c.engine(), calculation.NewSlogLogger(c.logger)).NewHTTPServer(addr)

			errCh := make(chan error, 1)
			go func() {
				c.logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				c.logger.Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default ASSETPROJ_ADDR or :8080)")
	return cmd
}
