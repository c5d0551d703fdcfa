package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bandchart "github.com/aouyang1/go-bandchart"
	"github.com/aouyang1/go-bandchart/forecast"
	"github.com/aouyang1/go-bandchart/server"
	"github.com/aouyang1/go-bandchart/timedataset"
	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the figure as json and an html preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Addr
			}
			chart, _, err := a.loadChart()
			if err != nil {
				return err
			}

			router := server.NewRouter(chart)
			srv := &http.Server{
				Addr:              addr,
				Handler:           handlers.LoggingHandler(os.Stdout, handlers.RecoveryHandler()(router)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				slog.Info("bandchart listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			slog.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8050", "listen address")
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		out    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the figure to an html page or as json",
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, _, err := a.loadChart()
			if err != nil {
				return err
			}
			fig, err := chart.Rebuild(cmd.Context(), nil)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := createFile(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if asJSON {
				return fig.WriteJSON(w)
			}
			return bandchart.RenderHTML(w, fig)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path, stdout when empty")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the figure json instead of html")
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the loaded baseline span, seam and forecast table",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := a.loadChart()
			if err != nil {
				return err
			}
			return store.TablePrint(cmd.OutOrStdout(), "", "  ")
		},
	}
}

func newSampleCmd(a *app) *cobra.Command {
	var (
		out    string
		months int
		origin float64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample forecast workbook starting after the baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("out") {
				out = a.opt.ForecastPath
			}
			monthEnds, err := timedataset.GenerateMonthEnds(a.opt.SeriesOptions.HistoryStart, a.opt.SeriesOptions.HistoryEnd)
			if err != nil {
				return fmt.Errorf("%w, %w", bandchart.ErrDataLoad, err)
			}
			if len(monthEnds) == 0 {
				return fmt.Errorf("%w, %w", bandchart.ErrDataLoad, timedataset.ErrNoData)
			}

			tbl, err := forecast.SampleTable(monthEnds[len(monthEnds)-1], months, origin)
			if err != nil {
				return err
			}

			f, err := createFile(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := forecast.WriteXLSX(f, tbl); err != nil {
				return err
			}
			slog.Info("wrote sample forecast", "path", out, "rows", tbl.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", bandchart.DefaultForecastPath, "output workbook path")
	cmd.Flags().IntVar(&months, "months", bandchart.DefaultPadMonths, "number of forecast months")
	cmd.Flags().Float64Var(&origin, "origin", 3.0, "first 50% upper bound")
	return cmd
}
