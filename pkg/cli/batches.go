package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mycotrack/mycotrack/pkg/charts"
	"github.com/mycotrack/mycotrack/pkg/models"
	"github.com/mycotrack/mycotrack/pkg/views"
)

func (a *app) batchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "batches",
		Aliases: []string{"batch"},
		Short:   "List, show and create cultivation batches",
	}
	cmd.AddCommand(a.batchesListCommand(), a.batchesShowCommand(), a.batchesCreateCommand())
	return cmd
}

func (a *app) batchesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := views.NewBatchList(a.api, a.logger)
			if err := list.Load(cmd.Context()); err != nil {
				return err
			}

			batches := list.Batches()
			p := a.printer(cmd.OutOrStdout())
			if ok, err := p.structured(batches); ok {
				return err
			}
			printBatchList(p, batches)
			return nil
		},
	}
}

func printBatchList(p printer, batches []models.Batch) {
	if len(batches) == 0 {
		p.line(styles.Muted.Render("No batches yet. Create one with `mycotrack batches create`."))
		return
	}

	rows := make([][]string, len(batches))
	for i, b := range batches {
		rows[i] = []string{
			strconv.Itoa(b.ID),
			b.SubstrateType,
			b.StartDate.String(),
			formatFloat(b.SubstrateMoisturePercent) + "%",
			formatFloat(b.SpawnRatePercent) + "%",
			b.Username,
		}
	}
	p.line(table([]string{"ID", "SUBSTRATE", "STARTED", "MOISTURE", "SPAWN RATE", "OWNER"}, rows))
	p.line("")
	p.line(styles.Muted.Render(count(len(batches), "batch")))
}

func (a *app) batchesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <batch-id>",
		Short: "Show a batch with its observations and harvests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBatchID(args[0])
			if err != nil {
				return err
			}

			detail, err := views.NewBatchDetail(a.api, a.logger).Open(cmd.Context(), id)
			if err != nil {
				return err
			}

			p := a.printer(cmd.OutOrStdout())
			if ok, err := p.structured(detail); ok {
				return err
			}
			printBatchDetail(p, detail)
			return nil
		},
	}
}

func printBatchDetail(p printer, d *views.Detail) {
	b := d.Batch
	card := []string{
		styles.Title.Render(b.DisplayName()),
		styles.Label.Render("Substrate") + b.SubstrateType,
		styles.Label.Render("Substrate moisture") + formatFloat(b.SubstrateMoisturePercent) + "%",
		styles.Label.Render("Spawn rate") + formatFloat(b.SpawnRatePercent) + "%",
		styles.Label.Render("Started") + b.StartDate.String(),
	}
	if b.Username != "" {
		card = append(card, styles.Label.Render("Owner")+b.Username)
	}
	p.line(styles.Card.Render(strings.Join(card, "\n")))
	p.line("")

	p.line(styles.Title.Render("Observations") + " " + styles.Muted.Render("("+count(len(d.Observations), "observation")+")"))
	if len(d.Observations) == 0 {
		p.line(styles.Muted.Render("No observations logged."))
	} else {
		obs := d.ObservationsNewestFirst()
		rows := make([][]string, len(obs))
		for i, o := range obs {
			rows[i] = []string{
				o.Date.String(),
				formatOptional(o.AmbientTemperatureCelsius, func(v float64) string { return formatFloat(v) + "°C" }),
				formatOptional(o.RelativeHumidityPercent, func(v float64) string { return formatFloat(v) + "%" }),
				formatOptional(o.CO2Level, func(v models.CO2Level) string { return string(v) }),
				formatOptional(o.LightHoursPerDay, func(v float64) string { return formatFloat(v) + "h" }),
			}
		}
		p.line(table([]string{"DATE", "TEMP", "HUMIDITY", "CO2", "LIGHT"}, rows))
	}
	p.line("")

	p.line(styles.Title.Render("Harvests") + " " + styles.Muted.Render("("+count(len(d.Harvests), "harvest")+")"))
	if len(d.Harvests) == 0 {
		p.line(styles.Muted.Render("No harvests recorded."))
	} else {
		hs := d.HarvestsByFlush()
		rows := make([][]string, len(hs))
		for i, h := range hs {
			rows[i] = []string{
				strconv.Itoa(h.FlushNumber),
				formatFloat(h.FlushYieldKg) + " kg",
				formatOptional(h.TotalBatchYieldKg, func(v float64) string { return formatFloat(v) + " kg" }),
				formatOptional(h.Date, models.Date.String),
			}
		}
		p.line(table([]string{"FLUSH", "YIELD", "TOTAL", "DATE"}, rows))
	}
	p.line(styles.Muted.Render(fmt.Sprintf("Next flush: %d", d.NextFlush)))
	p.line("")

	switch d.Charts.Status {
	case charts.StatusNoData:
		p.line(styles.Muted.Render("Charts: no data logged yet."))
	case charts.StatusInsufficient:
		p.line(styles.Muted.Render("Charts: insufficient data. Log both observations and harvests."))
	default:
		p.linef("Charts: %s, %s, %s",
			count(len(d.Charts.YieldPerFlush), "flush point"),
			count(len(d.Charts.HumidityYield), "humidity point"),
			count(len(d.Charts.TemperatureYield), "temperature point"),
		)
	}
}

func (a *app) batchesCreateCommand() *cobra.Command {
	var (
		username  string
		substrate string
		moisture  float64
		spawnRate float64
		startDate string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDateFlag("start-date", startDate)
			if err != nil {
				return err
			}
			if username == "" {
				username = a.cfg.API.Username
			}

			list := views.NewBatchList(a.api, a.logger)
			created, err := list.Create(cmd.Context(), models.NewBatch{
				Username:                 username,
				SubstrateType:            substrate,
				SubstrateMoisturePercent: moisture,
				SpawnRatePercent:         spawnRate,
				StartDate:                start,
			})
			if err != nil {
				return err
			}

			p := a.printer(cmd.OutOrStdout())
			if ok, err := p.structured(created); ok {
				return err
			}
			p.line(styles.Success.Render("Created " + created.DisplayName()))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&username, "username", "", "batch owner (defaults to the configured user)")
	f.StringVar(&substrate, "substrate", "", "substrate type, e.g. straw or hardwood")
	f.Float64Var(&moisture, "moisture", 0, "substrate moisture percent (0-100)")
	f.Float64Var(&spawnRate, "spawn-rate", 0, "spawn rate percent (0-100)")
	f.StringVar(&startDate, "start-date", "", "start date YYYY-MM-DD (defaults to today)")
	_ = cmd.MarkFlagRequired("substrate")
	return cmd
}
