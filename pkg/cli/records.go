package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mycotrack/mycotrack/pkg/models"
	"github.com/mycotrack/mycotrack/pkg/views"
)

func (a *app) observeCommand() *cobra.Command {
	var (
		date        string
		temperature float64
		humidity    float64
		co2         string
		light       float64
	)

	cmd := &cobra.Command{
		Use:   "observe <batch-id>",
		Short: "Log an environmental observation for a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBatchID(args[0])
			if err != nil {
				return err
			}
			d, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}

			obs := models.NewObservation{Date: d, CO2Level: models.Some(models.CO2Level(co2))}
			flags := cmd.Flags()
			if flags.Changed("temperature") {
				obs.AmbientTemperatureCelsius = models.Some(temperature)
			}
			if flags.Changed("humidity") {
				obs.RelativeHumidityPercent = models.Some(humidity)
			}
			if flags.Changed("light") {
				obs.LightHoursPerDay = models.Some(light)
			}
			if err := obs.Validate(); err != nil {
				return err
			}

			detail := views.NewBatchDetail(a.api, a.logger)
			if _, err := detail.Open(cmd.Context(), id); err != nil {
				return err
			}
			created, err := detail.AddObservation(cmd.Context(), obs)
			if err != nil {
				return err
			}

			p := a.printer(cmd.OutOrStdout())
			if ok, err := p.structured(created); ok {
				return err
			}
			p.line(styles.Success.Render(fmt.Sprintf("Logged observation for batch #%d on %s", id, created.Date)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&date, "date", "", "observation date YYYY-MM-DD (defaults to today)")
	f.Float64Var(&temperature, "temperature", 0, "ambient temperature in °C")
	f.Float64Var(&humidity, "humidity", 0, "relative humidity percent (0-100)")
	f.StringVar(&co2, "co2", string(models.CO2Medium), "CO2 level: low, medium or high")
	f.Float64Var(&light, "light", 0, "light hours per day (0-24)")
	return cmd
}

func (a *app) harvestCommand() *cobra.Command {
	var (
		flush int
		yield float64
		total float64
		date  string
	)

	cmd := &cobra.Command{
		Use:   "harvest <batch-id>",
		Short: "Record a harvest (flush) for a batch",
		Long: `Record a harvest for a batch. When --flush is omitted the next flush
number is used: one more than the highest flush recorded so far.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBatchID(args[0])
			if err != nil {
				return err
			}

			h := models.NewHarvest{FlushYieldKg: yield}
			flags := cmd.Flags()
			if flags.Changed("flush") {
				h.FlushNumber = flush
				if err := h.Validate(); err != nil {
					return err
				}
			}
			if flags.Changed("total") {
				h.TotalBatchYieldKg = models.Some(total)
			}
			if flags.Changed("date") {
				d, err := parseDateFlag("date", date)
				if err != nil {
					return err
				}
				h.Date = models.Some(d)
			}

			detail := views.NewBatchDetail(a.api, a.logger)
			if _, err := detail.Open(cmd.Context(), id); err != nil {
				return err
			}
			created, err := detail.AddHarvest(cmd.Context(), h)
			if err != nil {
				return err
			}

			p := a.printer(cmd.OutOrStdout())
			if ok, err := p.structured(created); ok {
				return err
			}
			p.line(styles.Success.Render(fmt.Sprintf("Recorded flush %d for batch #%d: %s kg",
				created.FlushNumber, id, formatFloat(created.FlushYieldKg))))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&flush, "flush", 0, "flush number (defaults to the next flush)")
	f.Float64Var(&yield, "yield", 0, "flush yield in kg")
	f.Float64Var(&total, "total", 0, "total batch yield so far in kg")
	f.StringVar(&date, "date", "", "harvest date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("yield")
	return cmd
}
