// cmd/pzem-monitor/probe.go
package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tamzrod/pzem-monitor/internal/metering"
	"github.com/tamzrod/pzem-monitor/internal/scheduler"
	"github.com/tamzrod/pzem-monitor/internal/validate"
)

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "read each configured meter once and print the sample",
		Flags: []cli.Flag{configFlag},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			meters, err := buildMeters(cfg)
			if err != nil {
				return err
			}

			w := c.App.Writer
			failed := 0
			for _, m := range meters {
				p := m.Poller
				ch, err := m.Open()
				if err != nil {
					fmt.Fprintf(w, "%s: open failed: %v\n", p.MeterID(), err)
					failed++
					continue
				}
				p.Attach(ch)

				res := p.PollOnce()
				_ = p.Detach()

				if res.Err != nil {
					fmt.Fprintf(w, "%s (0x%02X): %s: %v\n", p.MeterID(), p.Address(), res.Classify(), res.Err)
					failed++
					continue
				}

				v := validate.Check(res.Reading)
				line := scheduler.FormatReading(metering.EnrichedReading{Reading: res.Reading}, cfg.Monitor.Billing.Currency)
				fmt.Fprintf(w, "%s (0x%02X): %s [%s] device_energy=%dWh\n",
					p.MeterID(), p.Address(), line, v, res.Reading.DeviceEnergyWh)
				if !v.Valid() {
					failed++
				}
			}

			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d meters failed", failed, len(meters)), 2)
			}
			return nil
		},
	}
}
