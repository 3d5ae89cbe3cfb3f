package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"vidstream/internal/app/bootstrap"
)

func main() {
	app := cli.App{
		Name:  "modctl",
		Usage: "operator tooling for the moderation service",
	}
	app.Commands = []*cli.Command{
		{
			Name:   "migrate",
			Usage:  "create or update moderation tables in DATABASE_URL",
			Action: runMigrate,
		},
		{
			Name:   "seed-demo",
			Usage:  "load the demo users, channel, videos and claim",
			Action: runSeedDemo,
		},
		{
			Name:   "reconcile-strikes",
			Usage:  "deactivate strikes whose expiry has passed",
			Action: runReconcileStrikes,
		},
		{
			Name:   "relay-outbox",
			Usage:  "deliver one batch of pending moderation notifications",
			Action: runRelayOutbox,
		},
		{
			Name:  "standing",
			Usage: "print the effective strike standing of a channel",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "channel",
					Usage:    "channel id",
					Required: true,
				},
			},
			Action: runStanding,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func withOperator(cctx *cli.Context, fn func(op *bootstrap.OperatorApp) error) error {
	op, err := bootstrap.BuildOperator(cctx.Context)
	if err != nil {
		return err
	}
	defer op.Close()
	return fn(op)
}

func runMigrate(cctx *cli.Context) error {
	return withOperator(cctx, func(op *bootstrap.OperatorApp) error {
		if err := op.Migrate(cctx.Context); err != nil {
			return err
		}
		fmt.Println("migrated")
		return nil
	})
}

func runSeedDemo(cctx *cli.Context) error {
	return withOperator(cctx, func(op *bootstrap.OperatorApp) error {
		if err := op.SeedDemo(cctx.Context); err != nil {
			return err
		}
		fmt.Println("seeded demo catalog")
		return nil
	})
}

func runReconcileStrikes(cctx *cli.Context) error {
	return withOperator(cctx, func(op *bootstrap.OperatorApp) error {
		count, err := op.ReconcileStrikes(cctx.Context)
		if err != nil {
			return err
		}
		fmt.Printf("deactivated %d lapsed strikes\n", count)
		return nil
	})
}

func runRelayOutbox(cctx *cli.Context) error {
	return withOperator(cctx, func(op *bootstrap.OperatorApp) error {
		count, err := op.RelayOutbox(cctx.Context)
		if err != nil {
			return err
		}
		fmt.Printf("relayed %d notifications\n", count)
		return nil
	})
}

func runStanding(cctx *cli.Context) error {
	return withOperator(cctx, func(op *bootstrap.OperatorApp) error {
		standing, err := op.ChannelStanding(cctx.Context, cctx.String("channel"))
		if err != nil {
			return err
		}
		out := map[string]any{
			"channel_id":        standing.Channel.ChannelID,
			"owner_id":          standing.Channel.OwnerID,
			"status":            standing.Channel.Status,
			"strikes":           standing.Standing.Strikes,
			"copyright_strikes": standing.Standing.CopyrightStrikes,
			"warnings":          standing.Standing.Warnings,
			"suspensions":       standing.Standing.Suspensions,
			"terminations":      standing.Standing.Terminations,
			"evaluated_at":      standing.EvaluatedAt.Format(time.RFC3339),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	})
}
