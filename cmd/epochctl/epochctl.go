// Package epochctl is the command line front end for running a single epoch from a JSON fixture.
//
// Usage:
//
//	epochctl process --file epoch.json [--policy count|maxfee] [--max-candidates N] [--oversize reject|greedy]
//	epochctl keygen [--seed text]
//
// Defaults for every flag come from the gocore settings (epoch_policy, epoch_maxfee_max_candidates,
// epoch_maxfee_oversize_policy). The report is written to stdout as JSON, logs go to stderr.
package epochctl

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/epochledger/services/epoch"
	"github.com/bsv-blockchain/epochledger/services/validator"
	"github.com/bsv-blockchain/epochledger/settings"
	"github.com/bsv-blockchain/epochledger/ulogger"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/urfave/cli/v2"
)

// NewApp builds the cli application writing reports to stdout and logs to stderr.
func NewApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "epochctl",
		Usage:     "Validate and select the transactions of an epoch",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:  "process",
				Usage: "Run an epoch fixture through the acceptance policy",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "JSON fixture with pool and candidates",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "policy",
						Usage: "count or maxfee",
					},
					&cli.IntFlag{
						Name:  "max-candidates",
						Usage: "largest feasible batch searched exhaustively by maxfee",
					},
					&cli.StringFlag{
						Name:  "oversize",
						Usage: "reject or greedy, what maxfee does above max-candidates",
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "DEBUG, INFO, WARN or ERROR",
					},
				},
				Action: func(c *cli.Context) error {
					return process(c, stdout, stderr)
				},
			},
			{
				Name:  "keygen",
				Usage: "Print a private key and its compressed public key, both hex",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "seed",
						Usage: "derive the key from this text instead of randomly",
					},
				},
				Action: func(c *cli.Context) error {
					return keygen(c, stdout)
				},
			},
		},
	}
}

// Run is the entry point used by main.
func Run(args []string) error {
	return NewApp(os.Stdout, os.Stderr).Run(args)
}

func process(c *cli.Context, stdout, stderr io.Writer) error {
	tSettings := settings.NewSettings()

	if c.IsSet("policy") {
		tSettings.Epoch.Policy = c.String("policy")
	}

	if c.IsSet("max-candidates") {
		tSettings.Epoch.MaxCandidates = c.Int("max-candidates")
	}

	if c.IsSet("oversize") {
		tSettings.Epoch.OversizePolicy = c.String("oversize")
	}

	if c.IsSet("log-level") {
		tSettings.Logger.LogLevel = c.String("log-level")
	}

	if err := tSettings.Validate(); err != nil {
		return err
	}

	logger := ulogger.New("epochctl",
		ulogger.WithLevel(tSettings.Logger.LogLevel),
		ulogger.WithLoggerType(tSettings.Logger.LoggerType),
		ulogger.WithWriter(stderr),
	)

	fixture, err := ReadFixture(c.String("file"))
	if err != nil {
		return err
	}

	handler, err := epoch.NewHandler(logger, tSettings, validator.New(logger, tSettings))
	if err != nil {
		return err
	}

	result, err := handler.Process(fixture.UTXOSet(), fixture.Candidates)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(newReport(tSettings.Epoch.Policy, fixture.Candidates, result), "", "  ")
	if err != nil {
		return errors.NewProcessingError("could not encode report", err)
	}

	_, err = fmt.Fprintln(stdout, string(data))

	return err
}

func keygen(c *cli.Context, stdout io.Writer) error {
	var privKey *bec.PrivateKey

	if seed := c.String("seed"); seed != "" {
		privKey, _ = bec.PrivateKeyFromBytes(chainhash.HashB([]byte(seed)))
	} else {
		var err error
		if privKey, err = bec.NewPrivateKey(); err != nil {
			return errors.NewProcessingError("could not generate key", err)
		}
	}

	_, err := fmt.Fprintf(stdout, "private: %s\npublic:  %s\n", hex.EncodeToString(privKey.Serialize()), hex.EncodeToString(privKey.PubKey().Compressed()))

	return err
}
