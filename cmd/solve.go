package cmd

import (
	"time"

	"github.com/izouxv/goShareVote/internal/config"
	"github.com/izouxv/goShareVote/majority"
	"github.com/izouxv/goShareVote/report"
	"github.com/izouxv/goShareVote/sharefile"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// DefaultFiles are solved when no file is named on the command line. They
// are resolved against the working directory.
var DefaultFiles = []string{"testdata/test1.json", "testdata/test2.json"}

func newSolveCmd(cfg func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "solve [share files...]",
		Short: "Reconstruct the secret of each share file and flag corrupted shares",
		Long:  "Reconstruct the secret of each share file and flag corrupted shares. Files ending in " + sharefile.BinaryExt + " are read in binary form, see pack.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = DefaultFiles
			}
			c := cfg()

			reports := make([]*report.Report, 0, len(args))
			for _, path := range args {
				r, err := solveFile(path, c)
				if err != nil {
					return err
				}
				if c.Output == config.OutputJSON {
					err = r.WriteJSON(cmd.OutOrStdout())
				} else {
					err = r.WriteText(cmd.OutOrStdout())
				}
				if err != nil {
					return errors.Wrap(err, "write report")
				}
				reports = append(reports, r)
			}

			if c.Output == config.OutputText {
				return report.WriteSummary(cmd.OutOrStdout(), reports)
			}
			return nil
		},
	}
}

func solveFile(path string, c config.Config) (*report.Report, error) {
	start := time.Now()

	set, err := sharefile.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := majority.Reconstruct(set,
		majority.WithWorkers(c.Workers),
		majority.WithMaxCombinations(c.MaxCombinations),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "reconstruct %s", path)
	}

	log.Info().
		Str("file", path).
		Int("n", set.Total).
		Int("k", set.Threshold).
		Int("agreeing", res.Count).
		Int("combinations", res.Total).
		Int("corrupted", len(res.Corrupted)).
		Dur("took", time.Since(start)).
		Msg("Reconstructed secret")

	return report.New(path, set, res)
}

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <share file> <output" + sharefile.BinaryExt + ">",
		Short: "Validate a share file and store it in binary form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := sharefile.Load(args[0])
			if err != nil {
				return err
			}
			if err := sharefile.Save(args[1], set); err != nil {
				return err
			}
			fp, err := set.Fingerprint()
			if err != nil {
				return err
			}
			log.Info().
				Str("from", args[0]).
				Str("to", args[1]).
				Str("fingerprint", fp).
				Msg("Packed share file")
			return nil
		},
	}
}
