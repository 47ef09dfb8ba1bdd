package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carbon-tracker/backend/internal/domain/unit"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "convert <value> <from> <to>",
		Short:   "Convert an activity quantity between units",
		Example: "  carbonctl convert 2 MWh kWh",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: must be a number", args[0])
			}

			got, err := unit.Convert(value, args[1], args[2])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n",
				strconv.FormatFloat(value, 'f', -1, 64), args[1],
				strconv.FormatFloat(got, 'f', -1, 64), args[2])
			return nil
		},
	}
}
