package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hrygo/officehours/server/timezone"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Print the region names queries are matched against",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "REGION\tTIMEZONE\tUTC OFFSET")
		for _, r := range timezone.NewDefaultResolver().Regions() {
			loc, err := timezone.ParseTimezone(r.Timezone)
			if err != nil {
				return err
			}
			_, offset := timezone.NowInTimezone(loc).Zone()
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Timezone, timezone.FormatOffset(offset))
		}
		return w.Flush()
	},
}
