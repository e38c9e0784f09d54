package history

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/embedpack/pkg/db"
)

func HistoryAction(c *cli.Context) error {
	database, err := db.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
	defer database.Close()

	records, err := database.ListBuilds(c.Int("limit"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}

	if len(records) == 0 {
		fmt.Println("No builds recorded yet. Run 'embedpack build' first.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tSTATUS\tPAGE\tNAMESPACE\tBUNDLE\tSTANDALONE\tERROR")
	for _, rec := range records {
		errMsg := rec.Error
		if len(errMsg) > 60 {
			errMsg = errMsg[:57] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d B\t%d B\t%s\n",
			rec.BuildID,
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Status,
			rec.Page,
			rec.Namespace,
			rec.BundleBytes,
			rec.StandaloneBytes,
			errMsg)
	}
	return w.Flush()
}
