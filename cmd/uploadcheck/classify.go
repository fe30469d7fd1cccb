package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gobeaver/uploadkit"
)

var classifyCommand = &cli.Command{
	Name:      "classify",
	Usage:     "Print the extension, category and MIME type derived from file names",
	ArgsUsage: "NAME...",
	Action:    classify,
}

func classify(cCtx *cli.Context) error {
	if cCtx.NArg() == 0 {
		return cli.Exit("at least one name is required", 2)
	}

	w := cCtx.App.Writer
	for _, name := range cCtx.Args().Slice() {
		info := uploadkit.Classify(name)
		fmt.Fprintf(w, "%s\text=%s\tbase=%s\tcategory=%s\tmime=%s\n",
			name, orDash(info.Extension), orDash(info.BaseName), info.Category, info.MIMEType)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
