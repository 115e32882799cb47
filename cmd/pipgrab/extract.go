package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pipgrab"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	download := !c.NoDownload
	req := &pipgrab.ExtractRequest{
		URL:                   c.URL,
		DownloadImages:        &download,
		CustomOutputDirectory: c.Output,
	}

	result, err := pipgrab.Run(deps.Ctx, deps.Service, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pipgrab.ErrorMessage(err))
		return err
	}

	if c.Format == "markdown" {
		_, err = fmt.Fprint(deps.Stdout, pipgrab.FormatMarkdown(result))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
