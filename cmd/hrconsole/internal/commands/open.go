package commands

import (
	"context"
	"fmt"
)

type OpenCmd struct {
	Path string `arg:"" help:"View path to navigate to, e.g. /employee-dashboard"`
}

func (o *OpenCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := buildApp(globals)
	if err != nil {
		return err
	}

	rendered := app.router.Navigate(o.Path)
	app.printNotice()

	if rendered == o.Path {
		fmt.Printf("Showing %s\n", rendered)
	} else {
		fmt.Printf("Redirected to %s\n", rendered)
	}

	return nil
}
