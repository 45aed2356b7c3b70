package cli

import (
	"github.com/dukerupert/habitly/internal/tui"
)

type TuiCmd struct{}

func (cmd *TuiCmd) Run(ctx *Context) error {
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}
	store, closer, err := ctx.OpenCache()
	if err != nil {
		return err
	}
	defer closer()

	return tui.Run(client, store)
}
