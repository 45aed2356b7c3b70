package cli

import (
	"context"
	"fmt"
)

type ItemAddCmd struct {
	EventID       int64  `arg:"" help:"Event (habit list) id the item belongs to."`
	Name          string `arg:"" help:"Item name."`
	ResponsibleID int64  `short:"r" required:"" help:"User id responsible for the item."`
}

func (cmd *ItemAddCmd) Run(ctx *Context) error {
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}

	item, ok := client.CreateItem(context.Background(), cmd.EventID, cmd.Name, cmd.ResponsibleID)
	if !ok {
		return fmt.Errorf("create item failed (see log for detail)")
	}
	fmt.Printf("Created item #%d %q (responsible: %s, status: %s)\n",
		item.ID, item.Name, item.Responsible.Username, item.Status)
	return nil
}
