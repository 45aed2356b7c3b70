package cli

import (
	"context"
	"fmt"
)

type UsersCmd struct{}

func (cmd *UsersCmd) Run(ctx *Context) error {
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}

	users := client.FetchAllUsers(context.Background())
	if len(users) == 0 {
		fmt.Println("No users.")
		return nil
	}
	for _, u := range users {
		fmt.Printf("#%d  %s  %s %s  <%s>\n", u.ID, u.Username, u.FirstName, u.LastName, u.Email)
	}
	return nil
}
