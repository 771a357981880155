package cli

import (
	"context"

	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdOperations() *cli.Command {
	return &cli.Command{
		Name:    "operations",
		Aliases: []string{"ops"},
		Usage:   "List the available GitHub operations",
		Action: func(ctx context.Context, c *cli.Command) error {
			// Catalog listing only, no API access needed
			policy, err := model.NewAccessPolicy(nil)
			if err != nil {
				return err
			}
			dispatcher := usecase.NewDispatcher(nil, policy)

			return printJSON(map[string]any{
				"operations": dispatcher.Operations(),
			})
		},
	}
}
