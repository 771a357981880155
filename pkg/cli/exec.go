package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shears/pkg/cli/config"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdExec() *cli.Command {
	var (
		githubCfg config.GitHub
		params    string
	)

	flags := append(githubCfg.Flags(),
		&cli.StringFlag{
			Name:        "params",
			Aliases:     []string{"p"},
			Usage:       "Operation parameters as a JSON object",
			Value:       "{}",
			Destination: &params,
		},
	)

	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"x"},
		Usage:     "Execute a single GitHub operation and print the result",
		ArgsUsage: "<operation>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if c.Args().Len() != 1 {
				return goerr.New("exactly one operation name is required")
			}
			operation := c.Args().First()

			var p model.Params
			if err := json.Unmarshal([]byte(params), &p); err != nil {
				return goerr.Wrap(err, "failed to parse --params as JSON",
					goerr.V("params", params),
				)
			}

			policy, err := model.NewAccessPolicy(githubCfg.Repositories)
			if err != nil {
				return err
			}

			gh, err := githubCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			dispatcher := usecase.NewDispatcher(gh, policy)

			logger.Debug("Executing operation", "operation", operation)

			result, err := dispatcher.Dispatch(ctx, &model.DispatchRequest{
				Operation:  operation,
				Parameters: p,
			})
			if err != nil {
				return err
			}

			if err := printJSON(result); err != nil {
				return err
			}

			if !result.Success {
				return goerr.New("operation failed",
					goerr.V("operation", operation),
					goerr.V("code", result.Error.Code),
				)
			}

			return nil
		},
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}
