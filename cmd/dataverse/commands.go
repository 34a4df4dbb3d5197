package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diwise/dataverse-client/pkg/dataverse/auth"
	"github.com/diwise/dataverse-client/pkg/dataverse/batch"
	"github.com/diwise/dataverse-client/pkg/dataverse/client"
	"github.com/diwise/dataverse-client/pkg/dataverse/query"
	"github.com/diwise/dataverse-client/pkg/dataverse/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RootOptions holds the connection flags shared by all commands
type RootOptions struct {
	URL        string
	APIVersion string
	Token      string
	Debug      bool
}

type ClientFactory func(ctx context.Context, opts *RootOptions) client.DataverseClient

func NewRootCommand(newClient ClientFactory) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "dataverse",
		Short: "Query and modify records in a Dataverse instance",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.URL == "" {
				opts.URL = env.GetVariableOrDefault(cmd.Context(), "DATAVERSE_URL", "")
			}
			if opts.URL == "" {
				return fmt.Errorf("no instance url, use --url or DATAVERSE_URL")
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.URL, "url", "", "instance url, such as https://instance.crm.dynamics.com/")
	cmd.PersistentFlags().StringVar(&opts.APIVersion, "api-version", batch.DefaultVersion, "web api version")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "", "bearer token, client credentials from the environment are used if empty")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "log failed requests")

	cmd.AddCommand(NewQueryCommand(opts, newClient))
	cmd.AddCommand(NewDeleteCommand(opts, newClient))

	return cmd
}

func newClient(ctx context.Context, opts *RootOptions) client.DataverseClient {
	var tokens auth.TokenProvider

	token := opts.Token
	if token == "" {
		token = env.GetVariableOrDefault(ctx, "DATAVERSE_TOKEN", "")
	}

	if token != "" {
		tokens = auth.Static(token)
	} else {
		tokens = auth.NewClientSecret(ctx, withSlash(opts.URL),
			env.GetVariableOrDefault(ctx, "DATAVERSE_TENANT_ID", ""),
			env.GetVariableOrDefault(ctx, "DATAVERSE_CLIENT_ID", ""),
			env.GetVariableOrDefault(ctx, "DATAVERSE_CLIENT_SECRET", ""),
			auth.TokenURL(env.GetVariableOrDefault(ctx, "DATAVERSE_TOKEN_URL", "")),
		)
	}

	return client.NewDataverseClient(opts.URL,
		client.WithTokenProvider(tokens),
		client.Version(opts.APIVersion),
		client.Debug(fmt.Sprintf("%t", opts.Debug)),
	)
}

type queryOptions struct {
	filters []string
	order   []string
	columns []string
	top     uint32
}

func NewQueryCommand(rootOpts *RootOptions, newClient ClientFactory) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <entity-set>",
		Short: "Retrieve records from an entity set, one json object per line",
		Long: `Retrieve records from an entity set, one json object per line.

Equality filters are combined with and. Values are interpreted as null,
booleans, numbers, uuids and RFC3339 timestamps when possible, and as
strings otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := buildQuery(args[0], opts, cmd.Flags().Changed("top"))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			dvc := newClient(ctx, rootOpts)

			out := cmd.OutOrStdout()

			count, err := dvc.RetrieveMultiple(ctx, q, nil, func(record json.RawMessage) error {
				_, err := fmt.Fprintln(out, string(record))
				return err
			})

			logging.GetFromContext(ctx).Debug("query complete", "query", q.String(), "count", count)

			return err
		},
	}

	cmd.Flags().StringArrayVar(&opts.filters, "filter-eq", nil, "field=value equality filter, may be repeated")
	cmd.Flags().Uint32Var(&opts.top, "top", 0, "maximum number of records")
	cmd.Flags().StringArrayVar(&opts.order, "order", nil, "field to order by, optionally followed by asc or desc")
	cmd.Flags().StringSliceVar(&opts.columns, "select", nil, "columns to retrieve")

	return cmd
}

func buildQuery(entitySet string, opts *queryOptions, limited bool) (query.Query, error) {
	q := query.New(entitySet).Select(opts.columns...)

	if limited {
		q = q.Limit(opts.top)
	}

	var filter query.Filter

	for _, f := range opts.filters {
		field, value, ok := strings.Cut(f, "=")
		if !ok || field == "" {
			return q, fmt.Errorf("invalid filter %q, expected field=value", f)
		}

		eq := query.Equal(field, parseAttribute(value))

		if filter.IsEmpty() {
			filter = eq
		} else {
			filter = filter.And(eq)
		}
	}

	q = q.Filter(filter)

	order := make([]query.Order, 0, len(opts.order))
	for _, o := range opts.order {
		parts := strings.Fields(o)

		switch {
		case len(parts) == 1:
			order = append(order, query.Ascending(parts[0]))
		case len(parts) == 2 && strings.EqualFold(parts[1], "asc"):
			order = append(order, query.Ascending(parts[0]))
		case len(parts) == 2 && strings.EqualFold(parts[1], "desc"):
			order = append(order, query.Descending(parts[0]))
		default:
			return q, fmt.Errorf("invalid order %q, expected field [asc|desc]", o)
		}
	}

	return q.OrderBy(order...), nil
}

func NewDeleteCommand(rootOpts *RootOptions, newClient ClientFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <entity-set> <id>...",
		Short: "Delete records from an entity set in a single batch",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := batch.New(withSlash(rootOpts.URL), batch.Version(rootOpts.APIVersion))

			for _, arg := range args[1:] {
				id, err := uuid.Parse(arg)
				if err != nil {
					return fmt.Errorf("invalid id %q: %w", arg, err)
				}

				if err = b.Delete(types.NewEntityReference(args[0], id)); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			dvc := newClient(ctx, rootOpts)

			result, err := dvc.Execute(ctx, b)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d records\n", len(result.Responses))

			return nil
		},
	}

	return cmd
}

func withSlash(url string) string {
	if strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}
