package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jrsteele09/go-stock-server/client"
	"github.com/jrsteele09/go-stock-server/internal/config"
	"github.com/jrsteele09/go-stock-server/internal/errors"
	"github.com/jrsteele09/go-stock-server/products"
	"github.com/jrsteele09/go-stock-server/sessions"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const apiURLEnvVar = "STOCK_API_URL"

type rootOptions struct {
	apiURL      string
	sessionFile string
	timeout     time.Duration
	verbose     bool
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.apiURL, sessions.NewFileStore(o.sessionFile))
}

func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "stockctl",
		Short:         "Manage inventory on a stock server",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", config.GetEnv(apiURLEnvVar, "http://localhost:3000"), "base URL of the stock server")
	cmd.PersistentFlags().StringVar(&opts.sessionFile, "session-file", sessions.DefaultPath(), "where the login credential is kept")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newListCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
	)
	return cmd
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			c := opts.client()
			defer c.Close()

			session, err := c.Login(ctx, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", session.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			c := opts.client()
			defer c.Close()

			list, err := c.List(ctx)
			if err != nil {
				return explain(err)
			}
			printProducts(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

// productFlags binds the payload flags shared by create and update
func productFlags(cmd *cobra.Command, req *client.ProductRequest) {
	cmd.Flags().StringVar(&req.SKU, "sku", "", "stock keeping unit")
	cmd.Flags().StringVar(&req.Name, "name", "", "product name")
	cmd.Flags().IntVar(&req.Quantity, "quantity", 0, "units in stock")
	_ = cmd.MarkFlagRequired("sku")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("quantity")
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var req client.ProductRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			c := opts.client()
			defer c.Close()

			created, err := c.Create(ctx, req)
			if err != nil {
				return explain(err)
			}
			printProducts(cmd.OutOrStdout(), []products.Product{*created})
			return nil
		},
	}
	productFlags(cmd, &req)
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var req client.ProductRequest

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a product's sku, name and quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			c := opts.client()
			defer c.Close()

			updated, err := c.Update(ctx, args[0], req)
			if err != nil {
				return explain(err)
			}
			printProducts(cmd.OutOrStdout(), []products.Product{*updated})
			return nil
		},
	}
	productFlags(cmd, &req)
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			c := opts.client()
			defer c.Close()

			msg, err := c.Delete(ctx, args[0])
			if err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

// explain adds a hint when the session has been dropped.
func explain(err error) error {
	if errors.Is(err, errors.ErrNotLoggedIn) || errors.Is(err, errors.ErrUnauthorized) || errors.Is(err, errors.ErrForbidden) {
		return fmt.Errorf("%w (run 'stockctl login' to sign in)", err)
	}
	return err
}

func printProducts(out io.Writer, list []products.Product) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSKU\tNAME\tQUANTITY")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", p.ID, p.SKU, p.Name, p.Quantity)
	}
	_ = tw.Flush()
}
