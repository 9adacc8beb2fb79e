package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/handler"
	"github.com/deppfellow/jobly/internal/lib/email"
	"github.com/deppfellow/jobly/internal/lib/utils"
	"github.com/deppfellow/jobly/internal/repository"
	"github.com/deppfellow/jobly/internal/router"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
)

// newRoutesCmd prints the route table without connecting to any backend.
func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print every registered HTTP route as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.Nop()
			srv := &server.Server{Config: &config.Config{}, Logger: &log}

			services := service.NewServices(srv, repository.NewRepositories(nil))
			r := router.NewRouter(srv, handler.NewHandlers(srv, services), services)

			routes := r.Routes()
			slices.SortFunc(routes, func(a, b *echo.Route) int {
				if c := strings.Compare(a.Path, b.Path); c != 0 {
					return c
				}
				return strings.Compare(a.Method, b.Method)
			})

			return utils.PrintJSON(cmd.OutOrStdout(), routes)
		},
	}
}

func newEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Email template tools",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "preview <template>",
		Short: "Render an email template with sample data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := email.Template(args[0])

			data, ok := email.PreviewData[name]
			if !ok {
				return fmt.Errorf("unknown template %q", args[0])
			}

			html, err := email.Render(name, data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	})

	return cmd
}
