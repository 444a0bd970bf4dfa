package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/dhabedank/retailer-check/internal/tui"
	"github.com/dhabedank/retailer-check/internal/web"
)

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page over HTTP",
	Long: `Start a web server with the retailer search page.

Routes:
  GET  /            search form
  POST /search      form post, renders the details, a warning or an error
  POST /api/search  JSON {"retailer": "..."} in, records out
  GET  /health      liveness check`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addCommonFlags(ServeCmd)
	ServeCmd.Flags().StringVar(&flagValues.Addr, "addr", defaultAddr, "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	log := newServerLogger(verbose)
	a, err := newApp(cmd, log)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(a.searcher, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s Serving %s on %s using %s\n",
		tui.SuccessStyle.Render("✓"),
		tui.TitleStyle.Render(tui.PageTitle),
		a.settings.Addr,
		tui.ModelStyle.Render(a.adapter.Name()+"/"+a.adapter.Model()),
	)
	return srv.Run(ctx, a.settings.Addr)
}
