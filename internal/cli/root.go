package cli

import (
	fiberzap "github.com/gofiber/contrib/v3/zap"
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/seuros/lpexplorer/internal/config"
	"github.com/seuros/lpexplorer/internal/handlers"
	"github.com/seuros/lpexplorer/internal/logging"
	"github.com/seuros/lpexplorer/internal/middleware"
)

var Version string

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:   "lpexplorer",
	Short: "Landing page performance explorer",
	Long: `LP Explorer - landing page metrics from a published spreadsheet.

LP Explorer fetches a Google Sheet CSV export, keeps the latest reporting day
and serves searchable page metrics with conversion funnels, either over an
HTTP JSON API or straight to the terminal.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Default to serve command if no subcommand provided
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runServe(cmd.Context(), "")
		}
		return cmd.Help()
	},
}

// Execute is called by main
func Execute(version string) error {
	Version = version
	RootCmd.Version = version
	return RootCmd.Execute()
}

// newApp wires the HTTP surface around source.
func newApp(cfg *config.Config, source handlers.SnapshotSource) *fiber.App {
	app := fiber.New(createFiberConfig("LP Explorer " + Version))

	app.Use(recoverer.New())
	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logging.L(),
	}))

	// Add version header to all responses
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-LPExplorer-Version", Version)
		return c.Next()
	})

	app.Get("/health", handleHealth)
	app.Get("/up", handleUp(source)) // container health check
	app.Get("/api/version", handleVersion)

	api := app.Group("/api", middleware.AccessGate(cfg.AccessPassword))
	handlers.NewDashboard(source).Register(api)

	return app
}

func handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "lpexplorer",
	})
}

// handleUp answers 200 once the first snapshot has been published.
func handleUp(source handlers.SnapshotSource) fiber.Handler {
	return func(c fiber.Ctx) error {
		if source.Current() == nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("data not loaded")
		}
		return c.SendStatus(fiber.StatusOK)
	}
}

func handleVersion(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": Version,
	})
}

func init() {
	RootCmd.AddCommand(serveCmd)
	setupSelfUpgrade()

	RootCmd.Version = Version
}
