package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parley-ai/parley/internal/api"
	"github.com/parley-ai/parley/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the parley review and debate engines.

Endpoints:
  GET  /health               — Health and fallback-mode status
  POST /api/analyze          — Analyze a code snippet
  POST /api/suggest          — Generate prioritized suggestions
  POST /api/debate/start     — Open a debate about a change
  POST /api/debate/continue  — Advance a debate by one turn
  GET  /api/ws               — WebSocket for live debate sessions`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 6173, "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")

	client := buildClient()
	mem := store.NewMemory()
	orchestrator := buildOrchestrator(client)
	engine := buildEngine(client, mem)

	listen := fmt.Sprintf("%s:%d", addr, port)
	srv := api.New(listen, orchestrator, engine, mem)
	return srv.ListenAndServe()
}
