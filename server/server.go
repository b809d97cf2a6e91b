package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	v1 "github.com/bookwell/bookwell/api/v1"
	"github.com/bookwell/bookwell/config"
	"github.com/bookwell/bookwell/store"
	"github.com/bookwell/bookwell/version"
	"github.com/bookwell/bookwell/worker"
	"github.com/gorilla/mux"
)

// StartServer starts the HTTP server
func StartServer(ctx context.Context, store *store.Store, uploadPool *worker.UploadPool) (*http.Server, error) {
	addr := config.Opts.Host
	port := config.Opts.Port
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, port),
		Handler: setupHandler(store, uploadPool),
	}

	startHTTPServer(server)

	return server, nil
}

func startHTTPServer(server *http.Server) {
	go func() {
		fmt.Println("Starting HTTP server in:", server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Println("HTTP server error", err)
			os.Exit(1)
		}
	}()
}

func setupHandler(store *store.Store, uploadPool *worker.UploadPool) http.Handler {
	router := mux.NewRouter()

	// Setup the API routes
	v1.Server(router, store, uploadPool)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router
}
