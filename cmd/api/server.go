package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"moneta/internal/shared/config"
	"moneta/internal/shared/middleware"
)

// Serve runs the main server, and when TLS redirect is enabled an HTTP
// server on :80 that forwards to HTTPS. It blocks until ctx is cancelled,
// then drains both servers.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config) error {
	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	var redirectSrv *http.Server
	if cfg.TLS.Enabled && cfg.TLS.RedirectHTTP {
		redirectSrv = newRedirectServer(cfg.Server.AllowedHosts)
		g.Go(func() error {
			log.Println("HTTP redirect server starting on :80")
			if err := redirectSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("redirect server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if cfg.TLS.Enabled {
			log.Printf("HTTPS server starting on %s", srv.Addr)
			if err := srv.ListenAndServeTLS(cfg.TLS.CertPath, cfg.TLS.KeyPath); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		}

		log.Printf("HTTP server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if redirectSrv != nil {
			if err := redirectSrv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error shutting down HTTP redirect server: %v", err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Println("Server stopped")
	return nil
}

// newRedirectServer creates an HTTP server that redirects all requests to HTTPS.
func newRedirectServer(allowedHosts []string) *http.Server {
	redirectHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Header.Get("X-Forwarded-Host")
		if host == "" {
			host = r.Host
		}

		if !middleware.IsHostAllowed(host, allowedHosts) {
			http.Error(w, "Invalid host", http.StatusBadRequest)
			return
		}

		canonicalHost := host
		if idx := strings.Index(host, ":"); idx != -1 {
			canonicalHost = host[:idx]
		}

		httpsURL := "https://" + canonicalHost + r.RequestURI
		http.Redirect(w, r, httpsURL, http.StatusMovedPermanently)
	})

	return &http.Server{
		Addr:         ":80",
		Handler:      redirectHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
