// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/jito-foundation/ncn-template-sub000/api/consensus"
	"github.com/jito-foundation/ncn-template-sub000/engine"
	"github.com/jito-foundation/ncn-template-sub000/log"
	"github.com/jito-foundation/ncn-template-sub000/metrics"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	PprofOn         bool
	EnableReqLogger bool
	EnableMetrics   bool
}

// New return api router
func New(eng *engine.Engine, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	consensus.New(eng).
		Mount(router, "/consensus")

	if opts.EnableMetrics {
		router.Path("/metrics").Handler(metrics.HTTPHandler())
	}

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}
