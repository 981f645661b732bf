//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/c5dispatch/cad-go/auth"
	"github.com/c5dispatch/cad-go/conf"
	"github.com/c5dispatch/cad-go/directory"
	"github.com/c5dispatch/cad-go/dispatch"
	"github.com/c5dispatch/cad-go/lib/authz"
	"github.com/c5dispatch/cad-go/lib/herr"
)

func AddToMux(
	mux *http.ServeMux,
	es *EventSourcerer,
	cfg *conf.CADConfig,
	orch *dispatch.Orchestrator,
	userStore *directory.UserStore,
) *http.ServeMux {
	if mux == nil {
		mux = http.NewServeMux()
	}

	jwter := auth.JWTer{SecretKey: cfg.Core.JWTSecret}

	mux.Handle("POST /cad/api/auth",
		Adapt(
			PostAuth{userStore, cfg.Core.JWTSecret, cfg.Core.AccessTokenLifetime},
			RecoverFromPanic(),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
			// This endpoint does not require authentication, nor
			// does it even consider the request's Authorization header,
			// because the point of this is to make a new JWT.
		),
	)

	mux.Handle("GET /cad/api/auth",
		Adapt(
			GetAuth{},
			RecoverFromPanic(),
			// Unauthenticated callers get a valid response here too
			OptionalAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("GET /cad/api/incidents",
		Adapt(
			GetIncidents{orch},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("POST /cad/api/incidents",
		Adapt(
			NewIncident{orch, es},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("GET /cad/api/incidents/{incidentId}",
		Adapt(
			GetIncident{orch},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("POST /cad/api/incidents/{incidentId}/assignment",
		Adapt(
			AssignUnit{orch, es},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("POST /cad/api/incidents/{incidentId}/status",
		Adapt(
			SetIncidentStatus{orch, es},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("POST /cad/api/incidents/{incidentId}/override_close",
		Adapt(
			OverrideClose{orch, es},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("GET /cad/api/incidents/{incidentId}/evidence",
		Adapt(
			GetEvidence{orch},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("POST /cad/api/incidents/{incidentId}/evidence",
		Adapt(
			AttachEvidence{orch, es},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("GET /cad/api/incidents/{incidentId}/timeline",
		Adapt(
			GetTimeline{orch},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("GET /cad/api/incidents/{incidentId}/sla",
		Adapt(
			GetSLA{orch},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("GET /cad/api/incidents/{incidentId}/suggested_unit",
		Adapt(
			GetSuggestedUnit{orch},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("GET /cad/api/incidents/{incidentId}/can_close",
		Adapt(
			GetClosureCheck{orch},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("GET /cad/api/units",
		Adapt(
			GetUnits{orch},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("POST /cad/api/units/{unitId}/status",
		Adapt(
			SetUnitStatus{orch, es},
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("GET /cad/api/eventsource",
		Adapt(
			es.Server.Handler(EventSourceChannel),
			RecoverFromPanic(),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	AddBasicHandlers(mux)

	return mux
}

// AddBasicHandlers registers the unauthenticated utility endpoints.
// They are split out so that a test or a minimal server can mount them
// without the full API.
func AddBasicHandlers(mux *http.ServeMux) *http.ServeMux {
	if mux == nil {
		mux = http.NewServeMux()
	}

	mux.HandleFunc("GET /",
		func(w http.ResponseWriter, req *http.Request) {
			herr.WriteOKResponse(w, "CAD")
		},
	)

	mux.HandleFunc("GET /cad/api/ping",
		func(w http.ResponseWriter, req *http.Request) {
			herr.WriteOKResponse(w, "ack")
		},
	)

	mux.HandleFunc("GET /cad/api/debug/buildinfo",
		func(w http.ResponseWriter, req *http.Request) {
			bi := buildInfo()
			herr.WriteOKResponse(w, bi.String())
		},
	)

	return mux
}

var buildInfo = sync.OnceValue[debug.BuildInfo](func() debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if ok {
		return *bi
	}
	// Not really reachable in a normal binary. The values are only
	// informational anyway.
	slog.Info("Build info was unavailable, so an empty placeholder will be used instead")
	return debug.BuildInfo{}
})

type Adapter func(http.Handler) http.Handler

// responseWriter is a wrapper around http.ResponseWriter that lets us
// capture details about the response.
type responseWriter struct {
	http.ResponseWriter
	http.Flusher
	code int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.code = code
	rw.ResponseWriter.WriteHeader(code)
}

func LimitRequestBytes(maxRequestBytes int64) Adapter {
	return func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, maxRequestBytes)
	}
}

func LogRequest() Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			writ := &responseWriter{w, w.(http.Flusher), http.StatusOK}

			next.ServeHTTP(writ, r)

			username := "(unauthenticated)"
			jwtCtx, _ := r.Context().Value(JWTContextKey).(JWTContext)
			if jwtCtx.Claims != nil {
				username = jwtCtx.Claims.OperatorHandle()
			}

			durationMS := float64(time.Since(start).Microseconds()) / 1000.0

			slog.Debug(fmt.Sprintf("Served request for: %v %v ", r.Method, r.URL.Path),
				"duration", fmt.Sprintf("%.3fms", durationMS),
				"method", r.Method,
				"user", username,
				"code", writ.code,
				"remote-addr", r.RemoteAddr,
			)
		})
	}
}

func RecoverFromPanic() Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					slog.Error("Recovered from panic", "err", err)
					debug.PrintStack()
					http.Error(w, "The server malfunctioned", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type ContextKey string

const JWTContextKey ContextKey = "JWTContext"

type JWTContext struct {
	Claims *authz.CADClaims
	Error  error
}

func OptionalAuthN(j auth.JWTer) Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			claims, err := j.AuthenticateSessionToken(strings.TrimPrefix(header, "Bearer "))
			ctx := context.WithValue(r.Context(), JWTContextKey, JWTContext{
				Claims: claims,
				Error:  err,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAuthN(j auth.JWTer) Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			claims, err := j.AuthenticateSessionToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil || claims == nil {
				handleErr(w, r, http.StatusUnauthorized, "Invalid Authorization token", err)
				return
			}
			jwtCtx := context.WithValue(r.Context(), JWTContextKey, JWTContext{
				Claims: claims,
				Error:  err,
			})
			next.ServeHTTP(w, r.WithContext(jwtCtx))
		})
	}
}

func Adapt(handler http.Handler, adapters ...Adapter) http.Handler {
	for i := range adapters {
		adapter := adapters[len(adapters)-1-i] // range in reverse
		handler = adapter(handler)
	}
	return handler
}
