package db

import (
	"fmt"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"

	"github.com/banshee-data/acoustic.space/internal/httputil"
)

// AttachAdminRoutes mounts the tsweb debugger on mux with a tailsql console
// over the mirror and a JSON dump of the category_counts view.
func (db *DB) AttachAdminRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("failed to create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://acoustic", db.DB, &tailsql.DBOptions{
		Label: "Vocalizations",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("categories", "Calls per valence-arousal class", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counts, err := db.CategoryCounts()
		if err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		httputil.WriteJSONOK(w, counts)
	}))
	return nil
}
