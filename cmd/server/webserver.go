package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// webServer creates a server serving files in the static folder
// plus the websocket endpoint viewers connect to.
// Handlers' contexts are canceled together with ctx.
func webServer(ctx context.Context, addr, static string, v *viewers) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(static, v),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Printf("listening on http://localhost%s", addr)
	return srv
}

func newMux(static string, v *viewers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(v))
	mux.Handle("/", http.FileServer(http.Dir(static)))
	return mux
}

// websocketHandler handles the http ws endpoint
// and serves the viewer until either side goes away.
func websocketHandler(v *viewers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: restrict to the served host once deployed behind a proxy
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		err = v.serve(r.Context(), c)
		if err != nil && r.Context().Err() == nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				log.Printf("viewer %s: %v", r.RemoteAddr, err)
			}
		}
		c.Close(websocket.StatusNormalClosure, "")
	}
}
