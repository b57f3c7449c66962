package server

import (
	"net/http"
	"strings"
)

// liveScript swaps the rendered resume whenever the document changes
const liveScript = `<script>
(function () {
  var events = new EventSource("/preview/events");
  events.addEventListener("render", function (e) {
    var root = document.querySelector(".resume-container");
    if (root) { root.outerHTML = JSON.parse(e.data).html; }
  });
})();
</script>
`

// handlePreview returns the standalone preview page. With live=false the
// page is returned exactly as it prints.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	page, err := s.renderer.RenderPage(s.store.State())
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if r.URL.Query().Get("live") != "false" {
		page = strings.Replace(page, "</body>", liveScript+"</body>", 1)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(page)); err != nil {
		s.logger.Debug("failed to write preview", "error", err)
	}
}

// handlePreviewEvents streams a render event after every document change.
// The current render is sent right after the ready event.
func (s *Server) handlePreviewEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, events, cancel := s.broker.Subscribe()
	defer cancel()
	s.logger.Debug("preview client connected", "client_id", id)

	sse.WriteReady(id.String())
	html, err := s.renderer.Render(s.store.State())
	if err != nil {
		sse.WriteError("failed to render preview")
	} else if err := sse.WriteEvent("render", map[string]string{"html": html}); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("preview client disconnected", "client_id", id)
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := sse.WriteEvent(ev.Name, ev.Data); err != nil {
				return
			}
		}
	}
}
