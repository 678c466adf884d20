// Package http provides the web UI and sitemap discovery for paraglide.
package http

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sheikhomar/paraglide"
)

//go:embed templates/*.html
var templatesFS embed.FS

// WorkSituations are the employment situations the UI offers, matching
// the distinctions the statute itself makes.
var WorkSituations = []string{
	"lønmodtager",
	"selvstændig",
	"ledig",
	"studerende",
	"søfarende",
	"anden",
}

// workSituationOther is the option that reveals the free-text field.
const workSituationOther = "anden"

// suggestedQuestions seed the question field for first-time visitors.
var suggestedQuestions = []string{
	"Hvor mange ugers barsel har jeg ret til?",
	"Kan jeg få barselsdagpenge?",
}

const welcomeText = "Hej 👋\n\n" +
	"Jeg er Lærbar.\n\n" +
	"Jeg er kan hjælpe dig med at forstå barselsloven.\n" +
	"Skriv dit spørgsmål eller forespørgsel i chatten\n" +
	"nedenunder, så vil jeg forsøge at svare dig.\n"

// Server serves the parental leave question UI.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux
	tmpl   *template.Template

	// Addr is the bind address, e.g. ":8080".
	Addr string

	QAService paraglide.QAService
}

// NewServer creates a new Server. Routes are registered immediately;
// services must be set before Open.
func NewServer() *Server {
	s := &Server{
		mux: http.NewServeMux(),
		tmpl: template.Must(template.New("").Funcs(template.FuncMap{
			"markdown": renderMarkdown,
		}).ParseFS(templatesFS, "templates/*.html")),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /ask", s.handleAsk)

	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// ServeHTTP dispatches requests to the server's routes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Open begins listening on the configured address.
func (s *Server) Open() error {
	if s.Addr == "" {
		return paraglide.Errorf(paraglide.EINVALID, "server address required")
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr, err)
	}
	s.ln = ln

	go func() {
		_ = s.server.Serve(ln)
	}()

	return nil
}

// URL returns the base URL the server is listening on.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// indexData is the template context for the index page.
type indexData struct {
	Welcome            string
	WorkSituations     []string
	SituationOther     string
	SuggestedQuestions []string
	Question           string
	Situation          string
	SituationText      string
	Response           string
	Error              string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, indexData{
		Welcome:            welcomeText,
		WorkSituations:     WorkSituations,
		SituationOther:     workSituationOther,
		SuggestedQuestions: suggestedQuestions,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	question := strings.TrimSpace(r.PostFormValue("question"))
	situation := r.PostFormValue("situation")
	situationText := strings.TrimSpace(r.PostFormValue("situation_text"))

	data := indexData{
		Welcome:            welcomeText,
		WorkSituations:     WorkSituations,
		SituationOther:     workSituationOther,
		SuggestedQuestions: suggestedQuestions,
		Question:           question,
		Situation:          situation,
		SituationText:      situationText,
	}

	if question == "" {
		data.Error = "Skriv venligst et spørgsmål."
		s.render(w, http.StatusBadRequest, data)
		return
	}

	// Choosing "anden" replaces the canned option with the visitor's own
	// description of their situation.
	if situation == workSituationOther {
		situation = situationText
	}

	query := paraglide.StatuteQuery{Question: question}
	if situation != "" {
		query.SituationalContext = map[string]string{"arbejdsforhold": situation}
	}

	var sb strings.Builder
	if err := s.QAService.Respond(r.Context(), query, func(text string) {
		sb.WriteString(text)
	}); err != nil {
		data.Error = "Der skete en fejl under søgningen. Prøv igen om lidt."
		s.render(w, http.StatusInternalServerError, data)
		return
	}

	data.Response = sb.String()
	s.render(w, http.StatusOK, data)
}

func (s *Server) render(w http.ResponseWriter, status int, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		// Headers are already sent; nothing sensible left to do.
		return
	}
}

// renderMarkdown converts the bold markers used in responses into HTML.
// Everything else is escaped.
func renderMarkdown(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)

	var sb strings.Builder
	open := false
	for {
		i := strings.Index(escaped, "**")
		if i < 0 {
			sb.WriteString(escaped)
			break
		}
		sb.WriteString(escaped[:i])
		if open {
			sb.WriteString("</strong>")
		} else {
			sb.WriteString("<strong>")
		}
		open = !open
		escaped = escaped[i+2:]
	}
	if open {
		sb.WriteString("</strong>")
	}

	return template.HTML(strings.ReplaceAll(sb.String(), "\n", "<br>"))
}
