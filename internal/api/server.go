package api

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rajlabs/route-sitemap/internal/generator"
	"github.com/rajlabs/route-sitemap/internal/storage"
)

type Server struct {
	router *gin.Engine
	port   int
	server *http.Server
}

// NewServer serves the documents in result. store may be nil, in which case
// the run history endpoints answer 503.
func NewServer(port int, result *generator.Result, store storage.Store) *Server {
	router := gin.Default()

	// Setup CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.SetHTMLTemplate(template.Must(template.New("index").Parse(indexTemplate)))

	handler := NewHandler(result, store)

	router.GET("/", handler.Index)
	for _, doc := range handler.documents {
		router.GET("/"+doc.Name(), handler.ServeDocument(doc))
	}
	router.NoRoute(handler.NotFound)

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		api.GET("/routes", handler.ListRoutes)

		runs := api.Group("/runs")
		{
			runs.GET("", handler.ListRuns)
			runs.GET("/:id", handler.GetRun)
		}
	}

	return &Server{
		router: router,
		port:   port,
	}
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head><title>Sitemaps</title></head>
<body>
<h1>Sitemaps</h1>
<p class="route-count">{{.RouteCount}} routes</p>
<ul class="sitemaps">
{{- range .Documents}}
  <li><a href="/{{.Name}}">{{.Name}}</a> <span class="hostname">{{.Hostname}}</span> <span class="url-count">{{.URLCount}}</span></li>
{{- end}}
</ul>
</body>
</html>
`
