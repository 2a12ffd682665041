package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SachinLearns/File-Converter/internal/config"
	"github.com/SachinLearns/File-Converter/internal/handler"
	"github.com/SachinLearns/File-Converter/internal/repository"
	"github.com/SachinLearns/File-Converter/internal/service"
	"github.com/SachinLearns/File-Converter/internal/worker"
)

type Server struct {
	httpServer *http.Server
	pool       *worker.Pool
	cfg        *config.Config
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(bodySizeLimit(cfg.App.MaxUploadSize))

	router.LoadHTMLGlob("web/templates/*")

	scratch := repository.NewScratchRepository(&cfg.App, log)
	pool := worker.NewPool(cfg.Convert.WorkerCount, cfg.Convert.Timeout, log)
	conversionService := service.NewConversionService(pool, log)

	h := handler.NewHandler(conversionService, scratch, log)

	router.GET("/", h.GetUI)
	router.GET("/health", h.HealthCheck)
	router.POST("/upload_heic", h.ConvertHEIC)
	router.POST("/upload_pdf", h.ConvertPDFToImages)
	router.POST("/upload_images", h.ConvertImagesToPDF)
	router.POST("/upload_pdf_to_docx", h.ConvertPDFToDocx)

	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:        router,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   5 * time.Minute,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		pool: pool,
		cfg:  cfg,
		log:  log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Int64("max_upload_size", cfg.App.MaxUploadSize))

	return server, nil
}

// bodySizeLimit caps the request body before any handler logic runs, so an
// oversized upload never reaches a conversion route.
func bodySizeLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func (s *Server) Run() error {
	s.pool.Start()

	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")

	err := s.httpServer.Shutdown(ctx)
	s.pool.Stop()
	return err
}
