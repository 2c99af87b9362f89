package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/textintel/go_content_authenticity/pkg/airate"
	"github.com/textintel/go_content_authenticity/pkg/report"
	"github.com/textintel/go_content_authenticity/pkg/similarity"
	"github.com/valyala/fasthttp"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

var (
	comparator *similarity.Comparator
	estimator  *airate.Estimator
	logger     l.Logger
)

// CompareRequest represents a pairwise comparison request.
type CompareRequest struct {
	Source    string  `json:"source"`
	Reference string  `json:"reference"`
	Threshold float64 `json:"threshold,omitempty"`
}

// ReferencesRequest represents a corpus scan request.
type ReferencesRequest struct {
	Source     string                       `json:"source"`
	References []similarity.ReferenceRecord `json:"references"`
	Threshold  float64                      `json:"threshold,omitempty"`
	TopK       int                          `json:"top_k,omitempty"`
	Format     string                       `json:"format,omitempty"`
}

// AiRateRequest represents an AI-likelihood estimation request.
type AiRateRequest struct {
	Text      string  `json:"text"`
	Threshold float64 `json:"threshold,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Perform engine warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting authenticity HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	initEngines(*warmUp)

	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initEngines initializes the default comparator and estimator used for
// requests that do not override the threshold.
func initEngines(warmUp bool) {
	var err error
	opts := []similarity.Option{
		similarity.WithOptimizedPreparer(),
		similarity.WithLogger(logger),
	}
	if warmUp {
		opts = append(opts, similarity.WithWarmUp(true))
	}
	comparator, err = similarity.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize comparator", "error", err)
		os.Exit(1)
	}

	estOpts := []airate.Option{airate.WithLogger(logger)}
	if warmUp {
		estOpts = append(estOpts, airate.WithWarmUp(true))
	}
	estimator, err = airate.New(estOpts...)
	if err != nil {
		logger.Error("Failed to initialize estimator", "error", err)
		os.Exit(1)
	}

	logger.Info("Authenticity engines initialized successfully",
		"warm_up", warmUp,
		"cpus", runtime.NumCPU(),
	)
}

// requestHandler is the main fasthttp request handler.
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "AuthenticityServer")

	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/compare":
		handleCompare(ctx)
	case "/references":
		handleReferences(ctx)
	case "/references/report":
		handleReferencesReport(ctx)
	case "/airate":
		handleAiRate(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests.
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleCompare handles pairwise comparison requests.
func handleCompare(ctx *fasthttp.RequestCtx) {
	var req CompareRequest
	if !decodePost(ctx, &req) {
		return
	}
	if req.Source == "" || req.Reference == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Both source and reference texts are required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	comp, ok := comparatorFor(ctx, req.Threshold, 0)
	if !ok {
		return
	}
	result := comp.Compare(c, req.Source, req.Reference)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, result)
}

// handleReferences handles corpus scan requests.
func handleReferences(ctx *fasthttp.RequestCtx) {
	var req ReferencesRequest
	if !decodePost(ctx, &req) {
		return
	}
	if req.Source == "" || len(req.References) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Source text and at least one reference are required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	comp, ok := comparatorFor(ctx, req.Threshold, req.TopK)
	if !ok {
		return
	}
	refs := similarity.DedupeRecords(similarity.NormalizeRecords(req.References, 0))
	result := comp.ScanReferences(c, req.Source, refs)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, result)
}

// handleReferencesReport runs a corpus scan and renders it as markdown or CSV.
func handleReferencesReport(ctx *fasthttp.RequestCtx) {
	var req ReferencesRequest
	if !decodePost(ctx, &req) {
		return
	}
	if req.Source == "" || len(req.References) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Source text and at least one reference are required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	comp, ok := comparatorFor(ctx, req.Threshold, req.TopK)
	if !ok {
		return
	}
	refs := similarity.DedupeRecords(similarity.NormalizeRecords(req.References, 0))
	result := comp.ScanReferences(c, req.Source, refs)

	ctx.SetStatusCode(fasthttp.StatusOK)
	switch req.Format {
	case "csv":
		ctx.Response.Header.Set("Content-Type", "text/csv; charset=utf-8")
		ctx.SetBodyString(report.CSV(result))
	default:
		ctx.Response.Header.Set("Content-Type", "text/markdown; charset=utf-8")
		ctx.SetBodyString(report.Markdown(result))
	}
}

// handleAiRate handles AI-likelihood estimation requests.
func handleAiRate(ctx *fasthttp.RequestCtx) {
	var req AiRateRequest
	if !decodePost(ctx, &req) {
		return
	}
	if req.Text == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Text is required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	est := estimator
	if req.Threshold != 0 {
		var err error
		est, err = airate.New(airate.WithThreshold(req.Threshold), airate.WithLogger(logger))
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			writeJSONError(ctx, "Failed to configure estimator")
			return
		}
	}
	result := est.Estimate(c, req.Text)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, result)
}

// comparatorFor returns the shared comparator, or a per-request one when the
// caller overrides the threshold or top-k.
func comparatorFor(ctx *fasthttp.RequestCtx, threshold float64, topK int) (*similarity.Comparator, bool) {
	if threshold == 0 && topK == 0 {
		return comparator, true
	}
	opts := []similarity.Option{
		similarity.WithOptimizedPreparer(),
		similarity.WithLogger(logger),
	}
	if threshold != 0 {
		opts = append(opts, similarity.WithThreshold(threshold))
	}
	if topK != 0 {
		opts = append(opts, similarity.WithTopK(topK))
	}
	comp, err := similarity.New(opts...)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Failed to configure comparator")
		return nil, false
	}
	return comp, true
}

// decodePost parses a POST body into dst, writing the error response itself
// when parsing fails.
func decodePost(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return false
	}
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// writeJSONResponse writes a JSON response to the context.
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context.
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}
	ctx.SetBody(response)
}

// createLogger creates and configures a logger.
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
