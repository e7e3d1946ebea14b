package handler

import (
	"net/http"

	"pdf-translate-server/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(pdfHandler *PDFHandler, cfg domain.Config) http.Handler {
	router := mux.NewRouter()

	// Service info endpoint (no version prefix)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"name":    "PDF Translation API",
			"version": "1.0.0",
			"status":  "running",
			"features": []string{
				"PDF Upload & Validation",
				"Text Extraction with Positions",
				"Document Translation via DeepL",
				"Pre-Translation Editing Support",
				"Download Original & Translated PDFs",
			},
		})
	}).Methods("GET")

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":           "healthy",
			"message":          "PDF Translation API is running",
			"temp_dir":         cfg.GetTempDir(),
			"deepl_configured": cfg.GetDeepLAPIKey() != "",
		})
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/upload-pdf", pdfHandler.UploadPDF).Methods("POST")
	api.HandleFunc("/extract-text/{id}", pdfHandler.ExtractText).Methods("GET")
	api.HandleFunc("/update-pdf/{id}", pdfHandler.UpdatePDF).Methods("POST")
	api.HandleFunc("/translate/{id}", pdfHandler.TranslatePDF).Methods("POST")
	api.HandleFunc("/download/{id}/{type}", pdfHandler.DownloadPDF).Methods("GET")
	api.HandleFunc("/cleanup/{id}", pdfHandler.CleanupSession).Methods("DELETE")
	api.HandleFunc("/sessions", pdfHandler.ListSessions).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // React dev server
			"http://localhost:5173", // Vite default
			"http://localhost:5174", // Vite alternate
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
