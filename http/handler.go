package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/ivhu/farmstand"
	"github.com/ivhu/farmstand/session"
)

// maxUploadBodySize caps the aggregate multipart body. Individual files are
// still bounded by farmstand.MaxUploadSize; this bounds the whole request so
// a multi-file gallery upload cannot stream arbitrarily much.
const maxUploadBodySize = 64 << 20

type Service interface {
	ListProducts(ctx context.Context) ([]farmstand.Product, error)
	CreateProduct(ctx context.Context, in farmstand.CreateProduct) (farmstand.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListGallery(ctx context.Context) ([]farmstand.GalleryItem, error)
	AddGalleryItem(ctx context.Context, src, caption string) (farmstand.GalleryItem, error)
	SaveImage(ctx context.Context, originalName string, size int64, content io.Reader) (string, error)
	UploadGalleryImage(ctx context.Context, originalName string, size int64, content io.Reader, caption string) (farmstand.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) error
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type HandlerConfig struct {
	// SecureCookies marks the session cookie Secure; set in production.
	SecureCookies bool
	CORS          CORSConfig
}

// Handler provides HTTP handlers for the storefront and admin operations.
type Handler struct {
	config      HandlerConfig
	service     Service
	credentials farmstand.CredentialProvider
	sessions    session.Store
	codec       *session.Codec
	images      fs.FS
}

// NewHandler creates a new Handler. The images FS backs static serving under
// /images/.
func NewHandler(config *HandlerConfig, service Service, credentials farmstand.CredentialProvider, sessions session.Store, codec *session.Codec, images fs.FS) *Handler {
	return &Handler{
		config:      *config,
		service:     service,
		credentials: credentials,
		sessions:    sessions,
		codec:       codec,
		images:      images,
	}
}

// Router returns an http.Handler with the storefront routes configured.
// Catalog and gallery reads, image serving, and the login flow are public;
// every write and the admin listings require a session.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Get("/api/products", h.handleListProducts)
	r.Get("/api/gallery", h.handleListGallery)
	r.Handle("/images/*", http.StripPrefix(farmstand.ImagePathPrefix, http.FileServerFS(h.images)))

	r.Post("/admin/login", h.handleLogin)
	r.Post("/admin/logout", h.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(RequireAdmin(h.sessions, h.codec))

		r.Get("/admin/api/products", h.handleListProducts)
		r.Get("/admin/api/gallery", h.handleListGallery)

		r.Post("/api/products", h.handleCreateProduct)
		r.Delete("/api/products/{id}", h.handleDeleteProduct)
		r.Post("/api/products/upload", h.handleProductUpload)

		r.Post("/api/gallery", h.handleAddGalleryItem)
		r.Post("/api/gallery/upload", h.handleGalleryUpload)
		r.Delete("/api/gallery/{id}", h.handleDeleteGalleryItem)
	})

	return r
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) handleListGallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListGallery(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, items)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	principal, err := h.credentials.Authenticate(req.Username, req.Password)
	if err != nil {
		HandleError(w, err)
		return
	}

	id, err := h.sessions.Create(r.Context(), principal)
	if err != nil {
		HandleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    h.codec.Encode(id),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	_ = WriteJSON(w, http.StatusOK, principal)
}

// handleLogout destroys the session if the cookie verifies and always clears
// the cookie. Logging out without a session is not an error.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if id, decodeErr := h.codec.Decode(cookie.Value); decodeErr == nil {
			if destroyErr := h.sessions.Destroy(r.Context(), id); destroyErr != nil {
				slog.Warn("failed to destroy session", "err", destroyErr)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in farmstand.CreateProduct
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	product, err := h.service.CreateProduct(r.Context(), in)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusCreated, product)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type uploadResponse struct {
	Src string `json:"src"`
}

// handleProductUpload stores a single image file and returns its public src.
// Creating the product that references it is a separate request.
func (h *Handler) handleProductUpload(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	src, err := h.service.SaveImage(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, uploadResponse{Src: src})
}

type addGalleryRequest struct {
	Src     string `json:"src"`
	Caption string `json:"caption"`
}

func (h *Handler) handleAddGalleryItem(w http.ResponseWriter, r *http.Request) {
	var req addGalleryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	item, err := h.service.AddGalleryItem(r.Context(), req.Src, req.Caption)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusCreated, item)
}

// handleGalleryUpload accepts one or more files under the "image" field with
// a shared caption and creates a gallery item per file. Items created before
// a failing file are kept; the response reports the failure.
func (h *Handler) handleGalleryUpload(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}

	headers := r.MultipartForm.File["image"]
	if len(headers) == 0 {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	caption := r.FormValue("caption")

	items := make([]farmstand.GalleryItem, 0, len(headers))
	for _, header := range headers {
		item, err := h.uploadOneGalleryFile(r.Context(), header, caption)
		if err != nil {
			HandleError(w, err)
			return
		}
		items = append(items, item)
	}

	_ = WriteJSON(w, http.StatusCreated, items)
}

func (h *Handler) uploadOneGalleryFile(ctx context.Context, header *multipart.FileHeader, caption string) (farmstand.GalleryItem, error) {
	file, err := header.Open()
	if err != nil {
		return farmstand.GalleryItem{}, err
	}
	defer func() { _ = file.Close() }()

	return h.service.UploadGalleryImage(ctx, header.Filename, header.Size, file, caption)
}

func (h *Handler) handleDeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteGalleryItem(r.Context(), id); err != nil {
		HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseUpload bounds and parses a multipart body, writing the error response
// itself when parsing fails.
func (h *Handler) parseUpload(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodySize)

	if err := r.ParseMultipartForm(farmstand.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, http.StatusBadRequest, "File too large")
			return false
		}
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return false
	}

	return true
}

// openUpload parses the body and opens the single "image" file, writing the
// error response itself when either step fails.
func (h *Handler) openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	if !h.parseUpload(w, r) {
		return nil, nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return nil, nil, false
	}

	return file, header, true
}
