package transport

import (
	"net/http"

	"learnkart/internal/domain"
	"learnkart/internal/middleware"
	"learnkart/internal/repository"
	"learnkart/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductRequest is the admin body for adding a product
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Category    string  `json:"category" validate:"required,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	AgeMin      int     `json:"ageMin" validate:"gte=0"`
	AgeMax      int     `json:"ageMax" validate:"gte=0"`
	GradeMin    int     `json:"gradeMin" validate:"gte=0"`
	GradeMax    int     `json:"gradeMax" validate:"gte=0"`
	Interests   string  `json:"interests" validate:"interests"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url,max=500"`
}

// ServiceRequest is the admin body for adding a service
type ServiceRequest struct {
	Name           string  `json:"name" validate:"required,max=255"`
	TutorName      string  `json:"tutorName" validate:"required,max=255"`
	Category       string  `json:"category" validate:"required,max=100"`
	Description    string  `json:"description"`
	Price          float64 `json:"price" validate:"gte=0"`
	AgeMin         int     `json:"ageMin" validate:"gte=0"`
	AgeMax         int     `json:"ageMax" validate:"gte=0"`
	Location       string  `json:"location" validate:"max=255"`
	Address        string  `json:"address" validate:"max=500"`
	Rating         float64 `json:"rating"`
	ReviewsCount   int     `json:"reviewsCount" validate:"gte=0"`
	Interests      string  `json:"interests" validate:"interests"`
	Experience     string  `json:"experience" validate:"max=100"`
	Qualifications string  `json:"qualifications" validate:"max=500"`
	Area           string  `json:"area" validate:"max=255"`
}

// CatalogHandler serves products and services
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes mounts the public catalog and the admin write endpoints
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{productId}", h.GetProduct)
	r.Get("/api/services", h.ListServices)
	r.Get("/api/services/{serviceId}", h.GetService)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Post("/products", h.CreateProduct)
		r.Post("/services", h.CreateService)
	})
}

// ListProducts returns the whole product catalog
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(products))
}

// GetProduct returns a single product
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "productId", repository.ErrProductNotFound)
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(*product))
}

// ListServices returns every service regardless of area
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.ListServices(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list services")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, toServiceResponses(services))
}

// GetService returns a single service
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "serviceId", repository.ErrServiceNotFound)
	if !ok {
		return
	}

	svc, err := h.catalogService.GetService(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get service")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, toServiceResponse(*svc))
}

// CreateProduct adds a product to the catalog
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithDecodeError(w, err)
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Ages:        domain.Range{Min: req.AgeMin, Max: req.AgeMax},
		Grades:      domain.Range{Min: req.GradeMin, Max: req.GradeMax},
		Interests:   domain.ParseInterests(req.Interests),
		ImageURL:    req.ImageURL,
	}
	if err := h.catalogService.CreateProduct(r.Context(), product); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, toProductResponse(*product))
}

// CreateService adds a service to the catalog
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithDecodeError(w, err)
		return
	}

	svc := &domain.Service{
		Name:           req.Name,
		TutorName:      req.TutorName,
		Category:       req.Category,
		Description:    req.Description,
		Price:          req.Price,
		Ages:           domain.Range{Min: req.AgeMin, Max: req.AgeMax},
		Location:       req.Location,
		Address:        req.Address,
		Rating:         req.Rating,
		ReviewsCount:   req.ReviewsCount,
		Interests:      domain.ParseInterests(req.Interests),
		Experience:     req.Experience,
		Qualifications: req.Qualifications,
		Area:           req.Area,
	}
	if err := h.catalogService.CreateService(r.Context(), svc); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to create service")
		return
	}

	h.logger.Info("Service created", zap.String("service_id", svc.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, toServiceResponse(*svc))
}
