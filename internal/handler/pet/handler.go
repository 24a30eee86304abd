package pet

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/service/pet"
	"github.com/petcareapp/portal-api/pkg/errors"
	"github.com/petcareapp/portal-api/pkg/httputil"
)

type Handler struct {
	service pet.PetService
}

func NewHandler(service pet.PetService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	pets := rg.Group("/pets")
	{
		pets.GET("", h.ListPets)
		pets.POST("", h.CreatePet)
		pets.GET("/:id", h.GetPet)
		pets.PATCH("/:id", h.UpdatePet)
		pets.DELETE("/:id", h.DeletePet)
		pets.GET("/:id/records", h.ListHealthRecords)
		pets.POST("/:id/records", h.CreateHealthRecord)
	}
	rg.GET("/breeds", h.ListBreeds)
}

func (h *Handler) ListPets(c *gin.Context) {
	pets, err := h.service.ListPets(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	views := make([]petView, 0, len(pets))
	for _, p := range pets {
		views = append(views, newPetView(p))
	}
	httputil.RespondWithSuccess(c, views)
}

func (h *Handler) GetPet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.service.GetPet(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, newPetView(*p))
}

func (h *Handler) CreatePet(c *gin.Context) {
	var req model.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid request body", err))
		return
	}

	p, err := h.service.CreatePet(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, newPetView(*p))
}

func (h *Handler) UpdatePet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid request body", err))
		return
	}

	p, err := h.service.UpdatePet(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, newPetView(*p))
}

func (h *Handler) DeletePet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePet(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

func (h *Handler) ListBreeds(c *gin.Context) {
	breeds, err := h.service.ListBreeds(c.Request.Context(), c.Query("species"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	views := make([]breedView, 0, len(breeds))
	for _, b := range breeds {
		views = append(views, newBreedView(b))
	}
	httputil.RespondWithSuccess(c, views)
}

func (h *Handler) ListHealthRecords(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	records, err := h.service.ListHealthRecords(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	views := make([]healthRecordView, 0, len(records))
	for _, r := range records {
		views = append(views, newHealthRecordView(r))
	}
	httputil.RespondWithSuccess(c, views)
}

func (h *Handler) CreateHealthRecord(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CreateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid request body", err))
		return
	}
	req.PetID = id

	record, err := h.service.CreateHealthRecord(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, newHealthRecordView(*record))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid pet ID", err))
		return 0, false
	}
	return id, true
}

type breedView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Species      string `json:"species"`
	SpeciesLabel string `json:"species_label"`
}

func newBreedView(b model.Breed) breedView {
	return breedView{
		ID:           b.ID,
		Name:         b.Name,
		Species:      string(b.Species),
		SpeciesLabel: b.Species.Label(),
	}
}

type ageView struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// petView is the pet plus everything the storefront derives from it, so
// clients never re-implement the age arithmetic.
type petView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Breed     breedView `json:"breed"`
	BirthDate *string   `json:"birth_date"`
	Age       *ageView  `json:"age,omitempty"`
	AgeLabel  string    `json:"age_label,omitempty"`
	IsAdult   bool      `json:"is_adult"`
}

func newPetView(p model.Pet) petView {
	view := petView{
		ID:      p.ID,
		Name:    p.Name,
		Breed:   newBreedView(p.Breed),
		IsAdult: p.IsAdult(),
	}

	if p.BirthDate != nil {
		birthDate := p.BirthDate.Format("2006-01-02")
		view.BirthDate = &birthDate
	}
	if age, ok := p.DetailedAge(); ok {
		view.Age = &ageView{Years: age.Years, Months: age.Months, Days: age.Days}
	}
	if label, ok := p.Age(); ok {
		view.AgeLabel = label
	}
	return view
}

type healthRecordView struct {
	ID            int64   `json:"id"`
	PetID         int64   `json:"pet_id"`
	Type          string  `json:"record_type"`
	TypeLabel     string  `json:"type_label"`
	TypeIcon      string  `json:"type_icon"`
	Description   string  `json:"description"`
	RecordDate    string  `json:"record_date"`
	NextDueDate   *string `json:"next_due_date,omitempty"`
	IsOverdue     bool    `json:"is_overdue"`
	RecordAgeDays int     `json:"record_age_days"`
	CreatedBy     string  `json:"created_by"`
}

func newHealthRecordView(r model.HealthRecord) healthRecordView {
	view := healthRecordView{
		ID:            r.ID,
		PetID:         r.PetID,
		Type:          string(r.Type),
		TypeLabel:     r.TypeLabel(),
		TypeIcon:      r.TypeIcon(),
		Description:   r.Description,
		RecordDate:    r.RecordDate.Format("2006-01-02"),
		IsOverdue:     r.IsOverdue(),
		RecordAgeDays: r.RecordAge(),
		CreatedBy:     r.CreatedBy,
	}
	if r.NextDueDate != nil {
		due := r.NextDueDate.Format("2006-01-02")
		view.NextDueDate = &due
	}
	return view
}
