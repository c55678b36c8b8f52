package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mentorat/authoring/internal/middleware"
	"github.com/mentorat/authoring/internal/models"
	"github.com/mentorat/authoring/internal/services"
	"go.uber.org/zap"
)

// SessionService is the interface that wraps methods for managing editing sessions
type SessionService interface {
	// Create creates a draft formation and opens an editing session on it
	//
	// "ctx" is the context for the request.
	// "req" is the request to create a formation.
	//
	// Returns the opened session and an error if any.
	Create(ctx context.Context, req *models.CreateFormationRequest) (*services.Session, error)
	// Open returns the editing session of a formation, loading the formation if no session is open
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the formation.
	//
	// Returns the session and an error if any.
	Open(ctx context.Context, id string) (*services.Session, error)
	// Close flushes pending edits and closes the editing session
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the formation.
	//
	// Returns an error if any.
	Close(ctx context.Context, id string) error
}

// FormationService is the interface that wraps methods writing stored formations directly
type FormationService interface {
	// CreateModule appends a module to a stored formation
	//
	// "ctx" is the context for the request.
	// "formationID" is the ID of the formation.
	// "seed" holds the fields of the new module.
	//
	// Returns the created module and an error if any.
	CreateModule(ctx context.Context, formationID string, seed *models.ModuleSeed) (*models.Module, error)
	// CreateChapter appends a chapter to a stored module
	//
	// "ctx" is the context for the request.
	// "formationID" is the ID of the formation.
	// "moduleID" is the ID of the module.
	// "seed" holds the fields of the new chapter.
	//
	// Returns the created chapter and an error if any.
	CreateChapter(ctx context.Context, formationID, moduleID string, seed *models.ChapterSeed) (*models.Chapter, error)
	// UpdateChapterContent replaces the blocks of a stored chapter
	//
	// "ctx" is the context for the request.
	// "formationID" is the ID of the formation.
	// "chapterID" is the ID of the chapter.
	// "blocks" is the new ordered content.
	//
	// Returns an error if any.
	UpdateChapterContent(ctx context.Context, formationID, chapterID string, blocks []models.ContentBlock) error
	// DeleteChapter deletes a stored chapter
	//
	// "ctx" is the context for the request.
	// "formationID" is the ID of the formation.
	// "chapterID" is the ID of the chapter.
	//
	// Returns an error if any.
	DeleteChapter(ctx context.Context, formationID, chapterID string) error
}

// FormationHandler handles HTTP requests for formation authoring
type FormationHandler struct {
	BaseHandler
	sessions   SessionService
	formations FormationService
	remoteMw   func(http.Handler) http.Handler

	maxUploadSize int64
}

// NewFormationHandler creates a new formation handler
//
// maxUploadSize is the largest block media file accepted, in bytes.
// remoteMw, when not nil, guards the routes that write the store directly.
func NewFormationHandler(sessions SessionService, formations FormationService, logger *zap.Logger, maxUploadSize int64, remoteMw func(http.Handler) http.Handler) *FormationHandler {
	return &FormationHandler{
		BaseHandler:   NewBaseHandler(logger),
		sessions:      sessions,
		formations:    formations,
		remoteMw:      remoteMw,
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes registers all formation handler routes
func (h *FormationHandler) RegisterRoutes(r chi.Router) {
	r.Route("/formations", func(r chi.Router) {
		r.Post("/", h.CreateFormation)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetFormation)
			r.Patch("/", h.UpdateFormation)
			r.Delete("/session", h.CloseSession)
			r.Get("/status", h.GetStatus)
			r.Get("/estimate", h.GetEstimate)
			r.Post("/save", h.Save)
			r.Post("/validate", h.Validate)
			r.Post("/publish", h.Publish)

			r.Post("/modules", h.AddModule)
			r.Route("/modules/{moduleID}", func(r chi.Router) {
				r.Patch("/", h.UpdateModule)
				r.Delete("/", h.DeleteModule)
				r.Post("/move", h.MoveModule)
				r.Post("/chapters", h.AddChapter)
				r.Route("/chapters/{chapterID}", func(r chi.Router) {
					r.Patch("/", h.UpdateChapter)
					r.Delete("/", h.DeleteChapter)
					r.Post("/move", h.MoveChapter)
					r.Post("/blocks", h.AddBlock)
				})
			})
			r.Route("/blocks/{blockID}", func(r chi.Router) {
				r.Patch("/", h.UpdateBlock)
				r.Delete("/", h.DeleteBlock)
				r.Post("/move", h.MoveBlock)
				r.Post("/upload", h.UploadBlockMedia)
			})

			r.Route("/remote", func(r chi.Router) {
				if h.remoteMw != nil {
					r.Use(h.remoteMw)
				}
				r.Post("/modules", h.RemoteCreateModule)
				r.Post("/modules/{moduleID}/chapters", h.RemoteCreateChapter)
				r.Put("/chapters/{chapterID}/content", h.RemoteUpdateChapterContent)
				r.Delete("/chapters/{chapterID}", h.RemoteDeleteChapter)
			})
		})
	})
}

// session returns the editing session of the formation in the URL, opening it if needed
func (h *FormationHandler) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	session, err := h.sessions.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, "failed to open editing session", err)
		return nil, false
	}
	return session, true
}

func (h *FormationHandler) respondView(w http.ResponseWriter, status int, session *services.Session) {
	h.RespondJSON(w, status, models.EditorView{
		Formation: session.Formation(),
		Status:    session.Status(),
	})
}

// CreateFormation handles POST /formations
// @Summary Create a formation
// @Description Create a draft formation with one module holding one chapter, and open an editing session on it
// @Tags formations
// @Accept json
// @Produce json
// @Param request body models.CreateFormationRequest true "Formation creation request"
// @Success 201 {object} models.EditorView
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 502 {object} map[string]string "Store unavailable"
// @Router /formations [post]
func (h *FormationHandler) CreateFormation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFormationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	session, err := h.sessions.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, "failed to create formation", err)
		return
	}

	h.respondView(w, http.StatusCreated, session)
}

// GetFormation handles GET /formations/{id}
// @Summary Get the edited formation
// @Description Get the current tree of a formation and its session status; opens an editing session if needed
// @Tags formations
// @Produce json
// @Param id path string true "Formation ID"
// @Success 200 {object} models.EditorView
// @Failure 404 {object} map[string]string "Formation not found"
// @Router /formations/{id} [get]
func (h *FormationHandler) GetFormation(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respondView(w, http.StatusOK, session)
}

// UpdateFormation handles PATCH /formations/{id}
// @Summary Update a formation
// @Description Update the formation header (partial update)
// @Tags formations
// @Accept json
// @Param id path string true "Formation ID"
// @Param request body models.UpdateFormationRequest true "Formation update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Formation not found"
// @Router /formations/{id} [patch]
func (h *FormationHandler) UpdateFormation(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateFormationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := session.UpdateFormation(&req); err != nil {
		h.RespondServiceError(w, r, "failed to update formation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CloseSession handles DELETE /formations/{id}/session
// @Summary Close the editing session
// @Description Save pending edits and close the editing session
// @Tags sessions
// @Param id path string true "Formation ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "No open session"
// @Failure 502 {object} map[string]string "Final save failed"
// @Router /formations/{id}/session [delete]
func (h *FormationHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondServiceError(w, r, "failed to close editing session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStatus handles GET /formations/{id}/status
// @Summary Get the session status
// @Description Get the save state, revision, last save time and publication status
// @Tags sessions
// @Produce json
// @Param id path string true "Formation ID"
// @Success 200 {object} models.SessionStatus
// @Failure 404 {object} map[string]string "Formation not found"
// @Router /formations/{id}/status [get]
func (h *FormationHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.RespondJSON(w, http.StatusOK, session.Status())
}

// GetEstimate handles GET /formations/{id}/estimate
// @Summary Estimate durations
// @Description Suggest durations in minutes for every chapter and module from their content
// @Tags formations
// @Produce json
// @Param id path string true "Formation ID"
// @Success 200 {object} models.DurationEstimate
// @Failure 404 {object} map[string]string "Formation not found"
// @Router /formations/{id}/estimate [get]
func (h *FormationHandler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.RespondJSON(w, http.StatusOK, session.Estimate())
}

// Save handles POST /formations/{id}/save
// @Summary Save the formation
// @Description Save the whole tree now and re-run validation
// @Tags sessions
// @Produce json
// @Param id path string true "Formation ID"
// @Success 200 {object} models.SaveResult
// @Failure 409 {object} map[string]string "A save is already in progress"
// @Failure 502 {object} map[string]string "Save failed"
// @Router /formations/{id}/save [post]
func (h *FormationHandler) Save(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	result, err := session.Save(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, "failed to save formation", err)
		return
	}
	h.RespondJSON(w, http.StatusOK, result)
}

// Validate handles POST /formations/{id}/validate
// @Summary Validate the formation
// @Description Run the publication rules against the stored formation
// @Tags sessions
// @Produce json
// @Param id path string true "Formation ID"
// @Success 200 {object} models.ValidationResult
// @Failure 502 {object} map[string]string "Validator unavailable"
// @Router /formations/{id}/validate [post]
func (h *FormationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	result, err := session.Validate(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, "failed to validate formation", err)
		return
	}
	h.RespondJSON(w, http.StatusOK, result)
}

// Publish handles POST /formations/{id}/publish
// @Summary Publish the formation
// @Description Save pending edits, validate, and publish when no validation error remains
// @Tags sessions
// @Produce json
// @Param id path string true "Formation ID"
// @Success 200 {object} models.PublishResponse
// @Failure 409 {object} models.PublishResponse "Blocked by validation errors"
// @Failure 502 {object} map[string]string "Store or validator unavailable"
// @Router /formations/{id}/publish [post]
func (h *FormationHandler) Publish(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	result, err := session.Publish(r.Context())
	if errors.Is(err, models.ErrValidationBlocked) {
		h.RespondJSON(w, http.StatusConflict, models.PublishResponse{Published: false, Validation: result})
		return
	}
	if err != nil {
		h.RespondServiceError(w, r, "failed to publish formation", err)
		return
	}
	h.RespondJSON(w, http.StatusOK, models.PublishResponse{Published: true, Validation: result})
}

// AddModule handles POST /formations/{id}/modules
// @Summary Add a module
// @Description Append an empty module at the end of the formation
// @Tags modules
// @Produce json
// @Param id path string true "Formation ID"
// @Success 201 {object} models.Module
// @Failure 404 {object} map[string]string "Formation not found"
// @Router /formations/{id}/modules [post]
func (h *FormationHandler) AddModule(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	module, err := session.AddModule()
	if err != nil {
		h.RespondServiceError(w, r, "failed to add module", err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, module)
}

// UpdateModule handles PATCH /formations/{id}/modules/{moduleID}
// @Summary Update a module
// @Description Update a module (partial update)
// @Tags modules
// @Accept json
// @Param id path string true "Formation ID"
// @Param moduleID path string true "Module ID"
// @Param request body models.UpdateModuleRequest true "Module update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /formations/{id}/modules/{moduleID} [patch]
func (h *FormationHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateModuleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.UpdateModule(chi.URLParam(r, "moduleID"), &req); err != nil {
		h.RespondServiceError(w, r, "failed to update module", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteModule handles DELETE /formations/{id}/modules/{moduleID}
// @Summary Delete a module
// @Description Delete a module and renumber the remaining modules
// @Tags modules
// @Param id path string true "Formation ID"
// @Param moduleID path string true "Module ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /formations/{id}/modules/{moduleID} [delete]
func (h *FormationHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.DeleteModule(chi.URLParam(r, "moduleID")); err != nil {
		h.RespondServiceError(w, r, "failed to delete module", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveModule handles POST /formations/{id}/modules/{moduleID}/move
// @Summary Move a module
// @Description Move a module to another position among the modules
// @Tags modules
// @Accept json
// @Produce json
// @Param id path string true "Formation ID"
// @Param moduleID path string true "Module ID"
// @Param request body models.MoveRequest true "Move request"
// @Success 200 {object} models.EditorView
// @Failure 404 {object} map[string]string "Module not found"
// @Router /formations/{id}/modules/{moduleID}/move [post]
func (h *FormationHandler) MoveModule(w http.ResponseWriter, r *http.Request) {
	var req models.MoveRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.MoveModule(chi.URLParam(r, "moduleID"), req.Target); err != nil {
		h.RespondServiceError(w, r, "failed to move module", err)
		return
	}
	h.respondView(w, http.StatusOK, session)
}

// AddChapter handles POST /formations/{id}/modules/{moduleID}/chapters
// @Summary Add a chapter
// @Description Append an empty chapter at the end of a module
// @Tags chapters
// @Produce json
// @Param id path string true "Formation ID"
// @Param moduleID path string true "Module ID"
// @Success 201 {object} models.Chapter
// @Failure 404 {object} map[string]string "Module not found"
// @Router /formations/{id}/modules/{moduleID}/chapters [post]
func (h *FormationHandler) AddChapter(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	chapter, err := session.AddChapter(chi.URLParam(r, "moduleID"))
	if err != nil {
		h.RespondServiceError(w, r, "failed to add chapter", err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, chapter)
}

// UpdateChapter handles PATCH /formations/{id}/modules/{moduleID}/chapters/{chapterID}
// @Summary Update a chapter
// @Description Update a chapter (partial update)
// @Tags chapters
// @Accept json
// @Param id path string true "Formation ID"
// @Param moduleID path string true "Module ID"
// @Param chapterID path string true "Chapter ID"
// @Param request body models.UpdateChapterRequest true "Chapter update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Router /formations/{id}/modules/{moduleID}/chapters/{chapterID} [patch]
func (h *FormationHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateChapterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	err := session.UpdateChapter(chi.URLParam(r, "moduleID"), chi.URLParam(r, "chapterID"), &req)
	if err != nil {
		h.RespondServiceError(w, r, "failed to update chapter", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteChapter handles DELETE /formations/{id}/modules/{moduleID}/chapters/{chapterID}
// @Summary Delete a chapter
// @Description Delete a chapter and renumber the remaining chapters of its module
// @Tags chapters
// @Param id path string true "Formation ID"
// @Param moduleID path string true "Module ID"
// @Param chapterID path string true "Chapter ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Router /formations/{id}/modules/{moduleID}/chapters/{chapterID} [delete]
func (h *FormationHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.DeleteChapter(chi.URLParam(r, "moduleID"), chi.URLParam(r, "chapterID")); err != nil {
		h.RespondServiceError(w, r, "failed to delete chapter", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveChapter handles POST /formations/{id}/modules/{moduleID}/chapters/{chapterID}/move
// @Summary Move a chapter
// @Description Move a chapter inside its module, or to the end of another module when targetModuleId is set
// @Tags chapters
// @Accept json
// @Produce json
// @Param id path string true "Formation ID"
// @Param moduleID path string true "Module ID"
// @Param chapterID path string true "Chapter ID"
// @Param request body models.MoveRequest true "Move request"
// @Success 200 {object} models.EditorView
// @Failure 404 {object} map[string]string "Chapter or target not found"
// @Router /formations/{id}/modules/{moduleID}/chapters/{chapterID}/move [post]
func (h *FormationHandler) MoveChapter(w http.ResponseWriter, r *http.Request) {
	var req models.MoveRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.MoveChapter(chi.URLParam(r, "moduleID"), chi.URLParam(r, "chapterID"), &req); err != nil {
		h.RespondServiceError(w, r, "failed to move chapter", err)
		return
	}
	h.respondView(w, http.StatusOK, session)
}

// AddBlock handles POST /formations/{id}/modules/{moduleID}/chapters/{chapterID}/blocks
// @Summary Add a content block
// @Description Append a block of the given type, with its default content, at the end of a chapter
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Formation ID"
// @Param moduleID path string true "Module ID"
// @Param chapterID path string true "Chapter ID"
// @Param request body models.AddBlockRequest true "Block creation request"
// @Success 201 {object} models.ContentBlock
// @Failure 400 {object} map[string]string "Unknown block type"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Router /formations/{id}/modules/{moduleID}/chapters/{chapterID}/blocks [post]
func (h *FormationHandler) AddBlock(w http.ResponseWriter, r *http.Request) {
	var req models.AddBlockRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	block, err := session.AddBlock(chi.URLParam(r, "moduleID"), chi.URLParam(r, "chapterID"), req.Type)
	if err != nil {
		h.RespondServiceError(w, r, "failed to add block", err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, block)
}

// UpdateBlock handles PATCH /formations/{id}/blocks/{blockID}
// @Summary Update a content block
// @Description Merge fields into a block; data keys outside the block type's shape are ignored
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Formation ID"
// @Param blockID path string true "Block ID"
// @Param request body models.UpdateBlockRequest true "Block update request"
// @Success 200 {object} models.ContentBlock
// @Failure 400 {object} map[string]string "Invalid patch"
// @Failure 404 {object} map[string]string "Block not found"
// @Router /formations/{id}/blocks/{blockID} [patch]
func (h *FormationHandler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBlockRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	block, err := session.UpdateBlock(chi.URLParam(r, "blockID"), &req)
	if err != nil {
		h.RespondServiceError(w, r, "failed to update block", err)
		return
	}
	h.RespondJSON(w, http.StatusOK, block)
}

// DeleteBlock handles DELETE /formations/{id}/blocks/{blockID}
// @Summary Delete a content block
// @Description Delete a block and renumber the remaining blocks of its chapter
// @Tags blocks
// @Param id path string true "Formation ID"
// @Param blockID path string true "Block ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Block not found"
// @Router /formations/{id}/blocks/{blockID} [delete]
func (h *FormationHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.DeleteBlock(chi.URLParam(r, "blockID")); err != nil {
		h.RespondServiceError(w, r, "failed to delete block", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveBlock handles POST /formations/{id}/blocks/{blockID}/move
// @Summary Move a content block
// @Description Move a block inside its chapter, or to the end of another chapter when targetModuleId and targetChapterId are set
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Formation ID"
// @Param blockID path string true "Block ID"
// @Param request body models.MoveRequest true "Move request"
// @Success 200 {object} models.EditorView
// @Failure 404 {object} map[string]string "Block or target not found"
// @Router /formations/{id}/blocks/{blockID}/move [post]
func (h *FormationHandler) MoveBlock(w http.ResponseWriter, r *http.Request) {
	var req models.MoveRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.MoveBlock(chi.URLParam(r, "blockID"), &req); err != nil {
		h.RespondServiceError(w, r, "failed to move block", err)
		return
	}
	h.respondView(w, http.StatusOK, session)
}

// UploadBlockMedia handles POST /formations/{id}/blocks/{blockID}/upload
// @Summary Upload block media
// @Description Upload the file of an image, video, audio or file block and store its location in the block
// @Tags blocks
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Formation ID"
// @Param blockID path string true "Block ID"
// @Param file formData file true "Media file"
// @Success 200 {object} models.ContentBlock
// @Failure 400 {object} map[string]string "Missing file or block type without media"
// @Failure 404 {object} map[string]string "Block not found"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 502 {object} map[string]string "Upload failed"
// @Router /formations/{id}/blocks/{blockID}/upload [post]
func (h *FormationHandler) UploadBlockMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+middleware.MultipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.RespondError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()
	if fileHeader.Size > h.maxUploadSize {
		h.RespondError(w, http.StatusRequestEntityTooLarge, "file is too large")
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}
	block, err := session.UploadBlockMedia(r.Context(), chi.URLParam(r, "blockID"), file, fileHeader.Filename)
	if err != nil {
		h.RespondServiceError(w, r, "failed to upload block media", err)
		return
	}
	h.RespondJSON(w, http.StatusOK, block)
}

// RemoteCreateModule handles POST /formations/{id}/remote/modules
// @Summary Create a module in the store
// @Description Append a module directly to the stored formation; refused while an editing session is open
// @Tags remote
// @Accept json
// @Produce json
// @Param id path string true "Formation ID"
// @Param request body models.ModuleSeed true "Module fields"
// @Success 201 {object} models.Module
// @Failure 404 {object} map[string]string "Formation not found"
// @Failure 409 {object} map[string]string "Editing session open"
// @Router /formations/{id}/remote/modules [post]
func (h *FormationHandler) RemoteCreateModule(w http.ResponseWriter, r *http.Request) {
	var seed models.ModuleSeed
	if !h.decodeJSON(w, r, &seed) {
		return
	}
	module, err := h.formations.CreateModule(r.Context(), chi.URLParam(r, "id"), &seed)
	if err != nil {
		h.RespondServiceError(w, r, "failed to create module", err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, module)
}

// RemoteCreateChapter handles POST /formations/{id}/remote/modules/{moduleID}/chapters
// @Summary Create a chapter in the store
// @Description Append a chapter directly to a stored module; refused while an editing session is open
// @Tags remote
// @Accept json
// @Produce json
// @Param id path string true "Formation ID"
// @Param moduleID path string true "Module ID"
// @Param request body models.ChapterSeed true "Chapter fields"
// @Success 201 {object} models.Chapter
// @Failure 404 {object} map[string]string "Module not found"
// @Failure 409 {object} map[string]string "Editing session open"
// @Router /formations/{id}/remote/modules/{moduleID}/chapters [post]
func (h *FormationHandler) RemoteCreateChapter(w http.ResponseWriter, r *http.Request) {
	var seed models.ChapterSeed
	if !h.decodeJSON(w, r, &seed) {
		return
	}
	chapter, err := h.formations.CreateChapter(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "moduleID"), &seed)
	if err != nil {
		h.RespondServiceError(w, r, "failed to create chapter", err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, chapter)
}

// RemoteUpdateChapterContent handles PUT /formations/{id}/remote/chapters/{chapterID}/content
// @Summary Replace chapter content in the store
// @Description Replace every block of a stored chapter; refused while an editing session is open
// @Tags remote
// @Accept json
// @Param id path string true "Formation ID"
// @Param chapterID path string true "Chapter ID"
// @Param request body []models.ContentBlock true "Ordered blocks"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid block"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Failure 409 {object} map[string]string "Editing session open"
// @Router /formations/{id}/remote/chapters/{chapterID}/content [put]
func (h *FormationHandler) RemoteUpdateChapterContent(w http.ResponseWriter, r *http.Request) {
	var blocks []models.ContentBlock
	if !h.decodeJSON(w, r, &blocks) {
		return
	}
	err := h.formations.UpdateChapterContent(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "chapterID"), blocks)
	if err != nil {
		h.RespondServiceError(w, r, "failed to update chapter content", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoteDeleteChapter handles DELETE /formations/{id}/remote/chapters/{chapterID}
// @Summary Delete a chapter in the store
// @Description Delete a stored chapter and renumber the chapters after it; refused while an editing session is open
// @Tags remote
// @Param id path string true "Formation ID"
// @Param chapterID path string true "Chapter ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Failure 409 {object} map[string]string "Editing session open"
// @Router /formations/{id}/remote/chapters/{chapterID} [delete]
func (h *FormationHandler) RemoteDeleteChapter(w http.ResponseWriter, r *http.Request) {
	if err := h.formations.DeleteChapter(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "chapterID")); err != nil {
		h.RespondServiceError(w, r, "failed to delete chapter", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
