package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-studio-backend/errs"
	"github.com/rpupo63/portfolio-studio-backend/skills"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skills    *skills.Service
}

func newSkillHandler(service *skills.Service) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skills:    service,
	}
}

// SkillCollection lists the skill cards and the badge legend.
type SkillCollection struct {
	Skills []skills.Card       `json:"skills"`
	Badges []skills.BadgeStyle `json:"badges"`
}

type updateSkillRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Proficiency *int    `json:"proficiency,omitempty" validate:"omitempty,gte=0,lte=100"`
	IconType    *string `json:"iconType,omitempty"`
	RandomOrder *bool   `json:"randomOrder,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

type skillImageRequest struct {
	URL string `json:"url" validate:"required"`
}

// getSkills
// @Summary Skill cards
// @Tags Skills
// @Produce json
// @Success 200 {object} SkillCollection
// @Router /skills [get]
func (h skillHandler) getSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := h.skills.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		badges := make([]skills.BadgeStyle, 0, len(skills.Badges()))
		for _, b := range skills.Badges() {
			badges = append(badges, b.Style())
		}
		h.responder.WriteJSON(w, SkillCollection{Skills: cards, Badges: badges})
	}
}

// createSkill adds a card with default values at the end of the list
// @Summary Create skill
// @Tags Skills
// @Produce json
// @Success 201 {object} skills.Card
// @Router /skill [post]
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card, err := h.skills.Create(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteCreated(w, card)
	}
}

// updateSkill
// @Summary Update skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skillID path string true "Skill ID" format(uuid)
// @Param skill body updateSkillRequest true "Fields to change"
// @Success 200 {object} skills.Card
// @Router /skill/{skillID} [put]
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, ok := urlUUID(w, r, h.responder, "skillID")
		if !ok {
			return
		}
		var req updateSkillRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}

		card, err := h.skills.Update(r.Context(), skillID, skills.Patch{
			Title:       req.Title,
			Category:    req.Category,
			Color:       req.Color,
			Proficiency: req.Proficiency,
			IconType:    req.IconType,
			RandomOrder: req.RandomOrder,
			SortOrder:   req.SortOrder,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, card)
	}
}

// deleteSkill
// @Summary Delete skill
// @Tags Skills
// @Success 204
// @Router /skill/{skillID} [delete]
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, ok := urlUUID(w, r, h.responder, "skillID")
		if !ok {
			return
		}
		if err := h.skills.Delete(r.Context(), skillID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// addSkillImage
// @Summary Add slideshow image
// @Tags Skills
// @Accept json
// @Produce json
// @Param image body skillImageRequest true "Image URL"
// @Success 200 {object} skills.Card
// @Router /skill/{skillID}/images [post]
func (h skillHandler) addSkillImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, ok := urlUUID(w, r, h.responder, "skillID")
		if !ok {
			return
		}
		var req skillImageRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}

		card, err := h.skills.AddImage(r.Context(), skillID, req.URL)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, card)
	}
}

// removeSkillImage
// @Summary Remove slideshow image
// @Tags Skills
// @Produce json
// @Param url query string true "Image URL"
// @Success 200 {object} skills.Card
// @Router /skill/{skillID}/images [delete]
func (h skillHandler) removeSkillImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, ok := urlUUID(w, r, h.responder, "skillID")
		if !ok {
			return
		}
		ref := r.URL.Query().Get("url")
		if ref == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("url"))
			return
		}

		card, err := h.skills.RemoveImage(r.Context(), skillID, ref)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, card)
	}
}
