package v1

import (
	"encoding/json"
	"net/http"

	"github.com/bookwell/bookwell/http/response"
	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"go.uber.org/zap"
)

func (h *Handler) setGeneralSettings(w http.ResponseWriter, r *http.Request) {
	settings := &model.SystemSettingGeneral{}
	if err := json.NewDecoder(r.Body).Decode(settings); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	saved, err := h.store.UpsetGeneralSettings(settings)
	if err != nil {
		log.Error("Failed to save general settings", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, saved)
}
