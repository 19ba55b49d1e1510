package rest

import (
	"encoding/json"
	"net/http"

	"github.com/AgrI-Mitra/bff/logger"
	"github.com/AgrI-Mitra/bff/model"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) HandlePrompt(w http.ResponseWriter, r *http.Request) {
	var req model.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()
	vars := mux.Vars(r)
	req.FlowId = vars["configid"]
	if userId := r.Header.Get("user-id"); userId != "" {
		req.UserId = userId
	}
	if req.UserId == "" {
		respondWithError(w, http.StatusBadRequest, "user-id header is required")
		return
	}
	result, err := s.promptService.Prompt(r.Context(), &req)
	if err != nil {
		logger.Error("error processing prompt", zap.String("userId", req.UserId), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error processing prompt")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
