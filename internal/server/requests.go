package server

import (
	"net/http"

	"itemshare-api/internal/service"
)

func (s *Server) createRequest(w http.ResponseWriter, r *http.Request) {
	var in service.CreateRequestInput
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	request, err := s.requests.Create(r.Context(), CallerID(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, request)
}

func (s *Server) listOwnRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.requests.ListOwn(r.Context(), CallerID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, requests)
}

func (s *Server) listAllRequests(w http.ResponseWriter, r *http.Request) {
	from, size, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	requests, err := s.requests.ListAll(r.Context(), CallerID(r.Context()), from, size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, requests)
}

func (s *Server) getRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	request, err := s.requests.GetByID(r.Context(), CallerID(r.Context()), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, request)
}
