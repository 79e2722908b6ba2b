// Package api exposes one HTTP route per page family.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"divescraper/scraper"
	"divescraper/utils"
)

// Handlers serves parsed page records as JSON.
type Handlers struct {
	svc *scraper.Service
	log *logrus.Logger
}

// NewHandlers builds the handler set around a scraper service.
func NewHandlers(svc *scraper.Service, log *logrus.Logger) *Handlers {
	return &Handlers{svc: svc, log: log}
}

// Routes registers every page-family route on the router.
func (h *Handlers) Routes(router *mux.Router) {
	router.HandleFunc("/meets", h.MeetList).Methods("GET")
	router.HandleFunc("/meet/info/{id}", h.MeetInfo).Methods("GET")
	router.HandleFunc("/meet/results/{id}", h.MeetResults).Methods("GET")
	router.HandleFunc("/event/results/{id}", h.EventResults).Methods("GET")
	router.HandleFunc("/profile/{id}", h.Profile).Methods("GET")
	router.HandleFunc("/event/entries/{id}", h.Entries).Methods("GET")
	router.HandleFunc("/live/{id}", h.Live).Methods("GET")
}

func (h *Handlers) MeetList(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, utils.BaseURL+"index.php")
}

func (h *Handlers) MeetInfo(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, utils.BaseURL+"meetinfo.php?number="+mux.Vars(r)["id"])
}

func (h *Handlers) MeetResults(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, utils.BaseURL+"meetresults.php?number="+mux.Vars(r)["id"])
}

func (h *Handlers) EventResults(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, utils.BaseURL+"eventresults.php?event="+mux.Vars(r)["id"])
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, utils.BaseURL+"profile.php?number="+mux.Vars(r)["id"])
}

func (h *Handlers) Entries(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, utils.BaseURL+"divesheetext.php?number="+mux.Vars(r)["id"])
}

func (h *Handlers) Live(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, utils.BaseURL+"livestats.php?event="+mux.Vars(r)["id"])
}

func (h *Handlers) serve(w http.ResponseWriter, r *http.Request, pageURL string) {
	record, err := h.svc.ScrapePage(r.Context(), pageURL)
	if err != nil {
		if errors.Is(err, scraper.ErrNoData) {
			http.Error(w, "page has no data", http.StatusNotFound)
			return
		}
		h.log.WithError(err).WithField("url", pageURL).Error("scrape failed")
		http.Error(w, "error scraping page", http.StatusInternalServerError)
		return
	}

	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		http.Error(w, "error marshaling to JSON", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
