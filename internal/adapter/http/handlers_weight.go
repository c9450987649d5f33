package adapthttp

import (
	"net/http"
	"strconv"

	"weighttracker/internal/app"
	"weighttracker/internal/domain"
)

type weightRecordJSON struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	Weight     string  `json:"weight"`
	Unit       string  `json:"unit"`
	Notes      *string `json:"notes"`
	RecordedAt string  `json:"recordedAt"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func toWeightRecordJSON(r domain.WeightRecord) weightRecordJSON {
	return weightRecordJSON{
		ID:         r.ID,
		UserID:     r.UserID,
		Weight:     r.Weight,
		Unit:       r.Unit,
		Notes:      r.Notes,
		RecordedAt: domain.FormatTime(r.RecordedAt),
		CreatedAt:  domain.FormatTime(r.CreatedAt),
		UpdatedAt:  domain.FormatTime(r.UpdatedAt),
	}
}

func toWeightRecordsJSON(records []domain.WeightRecord) []weightRecordJSON {
	out := make([]weightRecordJSON, 0, len(records))
	for _, r := range records {
		out = append(out, toWeightRecordJSON(r))
	}
	return out
}

type createWeightRecordRequest struct {
	UserID     *int64  `json:"userId" validate:"required"`
	Weight     *string `json:"weight" validate:"required"`
	Unit       *string `json:"unit"`
	Notes      *string `json:"notes"`
	RecordedAt *string `json:"recordedAt"`
}

type updateWeightRecordRequest struct {
	Weight     *string        `json:"weight"`
	Unit       *string        `json:"unit"`
	Notes      optionalString `json:"notes"`
	RecordedAt *string        `json:"recordedAt"`
}

func (s *Server) handleWeightRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		var p app.ListParams
		if v := r.URL.Query().Get("userId"); v != "" {
			uid, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeServiceError(w, &domain.ValidationError{Field: "userId", Message: "userId must be an integer"})
				return
			}
			p.UserID = &uid
		}
		var err error
		if p.Limit, err = optionalIntQuery(r, "limit"); err != nil {
			writeServiceError(w, err)
			return
		}
		if p.Offset, err = optionalIntQuery(r, "offset"); err != nil {
			writeServiceError(w, err)
			return
		}
		page, err := s.weight.List(ctx, p)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data":    toWeightRecordsJSON(page.Records),
			"total":   page.Total,
			"hasMore": page.HasMore,
		})

	case http.MethodPost:
		var body createWeightRecordRequest
		if err := parseJSON(r, &body); err != nil {
			writeServiceError(w, &domain.ValidationError{Field: "body", Message: err.Error()})
			return
		}
		if err := s.checkStruct(body); err != nil {
			writeServiceError(w, err)
			return
		}
		rec, err := s.weight.Create(ctx, app.CreateInput{
			UserID:     *body.UserID,
			Weight:     *body.Weight,
			Unit:       body.Unit,
			Notes:      body.Notes,
			RecordedAt: body.RecordedAt,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toWeightRecordJSON(*rec))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleWeightRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, err := s.weight.Get(ctx, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if rec == nil {
			writeServiceError(w, &domain.NotFoundError{Resource: "weight record"})
			return
		}
		writeJSON(w, http.StatusOK, toWeightRecordJSON(*rec))

	case http.MethodPatch:
		var body updateWeightRecordRequest
		if err := parseJSON(r, &body); err != nil {
			writeServiceError(w, &domain.ValidationError{Field: "body", Message: err.Error()})
			return
		}
		rec, err := s.weight.Update(ctx, id, app.UpdateInput{
			Weight:     body.Weight,
			Unit:       body.Unit,
			Notes:      body.Notes.Value,
			NotesSet:   body.Notes.Set,
			RecordedAt: body.RecordedAt,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toWeightRecordJSON(*rec))

	case http.MethodDelete:
		res, err := s.weight.Delete(ctx, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
