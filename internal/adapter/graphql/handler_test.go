package adaptgql_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	adaptgql "weighttracker/internal/adapter/graphql"
	"weighttracker/internal/adapter/memory"
	"weighttracker/internal/app"
	"weighttracker/internal/domain"
)

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

type fixture struct {
	ts   *httptest.Server
	db   *memory.DB
	user *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.New()
	u, err := db.CreateUser(context.Background(), "ann@example.com", "Ann")
	if err != nil {
		t.Fatal(err)
	}
	h, err := adaptgql.NewHandler(adaptgql.NewResolver(app.NewWeightService(db), app.NewUserService(db)))
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return &fixture{ts: ts, db: db, user: u}
}

func (f *fixture) exec(t *testing.T, query string, vars map[string]any, out any) gqlResponse {
	t.Helper()
	b, _ := json.Marshal(map[string]any{"query": query, "variables": vars})
	resp, err := http.Post(f.ts.URL, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var r gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != nil && len(r.Errors) == 0 {
		if err := json.Unmarshal(r.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return r
}

type recordJSON struct {
	ID         int     `json:"id"`
	UserID     int     `json:"userId"`
	Weight     string  `json:"weight"`
	Unit       string  `json:"unit"`
	Notes      *string `json:"notes"`
	RecordedAt string  `json:"recordedAt"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

const recordFields = `id userId weight unit notes recordedAt createdAt updatedAt`

const createMutation = `mutation($input: CreateWeightRecordInput!) {
	createWeightRecord(input: $input) { ` + recordFields + ` }
}`

func (f *fixture) create(t *testing.T, input map[string]any) recordJSON {
	t.Helper()
	var out struct {
		CreateWeightRecord recordJSON `json:"createWeightRecord"`
	}
	r := f.exec(t, createMutation, map[string]any{"input": input}, &out)
	if len(r.Errors) > 0 {
		t.Fatalf("create failed: %s", r.Errors[0].Message)
	}
	return out.CreateWeightRecord
}

func TestCreateAndFetchRoundTrip(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, map[string]any{
		"userId":     f.user.ID,
		"weight":     "70.50",
		"notes":      "Test note",
		"recordedAt": "2025-10-19T08:00:00.000Z",
	})
	if created.Weight != "70.50" {
		t.Errorf("expected weight 70.50, got %q", created.Weight)
	}
	if created.Unit != "kg" {
		t.Errorf("expected default unit kg, got %q", created.Unit)
	}
	if created.RecordedAt != "2025-10-19T08:00:00.000Z" {
		t.Errorf("unexpected recordedAt %q", created.RecordedAt)
	}
	if !strings.HasSuffix(created.CreatedAt, "Z") {
		t.Errorf("expected ISO UTC createdAt, got %q", created.CreatedAt)
	}

	query := `query($id: Int!) { weightRecord(id: $id) { ` + recordFields + ` } }`
	var first, second struct {
		WeightRecord *recordJSON `json:"weightRecord"`
	}
	f.exec(t, query, map[string]any{"id": created.ID}, &first)
	f.exec(t, query, map[string]any{"id": created.ID}, &second)
	if first.WeightRecord == nil || first.WeightRecord.Weight != "70.50" {
		t.Fatalf("unexpected record: %+v", first.WeightRecord)
	}
	if !reflect.DeepEqual(first.WeightRecord, second.WeightRecord) {
		t.Errorf("repeated reads differ: %+v vs %+v", first.WeightRecord, second.WeightRecord)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name  string
		input map[string]any
	}{
		{"letters", map[string]any{"userId": f.user.ID, "weight": "abc"}},
		{"three decimals", map[string]any{"userId": f.user.ID, "weight": "1.234"}},
		{"negative", map[string]any{"userId": f.user.ID, "weight": "-1.5"}},
		{"empty", map[string]any{"userId": f.user.ID, "weight": ""}},
		{"bad unit", map[string]any{"userId": f.user.ID, "weight": "70", "unit": "stone"}},
		{"bad recordedAt", map[string]any{"userId": f.user.ID, "weight": "70", "recordedAt": "yesterday"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := f.exec(t, createMutation, map[string]any{"input": tc.input}, nil)
			if len(r.Errors) == 0 {
				t.Fatal("expected error")
			}
			if r.Errors[0].Extensions["code"] != domain.CodeValidation {
				t.Errorf("expected VALIDATION code, got %v", r.Errors[0].Extensions)
			}
		})
	}
	if n, _ := f.db.CountWeightRecords(context.Background(), domain.WeightRecordFilter{}); n != 0 {
		t.Fatalf("expected no rows written, got %d", n)
	}
}

func TestWeightRecordsPagination(t *testing.T) {
	f := newFixture(t)
	query := `query($userId: Int, $limit: Int, $offset: Int) {
		weightRecords(userId: $userId, limit: $limit, offset: $offset) { data { id weight } total hasMore }
	}`
	type conn struct {
		WeightRecords struct {
			Data    []recordJSON `json:"data"`
			Total   int          `json:"total"`
			HasMore bool         `json:"hasMore"`
		} `json:"weightRecords"`
	}

	var empty conn
	f.exec(t, query, map[string]any{"limit": 10, "offset": 0}, &empty)
	if empty.WeightRecords.Data == nil || len(empty.WeightRecords.Data) != 0 || empty.WeightRecords.Total != 0 || empty.WeightRecords.HasMore {
		t.Fatalf("unexpected empty page: %+v", empty.WeightRecords)
	}

	f.create(t, map[string]any{"userId": f.user.ID, "weight": "70.50"})
	var one conn
	f.exec(t, query, map[string]any{"userId": f.user.ID, "limit": 10, "offset": 0}, &one)
	if len(one.WeightRecords.Data) != 1 || one.WeightRecords.Total != 1 || one.WeightRecords.HasMore {
		t.Fatalf("unexpected page: %+v", one.WeightRecords)
	}

	f.create(t, map[string]any{"userId": f.user.ID, "weight": "71"})
	var firstPage conn
	f.exec(t, query, map[string]any{"limit": 1}, &firstPage)
	if len(firstPage.WeightRecords.Data) != 1 || firstPage.WeightRecords.Total != 2 || !firstPage.WeightRecords.HasMore {
		t.Fatalf("unexpected first page: %+v", firstPage.WeightRecords)
	}
}

// pageRecorder remembers the bounds each listing was asked for.
type pageRecorder struct {
	*memory.DB
	limit, offset int
}

func (p *pageRecorder) ListWeightRecords(ctx context.Context, f domain.WeightRecordFilter, limit, offset int) ([]domain.WeightRecord, error) {
	p.limit, p.offset = limit, offset
	return p.DB.ListWeightRecords(ctx, f, limit, offset)
}

func TestWeightRecordsDefaultPage(t *testing.T) {
	db := memory.New()
	u, err := db.CreateUser(context.Background(), "ann@example.com", "Ann")
	if err != nil {
		t.Fatal(err)
	}
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 51; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		if _, err := db.CreateWeightRecord(context.Background(), domain.NewWeightRecord{
			UserID: u.ID, Weight: "70", Unit: domain.UnitKg, RecordedAt: at, CreatedAt: at,
		}); err != nil {
			t.Fatal(err)
		}
	}

	rec := &pageRecorder{DB: db, limit: -1, offset: -1}
	h, err := adaptgql.NewHandler(adaptgql.NewResolver(app.NewWeightService(rec), app.NewUserService(db)))
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	ts := httptest.NewServer(h)
	defer ts.Close()
	f := &fixture{ts: ts, db: db, user: u}

	var out struct {
		WeightRecords struct {
			Data    []recordJSON `json:"data"`
			Total   int          `json:"total"`
			HasMore bool         `json:"hasMore"`
		} `json:"weightRecords"`
	}
	r := f.exec(t, `{ weightRecords { data { id } total hasMore } }`, nil, &out)
	if len(r.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", r.Errors)
	}
	if rec.limit != 50 || rec.offset != 0 {
		t.Errorf("expected limit 50 offset 0, got limit %d offset %d", rec.limit, rec.offset)
	}
	if len(out.WeightRecords.Data) != 50 || out.WeightRecords.Total != 51 || !out.WeightRecords.HasMore {
		t.Fatalf("unexpected default page: %d records, total %d, hasMore %v",
			len(out.WeightRecords.Data), out.WeightRecords.Total, out.WeightRecords.HasMore)
	}

	var withVars struct {
		WeightRecords struct {
			Data []recordJSON `json:"data"`
		} `json:"weightRecords"`
	}
	r = f.exec(t, `query($limit: Int, $offset: Int) { weightRecords(limit: $limit, offset: $offset) { data { id } } }`,
		map[string]any{}, &withVars)
	if len(r.Errors) != 0 || len(withVars.WeightRecords.Data) != 50 || rec.offset != 0 {
		t.Fatalf("unset variables should use the defaults: errors=%+v records=%d offset=%d",
			r.Errors, len(withVars.WeightRecords.Data), rec.offset)
	}
}

func TestNotFound(t *testing.T) {
	f := newFixture(t)

	var got struct {
		WeightRecord *recordJSON `json:"weightRecord"`
	}
	r := f.exec(t, `{ weightRecord(id: 999) { id } }`, nil, &got)
	if len(r.Errors) != 0 || got.WeightRecord != nil {
		t.Fatalf("expected null without error, got %+v / %v", got, r.Errors)
	}

	for _, q := range []string{
		`mutation { updateWeightRecord(id: 999, input: {notes: "x"}) { id } }`,
		`mutation { updateWeightRecord(id: 999, input: {weight: "abc"}) { id } }`,
		`mutation { deleteWeightRecord(id: 999) { success } }`,
	} {
		r := f.exec(t, q, nil, nil)
		if len(r.Errors) == 0 {
			t.Fatalf("%s: expected error", q)
		}
		if r.Errors[0].Extensions["code"] != domain.CodeNotFound {
			t.Errorf("%s: expected NOT_FOUND, got %v (%s)", q, r.Errors[0].Extensions, r.Errors[0].Message)
		}
	}
}

func TestUpdatePartial(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, map[string]any{"userId": f.user.ID, "weight": "80.25", "unit": "lbs", "notes": "before"})

	update := `mutation($id: Int!, $input: UpdateWeightRecordInput!) {
		updateWeightRecord(id: $id, input: $input) { ` + recordFields + ` }
	}`
	var out struct {
		UpdateWeightRecord recordJSON `json:"updateWeightRecord"`
	}
	r := f.exec(t, update, map[string]any{"id": created.ID, "input": map[string]any{"notes": "after"}}, &out)
	if len(r.Errors) > 0 {
		t.Fatalf("update failed: %s", r.Errors[0].Message)
	}
	got := out.UpdateWeightRecord
	if got.Weight != "80.25" || got.Unit != "lbs" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.Notes == nil || *got.Notes != "after" {
		t.Errorf("expected notes updated, got %v", got.Notes)
	}
	if got.UpdatedAt < created.UpdatedAt {
		t.Errorf("expected updatedAt refreshed: %s -> %s", created.UpdatedAt, got.UpdatedAt)
	}

	r = f.exec(t, update, map[string]any{"id": created.ID, "input": map[string]any{"notes": nil}}, &out)
	if len(r.Errors) > 0 {
		t.Fatalf("update failed: %s", r.Errors[0].Message)
	}
	if out.UpdateWeightRecord.Notes != nil {
		t.Errorf("expected notes cleared, got %q", *out.UpdateWeightRecord.Notes)
	}

	r = f.exec(t, update, map[string]any{"id": created.ID, "input": map[string]any{"unit": "stone"}}, nil)
	if len(r.Errors) == 0 || r.Errors[0].Extensions["code"] != domain.CodeValidation {
		t.Fatalf("expected validation error for existing id, got %+v", r.Errors)
	}
}

func TestDeleteThenGet(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, map[string]any{"userId": f.user.ID, "weight": "70"})

	var del struct {
		DeleteWeightRecord struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		} `json:"deleteWeightRecord"`
	}
	f.exec(t, `mutation($id: Int!) { deleteWeightRecord(id: $id) { success message } }`, map[string]any{"id": created.ID}, &del)
	if !del.DeleteWeightRecord.Success || del.DeleteWeightRecord.Message != "Weight record deleted successfully" {
		t.Fatalf("unexpected delete result: %+v", del)
	}

	var got struct {
		WeightRecord *recordJSON `json:"weightRecord"`
	}
	f.exec(t, `query($id: Int!) { weightRecord(id: $id) { id } }`, map[string]any{"id": created.ID}, &got)
	if got.WeightRecord != nil {
		t.Fatal("expected null after delete")
	}
}

func TestUserWeightRecords(t *testing.T) {
	f := newFixture(t)
	f.create(t, map[string]any{"userId": f.user.ID, "weight": "70", "recordedAt": "2025-10-18T08:00:00Z"})
	f.create(t, map[string]any{"userId": f.user.ID, "weight": "71", "recordedAt": "2025-10-19T08:00:00Z"})

	var out struct {
		User *struct {
			Email         string       `json:"email"`
			WeightRecords []recordJSON `json:"weightRecords"`
		} `json:"user"`
		WeightRecordsByUser []recordJSON `json:"weightRecordsByUser"`
	}
	f.exec(t, `query($id: Int!) {
		user(id: $id) { email weightRecords { weight } }
		weightRecordsByUser(userId: $id) { weight }
	}`, map[string]any{"id": f.user.ID}, &out)

	if out.User == nil || out.User.Email != "ann@example.com" {
		t.Fatalf("unexpected user: %+v", out.User)
	}
	if len(out.User.WeightRecords) != 2 || out.User.WeightRecords[0].Weight != "71.00" {
		t.Fatalf("expected newest first, got %+v", out.User.WeightRecords)
	}
	if len(out.WeightRecordsByUser) != 2 || out.WeightRecordsByUser[1].Weight != "70.00" {
		t.Fatalf("unexpected by-user list: %+v", out.WeightRecordsByUser)
	}

	var missing struct {
		User *struct{} `json:"user"`
	}
	f.exec(t, `{ user(id: 999) { id } }`, nil, &missing)
	if missing.User != nil {
		t.Fatal("expected null user")
	}
}

func TestCreateUnknownUser(t *testing.T) {
	f := newFixture(t)
	r := f.exec(t, createMutation, map[string]any{"input": map[string]any{"userId": 999, "weight": "70"}}, nil)
	if len(r.Errors) == 0 || r.Errors[0].Extensions["code"] != domain.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for unknown user, got %+v", r.Errors)
	}
}

func TestGraphiQLPage(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.ts.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
}
