package adaptgql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"weighttracker/internal/app"
	"weighttracker/internal/domain"
)

// Resolver is the root resolver for queries and mutations.
type Resolver struct {
	weights *app.WeightService
	users   *app.UserService
}

// NewResolver creates a Resolver wired to the given services.
func NewResolver(weights *app.WeightService, users *app.UserService) *Resolver {
	return &Resolver{weights: weights, users: users}
}

// --- Query ---

type weightRecordsArgs struct {
	UserID *int32
	Limit  *int32
	Offset *int32
}

// WeightRecords resolves Query.weightRecords.
func (r *Resolver) WeightRecords(ctx context.Context, args weightRecordsArgs) (*connectionResolver, error) {
	page, err := r.weights.List(ctx, app.ListParams{
		UserID: int64Ptr(args.UserID),
		Limit:  intPtr(args.Limit),
		Offset: intPtr(args.Offset),
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return &connectionResolver{page: page}, nil
}

// WeightRecord resolves Query.weightRecord. A missing record is null.
func (r *Resolver) WeightRecord(ctx context.Context, args struct{ ID int32 }) (*weightRecordResolver, error) {
	rec, err := r.weights.Get(ctx, int64(args.ID))
	if err != nil {
		return nil, wrapError(err)
	}
	if rec == nil {
		return nil, nil
	}
	return &weightRecordResolver{r: *rec}, nil
}

// WeightRecordsByUser resolves Query.weightRecordsByUser.
func (r *Resolver) WeightRecordsByUser(ctx context.Context, args struct{ UserID int32 }) ([]*weightRecordResolver, error) {
	return r.recordsOf(ctx, int64(args.UserID))
}

// User resolves Query.user.
func (r *Resolver) User(ctx context.Context, args struct{ ID int32 }) (*userResolver, error) {
	u, err := r.users.Get(ctx, int64(args.ID))
	if err != nil {
		return nil, wrapError(err)
	}
	if u == nil {
		return nil, nil
	}
	return &userResolver{root: r, u: *u}, nil
}

// --- Mutation ---

type createInput struct {
	UserID     int32
	Weight     string
	Unit       *string
	Notes      *string
	RecordedAt *string
}

type updateInput struct {
	Weight     *string
	Unit       *string
	Notes      graphql.NullString
	RecordedAt *string
}

// CreateWeightRecord resolves Mutation.createWeightRecord.
func (r *Resolver) CreateWeightRecord(ctx context.Context, args struct{ Input createInput }) (*weightRecordResolver, error) {
	rec, err := r.weights.Create(ctx, app.CreateInput{
		UserID:     int64(args.Input.UserID),
		Weight:     args.Input.Weight,
		Unit:       args.Input.Unit,
		Notes:      args.Input.Notes,
		RecordedAt: args.Input.RecordedAt,
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return &weightRecordResolver{r: *rec}, nil
}

// UpdateWeightRecord resolves Mutation.updateWeightRecord.
func (r *Resolver) UpdateWeightRecord(ctx context.Context, args struct {
	ID    int32
	Input updateInput
}) (*weightRecordResolver, error) {
	rec, err := r.weights.Update(ctx, int64(args.ID), app.UpdateInput{
		Weight:     args.Input.Weight,
		Unit:       args.Input.Unit,
		Notes:      args.Input.Notes.Value,
		NotesSet:   args.Input.Notes.Set,
		RecordedAt: args.Input.RecordedAt,
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return &weightRecordResolver{r: *rec}, nil
}

// DeleteWeightRecord resolves Mutation.deleteWeightRecord.
func (r *Resolver) DeleteWeightRecord(ctx context.Context, args struct{ ID int32 }) (*deleteResultResolver, error) {
	res, err := r.weights.Delete(ctx, int64(args.ID))
	if err != nil {
		return nil, wrapError(err)
	}
	return &deleteResultResolver{res: *res}, nil
}

func (r *Resolver) recordsOf(ctx context.Context, userID int64) ([]*weightRecordResolver, error) {
	recs, err := r.weights.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return recordResolvers(recs), nil
}

// --- object resolvers ---

type weightRecordResolver struct {
	r domain.WeightRecord
}

func (w *weightRecordResolver) ID() int32          { return int32(w.r.ID) }
func (w *weightRecordResolver) UserID() int32      { return int32(w.r.UserID) }
func (w *weightRecordResolver) Weight() string     { return w.r.Weight }
func (w *weightRecordResolver) Unit() string       { return w.r.Unit }
func (w *weightRecordResolver) Notes() *string     { return w.r.Notes }
func (w *weightRecordResolver) RecordedAt() string { return domain.FormatTime(w.r.RecordedAt) }
func (w *weightRecordResolver) CreatedAt() string  { return domain.FormatTime(w.r.CreatedAt) }
func (w *weightRecordResolver) UpdatedAt() string  { return domain.FormatTime(w.r.UpdatedAt) }

type connectionResolver struct {
	page *app.Page
}

func (c *connectionResolver) Data() []*weightRecordResolver { return recordResolvers(c.page.Records) }
func (c *connectionResolver) Total() int32                  { return int32(c.page.Total) }
func (c *connectionResolver) HasMore() bool                 { return c.page.HasMore }

type userResolver struct {
	root *Resolver
	u    domain.User
}

func (u *userResolver) ID() int32         { return int32(u.u.ID) }
func (u *userResolver) Email() string     { return u.u.Email }
func (u *userResolver) Name() string      { return u.u.Name }
func (u *userResolver) CreatedAt() string { return domain.FormatTime(u.u.CreatedAt) }
func (u *userResolver) UpdatedAt() string { return domain.FormatTime(u.u.UpdatedAt) }

// WeightRecords shares the by-user query with Query.weightRecordsByUser.
func (u *userResolver) WeightRecords(ctx context.Context) ([]*weightRecordResolver, error) {
	return u.root.recordsOf(ctx, u.u.ID)
}

type deleteResultResolver struct {
	res app.DeleteResult
}

func (d *deleteResultResolver) Success() bool   { return d.res.Success }
func (d *deleteResultResolver) Message() string { return d.res.Message }

func recordResolvers(recs []domain.WeightRecord) []*weightRecordResolver {
	out := make([]*weightRecordResolver, len(recs))
	for i := range recs {
		out[i] = &weightRecordResolver{r: recs[i]}
	}
	return out
}

func int64Ptr(v *int32) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
