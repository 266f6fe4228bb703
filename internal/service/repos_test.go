package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"zapshift/internal/model"
	"zapshift/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes shared by the service tests.

type fakeParcelRepo struct {
	mu      sync.Mutex
	parcels map[primitive.ObjectID]*model.Parcel
}

func newFakeParcelRepo() *fakeParcelRepo {
	return &fakeParcelRepo{parcels: make(map[primitive.ObjectID]*model.Parcel)}
}

func (f *fakeParcelRepo) put(p *model.Parcel) *model.Parcel {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	f.parcels[p.ID] = &cp
	return p
}

func (f *fakeParcelRepo) Create(ctx context.Context, p *model.Parcel) (*model.Parcel, error) {
	p.CreatedAt = time.Now()
	return f.put(p), nil
}

func (f *fakeParcelRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Parcel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.parcels[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeParcelRepo) Find(ctx context.Context, filter repository.ParcelFilter) ([]*model.Parcel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.Parcel{}
	for _, p := range f.parcels {
		if filter.CreatedBy != "" && p.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.DeliveryStatus != "" && p.DeliveryStatus != filter.DeliveryStatus {
			continue
		}
		if filter.AssignedRiderEmail != "" && p.AssignedRiderEmail != filter.AssignedRiderEmail {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeParcelRepo) FindCompletedByRider(ctx context.Context, riderEmail string) ([]*model.Parcel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.Parcel{}
	for _, p := range f.parcels {
		if p.AssignedRiderEmail == riderEmail && p.Completed() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeParcelRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.parcels[id]; !ok {
		return 0, nil
	}
	delete(f.parcels, id)
	return 1, nil
}

func (f *fakeParcelRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.parcels[id]
	if !ok {
		return 0, nil
	}
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "deliveryStatus":
			p.DeliveryStatus = s
		case "assignedRiderEmail":
			p.AssignedRiderEmail = s
		case "assignedRiderId":
			p.AssignedRiderID = s
		case "assignedRiderName":
			p.AssignedRiderName = s
		case "pickupTime":
			p.PickupTime = s
		case "deliveredTime":
			p.DeliveredTime = s
		}
	}
	return 1, nil
}

func (f *fakeParcelRepo) MarkCashedOut(ctx context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.parcels[id]
	if !ok || p.IsCashedOut {
		return false, nil
	}
	p.IsCashedOut = true
	return true, nil
}

type fakeRiderRepo struct {
	mu     sync.Mutex
	riders map[primitive.ObjectID]*model.Rider
}

func newFakeRiderRepo() *fakeRiderRepo {
	return &fakeRiderRepo{riders: make(map[primitive.ObjectID]*model.Rider)}
}

func (f *fakeRiderRepo) put(r *model.Rider) *model.Rider {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	cp := *r
	f.riders[r.ID] = &cp
	return r
}

func (f *fakeRiderRepo) Create(ctx context.Context, r *model.Rider) (*model.Rider, error) {
	r.AppliedAt = time.Now()
	return f.put(r), nil
}

func (f *fakeRiderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Rider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.riders[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRiderRepo) FindByEmail(ctx context.Context, email string) (*model.Rider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.riders {
		if r.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRiderRepo) FindByStatus(ctx context.Context, status string) ([]*model.Rider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.Rider{}
	for _, r := range f.riders {
		if r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRiderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.riders[id]
	if !ok {
		return 0, nil
	}
	r.Status = status
	return 1, nil
}

func (f *fakeRiderRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.riders[id]; !ok {
		return 0, nil
	}
	delete(f.riders, id)
	return 1, nil
}

func (f *fakeRiderRepo) ApplyCashout(ctx context.Context, id primitive.ObjectID, entry model.CashoutEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.riders[id]
	if !ok {
		return nil
	}
	r.TotalCashedOut += entry.Amount
	r.CashoutHistory = append(r.CashoutHistory, entry)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (f *fakeUserRepo) put(u *model.User) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	f.users[u.ID] = &cp
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	u.CreatedAt = time.Now()
	return f.put(u), nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.User{}
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) SearchByEmail(ctx context.Context, fragment string, limit int64) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.User{}
	for _, u := range f.users {
		if strings.Contains(u.Email, fragment) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return 0, nil
	}
	u.Role = role
	return 1, nil
}

func (f *fakeUserRepo) UpdateRoleByEmail(ctx context.Context, email, role string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u.Role = role
			return 1, nil
		}
	}
	return 0, nil
}

type fakeTrackingRepo struct {
	mu   sync.Mutex
	logs []*model.TrackingLog
}

func newFakeTrackingRepo() *fakeTrackingRepo {
	return &fakeTrackingRepo{}
}

func (f *fakeTrackingRepo) Append(ctx context.Context, log *model.TrackingLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *log
	cp.ID = primitive.NewObjectID()
	f.logs = append(f.logs, &cp)
	return nil
}

func (f *fakeTrackingRepo) FindByTrackingID(ctx context.Context, trackingID string) ([]*model.TrackingLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.TrackingLog{}
	for _, l := range f.logs {
		if l.TrackingID == trackingID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeTrackingRepo) FindAfter(ctx context.Context, trackingID string, after time.Time) ([]*model.TrackingLog, error) {
	all, _ := f.FindByTrackingID(ctx, trackingID)
	out := []*model.TrackingLog{}
	for _, l := range all {
		if l.Timestamp.After(after) {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeTxnRunner executes the function directly; atomicity is not simulated.
type fakeTxnRunner struct{}

func (fakeTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
