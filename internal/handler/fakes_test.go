package handler

// Shared in-memory fakes for handler tests.  Each records the calls it
// receives so tests can assert both the HTTP contract and the side effects.

import (
	"context"
	"database/sql"
	"time"

	"github.com/davidbc/pesv-backend/internal/model"
	"github.com/davidbc/pesv-backend/internal/repository"
)

type fakeUsers struct {
	byEmail     map[string]model.User
	lastAccess  []uint64
	emailExists map[string]bool
	updated     map[string]string // email -> new hash
	updateErr   error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byEmail:     map[string]model.User{},
		emailExists: map[string]bool{},
		updated:     map[string]string{},
	}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUsers) UpdateLastAccess(_ context.Context, id uint64) error {
	f.lastAccess = append(f.lastAccess, id)
	return nil
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	return f.emailExists[email], nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, email, hash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[email] = hash
	return nil
}

type fakeSessionStore struct {
	created []model.Session
	expired []string
}

func (f *fakeSessionStore) Create(_ context.Context, s model.Session) error {
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSessionStore) Expire(_ context.Context, token string) error {
	f.expired = append(f.expired, token)
	return nil
}

type fakeInspections struct {
	nextID      uint64
	created     []model.Inspection
	createErr   error
	rows        []repository.ListRow
	listErr     error
	detail      repository.Detail
	detailErr   error
	reviewErr   error
	reviews     []reviewCall
	appended    []appendCall
	appendErr   error
	notifInfo   repository.NotificationInfo
	notifErr    error
}

type reviewCall struct {
	id         uint64
	estado     string
	comentario *string
	adminID    *uint64
}

type appendCall struct {
	id         uint64
	estado     string
	comentario string
}

func (f *fakeInspections) Create(_ context.Context, ins *model.Inspection) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	ins.ID = f.nextID
	ins.Estado = model.InspeccionPendiente
	f.created = append(f.created, *ins)
	return f.nextID, nil
}

func (f *fakeInspections) ListByCompany(_ context.Context, _ uint64, _ repository.Filter) ([]repository.ListRow, error) {
	return f.rows, f.listErr
}

func (f *fakeInspections) ListAdmin(_ context.Context, _ repository.Filter) ([]repository.ListRow, error) {
	return f.rows, f.listErr
}

func (f *fakeInspections) GetDetail(_ context.Context, _ uint64) (repository.Detail, error) {
	return f.detail, f.detailErr
}

func (f *fakeInspections) Review(_ context.Context, id uint64, estado string, comentario *string, adminID *uint64) error {
	if f.reviewErr != nil {
		return f.reviewErr
	}
	f.reviews = append(f.reviews, reviewCall{id: id, estado: estado, comentario: comentario, adminID: adminID})
	return nil
}

func (f *fakeInspections) AppendStatus(_ context.Context, id uint64, estado, comentario string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, appendCall{id: id, estado: estado, comentario: comentario})
	return nil
}

func (f *fakeInspections) GetNotificationInfo(_ context.Context, _ uint64) (repository.NotificationInfo, error) {
	return f.notifInfo, f.notifErr
}

type fakeAdminLookup struct {
	contact repository.AdminContact
	err     error
}

func (f *fakeAdminLookup) AdminContactForVehicle(_ context.Context, _ uint64) (repository.AdminContact, error) {
	return f.contact, f.err
}

// fakeMailer records every send and answers with the configured outcome.
type fakeMailer struct {
	ok            bool
	adminNotices  []string // recipient per SendInspectionNotificationToAdmin
	statusUpdates []string // estado per SendStatusUpdate
	pdfNotices    []string // recipient per SendInspectionPDF
	codes         []string // code per SendVerificationCode
}

func (f *fakeMailer) SendInspectionNotificationToAdmin(to, _, _, _, _ string, _ time.Time, _ int, _ string, _ uint64) bool {
	f.adminNotices = append(f.adminNotices, to)
	return f.ok
}

func (f *fakeMailer) SendStatusUpdate(_, estado, _, _, _ string) bool {
	f.statusUpdates = append(f.statusUpdates, estado)
	return f.ok
}

func (f *fakeMailer) SendInspectionPDF(to, _, _, _, _ string, _ time.Time, _ int, _, _ string) bool {
	f.pdfNotices = append(f.pdfNotices, to)
	return f.ok
}

func (f *fakeMailer) SendVerificationCode(_, code string) bool {
	f.codes = append(f.codes, code)
	return f.ok
}
