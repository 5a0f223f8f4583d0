package employee

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	employeeerrors "github.com/djval79/careflow-sub001/internal/employee/errors"
	"github.com/djval79/careflow-sub001/internal/events"
	"github.com/djval79/careflow-sub001/internal/messaging/kafka"
	"github.com/djval79/careflow-sub001/internal/rolemap"
	"github.com/djval79/careflow-sub001/internal/shared/apperror"
)

type fakeRepo struct {
	withTxFn         func(tx *sql.Tx) Repository
	findByExternalFn func(ctx context.Context, companyID string, externalID int64) (*Employee, error)
	upsertFn         func(ctx context.Context, empl *Employee) error
	updateFn         func(ctx context.Context, empl *Employee) error
	setStatusFn      func(ctx context.Context, companyID string, externalID int64, status string) (int64, error)
	findAllFn        func(ctx context.Context, companyID string) ([]Employee, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) FindByExternalID(ctx context.Context, companyID string, externalID int64) (*Employee, error) {
	return f.findByExternalFn(ctx, companyID, externalID)
}
func (f *fakeRepo) Upsert(ctx context.Context, empl *Employee) error { return f.upsertFn(ctx, empl) }
func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error { return f.updateFn(ctx, empl) }
func (f *fakeRepo) SetStatusByExternalID(ctx context.Context, companyID string, externalID int64, status string) (int64, error) {
	return f.setStatusFn(ctx, companyID, externalID, status)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	return f.findAllFn(ctx, companyID)
}

type fakeOutbox struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	return f.createFn(ctx, event)
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type staticMappings []rolemap.RoleMapping

func (m staticMappings) FindAll(ctx context.Context) ([]rolemap.RoleMapping, error) {
	return m, nil
}

func testRoleCache() *rolemap.Cache {
	return rolemap.NewCache(staticMappings{
		{ExternalRole: "Support Worker", InternalRole: "Carer"},
		{ExternalRole: "Branch Manager", InternalRole: "Manager"},
	})
}

func syncPayloadFixture(tenantID string) SyncPayload {
	return SyncPayload{
		Action:   ActionCreated,
		TenantID: tenantID,
		Employee: SyncEmployee{
			ExternalID: 4711,
			FullName:   "Jane Mary Doe",
			Email:      "jane.doe@example.com",
			Phone:      "+441234567890",
			Role:       "Support Worker",
			Status:     "Active",
		},
	}
}

func TestSyncService_Process_Created(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	tenantID := uuid.New().String()
	ctx := context.Background()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByExternalFn = func(ctx context.Context, companyID string, externalID int64) (*Employee, error) {
		return nil, nil
	}
	repo.upsertFn = func(ctx context.Context, empl *Employee) error { saved = *empl; return nil }

	var published *kafka.OutboxEvent
	outbox := &fakeOutbox{createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
		published = &event
		return nil
	}}

	svc := NewSyncService(db, repo, testRoleCache(), outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Process(ctx, syncPayloadFixture(tenantID))
	assert.NoError(t, err)

	assert.Equal(t, "Jane", saved.FirstName)
	assert.Equal(t, "Mary Doe", saved.LastName)
	assert.Equal(t, "Carer", saved.Role)
	assert.Equal(t, StatusActive, saved.Status)
	assert.Equal(t, CompliancePending, saved.RightToWorkStatus)
	assert.Equal(t, CompliancePending, saved.DBSStatus)
	assert.Equal(t, tenantID, saved.CompanyID.String())

	// first sync publishes employee_synced through the outbox
	assert.NotNil(t, published)
	assert.Equal(t, "employee_synced", published.EventType)
	assert.Equal(t, events.EmployeeSyncedTopic, published.Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncService_Process_Updated_NoEvent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	tenantID := uuid.New().String()
	existingID := uuid.New()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByExternalFn = func(ctx context.Context, companyID string, externalID int64) (*Employee, error) {
		return &Employee{ID: existingID, ExternalID: externalID}, nil
	}
	repo.upsertFn = func(ctx context.Context, empl *Employee) error { saved = *empl; return nil }

	outbox := &fakeOutbox{createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
		t.Fatal("re-sync must not publish an event")
		return nil
	}}

	svc := NewSyncService(db, repo, testRoleCache(), outbox)

	payload := syncPayloadFixture(tenantID)
	payload.Action = ActionUpdated
	payload.Employee.Status = "On Leave"

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Process(context.Background(), payload)
	assert.NoError(t, err)
	assert.Equal(t, existingID, saved.ID, "update keeps the stored id")
	assert.Equal(t, StatusInactive, saved.Status, "anything but Active maps to inactive")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncService_Process_Deleted_SoftDelete(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	tenantID := uuid.New().String()

	var gotStatus string
	repo := &fakeRepo{}
	repo.setStatusFn = func(ctx context.Context, companyID string, externalID int64, status string) (int64, error) {
		gotStatus = status
		return 1, nil
	}

	svc := NewSyncService(db, repo, testRoleCache(), &fakeOutbox{})

	payload := syncPayloadFixture(tenantID)
	payload.Action = ActionDeleted

	err := svc.Process(context.Background(), payload)
	assert.NoError(t, err)
	assert.Equal(t, StatusInactive, gotStatus)
}

func TestSyncService_Process_Deleted_NoMatchIsNoOp(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.setStatusFn = func(ctx context.Context, companyID string, externalID int64, status string) (int64, error) {
		return 0, nil
	}

	svc := NewSyncService(db, repo, testRoleCache(), &fakeOutbox{})

	payload := syncPayloadFixture(uuid.New().String())
	payload.Action = ActionDeleted

	assert.NoError(t, svc.Process(context.Background(), payload))
}

func TestSyncService_Process_UnknownAction(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewSyncService(db, &fakeRepo{}, testRoleCache(), &fakeOutbox{})

	payload := syncPayloadFixture(uuid.New().String())
	payload.Action = "employee.archived"

	err := svc.Process(context.Background(), payload)
	assert.ErrorIs(t, err, employeeerrors.ErrUnknownAction)
}

func TestSyncService_Process_InvalidTenant(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewSyncService(db, &fakeRepo{}, testRoleCache(), &fakeOutbox{})

	payload := syncPayloadFixture("not-a-uuid")

	err := svc.Process(context.Background(), payload)
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidTenantID)
}

func TestSyncService_Process_ComplianceCarriedOver(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByExternalFn = func(ctx context.Context, companyID string, externalID int64) (*Employee, error) {
		return nil, nil
	}
	repo.upsertFn = func(ctx context.Context, empl *Employee) error { saved = *empl; return nil }

	svc := NewSyncService(db, repo, testRoleCache(), &fakeOutbox{createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
		return nil
	}})

	payload := syncPayloadFixture(uuid.New().String())
	payload.Employee.Compliance = &SyncCompliance{RightToWorkStatus: "Verified"}

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Process(context.Background(), payload)
	assert.NoError(t, err)
	assert.Equal(t, "Verified", saved.RightToWorkStatus)
	assert.Equal(t, CompliancePending, saved.DBSStatus, "missing compliance field keeps the default")
}

func TestSyncService_Process_UpsertFailure(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByExternalFn = func(ctx context.Context, companyID string, externalID int64) (*Employee, error) {
		return nil, nil
	}
	repo.upsertFn = func(ctx context.Context, empl *Employee) error {
		return errors.New("connection refused")
	}

	svc := NewSyncService(db, repo, testRoleCache(), &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Process(context.Background(), syncPayloadFixture(uuid.New().String()))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParsePayload_Validation(t *testing.T) {
	_, err := ParsePayload([]byte(`{"action":"employee.created","tenant_id":"` + uuid.New().String() + `","employee":{"id":1,"full_name":"Jane Doe","email":"not-an-email","role":"Support Worker","status":"Active"}}`))
	assert.Error(t, err)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)

	_, err = ParsePayload([]byte(`{not json`))
	assert.Error(t, err)
}

func TestSplitFullName(t *testing.T) {
	first, last := splitFullName("Jane Mary Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Mary Doe", last)

	first, last = splitFullName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)

	first, last = splitFullName("")
	assert.Empty(t, first)
	assert.Empty(t, last)
}
