package items

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/itemvault/internal/common"
	"github.com/dmitrijs2005/itemvault/internal/dbx"
	"github.com/google/uuid"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(dbx.Static(db)), mock, db
}

func TestCreate_AssignsStoreID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+items\s*\(name,\s*description,\s*created_at,\s*updated_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id\s*$`

	nativeID := uuid.New()
	now := time.Now().UTC()
	desc := "desc"

	mock.ExpectQuery(q).
		WithArgs("Widget", &desc, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(nativeID.String()))

	item := &Item{Name: "Widget", Description: &desc, CreatedAt: now, UpdatedAt: now}
	got, err := repo.Create(context.Background(), item)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != nativeID.String() {
		t.Fatalf("id mismatch: got %q want %q", got.ID, nativeID)
	}
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*name,\s*description,\s*created_at,\s*updated_at\s+FROM\s+items\s+WHERE\s+id\s*=\s*\$1\s*$`

	nativeID := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
		AddRow(nativeID.String(), "Widget", "desc", now, now)
	mock.ExpectQuery(q).
		WithArgs(nativeID).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), nativeID.String())
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "Widget" || got.Description == nil || *got.Description != "desc" {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestGet_NullDescription(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*name,\s*description,\s*created_at,\s*updated_at\s+FROM\s+items\s+WHERE\s+id\s*=\s*\$1\s*$`

	nativeID := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
		AddRow(nativeID.String(), "Widget", nil, now, now)
	mock.ExpectQuery(q).
		WithArgs(nativeID).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), nativeID.String())
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Description != nil {
		t.Fatalf("expected absent description, got %q", *got.Description)
	}
}

func TestGet_NotFoundAndMalformedID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*name,\s*description,\s*created_at,\s*updated_at\s+FROM\s+items`

	missing := uuid.New()
	mock.ExpectQuery(q).
		WithArgs(missing).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Get(context.Background(), missing.String()); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("missing id: want common.ErrorNotFound, got %v", err)
	}

	// malformed id short-circuits without touching the store
	if _, err := repo.Get(context.Background(), "not-a-uuid"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("malformed id: want common.ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected store traffic: %v", err)
	}
}

func TestList_ServerSideDescendingSort(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*name,\s*description,\s*created_at,\s*updated_at\s+FROM\s+items\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	newer := time.Now().UTC()
	older := newer.Add(-time.Hour)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
		AddRow(uuid.New().String(), "b", nil, newer, newer).
		AddRow(uuid.New().String(), "a", nil, older, older)
	mock.ExpectQuery(q).WillReturnRows(rows)

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 || list[0].Name != "b" || list[1].Name != "a" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestUpdate_NoRowsMeansNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+items\s+SET\s+name\s*=\s*\$2,\s*description\s*=\s*\$3,\s*updated_at\s*=\s*\$4\s+WHERE\s+id\s*=\s*\$1\s*$`

	nativeID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectExec(q).
		WithArgs(nativeID, "Widget2", nil, now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	item := &Item{ID: nativeID.String(), Name: "Widget2", UpdatedAt: now}
	if _, err := repo.Update(context.Background(), item); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+items\s+SET\s+name\s*=\s*\$2,\s*description\s*=\s*\$3,\s*updated_at\s*=\s*\$4\s+WHERE\s+id\s*=\s*\$1\s*$`

	nativeID := uuid.New()
	now := time.Now().UTC()
	desc := "new"

	mock.ExpectExec(q).
		WithArgs(nativeID, "Widget2", &desc, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item := &Item{ID: nativeID.String(), Name: "Widget2", Description: &desc, UpdatedAt: now}
	got, err := repo.Update(context.Background(), item)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Name != "Widget2" {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestDelete_SuccessMissingAndMalformed(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+items\s+WHERE\s+id\s*=\s*\$1\s*$`

	existing := uuid.New()
	mock.ExpectExec(q).
		WithArgs(existing).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), existing.String()); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	missing := uuid.New()
	mock.ExpectExec(q).
		WithArgs(missing).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), missing.String()); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("missing id: want common.ErrorNotFound, got %v", err)
	}

	if err := repo.Delete(context.Background(), "###"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("malformed id: want common.ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected store traffic: %v", err)
	}
}

func TestListDBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*name,\s*description,\s*created_at,\s*updated_at\s+FROM\s+items`

	mock.ExpectQuery(q).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
