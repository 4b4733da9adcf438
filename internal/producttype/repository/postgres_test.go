package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestCreateProductTypeDuplicateName(t *testing.T) {
	repo, mock := newMock(t)
	pt := &model.ProductType{BaseModel: model.NewBaseModel(), Name: "food"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_types")).
		WithArgs(pt.ID, "food", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "product_types_name_key"})

	err := repo.Create(context.Background(), pt)

	require.Error(t, err)
	assert.True(t, apperror.IsUniqueViolation(err))
	assert.Equal(t, "product_types_name_key", apperror.Constraint(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllProductTypesWithCounts(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM product_types pt")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at", "product_count"}).
			AddRow("t2", "apparel", nil, now, now, 0).
			AddRow("t1", "food", "Edible", now.Add(-time.Hour), now, 3))

	types, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "apparel", types[0].Name)
	assert.Equal(t, 3, types[1].ProductCount)
	require.NotNil(t, types[1].Description)
	assert.Equal(t, "Edible", *types[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindProductTypeByIDMissing(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM product_types WHERE id = $1")).
		WithArgs("t9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}))

	pt, err := repo.FindByID(context.Background(), "t9")

	require.NoError(t, err)
	assert.Nil(t, pt)
}

func TestDeleteProductTypeRestricted(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_types WHERE id = $1")).
		WithArgs("t1").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "products_product_type_id_fkey"})

	err := repo.Delete(context.Background(), "t1")

	assert.True(t, apperror.IsForeignKeyViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
