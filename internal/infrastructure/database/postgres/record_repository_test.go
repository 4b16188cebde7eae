package postgres

import (
	"context"
	"errors"
	"regexp"
	"scaffold-rental/internal/domain/customer"
	"scaffold-rental/internal/domain/inventory"
	"scaffold-rental/internal/domain/rental"
	"scaffold-rental/internal/domain/vendors"
	"scaffold-rental/internal/pkg/apperrors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customerFixture = customer.Customer{
	Name:          "PT Maju Jaya",
	NPWP:          "01.234.567.8-901.234",
	ContactPerson: "Budi",
	Phone:         "081234567890",
	Email:         "budi@majujaya.co.id",
	Address:       "Jl. Sudirman 1",
	CreditLimit:   50000000,
}

func customerRow(c customer.Customer) []any {
	return []any{c.NPWP, c.Name, c.ContactPerson, c.Phone, c.Email, c.Address, c.CreditLimit}
}

func setupCustomerRepo(t *testing.T) (context.Context, *RecordRepository[customer.Customer], pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}
	return context.Background(), NewCustomerRepository(mockPool, logger), mockPool
}

func TestTableQueries(t *testing.T) {
	q := customerTable.build()

	assert.Equal(t, "SELECT npwp, name, contact_person, phone, email, address, credit_limit FROM customers ORDER BY created_at, npwp", q.selectAll)
	assert.Equal(t, "SELECT npwp, name, contact_person, phone, email, address, credit_limit FROM customers WHERE npwp = $1", q.selectOne)
	assert.Equal(t, "INSERT INTO customers (npwp, name, contact_person, phone, email, address, credit_limit) VALUES ($1, $2, $3, $4, $5, $6, $7)", q.insert)
	assert.Equal(t, "UPDATE customers SET name = $2, contact_person = $3, phone = $4, email = $5, address = $6, credit_limit = $7, updated_at = NOW() WHERE npwp = $1", q.update)
	assert.Equal(t, "DELETE FROM customers WHERE npwp = $1", q.delete)
}

func TestFindAllCustomers(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	second := customerFixture
	second.NPWP = "99.888.777.6-555.444"
	second.Name = "CV Sentosa"

	mockPool.ExpectQuery(regexp.QuoteMeta(repo.queries.selectAll)).
		WillReturnRows(pgxmock.NewRows(customerTable.columns).
			AddRow(customerRow(customerFixture)...).
			AddRow(customerRow(second)...))

	got, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []customer.Customer{customerFixture, second}, got)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllCustomersEmptyIsNotNil(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(repo.queries.selectAll)).
		WillReturnRows(pgxmock.NewRows(customerTable.columns))

	got, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindAllCustomersQueryError(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(repo.queries.selectAll)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.FindAll(ctx)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCustomerByKey(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(repo.queries.selectOne)).
		WithArgs(customerFixture.NPWP).
		WillReturnRows(pgxmock.NewRows(customerTable.columns).AddRow(customerRow(customerFixture)...))

	got, err := repo.FindByKey(ctx, customerFixture.NPWP)
	require.NoError(t, err)
	assert.Equal(t, customerFixture, got)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCustomerByKeyNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(repo.queries.selectOne)).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByKey(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestInsertCustomer(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta(repo.queries.insert)).
		WithArgs(customerRow(customerFixture)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Insert(ctx, customerFixture))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestInsertCustomerDuplicateKey(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta(repo.queries.insert)).
		WithArgs(customerRow(customerFixture)...).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "customers_pkey"})

	err := repo.Insert(ctx, customerFixture)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateCustomer(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	changed := customerFixture
	changed.CreditLimit = 75000000

	mockPool.ExpectExec(regexp.QuoteMeta(repo.queries.update)).
		WithArgs(customerRow(changed)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.Update(ctx, customerFixture.NPWP, changed))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta(repo.queries.update)).
		WithArgs(customerRow(customerFixture)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(ctx, customerFixture.NPWP, customerFixture)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteCustomer(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta(repo.queries.delete)).
		WithArgs(customerFixture.NPWP).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(repo.queries.delete)).
		WithArgs(customerFixture.NPWP).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(ctx, customerFixture.NPWP))
	assert.ErrorIs(t, repo.Delete(ctx, customerFixture.NPWP), apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestVendorRoundTrip(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()
	ctx := context.Background()
	repo := NewVendorRepository(mockPool, logger)

	v := vendors.Vendor{
		CompanyName:   "PT Baja Prima",
		NPWP:          "012345678901234",
		ContactPerson: "Sari",
		Phone:         "0215550123",
		Email:         "sari@bajaprima.id",
		Address:       "Kawasan Industri Pulogadung",
		BankAccount:   "BCA 1234567890",
		PaymentTerms:  45,
	}
	row := []any{v.NPWP, v.CompanyName, v.ContactPerson, v.Phone, v.Email, v.Address, v.BankAccount, v.PaymentTerms}

	mockPool.ExpectExec(regexp.QuoteMeta(repo.queries.insert)).WithArgs(row...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectQuery(regexp.QuoteMeta(repo.queries.selectOne)).WithArgs(v.NPWP).
		WillReturnRows(pgxmock.NewRows(vendorTable.columns).AddRow(row...))

	require.NoError(t, repo.Insert(ctx, v))
	got, err := repo.FindByKey(ctx, v.NPWP)
	require.NoError(t, err)
	assert.Equal(t, v, got)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestInventoryStoresEnumNames(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()
	ctx := context.Background()
	repo := NewInventoryRepository(mockPool, logger)

	item := inventory.Item{
		ItemID:          "SCF-001",
		ItemType:        inventory.Clamp,
		Quantity:        120,
		Location:        "Gudang A",
		Condition:       inventory.Good,
		AcquisitionCost: 85000,
	}
	row := []any{item.ItemID, item.ItemType.String(), item.Quantity, item.Location, item.Condition.String(), item.AcquisitionCost}

	mockPool.ExpectExec(regexp.QuoteMeta(repo.queries.insert)).WithArgs(row...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectQuery(regexp.QuoteMeta(repo.queries.selectAll)).
		WillReturnRows(pgxmock.NewRows(inventoryTable.columns).AddRow(row...))

	require.NoError(t, repo.Insert(ctx, item))
	got, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []inventory.Item{item}, got)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestInventoryUnknownStoredEnum(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()
	repo := NewInventoryRepository(mockPool, logger)

	mockPool.ExpectQuery(regexp.QuoteMeta(repo.queries.selectAll)).
		WillReturnRows(pgxmock.NewRows(inventoryTable.columns).
			AddRow("SCF-002", "Ladder", int64(1), "Gudang B", inventory.New.String(), int64(0)))

	_, err = repo.FindAll(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
}

func TestRentalOrderDates(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()
	ctx := context.Background()
	repo := NewRentalOrderRepository(mockPool, logger)

	order := rental.Order{
		OrderID:    "ORD-2025-001",
		CustomerID: customerFixture.NPWP,
		ItemIDs:    []string{"SCF-001", "SCF-002"},
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-31",
		Status:     rental.Active,
	}
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectExec(regexp.QuoteMeta(repo.queries.insert)).
		WithArgs(order.OrderID, order.CustomerID, order.ItemIDs, start, end, order.Status.String()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectQuery(regexp.QuoteMeta(repo.queries.selectOne)).
		WithArgs(order.OrderID).
		WillReturnRows(pgxmock.NewRows(rentalTable.columns).
			AddRow(order.OrderID, order.CustomerID, order.ItemIDs, start, end, order.Status.String()))

	require.NoError(t, repo.Insert(ctx, order))
	got, err := repo.FindByKey(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order, got)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestRentalOrderNormalizedDatesRoundTrip(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()
	ctx := context.Background()
	repo := NewRentalOrderRepository(mockPool, logger)

	order := rental.Order{
		OrderID:    "ORD-2025-002",
		CustomerID: customerFixture.NPWP,
		ItemIDs:    []string{"SCF-001"},
		StartDate:  rental.NormalizeDate("2025-01-02T10:00:00Z"),
		EndDate:    rental.NormalizeDate(" 2025-01-05 "),
		Status:     rental.Booked,
	}
	require.Equal(t, "2025-01-02", order.StartDate)
	require.Equal(t, "2025-01-05", order.EndDate)
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectExec(regexp.QuoteMeta(repo.queries.update)).
		WithArgs(order.OrderID, order.CustomerID, order.ItemIDs, start, end, order.Status.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectQuery(regexp.QuoteMeta(repo.queries.selectOne)).
		WithArgs(order.OrderID).
		WillReturnRows(pgxmock.NewRows(rentalTable.columns).
			AddRow(order.OrderID, order.CustomerID, order.ItemIDs, start, end, order.Status.String()))

	require.NoError(t, repo.Update(ctx, order.OrderID, order))
	got, err := repo.FindByKey(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order, got, "what was stored is what reads back")
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestRentalOrderRejectsBadDate(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()
	repo := NewRentalOrderRepository(mockPool, logger)

	err = repo.Insert(context.Background(), rental.Order{OrderID: "X", StartDate: "besok", EndDate: "2025-01-01"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestNewRecordRepositoryPanicsOnNilPool(t *testing.T) {
	assert.Panics(t, func() { NewCustomerRepository(nil, logger) })
}
