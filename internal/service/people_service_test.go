package service

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository/memory"
)

func newPeople(t *testing.T) (CustomerService, StaffService) {
	t.Helper()
	store, err := memory.NewStore()
	require.NoError(t, err)
	return NewCustomerService(memory.NewCustomerRepo(store)), NewStaffService(memory.NewStaffRepo(store))
}

func TestCustomerEmailUnique(t *testing.T) {
	customers, _ := newPeople(t)

	ada, err := customers.Create(&model.Customer{Name: "Ada", Email: "ada@example.com"}, "")
	require.NoError(t, err)
	_, err = customers.Create(&model.Customer{Name: "Ada 2", Email: "ADA@example.com"}, "")
	assert.ErrorIs(t, err, ErrEmailExists)

	// Customers without email never clash.
	_, err = customers.Create(&model.Customer{Name: "Walk-in"}, "")
	require.NoError(t, err)
	_, err = customers.Create(&model.Customer{Name: "Walk-in 2"}, "")
	require.NoError(t, err)

	ada.Phone = "555-0100"
	updated, err := customers.Update(ada.ID, ada, "")
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)

	_, err = customers.Create(&model.Customer{Name: "Bad", Email: "not-an-email"}, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCustomerSearchAndCSV(t *testing.T) {
	customers, _ := newPeople(t)
	_, err := customers.Create(&model.Customer{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"}, "")
	require.NoError(t, err)
	_, err = customers.Create(&model.Customer{Name: "Grace Hopper", Email: "grace@example.com"}, "")
	require.NoError(t, err)

	page, err := customers.List("grace", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	var buf bytes.Buffer
	require.NoError(t, customers.ExportCSV(&buf))
	assert.Contains(t, buf.String(), "Ada Lovelace,ada@example.com,555-0100")

	in := "name,email,phone\nAda L.,ada@example.com,555-0199\nAlan Turing,alan@example.com,\n"
	res, err := customers.ImportCSV(strings.NewReader(in), "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)

	page, err = customers.List("", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, "Ada L.", page.Items[0].Name)
}

func TestStaffLifecycle(t *testing.T) {
	_, staff := newPeople(t)

	m, err := staff.Create(&CreateStaffRequest{Name: "Cash", Email: "cash@pos.local", Role: model.RoleCashier, Password: "secret1"}, "")
	require.NoError(t, err)
	assert.Equal(t, model.StaffActive, m.Status)
	assert.NotEqual(t, "secret1", m.Password)

	_, err = staff.Create(&CreateStaffRequest{Name: "Dup", Email: "cash@pos.local", Role: model.RoleCashier, Password: "secret1"}, "")
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = staff.Create(&CreateStaffRequest{Name: "Boss", Email: "boss@pos.local", Role: "owner", Password: "secret1"}, "")
	assert.ErrorIs(t, err, ErrValidation)

	var buf bytes.Buffer
	require.NoError(t, staff.ExportCSV(&buf))
	assert.NotContains(t, buf.String(), m.Password)

	res, err := staff.ImportCSV(strings.NewReader("name,email,role,password\nNew,new@pos.local,manager,secret9\nNo Pass,nopass@pos.local,cashier,\n"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Len(t, res.Errors, 1)

	page, err := staff.List("", model.RoleManager, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "new@pos.local", page.Items[0].Email)

	require.NoError(t, staff.Delete(m.ID))
	assert.ErrorIs(t, staff.Delete(m.ID), ErrStaffNotFound)
}

func TestConcurrentCreateSameEmail(t *testing.T) {
	customers, staff := newPeople(t)

	const n = 8
	var wg sync.WaitGroup
	customerErrs := make([]error, n)
	staffErrs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, customerErrs[i] = customers.Create(&model.Customer{Name: "Ada", Email: "ada@example.com"}, "")
		}(i)
		go func(i int) {
			defer wg.Done()
			_, staffErrs[i] = staff.Create(&CreateStaffRequest{
				Name: "Ada", Email: "ada@example.com", Role: model.RoleCashier, Password: "secret1",
			}, "")
		}(i)
	}
	wg.Wait()

	for name, errs := range map[string][]error{"customer": customerErrs, "staff": staffErrs} {
		created := 0
		for _, err := range errs {
			if err == nil {
				created++
				continue
			}
			assert.ErrorIs(t, err, ErrEmailExists, name)
		}
		assert.Equal(t, 1, created, name)
	}

	page, err := customers.List("ada", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	members, err := staff.List("ada", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, members.Total)
}
