package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/services/servicetest"
)

func price(v float64) *float64 { return &v }

func validOrder() models.OrderInput {
	return models.OrderInput{
		Name:  "A",
		Email: "a@b.com",
		Location: models.Location{
			Address: "1 Main St", City: "Springfield", Country: "US", State: "IL", Zipcode: "62701",
		},
		Phone:      "123",
		ProductIDs: []string{"bk1"},
		TotalPrice: price(14.99),
	}
}

func TestCreateOrderThenFetchByEmail(t *testing.T) {
	store := servicetest.NewOrderStore()
	ev := &servicetest.Events{}
	svc := NewOrderService(store, ev, zap.NewNop().Sugar())
	ctx := context.Background()

	order, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)
	assert.False(t, order.ID.IsZero())
	assert.Equal(t, []string{"bk1"}, order.ProductIDs)
	assert.Equal(t, 14.99, order.TotalPrice)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)

	orders, err := svc.ByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	require.Len(t, ev.Published, 1)
	assert.Equal(t, order.ID.Hex(), ev.Published[0].OrderID)
	assert.Equal(t, "a@b.com", ev.Published[0].Email)
}

func TestCreateOrderIDsAreFresh(t *testing.T) {
	svc := NewOrderService(servicetest.NewOrderStore(), nil, zap.NewNop().Sugar())
	a, err := svc.Create(context.Background(), validOrder())
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), validOrder())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreateOrderValidation(t *testing.T) {
	cases := map[string]struct {
		mutate func(*models.OrderInput)
		msg    string
	}{
		"empty product ids":   {func(in *models.OrderInput) { in.ProductIDs = []string{} }, "productIds must contain at least 1 item(s)"},
		"missing product ids": {func(in *models.OrderInput) { in.ProductIDs = nil }, "productIds is required"},
		"blank product id":    {func(in *models.OrderInput) { in.ProductIDs = []string{""} }, "productIds[0] is required"},
		"missing name":        {func(in *models.OrderInput) { in.Name = "" }, "name is required"},
		"missing city":        {func(in *models.OrderInput) { in.Location.City = "" }, "location.city is required"},
		"missing zipcode":     {func(in *models.OrderInput) { in.Location.Zipcode = "" }, "location.zipcode is required"},
		"missing phone":       {func(in *models.OrderInput) { in.Phone = "" }, "phone is required"},
		"missing total":       {func(in *models.OrderInput) { in.TotalPrice = nil }, "totalPrice is required"},
		"missing email":       {func(in *models.OrderInput) { in.Email = "" }, "email is required"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store := servicetest.NewOrderStore()
			svc := NewOrderService(store, nil, zap.NewNop().Sugar())
			in := validOrder()
			tc.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.ValidationError))

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.msg, appErr.Message)
			assert.Zero(t, store.Len())
		})
	}
}

func TestCreateOrderOnlyRequiresPresence(t *testing.T) {
	store := servicetest.NewOrderStore()
	svc := NewOrderService(store, nil, zap.NewNop().Sugar())
	in := validOrder()
	in.Email = "customer-1"
	in.TotalPrice = price(0)

	order, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "customer-1", order.Email)
	assert.Equal(t, 1, store.Len())
}

func TestCreateOrderPublishFailureIsNotFatal(t *testing.T) {
	store := servicetest.NewOrderStore()
	ev := &servicetest.Events{Err: errors.New("broker gone")}
	svc := NewOrderService(store, ev, zap.NewNop().Sugar())

	_, err := svc.Create(context.Background(), validOrder())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestCreateOrderStoreFailure(t *testing.T) {
	store := servicetest.NewOrderStore()
	store.Err = errors.New("write concern")
	ev := &servicetest.Events{}
	svc := NewOrderService(store, ev, zap.NewNop().Sugar())

	_, err := svc.Create(context.Background(), validOrder())
	assert.True(t, apperror.Is(err, apperror.InternalError))
	assert.Empty(t, ev.Published)
}

func TestOrdersByEmailExactMatch(t *testing.T) {
	store := servicetest.NewOrderStore(
		models.Order{Email: "a@b.com", ProductIDs: []string{"1"}},
		models.Order{Email: "A@b.com", ProductIDs: []string{"2"}},
		models.Order{Email: "c@d.com", ProductIDs: []string{"3"}},
		models.Order{Email: "a@b.com", ProductIDs: []string{"4"}},
	)
	svc := NewOrderService(store, nil, zap.NewNop().Sugar())

	orders, err := svc.ByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "a@b.com", o.Email)
	}

	none, err := svc.ByEmail(context.Background(), "x@y.com")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
