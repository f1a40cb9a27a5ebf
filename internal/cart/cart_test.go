package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pos_system/internal/models"
	"pos_system/pkg/billclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	mu       sync.Mutex
	requests []billclient.CreateBillRequest
	err      error
	block    chan struct{}
}

func (f *fakePoster) CreateBill(ctx context.Context, req billclient.CreateBillRequest) (*billclient.Bill, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &billclient.Bill{ID: 1, TableNumber: req.TableNumber, Total: req.Total, Status: "open"}, nil
}

func product(id uint, name string, price float64) models.Product {
	return models.Product{ID: id, Name: name, Price: price}
}

func TestAddItemDistinctProducts(t *testing.T) {
	d := NewDraft()
	d.AddItem(product(1, "Coffee", 2.50))
	d.AddItem(product(2, "Tea", 3.00))
	d.AddItem(product(3, "Cake", 4.25))

	lines := d.Lines()
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 1, l.Quantity)
	}
	// Insertion order preserved
	assert.Equal(t, uint(1), lines[0].ProductID)
	assert.Equal(t, uint(2), lines[1].ProductID)
	assert.Equal(t, uint(3), lines[2].ProductID)
}

func TestAddItemMergesSameProduct(t *testing.T) {
	d := NewDraft()
	d.AddItem(product(1, "Coffee", 2.50))
	d.AddItem(product(1, "Coffee", 2.50))

	lines := d.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	d := NewDraft()
	d.AddItem(product(1, "Coffee", 2.50))
	d.AddItem(product(2, "Tea", 3.00))

	d.SetQuantity(1, 0)

	lines := d.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].ProductID)
	assert.Equal(t, 3.00, d.Total())
}

func TestSetQuantityNegativeRemovesLine(t *testing.T) {
	d := NewDraft()
	d.AddItem(product(1, "Coffee", 2.50))
	d.SetQuantity(1, -5)
	assert.Empty(t, d.Lines())
}

func TestSetQuantityReplaces(t *testing.T) {
	d := NewDraft()
	d.AddItem(product(1, "Coffee", 2.50))
	d.SetQuantity(1, 7)
	lines := d.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
}

func TestSetQuantityUnknownProductIgnored(t *testing.T) {
	d := NewDraft()
	d.AddItem(product(1, "Coffee", 2.50))
	d.SetQuantity(99, 3)
	require.Len(t, d.Lines(), 1)
	assert.Equal(t, 1, d.Lines()[0].Quantity)
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 3, ParseQuantity("3"))
	assert.Equal(t, 0, ParseQuantity("0"))
	assert.Equal(t, -2, ParseQuantity("-2"))
	assert.Equal(t, 5, ParseQuantity(" 5 "))
	assert.Equal(t, 1, ParseQuantity("abc"))
	assert.Equal(t, 1, ParseQuantity(""))
	assert.Equal(t, 1, ParseQuantity("1.5"))
}

func TestTotal(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, 0.0, d.Total())

	d.AddItem(product(1, "Coffee", 3.50))
	d.AddItem(product(1, "Coffee", 3.50))
	d.AddItem(product(2, "Pad Thai", 9.00))
	assert.Equal(t, 16.00, d.Total())
}

func TestTotalRoundsToTwoDecimals(t *testing.T) {
	d := NewDraft()
	d.AddItem(product(1, "Odd", 0.1))
	d.SetQuantity(1, 3)
	assert.Equal(t, 0.30, d.Total())
}

func TestTotalTreatsInvalidPriceAsZero(t *testing.T) {
	d := NewDraft()
	d.AddItem(models.Product{ID: 1, Name: "Broken"})
	d.lines[0].Price = nan()
	d.AddItem(product(2, "Tea", 3.00))
	assert.Equal(t, 3.00, d.Total())
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}

func TestSubmitRequiresTable(t *testing.T) {
	d := NewDraft()
	d.AddItem(product(1, "Coffee", 2.50))

	poster := &fakePoster{}
	_, err := d.Submit(context.Background(), poster)
	require.ErrorIs(t, err, ErrTableRequired)

	// No network call, draft untouched
	assert.Empty(t, poster.requests)
	assert.Len(t, d.Lines(), 1)
}

func TestSubmitSuccessResetsDraft(t *testing.T) {
	d := NewDraft()
	d.SetTable("5")
	d.AddItem(product(1, "Coffee", 3.50))
	d.AddItem(product(1, "Coffee", 3.50))
	d.AddItem(product(2, "Pad Thai", 9.00))

	poster := &fakePoster{}
	bill, err := d.Submit(context.Background(), poster)
	require.NoError(t, err)
	require.NotNil(t, bill)

	require.Len(t, poster.requests, 1)
	req := poster.requests[0]
	assert.Equal(t, "5", req.TableNumber)
	assert.Equal(t, 16.00, req.Total)
	require.Len(t, req.Items, 2)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, 1, req.Items[1].Quantity)

	assert.Empty(t, d.Lines())
	assert.Equal(t, "", d.Table())
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	d := NewDraft()
	d.SetTable("5")
	d.AddItem(product(1, "Coffee", 2.50))

	poster := &fakePoster{err: errors.New("connection refused")}
	_, err := d.Submit(context.Background(), poster)
	require.Error(t, err)

	assert.Len(t, d.Lines(), 1)
	assert.Equal(t, "5", d.Table())

	// A retry after the failure still works
	poster.err = nil
	_, err = d.Submit(context.Background(), poster)
	require.NoError(t, err)
	assert.Empty(t, d.Lines())
}

func TestSubmitInFlightGuard(t *testing.T) {
	d := NewDraft()
	d.SetTable("5")
	d.AddItem(product(1, "Coffee", 2.50))

	block := make(chan struct{})
	poster := &fakePoster{block: block}

	done := make(chan error, 1)
	go func() {
		_, err := d.Submit(context.Background(), poster)
		done <- err
	}()

	// Wait until the first submission is marked in flight
	for {
		d.mu.Lock()
		inFlight := d.inFlight
		d.mu.Unlock()
		if inFlight {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := d.Submit(context.Background(), poster)
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(block)
	require.NoError(t, <-done)
}
