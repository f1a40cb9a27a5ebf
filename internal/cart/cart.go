package cart

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"pos_system/internal/models"
	"pos_system/pkg/billclient"
)

var (
	ErrTableRequired  = errors.New("table number is required")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

// Line is one draft entry: a product reference with the unit price
// snapshotted when the product was first added.
type Line struct {
	ProductID uint
	Name      string
	Price     float64
	Quantity  int
}

// BillPoster submits a finished draft. *billclient.Client satisfies it.
type BillPoster interface {
	CreateBill(ctx context.Context, req billclient.CreateBillRequest) (*billclient.Bill, error)
}

// Draft accumulates selected products for one table before submission.
// Lines keep insertion order and hold at most one entry per product.
// The mutex exists only to make the in-flight submission guard safe;
// UI interaction with a draft is single-threaded.
type Draft struct {
	mu          sync.Mutex
	tableNumber string
	lines       []Line
	inFlight    bool
}

func NewDraft() *Draft {
	return &Draft{}
}

func (d *Draft) SetTable(tableNumber string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tableNumber = tableNumber
}

func (d *Draft) Table() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tableNumber
}

// AddItem merges the product into the draft: an existing line gets its
// quantity bumped by one, otherwise a new line is appended with quantity 1.
func (d *Draft) AddItem(p models.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.lines {
		if d.lines[i].ProductID == p.ID {
			d.lines[i].Quantity++
			return
		}
	}
	d.lines = append(d.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

// SetQuantity replaces a line's quantity. Zero or negative removes the
// line; unknown product ids are ignored.
func (d *Draft) SetQuantity(productID uint, quantity int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.lines {
		if d.lines[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
		} else {
			d.lines[i].Quantity = quantity
		}
		return
	}
}

// ParseQuantity coerces raw UI input to a quantity, defaulting to 1 when
// the input is not a number.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// Lines returns a copy of the current draft lines in insertion order.
func (d *Draft) Lines() []Line {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Total sums price times quantity over all lines, rounded to 2 decimals.
// Invalid prices count as zero so a bad catalog row cannot poison the sum.
func (d *Draft) Total() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.totalLocked()
}

func (d *Draft) totalLocked() float64 {
	total := 0.0
	for _, l := range d.lines {
		price := l.Price
		if math.IsNaN(price) || math.IsInf(price, 0) {
			price = 0
		}
		total += price * float64(l.Quantity)
	}
	return math.Round(total*100) / 100
}

// Submit posts the draft as a bill. An empty table number fails locally
// before any network call. On success the draft resets to empty; on any
// failure the draft is left untouched so the user can retry. A second
// Submit while one is outstanding fails with ErrSubmitInFlight.
func (d *Draft) Submit(ctx context.Context, poster BillPoster) (*billclient.Bill, error) {
	d.mu.Lock()
	if d.tableNumber == "" {
		d.mu.Unlock()
		return nil, ErrTableRequired
	}
	if d.inFlight {
		d.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	d.inFlight = true

	req := billclient.CreateBillRequest{
		TableNumber: d.tableNumber,
		Total:       d.totalLocked(),
		Items:       make([]billclient.BillLine, 0, len(d.lines)),
	}
	for _, l := range d.lines {
		req.Items = append(req.Items, billclient.BillLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}
	d.mu.Unlock()

	bill, err := poster.CreateBill(ctx, req)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.inFlight = false
	if err != nil {
		return nil, err
	}
	d.lines = nil
	d.tableNumber = ""
	return bill, nil
}
