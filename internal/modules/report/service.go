package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/avaldezm/preventa-core/internal/modules/order"
)

// Filter narrows the report. Zero values match everything.
type Filter struct {
	Status order.Status
	From   time.Time
	To     time.Time
}

// DaySales is revenue and volume for one calendar day.
type DaySales struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Units   int     `json:"units"`
	Revenue float64 `json:"revenue"`
}

// StoreSales is revenue and volume for one store.
type StoreSales struct {
	StoreID   string  `json:"store_id"`
	StoreName string  `json:"store_name"`
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
}

// ProductSales is units and revenue for one product.
type ProductSales struct {
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// Report is the sales view over the order store. Every figure is derived
// from order lines; stored aggregates are never trusted.
type Report struct {
	TotalOrders     int            `json:"total_orders"`
	CompletedOrders int            `json:"completed_orders"`
	PendingOrders   int            `json:"pending_orders"`
	Revenue         float64        `json:"revenue"`
	UnitsSold       int            `json:"units_sold"`
	SalesByDay      []DaySales     `json:"sales_by_day"`
	SalesByStore    []StoreSales   `json:"sales_by_store"`
	TopProducts     []ProductSales `json:"top_products"`
	Orders          []*order.Order `json:"orders"`
}

// Service builds sales reports.
type Service interface {
	Build(ctx context.Context, f Filter) (*Report, error)
	CSV(ctx context.Context, f Filter) ([]byte, error)
}

type service struct {
	orders order.Service
}

func NewService(orders order.Service) Service {
	return &service{orders: orders}
}

func (s *service) Build(ctx context.Context, f Filter) (*Report, error) {
	orders, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}

	r := &Report{TotalOrders: len(orders), Orders: orders}
	byDay := map[string]*DaySales{}
	byStore := map[string]*StoreSales{}
	byProduct := map[string]*ProductSales{}

	for _, o := range orders {
		a := order.Aggregate(o.Lines)

		switch o.Status {
		case order.StatusCompleted:
			r.CompletedOrders++
			// Revenue counts delivered orders only.
			r.Revenue += a.Total
			r.UnitsSold += a.Units
		case order.StatusPending:
			r.PendingOrders++
		}

		day := o.CreatedAt.Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &DaySales{Date: day}
			byDay[day] = d
		}
		d.Orders++
		d.Units += a.Units
		d.Revenue += a.Total

		st, ok := byStore[o.StoreID]
		if !ok {
			st = &StoreSales{StoreID: o.StoreID, StoreName: o.StoreName}
			byStore[o.StoreID] = st
		}
		st.Orders++
		st.Revenue += a.Total

		for _, l := range o.Lines {
			p, ok := byProduct[l.SKU]
			if !ok {
				p = &ProductSales{SKU: l.SKU, ProductName: l.ProductName}
				byProduct[l.SKU] = p
			}
			p.Quantity += l.Quantity
			p.Revenue += float64(l.Quantity) * l.UnitPrice
		}
	}

	for _, d := range byDay {
		r.SalesByDay = append(r.SalesByDay, *d)
	}
	sort.Slice(r.SalesByDay, func(i, j int) bool { return r.SalesByDay[i].Date < r.SalesByDay[j].Date })

	for _, st := range byStore {
		r.SalesByStore = append(r.SalesByStore, *st)
	}
	sort.Slice(r.SalesByStore, func(i, j int) bool { return r.SalesByStore[i].Revenue > r.SalesByStore[j].Revenue })

	for _, p := range byProduct {
		r.TopProducts = append(r.TopProducts, *p)
	}
	sort.Slice(r.TopProducts, func(i, j int) bool { return r.TopProducts[i].Quantity > r.TopProducts[j].Quantity })
	if len(r.TopProducts) > 5 {
		r.TopProducts = r.TopProducts[:5]
	}

	return r, nil
}

func (s *service) CSV(ctx context.Context, f Filter) ([]byte, error) {
	orders, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"order_id", "date", "store", "status", "units", "total"})
	for _, o := range orders {
		a := order.Aggregate(o.Lines)
		_ = w.Write([]string{
			o.ID,
			o.CreatedAt.Format("2006-01-02"),
			o.StoreName,
			string(o.Status),
			fmt.Sprintf("%d", a.Units),
			fmt.Sprintf("%.2f", a.Total),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *service) filtered(ctx context.Context, f Filter) ([]*order.Order, error) {
	orders, err := s.orders.List(ctx, order.Filter{Status: f.Status})
	if err != nil {
		return nil, err
	}
	if f.From.IsZero() && f.To.IsZero() {
		return orders, nil
	}
	out := orders[:0]
	for _, o := range orders {
		if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && o.CreatedAt.After(f.To) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
