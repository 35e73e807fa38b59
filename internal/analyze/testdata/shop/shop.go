package shop

import "time"

type Status string

const StatusPaid Status = "PAID"

type Money struct {
	Cents    int64
	Currency string
}

type Audit struct {
	CreatedAt time.Time
	note      string
}

type Item struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Price    Money  `json:"price"`
}

type Order struct {
	Audit
	ID       string            `json:"id"`
	Status   Status            `json:"status"`
	Items    []Item            `json:"items"`
	Labels   map[string]string `json:"labels,omitempty"`
	Parent   *Order            `json:"parent,omitempty"`
	internal int
}

type Page[T any] struct {
	Items []T
	Next  string
}

type Number interface {
	~int | ~int64 | ~float64
}

type Repository interface {
	Find(id string) (*Order, error)
	Save(order Order) error
}

func Total(order Order, discounts ...Money) (Money, error) {
	return Money{Currency: order.ID}, nil
}

var order = Order{ID: "o-1"}

var page Page[Item]

var events = make(chan Order)

type Set struct {
	Members []string
}

var tags Set
