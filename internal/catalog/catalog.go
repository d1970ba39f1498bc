package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is a fuel product offered at every store. BasePrice and
// Variance feed the price simulator; both are fixed at process start.
type Product struct {
	ID        string
	Name      string
	Octane    string
	BasePrice decimal.Decimal
	Variance  decimal.Decimal
}

// Coordinates locate a store on the map.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Store is a retail location. Distance is a display label supplied with
// the catalog data; no distance computation happens in this system.
type Store struct {
	ID          string
	Name        string
	Address     string
	Distance    string
	Coordinates Coordinates
}

// Catalog holds the immutable, ordered reference data the engine works
// against. Construct once at startup and share freely; nothing mutates
// it afterwards.
type Catalog struct {
	products []Product
	stores   []Store
}

// New builds a catalog from ordered product and store lists. An empty
// product list is a programmer error.
func New(products []Product, stores []Store) Catalog {
	if len(products) == 0 {
		panic("catalog: product list must not be empty")
	}
	p := make([]Product, len(products))
	copy(p, products)
	s := make([]Store, len(stores))
	copy(s, stores)
	return Catalog{products: p, stores: s}
}

// Products returns the ordered product list.
func (c Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Stores returns the ordered store list.
func (c Catalog) Stores() []Store {
	out := make([]Store, len(c.stores))
	copy(out, c.stores)
	return out
}

// ProductByID resolves a product id, falling back to the first catalog
// entry when the id is unknown. Callers therefore always receive a
// usable product.
func (c Catalog) ProductByID(id string) Product {
	for _, p := range c.products {
		if p.ID == id {
			return p
		}
	}
	return c.products[0]
}

// StoreByID resolves a store id with the same first-entry fallback.
func (c Catalog) StoreByID(id string) Store {
	for _, s := range c.stores {
		if s.ID == id {
			return s
		}
	}
	if len(c.stores) == 0 {
		return Store{}
	}
	return c.stores[0]
}

// Default returns the built-in Melbourne catalog.
func Default() Catalog {
	return New(defaultProducts(), defaultStores())
}

func defaultProducts() []Product {
	return []Product{
		{
			ID:        "u91",
			Name:      "Unleaded 91",
			Octane:    "91 RON",
			BasePrice: decimal.NewFromFloat(1.95),
			Variance:  decimal.NewFromFloat(0.15),
		},
		{
			ID:        "p98",
			Name:      "Premium 98",
			Octane:    "98 RON",
			BasePrice: decimal.NewFromFloat(2.25),
			Variance:  decimal.NewFromFloat(0.18),
		},
		{
			ID:        "diesel",
			Name:      "Special Diesel",
			Octane:    "CN 50+",
			BasePrice: decimal.NewFromFloat(2.10),
			Variance:  decimal.NewFromFloat(0.20),
		},
		{
			ID:        "e10",
			Name:      "E10 Unleaded",
			Octane:    "94 RON (10% Ethanol)",
			BasePrice: decimal.NewFromFloat(1.91),
			Variance:  decimal.NewFromFloat(0.12),
		},
	}
}

func defaultStores() []Store {
	return []Store{
		{
			ID:          "store-001",
			Name:        "7-Eleven QV Melbourne",
			Address:     "185 Swanston St, Melbourne VIC 3000",
			Distance:    "1.2 km",
			Coordinates: Coordinates{Lat: -37.8106, Lng: 144.9654},
		},
		{
			ID:          "store-002",
			Name:        "7-Eleven South Yarra",
			Address:     "163 Toorak Rd, South Yarra VIC 3141",
			Distance:    "3.8 km",
			Coordinates: Coordinates{Lat: -37.8390, Lng: 144.9930},
		},
		{
			ID:          "store-003",
			Name:        "7-Eleven St Kilda",
			Address:     "115 Fitzroy St, St Kilda VIC 3182",
			Distance:    "6.5 km",
			Coordinates: Coordinates{Lat: -37.8596, Lng: 144.9793},
		},
		{
			ID:          "store-004",
			Name:        "7-Eleven Clayton",
			Address:     "1378 Centre Rd, Clayton South VIC 3169",
			Distance:    "19.2 km",
			Coordinates: Coordinates{Lat: -37.9300, Lng: 145.1200},
		},
	}
}
